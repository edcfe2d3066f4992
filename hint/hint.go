// Package hint builds the practice hints shown for a bar: scales to play over
// its first chord and any ii-V-I that starts there.
package hint

import (
	"github.com/jsphweid/chartband/chord"
	"github.com/jsphweid/chartband/model"
)

// cadences are looked for over this many bars, one chord from each.
const lookahead = 3

// ForPosition returns the hint for the bar at pos. ok is false when pos is
// outside the tune.
func ForPosition(t model.Tune, pos model.Position) (hint model.BarHint, ok bool) {
	bar, ok := barAt(t, pos)
	if !ok {
		return model.BarHint{}, false
	}

	hint.Position = pos
	if len(bar.Chords) > 0 {
		if sym, ok := chord.Parse(bar.Chords[0]); ok {
			hint.Chord = sym.Raw
			hint.Scales = chord.SuggestedScales(sym)
		}
	}
	if c, ok := chord.Detect251(upcoming(t, pos)); ok {
		hint.Cadence = &c
	}
	return hint, true
}

// All returns one hint per bar in chart order.
func All(t model.Tune) []model.BarHint {
	res := make([]model.BarHint, 0, t.NumBars())
	for si, sec := range t.Sections {
		for bi := range sec.Bars {
			h, _ := ForPosition(t, model.Position{Section: si, Bar: bi})
			res = append(res, h)
		}
	}
	return res
}

func barAt(t model.Tune, pos model.Position) (model.Bar, bool) {
	if pos.Section < 0 || pos.Section >= len(t.Sections) {
		return model.Bar{}, false
	}
	bars := t.Sections[pos.Section].Bars
	if pos.Bar < 0 || pos.Bar >= len(bars) {
		return model.Bar{}, false
	}
	return bars[pos.Bar], true
}

// upcoming collects the first chord of each of the next few bars, crossing
// section boundaries. Bars holding a marker or nothing usable are skipped
// but still count towards the window.
func upcoming(t model.Tune, pos model.Position) []chord.Symbol {
	var res []chord.Symbol
	si, bi := pos.Section, pos.Bar
	for i := 0; i < lookahead && si < len(t.Sections); i++ {
		bars := t.Sections[si].Bars
		if bi >= len(bars) {
			break
		}
		if chords := bars[bi].Chords; len(chords) > 0 {
			if sym, ok := chord.Parse(chords[0]); ok {
				res = append(res, sym)
			}
		}
		bi++
		if bi >= len(bars) {
			si++
			bi = 0
		}
	}
	return res
}
