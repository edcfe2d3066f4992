package band

import (
	"github.com/jsphweid/chartband/chord"
	"github.com/jsphweid/chartband/model"
)

// Slot is one chord of a bar, parsed once up front. OK is false for the
// reserved markers and for text that has no recognizable root.
type Slot struct {
	Raw    string
	Symbol chord.Symbol
	OK     bool
}

func newSlot(raw string) Slot {
	sym, ok := chord.Parse(raw)
	return Slot{Raw: raw, Symbol: sym, OK: ok}
}

func (s Slot) isSimile() bool {
	return s.Raw == model.Simile
}

// FlatBar is a bar of the unrolled tune. Position points back at the bar as
// written, so every copy of a repeated bar shares it.
type FlatBar struct {
	Position model.Position
	Slots    []Slot
}

func newFlatBar(si, bi int, bar model.Bar) FlatBar {
	fb := FlatBar{Position: model.Position{Section: si, Bar: bi}}
	for _, c := range bar.Chords {
		if c == "" {
			continue
		}
		fb.Slots = append(fb.Slots, newSlot(c))
	}
	return fb
}

// Unroll writes out every repeat so the result is one pass through the tune
// in playing order. A repeat end plays the bars back to the last repeat start
// in its section not already closed, or to the top of the section if there
// is none.
func Unroll(t model.Tune) []FlatBar {
	var res []FlatBar
	for si, sec := range t.Sections {
		written := make([]FlatBar, len(sec.Bars))
		start := 0
		for bi, bar := range sec.Bars {
			written[bi] = newFlatBar(si, bi, bar)
			if bar.RepeatStart {
				start = bi
			}
			res = append(res, written[bi])
			if bar.RepeatEnd > 1 {
				for r := 1; r < bar.RepeatEnd; r++ {
					res = append(res, written[start:bi+1]...)
				}
				start = 0
			}
		}
	}
	return res
}
