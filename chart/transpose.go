package chart

import (
	"github.com/jsphweid/chartband/chord"
	"github.com/jsphweid/chartband/model"
)

// Transpose returns a copy of t with its key and every chord moved by
// semitones. t is left untouched.
func Transpose(t model.Tune, semitones int) model.Tune {
	res := t
	res.DefaultKey = chord.Transpose(t.DefaultKey, semitones)
	res.Sections = make([]model.Section, len(t.Sections))
	for si, sec := range t.Sections {
		bars := make([]model.Bar, len(sec.Bars))
		for bi, bar := range sec.Bars {
			b := bar
			b.Chords = make([]string, len(bar.Chords))
			for ci, c := range bar.Chords {
				b.Chords[ci] = chord.Transpose(c, semitones)
			}
			bars[bi] = b
		}
		res.Sections[si] = model.Section{Label: sec.Label, Bars: bars}
	}
	return res
}
