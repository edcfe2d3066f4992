package hint

import (
	"testing"

	"github.com/jsphweid/chartband/model"
	"github.com/stretchr/testify/assert"
)

func bars(chords ...[]string) []model.Bar {
	res := make([]model.Bar, 0, len(chords))
	for _, c := range chords {
		res = append(res, model.Bar{Chords: c})
	}
	return res
}

func TestForPositionScalesAndCadence(t *testing.T) {
	assert := assert.New(t)
	tune := model.Tune{Sections: []model.Section{
		{Label: "A", Bars: bars([]string{"Dm7", "Ab7"}, []string{"G7"}, []string{"Cmaj7"})},
	}}

	h, ok := ForPosition(tune, model.Position{})
	assert.True(ok)
	assert.Equal("Dm7", h.Chord)
	assert.Equal([]string{"D Dorian", "D Aeolian"}, h.Scales)
	if assert.NotNil(h.Cadence) {
		assert.Equal("C", h.Cadence.Key)
		assert.Equal([]string{"Dm7", "G7", "Cmaj7"}, h.Cadence.Chords)
		assert.False(h.Cadence.Implied)
	}

	h, ok = ForPosition(tune, model.Position{Bar: 1})
	assert.True(ok)
	if assert.NotNil(h.Cadence) {
		assert.Equal([]string{"G7", "Cmaj7"}, h.Cadence.Chords)
	}

	h, ok = ForPosition(tune, model.Position{Bar: 2})
	assert.True(ok)
	assert.Nil(h.Cadence)
	assert.Equal([]string{"C Ionian", "C Lydian"}, h.Scales)
}

func TestForPositionCrossesSections(t *testing.T) {
	assert := assert.New(t)
	tune := model.Tune{Sections: []model.Section{
		{Label: "A", Bars: bars([]string{"Em7"})},
		{Label: "B", Bars: bars([]string{"A7"}, []string{"Dmaj7"})},
	}}

	h, ok := ForPosition(tune, model.Position{})
	assert.True(ok)
	if assert.NotNil(h.Cadence) {
		assert.Equal("D", h.Cadence.Key)
	}
}

func TestForPositionSkipsMarkers(t *testing.T) {
	assert := assert.New(t)
	tune := model.Tune{Sections: []model.Section{
		{Label: "A", Bars: bars([]string{"%"}, []string{"Bbm7"}, []string{"Eb7"})},
	}}

	h, ok := ForPosition(tune, model.Position{})
	assert.True(ok)
	assert.Empty(h.Chord)
	assert.Nil(h.Scales)
	if assert.NotNil(h.Cadence) {
		assert.Equal("Ab", h.Cadence.Key)
		assert.True(h.Cadence.Implied)
	}
}

func TestForPositionOutOfRange(t *testing.T) {
	tune := model.Tune{Sections: []model.Section{{Label: "A", Bars: bars([]string{"C"})}}}
	for _, pos := range []model.Position{{Section: 1}, {Bar: 1}, {Section: -1}, {Bar: -1}} {
		_, ok := ForPosition(tune, pos)
		assert.False(t, ok, "%+v", pos)
	}
}

func TestAll(t *testing.T) {
	assert := assert.New(t)
	tune := model.Tune{Sections: []model.Section{
		{Label: "A", Bars: bars([]string{"C"}, nil)},
		{Label: "B", Bars: bars([]string{"N.C."})},
	}}

	hints := All(tune)
	assert.Len(hints, 3)
	assert.Equal(model.Position{Section: 1, Bar: 0}, hints[2].Position)
	assert.Equal("C", hints[0].Chord)
	assert.Empty(hints[1].Chord)
	assert.Empty(hints[2].Chord)
}
