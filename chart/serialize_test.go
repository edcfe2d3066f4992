package chart

import (
	"testing"

	"github.com/jsphweid/chartband/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTune() model.Tune {
	return model.Tune{
		Title:        "Sample",
		Composer:     "Nobody",
		Style:        "Swing",
		DefaultKey:   "Bb",
		DefaultTempo: 140,
		Sections: []model.Section{
			{Label: "A", Bars: []model.Bar{
				{Chords: []string{"Cm7"}, RepeatStart: true},
				{Chords: []string{"F7"}},
				{Chords: []string{"Bbmaj7"}, RepeatEnd: 2},
			}},
			{Label: "B", Bars: []model.Bar{
				{Chords: []string{"Gm7", "C7"}},
				{Chords: []string{}},
				{Chords: []string{"F6"}, Lyrics: "end"},
			}},
		},
	}
}

func TestSerialize(t *testing.T) {
	assert.Equal(t, "*A {Cm7 |F7 |Bbmaj7} *B [Gm7 C7 | |F6<end>]", Serialize(sampleTune()))
}

func assertSameStructure(t *testing.T, want, got []model.Section) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Len(t, got[i].Bars, len(want[i].Bars), "section %d", i)
		for j := range want[i].Bars {
			w, g := want[i].Bars[j], got[i].Bars[j]
			assert.Equal(t, w.Chords, g.Chords, "section %d bar %d", i, j)
			assert.Equal(t, w.RepeatStart, g.RepeatStart, "section %d bar %d", i, j)
			assert.Equal(t, w.RepeatEnd, g.RepeatEnd, "section %d bar %d", i, j)
			assert.Equal(t, w.Lyrics, g.Lyrics, "section %d bar %d", i, j)
		}
	}
}

func TestSerializedTuneParsesBack(t *testing.T) {
	tune := sampleTune()
	assertSameStructure(t, tune.Sections, ParseSections(Serialize(tune)))
}

func TestSerializeEdgeBars(t *testing.T) {
	sections := []model.Section{
		{Label: "i", Bars: []model.Bar{
			{Chords: []string{}},
			{Chords: []string{"C"}, RepeatStart: true},
			{Chords: []string{}, RepeatEnd: 2},
			{Chords: []string{}, RepeatStart: true, Lyrics: "hum"},
			{Chords: []string{model.NoChord}, RepeatEnd: 2},
			{Chords: []string{model.Simile}},
			{Chords: []string{"D7"}},
		}},
	}
	got := ParseSections(Serialize(model.Tune{Sections: sections}))
	assertSameStructure(t, sections, got)
	assert.Equal(t, "i", got[0].Label)
}

func TestParseSerializeParseIsStable(t *testing.T) {
	inputs := []string{
		"*A{C^7 |A-7 |D-9 |G7 }*B[E-7 A7|D-7 G7|C^7 |C^7 ]",
		"*A[T44C-7 |F7 |Bb^7 |Eb^7 |A-7b5 |D7b9 |G-6 |G-6 ]*B[A-7b5 |D7b9 |G-7 C7|F-7 Bb7|Eb7 D7|G-6 ]",
		"*i[n |x |C<one> |% ]*A{F |Bb |F |C }[Bb |F ]",
		"[B*B[E |F |G |A ]",
		"*A[C    |D ]",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first := ParseSections(in)
			require.NotEmpty(t, first)
			assertSameStructure(t, first, ParseSections(Serialize(model.Tune{Sections: first})))
		})
	}
}

func TestURIRoundTrip(t *testing.T) {
	tune := sampleTune()
	parsed, err := ParseURI(URI(tune))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(tune.Title, parsed.Title)
	assert.Equal(tune.Composer, parsed.Composer)
	assert.Equal(tune.Style, parsed.Style)
	assert.Equal(tune.DefaultKey, parsed.DefaultKey)
	assertSameStructure(t, tune.Sections, parsed.Sections)
}

func TestSerializeSkipsEmptySections(t *testing.T) {
	tune := model.Tune{Sections: []model.Section{
		{Label: "A"},
		{Label: "Verse", Bars: []model.Bar{{Chords: []string{"C"}}}},
	}}
	assert.Equal(t, "*V [C]", Serialize(tune))
}
