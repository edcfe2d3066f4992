package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/chartband/chart"
	"github.com/jsphweid/chartband/chord"
	"github.com/jsphweid/chartband/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTune(id, title, key, data string) model.Tune {
	return model.Tune{ID: id, Title: title, DefaultKey: key, Style: "Swing", DefaultTempo: 120, Sections: chart.ParseSections(data)}
}

func TestChordKeyIgnoresSpelling(t *testing.T) {
	a, _ := chord.Parse("C#-7")
	b, _ := chord.Parse("Dbm7")
	assert.Equal(t, "Dbm7", ChordKey(a))
	assert.Equal(t, ChordKey(a), ChordKey(b))
}

func TestAddAndSearch(t *testing.T) {
	assert := assert.New(t)
	c := New()
	c.Add(sampleTune("one", "One", "C", "*A[Dm7 G7 |C^7 |Dm7 Dm7 |%]"), "one.txt")
	c.Add(sampleTune("two", "Two", "F", "*A[G-7 C7 |F^7 ]*B[D-7 ]"), "two.txt")

	dm7, _ := chord.Parse("D-7")
	assert.Equal([]Occurrence{
		{TuneID: "one", Position: model.Position{Bar: 0}},
		{TuneID: "one", Position: model.Position{Bar: 2}},
		{TuneID: "two", Position: model.Position{Section: 1, Bar: 0}},
	}, c.Search(dm7))

	missing, _ := chord.Parse("F#7")
	assert.Empty(c.Search(missing))

	tunes, err := c.GetTunes([]string{"two", "three"})
	require.NoError(t, err)
	assert.Len(tunes, 1)
	assert.Equal("Two", tunes["two"].Title)
	assert.Equal("two.txt", c.Paths["two"])
}

func TestBuildSkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("*A[C |F ]"), 0666))

	c := Build([]string{good, filepath.Join(dir, "missing.txt")})
	assert.Len(t, c.Tunes, 1)
	for id, tune := range c.Tunes {
		assert.Equal(t, "good", tune.Title)
		assert.Equal(t, good, c.Paths[id])
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	c := New()
	c.Add(sampleTune("one", "One", "C", "*A{C |F }"), "one.txt")
	require.NoError(t, Save(dir, c))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, c.Index, got.Index)
	assert.Equal(t, c.Tunes["one"].Sections, got.Tunes["one"].Sections)
}

func TestReport(t *testing.T) {
	assert := assert.New(t)
	c := New()
	c.Add(sampleTune("one", "One", "C", "*A{C |G7 }[C |xyz |% |n ]"), "one.txt")
	c.Add(sampleTune("two", "Two", "C", "*A[C |F ]"), "two.txt")

	r := c.Report(2)
	assert.Equal(2, r.NumTunes)
	assert.Equal(8, r.NumBars)
	assert.Equal(10, r.NumUnrolledBars)
	assert.Equal(6, r.NumChords)
	assert.Equal(1, r.NumUnparsed)
	assert.Equal(map[string]int{"C": 2}, r.ByKey)
	assert.Equal([]Count{{Name: "C", Count: 3}, {Name: "F", Count: 1}}, r.TopChords)
}
