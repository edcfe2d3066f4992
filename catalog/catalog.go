// Package catalog indexes a library of charts by the chords they use.
package catalog

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/jsphweid/chartband/band"
	"github.com/jsphweid/chartband/chord"
	"github.com/jsphweid/chartband/constants"
	"github.com/jsphweid/chartband/file"
	"github.com/jsphweid/chartband/model"
	"github.com/jsphweid/chartband/util"
)

type Occurrence struct {
	TuneID   string         `json:"tune_id"`
	Position model.Position `json:"position"`
}

type Catalog struct {
	Tunes map[string]model.Tune
	// Paths maps a tune id to the file it was read from.
	Paths map[string]string
	// Index maps a chord key to every bar that plays it, in library order.
	Index map[string][]Occurrence
}

func New() Catalog {
	return Catalog{
		Tunes: make(map[string]model.Tune),
		Paths: make(map[string]string),
		Index: make(map[string][]Occurrence),
	}
}

// ChordKey names a chord by sounding root and canonical quality, so that
// "C#-7" and "Dbm7" share a key.
func ChordKey(s chord.Symbol) string {
	return chord.NewNote(s.PitchClass(), 0).Name() + s.Quality
}

// Build reads every chart file in paths. Files that can't be read are
// reported and skipped.
func Build(paths []string) Catalog {
	c := New()
	for i, path := range paths {
		fmt.Printf("Processing %v of %v chart files\n", i+1, len(paths))
		tunes, err := file.ReadCharts(path)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", path, err)
			continue
		}
		for _, t := range tunes {
			c.Add(t, path)
		}
	}
	return c
}

func (c Catalog) Add(t model.Tune, path string) {
	c.Tunes[t.ID] = t
	c.Paths[t.ID] = path
	for si, sec := range t.Sections {
		for bi, bar := range sec.Bars {
			for _, s := range chord.ParseAll(bar.Chords) {
				key := ChordKey(s)
				occ := Occurrence{TuneID: t.ID, Position: model.Position{Section: si, Bar: bi}}
				if prev := c.Index[key]; len(prev) > 0 && prev[len(prev)-1] == occ {
					continue
				}
				c.Index[key] = append(c.Index[key], occ)
			}
		}
	}
}

// Search finds the bars that play s.
func (c Catalog) Search(s chord.Symbol) []Occurrence {
	return c.Index[ChordKey(s)]
}

// GetTunes returns the tunes among ids that the catalog holds.
func (c Catalog) GetTunes(ids []string) (map[string]model.Tune, error) {
	res := make(map[string]model.Tune)
	for _, id := range ids {
		if t, ok := c.Tunes[id]; ok {
			res[id] = t
		}
	}
	return res, nil
}

func path(dir string) string {
	return filepath.Join(dir, constants.CatalogFile)
}

func Save(dir string, c Catalog) error {
	return util.CreateBinary(path(dir), c)
}

func Load(dir string) (Catalog, error) {
	return util.ReadBinary[Catalog](path(dir))
}

type Count struct {
	Name  string
	Count int
}

type Report struct {
	NumTunes        int
	NumBars         int
	NumUnrolledBars int
	NumChords       int
	// chord tokens with no recognizable root, markers excluded
	NumUnparsed int
	ByKey       map[string]int
	ByStyle     map[string]int
	TopChords   []Count
}

func (c Catalog) Report(top int) Report {
	r := Report{ByKey: map[string]int{}, ByStyle: map[string]int{}}
	var barsPerTune []int
	for _, id := range util.GetKeys(c.Tunes) {
		t := c.Tunes[id]
		r.NumTunes++
		barsPerTune = append(barsPerTune, t.NumBars())
		r.NumUnrolledBars += len(band.Unroll(t))
		r.ByKey[t.DefaultKey]++
		r.ByStyle[t.Style]++
		for _, sec := range t.Sections {
			for _, bar := range sec.Bars {
				for _, raw := range bar.Chords {
					if raw == model.Simile || raw == model.NoChord || raw == "" {
						continue
					}
					r.NumChords++
					if _, ok := chord.Parse(raw); !ok {
						r.NumUnparsed++
					}
				}
			}
		}
	}
	r.NumBars = int(util.Sum(barsPerTune))

	for _, key := range util.GetKeys(c.Index) {
		r.TopChords = append(r.TopChords, Count{Name: key, Count: len(c.Index[key])})
	}
	sort.SliceStable(r.TopChords, func(i, j int) bool { return r.TopChords[i].Count > r.TopChords[j].Count })
	if top > 0 && len(r.TopChords) > top {
		r.TopChords = r.TopChords[:top]
	}
	return r
}
