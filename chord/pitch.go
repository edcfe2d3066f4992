package chord

import (
	"sort"
	"strings"
)

const (
	DefaultOctave = 3
	BassOctave    = 2
)

var majorTriad = []int{0, 4, 7}

// intervals in semitones above the root, keyed by canonical quality
var intervalTable = map[string][]int{
	"":      majorTriad,
	"maj":   majorTriad,
	"m":     {0, 3, 7},
	"7":     {0, 4, 7, 10},
	"maj7":  {0, 4, 7, 11},
	"m7":    {0, 3, 7, 10},
	"mmaj7": {0, 3, 7, 11},
	"6":     {0, 4, 7, 9},
	"m6":    {0, 3, 7, 9},
	"m7b5":  {0, 3, 6, 10},
	"dim":   {0, 3, 6},
	"dim7":  {0, 3, 6, 9},
	"aug":   {0, 4, 8},
	"sus":   {0, 5, 7},
	"sus4":  {0, 5, 7},
	"sus2":  {0, 2, 7},
	"9":     {0, 4, 7, 10, 14},
	"m9":    {0, 3, 7, 10, 14},
	"maj9":  {0, 4, 7, 11, 14},
	"13":    {0, 4, 7, 10, 21},
	"7b9":   {0, 4, 7, 10, 13},
	"7b13":  {0, 4, 7, 10, 20}, // b13 sits an octave up
}

var intervalPrefixes = prefixesLongestFirst(intervalTable)

func prefixesLongestFirst[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// lookup finds the exact quality, else the longest known token the quality
// starts with.
func lookup[V any](table map[string]V, prefixes []string, quality string) (V, bool) {
	if v, ok := table[quality]; ok {
		return v, true
	}
	for _, k := range prefixes {
		if strings.HasPrefix(quality, k) {
			return table[k], true
		}
	}
	var zero V
	return zero, false
}

func Intervals(quality string) []int {
	if iv, ok := lookup(intervalTable, intervalPrefixes, quality); ok {
		return iv
	}
	return majorTriad
}

// PitchSet voices the chord upward from its root at the given octave. Unknown
// qualities fall back to a major triad.
func PitchSet(s Symbol, octave int) []Note {
	root := NewNote(s.PitchClass(), octave)
	iv := Intervals(s.Quality)
	res := make([]Note, 0, len(iv))
	for _, i := range iv {
		res = append(res, root+Note(i))
	}
	return res
}

// BassPitch is the root alone, quality ignored.
func BassPitch(s Symbol, octave int) Note {
	return NewNote(s.PitchClass(), octave)
}

// Notes parses raw and voices it; reserved markers and garbage yield nil.
func Notes(raw string, octave int) []Note {
	s, ok := Parse(raw)
	if !ok {
		return nil
	}
	return PitchSet(s, octave)
}
