package chord

var scaleTable = map[string][]string{
	"":     {"Ionian", "Lydian"},
	"maj":  {"Ionian", "Lydian"},
	"maj7": {"Ionian", "Lydian"},
	"6":    {"Ionian", "Lydian"},
	"m":    {"Dorian", "Minor"},
	"m7":   {"Dorian", "Aeolian"},
	"m6":   {"Dorian", "Melodic Minor"},
	"7":    {"Mixolydian", "Lydian b7", "Altered", "H-W Diminished"},
	"7b9":  {"Altered", "H-W Diminished"},
	"7b13": {"Altered", "Whole Tone"},
	"m7b5": {"Locrian", "Locrian #2"},
	"dim":  {"W-H Diminished"},
	"dim7": {"W-H Diminished"},
}

var scalePrefixes = prefixesLongestFirst(scaleTable)

// SuggestedScales lists scales to improvise over s, best first, each labelled
// with the root ("Bb Mixolydian").
func SuggestedScales(s Symbol) []string {
	names, ok := lookup(scaleTable, scalePrefixes, s.Quality)
	if !ok {
		names = []string{"Ionian"}
	}
	res := make([]string, 0, len(names))
	for _, n := range names {
		res = append(res, s.Root+" "+n)
	}
	return res
}
