package model

// Reserved chord-symbol values.
const (
	Simile  = "%"
	NoChord = "N.C."
)

const DefaultTempo = 120

type Tune struct {
	ID           string    `json:"id,omitempty"`
	Title        string    `json:"title"`
	Composer     string    `json:"composer"`
	Style        string    `json:"style"`
	DefaultKey   string    `json:"default_key"`
	DefaultTempo int       `json:"default_tempo"`
	Sections     []Section `json:"sections"`
}

type Section struct {
	Label string `json:"label"`
	Bars  []Bar  `json:"bars"`
}

type Bar struct {
	Chords      []string `json:"chords"`
	RepeatStart bool     `json:"repeat_start,omitempty"`
	// RepeatEnd is the total number of times the enclosed region plays; 0 means no repeat.
	RepeatEnd int    `json:"repeat_end,omitempty"`
	Lyrics    string `json:"lyrics,omitempty"`
}

// Position addresses a bar in the tune as written, before repeats are unrolled.
type Position struct {
	Section int `json:"section_index"`
	Bar     int `json:"bar_index"`
}

// IsEmpty reports whether the bar carries no harmony of its own.
func (b Bar) IsEmpty() bool {
	for _, c := range b.Chords {
		if c != "" {
			return false
		}
	}
	return true
}

func (t Tune) NumBars() int {
	var n int
	for _, s := range t.Sections {
		n += len(s.Bars)
	}
	return n
}
