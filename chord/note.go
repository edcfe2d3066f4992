package chord

import "fmt"

// Note is a MIDI note number. Middle C (C4) is 60.
type Note int

var noteNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

var rootPitchClass = map[string]int{
	"C": 0, "C#": 1, "Db": 1, "D": 2, "D#": 3, "Eb": 3, "E": 4, "Fb": 4, "E#": 5,
	"F": 5, "F#": 6, "Gb": 6, "G": 7, "G#": 8, "Ab": 8, "A": 9, "A#": 10, "Bb": 10,
	"B": 11, "Cb": 11, "B#": 0,
}

func NewNote(pitchClass, octave int) Note {
	return Note((octave+1)*12 + pitchClass)
}

func (n Note) PitchClass() int {
	return (int(n)%12 + 12) % 12
}

func (n Note) Octave() int {
	return (int(n)-n.PitchClass())/12 - 1
}

// Name is the flat-biased pitch name without an octave, e.g. "Eb".
func (n Note) Name() string {
	return noteNames[n.PitchClass()]
}

func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Name(), n.Octave())
}

// PitchClassOf returns the pitch class of a root spelling such as "F#" or "Bb".
func PitchClassOf(root string) (int, bool) {
	pc, ok := rootPitchClass[root]
	return pc, ok
}

// Names strips the octave from every note.
func Names(notes []Note) []string {
	res := make([]string, 0, len(notes))
	for _, n := range notes {
		res = append(res, n.Name())
	}
	return res
}
