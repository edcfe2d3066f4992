package chord

import "github.com/jsphweid/chartband/model"

type family int

const (
	otherFamily family = iota
	minorFamily
	dominantFamily
	majorFamily
)

func classify(quality string) family {
	switch quality {
	case "m7", "m", "m9", "m11", "m7b5":
		return minorFamily
	case "", "maj", "maj7", "6", "maj9", "69":
		return majorFamily
	case "9", "13":
		return dominantFamily
	}
	if len(quality) > 0 && quality[0] == '7' {
		return dominantFamily
	}
	return otherFamily
}

// interval in semitones going up from one root to the next
func interval(from, to Symbol) int {
	return (to.PitchClass() - from.PitchClass() + 12) % 12
}

const fourth = 5

// Detect251 looks for a ii-V-I at the head of chords, which must already be
// free of simile and no-chord markers. A full ii-V-I wins over V-I, which wins
// over an unresolved ii-V whose key is implied a fourth above the V.
func Detect251(chords []Symbol) (model.Cadence, bool) {
	if len(chords) < 2 {
		return model.Cadence{}, false
	}

	if len(chords) >= 3 {
		ii, v, i := chords[0], chords[1], chords[2]
		if classify(ii.Quality) == minorFamily && classify(v.Quality) == dominantFamily &&
			classify(i.Quality) == majorFamily &&
			interval(ii, v) == fourth && interval(v, i) == fourth {
			return model.Cadence{Key: i.Root, Chords: []string{ii.Raw, v.Raw, i.Raw}}, true
		}
	}

	a, b := chords[0], chords[1]
	if interval(a, b) != fourth {
		return model.Cadence{}, false
	}
	if classify(a.Quality) == dominantFamily && classify(b.Quality) == majorFamily {
		return model.Cadence{Key: b.Root, Chords: []string{a.Raw, b.Raw}}, true
	}
	if classify(a.Quality) == minorFamily && classify(b.Quality) == dominantFamily {
		key := noteNames[(b.PitchClass()+fourth)%12]
		return model.Cadence{Key: key, Chords: []string{a.Raw, b.Raw}, Implied: true}, true
	}
	return model.Cadence{}, false
}
