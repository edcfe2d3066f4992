package chord

import "sort"

// qualities tried by Identify, simplest first
var identifyOrder = []string{
	"", "m", "7", "maj7", "m7", "6", "m6", "m7b5", "dim", "dim7", "aug",
	"sus4", "sus2", "mmaj7", "9", "m9", "maj9", "7b9", "13",
}

func pitchClassMask(intervals []int, root int) uint16 {
	var mask uint16
	for _, iv := range intervals {
		mask |= 1 << ((root + iv) % 12)
	}
	return mask
}

// Identify names the chord formed by notes, the inverse of PitchSet. The
// lowest note is preferred as the root; when the chord is only recognized
// over another root the lowest note becomes a slash bass.
func Identify(notes []Note) (Symbol, bool) {
	if len(notes) < 2 {
		return Symbol{}, false
	}
	sorted := append([]Note(nil), notes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var held uint16
	for _, n := range sorted {
		held |= 1 << n.PitchClass()
	}
	bass := sorted[0].PitchClass()

	roots := []int{bass}
	for _, n := range sorted[1:] {
		if pc := n.PitchClass(); !containsInt(roots, pc) {
			roots = append(roots, pc)
		}
	}

	for _, root := range roots {
		for _, q := range identifyOrder {
			if pitchClassMask(intervalTable[q], root) != held {
				continue
			}
			raw := noteNames[root] + q
			if root != bass {
				raw += "/" + noteNames[bass]
			}
			return Parse(raw)
		}
	}
	return Symbol{}, false
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
