package chord

import (
	"regexp"
	"strings"

	"github.com/jsphweid/chartband/model"
)

// Symbol is a chord symbol parsed once into its parts.
type Symbol struct {
	Raw string
	// Root is the root spelling as written: a letter plus optional # or b.
	Root string
	// Suffix is the quality text as written, Quality its canonical token.
	Suffix  string
	Quality string
	Bass    string
}

var (
	rootRe = regexp.MustCompile(`^([A-G][#b]?)(.*)$`)
	bassRe = regexp.MustCompile(`^[A-G][#b]?$`)

	glyphs = strings.NewReplacer(
		"^", "maj",
		"△", "maj",
		"Δ", "maj",
		"♭", "b",
		"♯", "#",
		"(", "",
		")", "",
	)
)

// Parse splits a chord symbol into root, quality and slash bass. The reserved
// simile and no-chord markers, and anything without a recognizable root, are
// rejected; callers ignore such tokens for harmony.
func Parse(raw string) (Symbol, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || s == model.Simile || s == model.NoChord {
		return Symbol{}, false
	}

	var bass string
	if i := strings.LastIndex(s, "/"); i > 0 && bassRe.MatchString(s[i+1:]) {
		bass = s[i+1:]
		s = s[:i]
	}

	m := rootRe.FindStringSubmatch(s)
	if m == nil {
		return Symbol{}, false
	}
	return Symbol{
		Raw:     strings.TrimSpace(raw),
		Root:    m[1],
		Suffix:  m[2],
		Quality: NormalizeQuality(m[2]),
		Bass:    bass,
	}, true
}

// ParseAll parses every symbol it can and drops the rest.
func ParseAll(raws []string) []Symbol {
	var res []Symbol
	for _, r := range raws {
		if sym, ok := Parse(r); ok {
			res = append(res, sym)
		}
	}
	return res
}

// NormalizeQuality maps the many spellings of a chord quality onto one
// lowercase token: "^7" and "Δ7" become "maj7", "-7" becomes "m7", "ø" becomes
// "m7b5", "o7" becomes "dim7".
func NormalizeQuality(q string) string {
	q = glyphs.Replace(strings.TrimSpace(q))

	// a bare capital M is major; "Maj" and "Min" are spelled out
	if strings.HasPrefix(q, "M") && !strings.HasPrefix(q, "Ma") && !strings.HasPrefix(q, "Mi") {
		q = "maj" + q[1:]
	}
	q = strings.ToLower(q)

	switch {
	case strings.HasPrefix(q, "-"):
		q = "m" + q[1:]
	case strings.HasPrefix(q, "min"):
		q = "m" + q[3:]
	case strings.HasPrefix(q, "mi"):
		q = "m" + q[2:]
	case q == "ø" || q == "ø7" || q == "h" || q == "h7":
		q = "m7b5"
	case strings.HasPrefix(q, "o"):
		q = "dim" + q[1:]
	case strings.HasPrefix(q, "°"):
		q = "dim" + strings.TrimPrefix(q, "°")
	case strings.HasPrefix(q, "+"):
		q = "aug" + q[1:]
	}
	return q
}

// Pitch class of the root; parsed symbols always have a known root.
func (s Symbol) PitchClass() int {
	pc, _ := PitchClassOf(s.Root)
	return pc
}

func (s Symbol) String() string {
	if s.Bass != "" {
		return s.Root + s.Suffix + "/" + s.Bass
	}
	return s.Root + s.Suffix
}
