package chord

import "strings"

type MinorDisplay int

const (
	MinorMinus MinorDisplay = iota
	MinorM
)

type FormatSettings struct {
	Transpose    int
	MinorDisplay MinorDisplay
	GermanB      bool
}

type Formatted struct {
	Root        string
	Subscript   string
	Superscript string
	Bass        string
}

func transposeRoot(root string, semitones int) string {
	pc, ok := PitchClassOf(root)
	if !ok {
		return root
	}
	return noteNames[((pc+semitones)%12+12)%12]
}

// Transpose moves root and slash bass by semitones, respelling them with flats.
// The quality text is kept as written.
func (s Symbol) Transpose(semitones int) Symbol {
	if semitones%12 == 0 {
		return s
	}
	t := s
	t.Root = transposeRoot(s.Root, semitones)
	if s.Bass != "" {
		t.Bass = transposeRoot(s.Bass, semitones)
	}
	t.Raw = t.String()
	return t
}

// Transpose is a convenience for raw symbols; reserved markers and unparseable
// text come back unchanged.
func Transpose(raw string, semitones int) string {
	s, ok := Parse(raw)
	if !ok {
		return raw
	}
	return s.Transpose(semitones).Raw
}

func flatGlyph(s string) string {
	return strings.ReplaceAll(s, "b", "♭")
}

// Format splits a symbol into the pieces a chart shows: root, minor mark,
// raised extensions, and bass.
func Format(raw string, settings FormatSettings) Formatted {
	s, ok := Parse(raw)
	if !ok {
		return Formatted{Root: raw}
	}
	s = s.Transpose(settings.Transpose)

	f := Formatted{Root: flatGlyph(s.Root), Bass: flatGlyph(s.Bass)}
	if settings.GermanB {
		if f.Root == "B" {
			f.Root = "H"
		}
		if f.Bass == "B" {
			f.Bass = "H"
		}
	}

	suffix := s.Suffix
	minor := false
	switch {
	case strings.HasPrefix(suffix, "-"):
		minor, suffix = true, suffix[1:]
	case strings.HasPrefix(suffix, "m") && !strings.HasPrefix(suffix, "maj"):
		minor, suffix = true, suffix[1:]
	}
	if minor {
		if settings.MinorDisplay == MinorM {
			f.Subscript = "m"
		} else {
			f.Subscript = "-"
		}
	}
	suffix = strings.ReplaceAll(suffix, "maj", "△")
	suffix = strings.ReplaceAll(suffix, "^", "△")
	f.Superscript = flatGlyph(suffix)
	return f
}

func (f Formatted) String() string {
	res := f.Root + f.Subscript + f.Superscript
	if f.Bass != "" {
		res += "/" + f.Bass
	}
	return res
}
