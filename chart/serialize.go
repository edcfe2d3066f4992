package chart

import (
	"strings"

	"github.com/jsphweid/chartband/model"
)

// Serialize writes a tune's sections back as chord data that Parse reads to
// the same structure. Repeat counts other than 2 are not expressible and are
// written as plain repeats.
func Serialize(t model.Tune) string {
	var parts []string
	for _, sec := range t.Sections {
		if len(sec.Bars) > 0 {
			parts = append(parts, serializeSection(sec))
		}
	}
	return strings.Join(parts, " ")
}

func serializeSection(sec model.Section) string {
	var b strings.Builder
	b.WriteString("*" + sectionLabel(sec.Label) + " ")

	for i, bar := range sec.Bars {
		isLast := i == len(sec.Bars)-1

		switch {
		case i == 0 && bar.RepeatStart:
			b.WriteString("{")
		case i == 0:
			b.WriteString("[")
		case sec.Bars[i-1].RepeatEnd > 0 && bar.RepeatStart:
			b.WriteString("{")
		case sec.Bars[i-1].RepeatEnd > 0:
			b.WriteString("[")
		case bar.RepeatStart:
			b.WriteString("|{")
		default:
			b.WriteString("|")
		}

		content := barContent(bar)
		b.WriteString(content)
		if bar.Lyrics != "" {
			b.WriteString("<" + bar.Lyrics + ">")
		}

		switch {
		case bar.RepeatEnd > 0 && content == "":
			// a bar line pushes the empty bar so the repeat lands on it
			b.WriteString("|}")
		case bar.RepeatEnd > 0:
			b.WriteString("}")
		case isLast:
			b.WriteString("]")
		}

		if !isLast {
			b.WriteString(" ")
		}
	}
	return b.String()
}

func barContent(bar model.Bar) string {
	var chords []string
	for _, c := range bar.Chords {
		if c = strings.TrimSpace(c); c != "" {
			chords = append(chords, c)
		}
	}
	return strings.Join(chords, " ")
}

// Labels are read back one character at a time.
func sectionLabel(label string) string {
	for _, r := range label {
		switch r {
		case ' ', '[', ']', '{', '}', '|', '*', '<', '>':
			continue
		}
		return string(r)
	}
	return "A"
}
