package chart

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jsphweid/chartband/model"
)

// Charts in the obfuscated encoding start with this marker. They are not
// decoded; parsing yields no sections.
const obfuscatedPrefix = "1r34LbKcu7"

var (
	timeSignatureRe = regexp.MustCompile(`T\d{2}`)
	structural      = strings.NewReplacer("[", "", "]", "", "{", "", "}", "", "|", "")
)

// Section lengths that usually carry one bar of trailing layout padding.
var paddedLengths = map[int]bool{5: true, 9: true, 13: true, 17: true}

type state int

const (
	stateDefault state = iota
	stateLyric
	stateLabel
)

type parser struct {
	state       state
	sections    []model.Section
	section     model.Section
	chords      []string
	buffer      string
	lyrics      string
	repeatStart bool
}

// Parse reads chord data, or a full irealbook:// link, into a Tune. It never
// fails: text it cannot use yields a tune with no sections.
func Parse(text string) model.Tune {
	if strings.HasPrefix(strings.TrimSpace(text), uriScheme) {
		tune, err := ParseURI(strings.TrimSpace(text))
		if err == nil {
			return tune
		}
		return model.Tune{DefaultTempo: model.DefaultTempo}
	}
	return model.Tune{DefaultTempo: model.DefaultTempo, Sections: ParseSections(text)}
}

// ParseSections scans the chord data of a chart.
func ParseSections(data string) []model.Section {
	clean := strings.TrimSpace(data)
	if strings.HasPrefix(clean, obfuscatedPrefix) {
		return nil
	}
	clean = timeSignatureRe.ReplaceAllString(clean, "")

	p := parser{section: model.Section{Label: "A"}}
	runes := []rune(clean)
	for i := 0; i < len(runes); i++ {
		i = p.step(runes, i)
	}
	p.finish()

	return dropLayoutPadding(p.sections)
}

// step consumes runes[i] and returns the index of the last rune it used.
func (p *parser) step(runes []rune, i int) int {
	c := runes[i]

	if p.state == stateLyric {
		if c == '>' {
			p.state = stateDefault
		} else {
			p.lyrics += string(c)
		}
		return i
	}

	if c == '<' {
		p.state = stateLyric
		p.flush()
		if p.lyrics != "" && !strings.HasSuffix(p.lyrics, " ") {
			p.lyrics += " "
		}
		return i
	}

	if p.state == stateLabel {
		switch c {
		case '[', ']', '{', '}':
			return i
		case ' ':
		default:
			p.state = stateDefault
			p.startSection(string(c))
			return i
		}
	}

	switch c {
	case '*':
		p.state = stateLabel
		if isStrayLabel(strings.TrimSpace(p.buffer), nextLabel(runes, i+1)) {
			p.buffer = ""
		} else {
			p.flush()
		}
	case '|', ']':
		p.flush()
		p.pushBar(true)
	case '[':
		p.flush()
		p.pushBar(false)
	case '{':
		p.flush()
		p.pushBar(false)
		p.repeatStart = true
	case '}':
		p.flush()
		p.closeRepeat()
	case ' ':
		p.flush()
		return p.whitespace(runes, i)
	default:
		p.buffer += string(c)
	}
	return i
}

// whitespace handles a run of spaces starting at i. Wide gaps in the layout
// stand for empty bars, roughly one per two spaces.
func (p *parser) whitespace(runes []rune, i int) int {
	run := 1
	for i+1 < len(runes) && runes[i+1] == ' ' {
		run++
		i++
	}
	if run < 2 {
		return i
	}

	if len(p.chords) > 0 {
		p.pushBar(true)
	}
	empty := run / 2
	// the closing token that follows ends one of these bars itself
	if i+1 < len(runes) && isBarCloser(runes[i+1]) && empty > 0 {
		empty--
	}
	for ; empty > 0; empty-- {
		p.pushBar(true)
	}
	return i
}

func (p *parser) flush() {
	raw := strings.TrimSpace(p.buffer)
	p.buffer = ""
	if raw == "" {
		return
	}
	if sym := cleanSymbol(raw); sym != "" {
		p.chords = append(p.chords, sym)
	}
}

// pushBar closes the current bar. Without pending chords a bar is only pushed
// when explicit, as for a bar line.
func (p *parser) pushBar(explicit bool) bool {
	if len(p.chords) == 0 && !explicit {
		return false
	}

	bar := model.Bar{Chords: append([]string{}, p.chords...)}
	p.chords = p.chords[:0]
	if p.repeatStart {
		bar.RepeatStart = true
		p.repeatStart = false
	}
	if p.lyrics != "" {
		bar.Lyrics = strings.TrimSpace(p.lyrics)
		p.lyrics = ""
	}
	p.section.Bars = append(p.section.Bars, bar)
	return true
}

// closeRepeat ends a repeat region. With no new chords to close, the count
// goes on the last bar already pushed.
func (p *parser) closeRepeat() {
	if !p.pushBar(false) && len(p.section.Bars) == 0 {
		return
	}
	p.section.Bars[len(p.section.Bars)-1].RepeatEnd = 2
}

func (p *parser) startSection(label string) {
	p.pushBar(false)
	if len(p.section.Bars) > 0 {
		p.sections = append(p.sections, p.section)
	}
	p.section = model.Section{Label: label}
}

func (p *parser) finish() {
	p.flush()
	p.pushBar(false)
	if len(p.section.Bars) > 0 {
		p.sections = append(p.sections, p.section)
	}
}

func cleanSymbol(raw string) string {
	switch raw {
	case "n":
		return model.NoChord
	case "x", "r", "l":
		return ""
	}
	return structural.Replace(raw)
}

func isBarCloser(c rune) bool {
	return c == '|' || c == '}' || c == ']'
}

// nextLabel peeks at the label that follows a section marker.
func nextLabel(runes []rune, from int) string {
	for _, c := range runes[from:] {
		switch c {
		case ' ', '[', ']', '{', '}':
			continue
		}
		return string(c)
	}
	return ""
}

// The layout often repeats a section label just before its marker, as in
// "[B*B". That letter is not a chord.
func isStrayLabel(buffered, label string) bool {
	r := []rune(buffered)
	return len(r) == 1 && unicode.IsUpper(r[0]) && buffered == label
}

func dropLayoutPadding(sections []model.Section) []model.Section {
	var res []model.Section
	for _, sec := range sections {
		n := len(sec.Bars)
		if n == 0 {
			continue
		}
		if paddedLengths[n] && sec.Bars[n-1].IsEmpty() {
			sec.Bars = sec.Bars[:n-1]
		}
		res = append(res, sec)
	}
	return res
}
