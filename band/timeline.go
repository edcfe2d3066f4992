package band

import (
	"sort"
	"time"

	"github.com/jsphweid/chartband/chord"
	"github.com/jsphweid/chartband/constants"
	"github.com/jsphweid/chartband/model"
	"github.com/jsphweid/chartband/util"
)

// Everything is in 4/4.
const (
	TicksPerBeat = constants.PPQ
	BeatsPerBar  = 4
	TicksPerBar  = TicksPerBeat * BeatsPerBar

	eighth     = TicksPerBeat / 2
	thirtySec  = TicksPerBeat / 8
	swingDelay = eighth * 2 / 3
)

// General MIDI percussion keys.
const (
	KickNote  chord.Note = 36
	HiHatNote chord.Note = 44
	RideNote  chord.Note = 51

	ClickAccent chord.Note = 84
	ClickNote   chord.Note = 72
)

// comping rhythm for a bar holding a single chord: the downbeat, the "and"
// of two and the "and" of four
var compTicks = []int64{0, TicksPerBeat + eighth, 3*TicksPerBeat + eighth}

// Params is the snapshot of transport settings a playback is built from.
type Params struct {
	// Tempo in quarter notes per minute. Zero uses the tune's default.
	Tempo float64
	// Transpose moves every chord by this many semitones.
	Transpose int
	// Loops is how many times the tune plays; zero loops until stopped.
	Loops int
	// Levels in decibels per role. Missing roles are left alone.
	Levels map[Role]float64
	// Mute drops a role from the timeline altogether, e.g. the click.
	Mute map[Role]bool
}

func (p Params) clone() Params {
	c := p
	c.Levels = make(map[Role]float64, len(p.Levels))
	for r, db := range p.Levels {
		c.Levels[r] = db
	}
	c.Mute = make(map[Role]bool, len(p.Mute))
	for r, m := range p.Mute {
		c.Mute[r] = m
	}
	return c
}

func (p Params) tempo(t model.Tune) float64 {
	if p.Tempo > 0 {
		return p.Tempo
	}
	if t.DefaultTempo > 0 {
		return float64(t.DefaultTempo)
	}
	return model.DefaultTempo
}

type EventKind int

const (
	NoteEvent EventKind = iota
	PositionEvent
	CompleteEvent
)

type Event struct {
	Kind EventKind
	Tick int64
	At   time.Duration

	// note events
	Role     Role
	Notes    []chord.Note
	Len      int64
	Duration time.Duration

	// position events
	Position model.Position
}

// Timeline is a playback laid out on absolute time, ordered by Tick.
type Timeline struct {
	Events []Event
	Tempo  float64
	// Bars in one pass through the unrolled tune.
	Bars   int
	Passes int
	// Length of one pass.
	Length time.Duration
	// End is when the last pass finishes.
	End time.Duration
}

func (tl Timeline) Empty() bool {
	return tl.Bars == 0
}

func ticksToDuration(ticks int64, tempo float64) time.Duration {
	return time.Duration(float64(ticks) * float64(time.Minute) / (tempo * TicksPerBeat))
}

// Build lays out every voice for the whole playback. With Loops at zero it
// covers a single pass and the caller is expected to loop it.
func Build(t model.Tune, p Params) Timeline {
	flat := Unroll(t)
	tl := Timeline{Tempo: p.tempo(t), Bars: len(flat)}
	if len(flat) == 0 {
		return tl
	}

	tl.Passes = p.Loops
	if tl.Passes <= 0 {
		tl.Passes = 1
	}

	g := generator{transpose: p.Transpose, mute: p.Mute, cursor: []Slot{tonic(t)}}
	for pass := 0; pass < tl.Passes; pass++ {
		for i, fb := range flat {
			start := int64(pass*len(flat)+i) * TicksPerBar
			g.bar(start, fb)
		}
	}
	end := int64(tl.Passes*len(flat)) * TicksPerBar
	if p.Loops > 0 {
		g.events = append(g.events, Event{Kind: CompleteEvent, Tick: end})
	}

	sort.SliceStable(g.events, func(i, j int) bool { return g.events[i].Tick < g.events[j].Tick })
	for i := range g.events {
		ev := &g.events[i]
		ev.At = ticksToDuration(ev.Tick, tl.Tempo)
		ev.Duration = ticksToDuration(ev.Len, tl.Tempo)
	}
	tl.Events = g.events
	tl.Length = ticksToDuration(int64(len(flat))*TicksPerBar, tl.Tempo)
	tl.End = ticksToDuration(end, tl.Tempo)
	return tl
}

// tonic is what a leading simile or empty bar plays: a major triad on the
// tune's key, or on C when the key can't be read.
func tonic(t model.Tune) Slot {
	if sym, ok := chord.Parse(t.DefaultKey); ok {
		return newSlot(sym.Root)
	}
	return newSlot("C")
}

type generator struct {
	transpose int
	mute      map[Role]bool
	// last chords that actually sounded; simile and empty bars replay them
	cursor []Slot
	events []Event
}

// resolve replaces simile marks with the chord before them. A bar that is
// nothing but simile marks, or empty, plays the previous bar again.
func (g *generator) resolve(slots []Slot) []Slot {
	allSimile := true
	for _, s := range slots {
		if !s.isSimile() {
			allSimile = false
			break
		}
	}
	if allSimile {
		return g.cursor
	}

	res := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if s.isSimile() {
			if len(res) > 0 {
				s = res[len(res)-1]
			} else {
				s = g.cursor[len(g.cursor)-1]
			}
		}
		res = append(res, s)
	}
	g.cursor = res
	return res
}

func (g *generator) note(role Role, tick, dur int64, notes ...chord.Note) {
	if g.mute[role] {
		return
	}
	g.events = append(g.events, Event{Kind: NoteEvent, Role: role, Tick: tick, Notes: notes, Len: dur})
}

func (g *generator) bar(start int64, fb FlatBar) {
	g.events = append(g.events, Event{Kind: PositionEvent, Tick: start, Position: fb.Position})

	slots := g.resolve(fb.Slots)
	slice := int64(TicksPerBar / len(slots))
	for i, s := range slots {
		if !s.OK {
			continue
		}
		sym := s.Symbol.Transpose(g.transpose)
		from := start + int64(i)*slice
		g.piano(from, slice, len(slots) == 1, chord.PitchSet(sym, chord.DefaultOctave))
		g.walk(from, slice, sym)
	}
	g.drums(start)
	g.click(start)
}

func (g *generator) piano(from, slice int64, comp bool, notes []chord.Note) {
	if !comp {
		g.note(Piano, from, slice, notes...)
		return
	}
	for _, off := range compTicks {
		g.note(Piano, from+off, util.Min(TicksPerBeat, slice-off), notes...)
	}
}

// walk fills the slice with quarter notes, stepping through the chord tones
// from the root up.
func (g *generator) walk(from, slice int64, sym chord.Symbol) {
	tones := chord.PitchSet(sym, chord.BassOctave)
	for i, off := 0, int64(0); off < slice; i, off = i+1, off+TicksPerBeat {
		dur := util.Min(TicksPerBeat, slice-off)
		g.note(Bass, from+off, dur, tones[i%len(tones)])
	}
}

func (g *generator) drums(start int64) {
	for beat := int64(0); beat < BeatsPerBar; beat++ {
		at := start + beat*TicksPerBeat
		g.note(Drums, at, thirtySec, KickNote)
		g.note(Drums, at, thirtySec, RideNote)
		if beat%2 == 1 {
			g.note(Drums, at+swingDelay, thirtySec, RideNote)
			g.note(Drums, at, thirtySec, HiHatNote)
		}
	}
}

func (g *generator) click(start int64) {
	for beat := int64(0); beat < BeatsPerBar; beat++ {
		n := ClickNote
		if beat == 0 {
			n = ClickAccent
		}
		g.note(Click, start+beat*TicksPerBeat, thirtySec, n)
	}
}
