// Package transport keeps the shared clock that playback events are scheduled
// against. Callbacks fire one at a time in time order; callbacks registered for
// the same instant fire in registration order, but callers must not rely on it.
package transport

import (
	"sort"
	"time"
)

type Callback func(at time.Duration)

type Transport interface {
	// Schedule registers fn at a position on the timeline. Positions are
	// relative to Start; when looping they repeat every loop length.
	Schedule(at time.Duration, fn Callback)
	// SetLoop makes the timeline repeat [0, end). Zero disables looping.
	SetLoop(end time.Duration)
	Start()
	// Stop halts the clock and drops every scheduled callback. It is
	// idempotent and may be called from inside a callback.
	Stop()
	// Now is the time elapsed since Start, across loop iterations.
	Now() time.Duration
}

type event struct {
	at  time.Duration
	seq uint64
	fn  Callback
}

// timeline is the sorted event list shared by both transports. Events stay
// on it after firing so that a loop can play them again.
type timeline struct {
	events  []event
	seq     uint64
	cursor  int
	base    time.Duration
	loopEnd time.Duration
}

func (tl *timeline) add(at time.Duration, fn Callback) {
	tl.seq++
	ev := event{at: at, seq: tl.seq, fn: fn}
	i := sort.Search(len(tl.events), func(i int) bool { return tl.events[i].at > at })
	tl.events = append(tl.events, event{})
	copy(tl.events[i+1:], tl.events[i:])
	tl.events[i] = ev
	if i < tl.cursor {
		tl.cursor++
	}
}

// peek returns the next event to fire and its absolute time, wrapping to the
// next loop iteration when the current one is used up.
func (tl *timeline) peek() (event, time.Duration, bool) {
	for {
		if tl.cursor < len(tl.events) {
			ev := tl.events[tl.cursor]
			if tl.loopEnd <= 0 || ev.at < tl.loopEnd {
				return ev, tl.base + ev.at, true
			}
		}
		if tl.loopEnd <= 0 || len(tl.events) == 0 || tl.events[0].at >= tl.loopEnd {
			return event{}, 0, false
		}
		tl.base += tl.loopEnd
		tl.cursor = 0
	}
}

func (tl *timeline) pop() {
	tl.cursor++
}

func (tl *timeline) rewind() {
	tl.cursor = 0
	tl.base = 0
}

func (tl *timeline) clear() {
	*tl = timeline{seq: tl.seq}
}

func (tl *timeline) len() int {
	return len(tl.events)
}
