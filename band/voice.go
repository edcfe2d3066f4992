package band

import (
	"time"

	"github.com/jsphweid/chartband/chord"
	"github.com/jsphweid/chartband/model"
)

type Role int

const (
	Piano Role = iota
	Bass
	Drums
	Click
)

var Roles = []Role{Piano, Bass, Drums, Click}

func (r Role) String() string {
	switch r {
	case Piano:
		return "piano"
	case Bass:
		return "bass"
	case Drums:
		return "drums"
	case Click:
		return "click"
	}
	return "unknown"
}

// ParseRole is the inverse of Role.String.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if r.String() == s {
			return r, true
		}
	}
	return 0, false
}

// Voice is whatever makes the sound for one role. at is measured on the
// transport clock, so a voice may be asked to play slightly ahead of time.
// Voices are called with the scheduler locked and must not call back into it.
type Voice interface {
	TriggerAttackRelease(notes []chord.Note, dur, at time.Duration)
	// SetLevel sets the output level in decibels, 0 being unity.
	SetLevel(db float64)
}

// Voices holds one Voice per role. A nil voice is silent.
type Voices struct {
	Piano Voice
	Bass  Voice
	Drums Voice
	Click Voice
}

func (v Voices) Get(r Role) Voice {
	switch r {
	case Piano:
		return v.Piano
	case Bass:
		return v.Bass
	case Drums:
		return v.Drums
	case Click:
		return v.Click
	}
	return nil
}

// Observer is told which written bar is sounding and when a finite
// playback has finished. Calls must not block.
type Observer interface {
	PositionChanged(pos model.Position)
	PlaybackComplete()
}

// ObserverFuncs adapts plain functions to Observer; either may be nil.
type ObserverFuncs struct {
	OnPosition func(pos model.Position)
	OnComplete func()
}

func (o ObserverFuncs) PositionChanged(pos model.Position) {
	if o.OnPosition != nil {
		o.OnPosition(pos)
	}
}

func (o ObserverFuncs) PlaybackComplete() {
	if o.OnComplete != nil {
		o.OnComplete()
	}
}
