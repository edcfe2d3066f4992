// Package band turns a tune into a four-piece accompaniment (piano, walking
// bass, swing drums and a click) and plays it on a transport.
package band

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jsphweid/chartband/model"
	"github.com/jsphweid/chartband/transport"
)

// Scheduler owns one transport and plays one tune on it at a time.
type Scheduler struct {
	mu        sync.Mutex
	transport transport.Transport
	voices    Voices
	observer  Observer
	// bumped by every Stop; callbacks from an older session do nothing
	session atomic.Uint64
}

func NewScheduler(tr transport.Transport, voices Voices, observer Observer) *Scheduler {
	if observer == nil {
		observer = ObserverFuncs{}
	}
	return &Scheduler{transport: tr, voices: voices, observer: observer}
}

// Play stops whatever is playing and starts tune from the top. A tune with no
// bars completes straight away.
func (s *Scheduler) Play(tune model.Tune, p Params) Timeline {
	tl := Build(tune, p)

	s.mu.Lock()
	s.stop()
	if tl.Empty() {
		s.mu.Unlock()
		s.observer.PlaybackComplete()
		return tl
	}

	for r, db := range p.Levels {
		if v := s.voices.Get(r); v != nil {
			v.SetLevel(db)
		}
	}
	sess := s.session.Load()
	for _, ev := range tl.Events {
		if fn := s.callback(sess, ev); fn != nil {
			s.transport.Schedule(ev.At, fn)
		}
	}
	if p.Loops <= 0 {
		s.transport.SetLoop(tl.Length)
	} else {
		s.transport.SetLoop(0)
	}
	s.transport.Start()
	s.mu.Unlock()
	return tl
}

// Stop silences playback. Nothing scheduled before the call fires after it
// returns, and it is safe to call from an observer callback.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop()
}

func (s *Scheduler) stop() {
	s.session.Add(1)
	s.transport.Stop()
}

// SetLevel changes a voice's level without restarting playback.
func (s *Scheduler) SetLevel(r Role, db float64) {
	if v := s.voices.Get(r); v != nil {
		v.SetLevel(db)
	}
}

// callback wraps ev for the transport. The session check and the work it
// guards happen under s.mu, so a Stop or Play that has returned retires every
// callback of the old session. Observer notifications run after the lock is
// released so that an observer may call Stop or Play.
func (s *Scheduler) callback(sess uint64, ev Event) transport.Callback {
	switch ev.Kind {
	case PositionEvent:
		return func(time.Duration) {
			s.mu.Lock()
			live := s.session.Load() == sess
			s.mu.Unlock()
			if live {
				s.observer.PositionChanged(ev.Position)
			}
		}
	case CompleteEvent:
		return func(time.Duration) {
			s.mu.Lock()
			if s.session.Load() != sess {
				s.mu.Unlock()
				return
			}
			s.stop()
			s.mu.Unlock()
			s.observer.PlaybackComplete()
		}
	}

	v := s.voices.Get(ev.Role)
	if v == nil {
		return nil
	}
	return func(at time.Duration) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.session.Load() == sess {
			v.TriggerAttackRelease(ev.Notes, ev.Duration, at)
		}
	}
}
