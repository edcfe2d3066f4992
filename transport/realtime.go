package transport

import (
	"sync"
	"time"
)

// Realtime fires callbacks against the wall clock from a single goroutine.
//
// Stop takes effect at the point a callback is taken off the timeline: once
// Stop returns no further callback is started, though one already started on
// the transport goroutine runs to completion.
type Realtime struct {
	mu      sync.Mutex
	tl      timeline
	running bool
	gen     uint64
	started time.Time
	done    chan struct{}
	wake    chan struct{}
}

func NewRealtime() *Realtime {
	return &Realtime{wake: make(chan struct{}, 1)}
}

func (r *Realtime) poke() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *Realtime) Schedule(at time.Duration, fn Callback) {
	r.mu.Lock()
	r.tl.add(at, fn)
	r.mu.Unlock()
	r.poke()
}

func (r *Realtime) SetLoop(end time.Duration) {
	r.mu.Lock()
	r.tl.loopEnd = end
	r.mu.Unlock()
	r.poke()
}

func (r *Realtime) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	r.started = time.Now()
	r.tl.rewind()
	r.done = make(chan struct{})
	go r.run(r.gen, r.done)
}

func (r *Realtime) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		close(r.done)
	}
	r.running = false
	r.gen++
	r.tl.clear()
}

func (r *Realtime) Now() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return 0
	}
	return time.Since(r.started)
}

func (r *Realtime) run(gen uint64, done <-chan struct{}) {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		r.mu.Lock()
		if r.gen != gen {
			r.mu.Unlock()
			return
		}
		ev, at, ok := r.tl.peek()
		if !ok {
			r.mu.Unlock()
			select {
			case <-done:
				return
			case <-r.wake:
			}
			continue
		}

		if wait := time.Until(r.started.Add(at)); wait > 0 {
			r.mu.Unlock()
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(wait)
			select {
			case <-done:
				return
			case <-r.wake:
			case <-timer.C:
			}
			continue
		}

		r.tl.pop()
		r.mu.Unlock()
		ev.fn(at)
	}
}
