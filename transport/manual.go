package transport

import (
	"sync"
	"time"
)

// Manual is a transport on a virtual clock that only moves when Advance is
// called. Offline rendering and tests drive playback with it.
type Manual struct {
	mu      sync.Mutex
	tl      timeline
	now     time.Duration
	running bool
	gen     uint64
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Schedule(at time.Duration, fn Callback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tl.add(at, fn)
}

func (m *Manual) SetLoop(end time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tl.loopEnd = end
}

func (m *Manual) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.running = true
	m.now = 0
	m.tl.rewind()
}

func (m *Manual) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
	m.gen++
	m.tl.clear()
}

func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Pending is the number of callbacks on the timeline.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tl.len()
}

// Advance moves the clock forward by d, firing every callback that falls due
// on the way. It returns early if a callback stops the transport.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	target := m.now + d
	for m.running {
		ev, at, ok := m.tl.peek()
		if !ok || at > target {
			break
		}
		m.tl.pop()
		m.now = at
		gen := m.gen

		m.mu.Unlock()
		ev.fn(at)
		m.mu.Lock()

		if m.gen != gen {
			return
		}
	}
	if m.running {
		m.now = target
	}
}
