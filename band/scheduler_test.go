package band

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jsphweid/chartband/chord"
	"github.com/jsphweid/chartband/model"
	"github.com/jsphweid/chartband/transport"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu        sync.Mutex
	positions []model.Position
	completes int
}

func (r *recorder) PositionChanged(pos model.Position) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.positions = append(r.positions, pos)
}

func (r *recorder) PlaybackComplete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completes++
}

func newVoices() (Voices, map[Role]*fakeVoice) {
	fakes := map[Role]*fakeVoice{}
	for _, r := range Roles {
		fakes[r] = &fakeVoice{}
	}
	return Voices{Piano: fakes[Piano], Bass: fakes[Bass], Drums: fakes[Drums], Click: fakes[Click]}, fakes
}

func twoBars() model.Tune {
	return tuneOf("C", section("A", bar("C"), bar("F")))
}

func TestSchedulerCompletesAfterFinalPass(t *testing.T) {
	assert := assert.New(t)
	tr := transport.NewManual()
	voices, fakes := newVoices()
	obs := &recorder{}
	s := NewScheduler(tr, voices, obs)

	tl := s.Play(twoBars(), Params{Loops: 2})
	assert.Equal(8*time.Second, tl.End)

	tr.Advance(tl.End - time.Millisecond)
	assert.Equal(0, obs.completes)

	tr.Advance(time.Millisecond)
	assert.Equal(1, obs.completes)
	assert.Equal([]model.Position{{Bar: 0}, {Bar: 1}, {Bar: 0}, {Bar: 1}}, obs.positions)
	assert.False(tr.Running())

	tr.Advance(time.Minute)
	assert.Equal(1, obs.completes)
	assert.Len(fakes[Click].Hits(), 16)
	assert.Len(fakes[Piano].Hits(), 12)
}

func TestSchedulerLoopsUntilStopped(t *testing.T) {
	assert := assert.New(t)
	tr := transport.NewManual()
	voices, fakes := newVoices()
	obs := &recorder{}
	s := NewScheduler(tr, voices, obs)

	s.Play(twoBars(), Params{})
	tr.Advance(10 * time.Second)
	assert.Equal([]model.Position{{Bar: 0}, {Bar: 1}, {Bar: 0}, {Bar: 1}, {Bar: 0}, {Bar: 1}}, obs.positions)
	assert.Equal(0, obs.completes)

	hits := fakes[Piano].Hits()
	assert.Equal(10*time.Second, hits[len(hits)-1].at)
	assert.Equal([]chord.Note{53, 57, 60}, hits[len(hits)-1].notes)

	s.Stop()
	tr.Advance(time.Minute)
	assert.Len(obs.positions, 6)
	assert.Equal(0, obs.completes)
}

func TestSchedulerStopInsideCallback(t *testing.T) {
	assert := assert.New(t)
	tr := transport.NewManual()
	voices, fakes := newVoices()

	var s *Scheduler
	var positions []model.Position
	s = NewScheduler(tr, voices, ObserverFuncs{OnPosition: func(pos model.Position) {
		positions = append(positions, pos)
		if pos.Bar == 1 {
			s.Stop()
		}
	}})

	s.Play(twoBars(), Params{Loops: 1})
	tr.Advance(time.Minute)

	assert.Equal([]model.Position{{Bar: 0}, {Bar: 1}}, positions)
	drums := fakes[Drums].Hits()
	assert.Len(drums, 12)
	for _, h := range drums {
		assert.Less(h.at, 2*time.Second)
	}
	s.Stop()
}

func TestSchedulerPlayReplacesPrevious(t *testing.T) {
	assert := assert.New(t)
	tr := transport.NewManual()
	voices, fakes := newVoices()
	s := NewScheduler(tr, voices, nil)

	s.Play(tuneOf("C", section("A", bar("C"))), Params{})
	tr.Advance(time.Second)
	s.Play(tuneOf("C", section("A", bar("F#"))), Params{Loops: 1})
	tr.Advance(time.Minute)

	hits := fakes[Piano].Hits()
	assert.Len(hits, 5)
	assert.Equal([]chord.Note{48, 52, 55}, hits[0].notes)
	assert.Equal([]chord.Note{48, 52, 55}, hits[1].notes)
	for _, h := range hits[2:] {
		assert.Equal([]chord.Note{54, 58, 61}, h.notes)
	}
}

func TestSchedulerEmptyTuneCompletesImmediately(t *testing.T) {
	assert := assert.New(t)
	tr := transport.NewManual()
	obs := &recorder{}
	s := NewScheduler(tr, Voices{}, obs)

	tl := s.Play(tuneOf("C", section("A")), Params{})
	assert.True(tl.Empty())
	assert.Equal(1, obs.completes)
	assert.False(tr.Running())
	assert.Equal(0, tr.Pending())
}

func TestSchedulerSkipsMissingVoices(t *testing.T) {
	assert := assert.New(t)
	tr := transport.NewManual()
	drums := &fakeVoice{}
	s := NewScheduler(tr, Voices{Drums: drums}, nil)

	s.Play(tuneOf("C", section("A", bar("C"))), Params{Loops: 1})
	assert.Equal(1+12+1, tr.Pending())

	tr.Advance(time.Minute)
	assert.Len(drums.Hits(), 12)
}

func TestSchedulerLevels(t *testing.T) {
	assert := assert.New(t)
	voices, fakes := newVoices()
	s := NewScheduler(transport.NewManual(), voices, nil)

	s.Play(twoBars(), Params{Levels: map[Role]float64{Bass: -6, Click: -12}})
	assert.Equal(-6.0, fakes[Bass].level)
	assert.Equal(-12.0, fakes[Click].level)
	assert.Equal(0.0, fakes[Piano].level)

	s.SetLevel(Piano, -3)
	assert.Equal(-3.0, fakes[Piano].level)
	s.Stop()
}

func TestSchedulerOnRealtimeTransport(t *testing.T) {
	tr := transport.NewRealtime()
	voices, _ := newVoices()
	done := make(chan struct{})
	var positions atomic.Int32
	s := NewScheduler(tr, voices, ObserverFuncs{
		OnPosition: func(model.Position) { positions.Add(1) },
		OnComplete: func() { close(done) },
	})

	s.Play(twoBars(), Params{Tempo: 24000, Loops: 1})
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("playback never completed")
	}
	assert.Equal(t, int32(2), positions.Load())
}

type countingTransport struct {
	*transport.Manual
	starts atomic.Int32
}

func (c *countingTransport) Start() {
	c.starts.Add(1)
	c.Manual.Start()
}

func TestSessionRestartsOnceAfterBurstOfChanges(t *testing.T) {
	assert := assert.New(t)
	tr := &countingTransport{Manual: transport.NewManual()}
	se := NewSession(NewScheduler(tr, Voices{}, nil), 20*time.Millisecond)
	se.Load(twoBars())

	se.SetTempo(90)
	assert.Equal(int32(0), tr.starts.Load())

	se.Play()
	assert.Equal(int32(1), tr.starts.Load())

	se.SetTempo(100)
	se.SetTranspose(3)
	se.SetLoops(2)
	assert.Eventually(func() bool { return tr.starts.Load() == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(int32(2), tr.starts.Load())

	p := se.Params()
	assert.Equal(100.0, p.Tempo)
	assert.Equal(3, p.Transpose)
	assert.Equal(2, p.Loops)
	se.Stop()
	assert.False(se.Playing())
}

func TestSessionLoadResetsTempo(t *testing.T) {
	se := NewSession(NewScheduler(transport.NewManual(), Voices{}, nil), time.Millisecond)
	se.SetTempo(200)
	se.Load(twoBars())
	assert.Equal(t, 0.0, se.Params().Tempo)
	assert.Equal(t, "Test", se.Tune().Title)
}

func TestSessionLevelsApplyImmediately(t *testing.T) {
	voices, fakes := newVoices()
	se := NewSession(NewScheduler(transport.NewManual(), voices, nil), time.Millisecond)
	se.SetLevel(Drums, -9)
	assert.Equal(t, -9.0, fakes[Drums].level)
	assert.Equal(t, -9.0, se.Params().Levels[Drums])
}

func TestSessionConfigureCopiesSettings(t *testing.T) {
	assert := assert.New(t)
	se := NewSession(NewScheduler(transport.NewManual(), Voices{}, nil), time.Millisecond)
	p := Params{Tempo: 140, Loops: 2, Levels: map[Role]float64{Bass: -2}, Mute: map[Role]bool{Click: true}}
	se.Configure(p)
	se.SetLevel(Bass, -8)
	se.SetMute(Click, false)

	assert.Equal(-2.0, p.Levels[Bass])
	assert.True(p.Mute[Click])
	got := se.Params()
	assert.Equal(140.0, got.Tempo)
	assert.Equal(-8.0, got.Levels[Bass])
	assert.False(got.Mute[Click])
}

type capturingTransport struct {
	*transport.Manual
	mu        sync.Mutex
	callbacks map[time.Duration][]transport.Callback
}

func newCapturingTransport() *capturingTransport {
	return &capturingTransport{Manual: transport.NewManual(), callbacks: map[time.Duration][]transport.Callback{}}
}

func (c *capturingTransport) Schedule(at time.Duration, fn transport.Callback) {
	c.mu.Lock()
	c.callbacks[at] = append(c.callbacks[at], fn)
	c.mu.Unlock()
	c.Manual.Schedule(at, fn)
}

func (c *capturingTransport) at(at time.Duration) []transport.Callback {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.callbacks[at]
}

// fireWhileRetired starts fn while the scheduler is locked, retires the
// session fn belongs to as a concurrent Play would, then lets fn finish.
func fireWhileRetired(s *Scheduler, fn transport.Callback, at time.Duration) {
	s.mu.Lock()
	done := make(chan struct{})
	go func() {
		fn(at)
		close(done)
	}()
	time.Sleep(10 * time.Millisecond)
	s.session.Add(1)
	s.mu.Unlock()
	<-done
}

func TestSchedulerRetiredCompletionLeavesNewPlaybackAlone(t *testing.T) {
	assert := assert.New(t)
	tr := newCapturingTransport()
	obs := &recorder{}
	s := NewScheduler(tr, Voices{}, obs)

	tl := s.Play(twoBars(), Params{Loops: 1})
	complete := tr.at(tl.End)
	if !assert.Len(complete, 1) {
		return
	}

	fireWhileRetired(s, complete[0], tl.End)
	assert.True(tr.Running())
	assert.Equal(0, obs.completes)
	s.Stop()
}

func TestSchedulerRetiredNoteDoesNotSound(t *testing.T) {
	assert := assert.New(t)
	tr := newCapturingTransport()
	voices, fakes := newVoices()
	s := NewScheduler(tr, voices, nil)

	s.Play(tuneOf("C", section("A", bar("C"))), Params{Loops: 1, Mute: map[Role]bool{Piano: true, Bass: true, Click: true}})
	first := tr.at(0)
	if !assert.NotEmpty(first) {
		return
	}
	for _, fn := range first {
		fireWhileRetired(s, fn, 0)
	}
	assert.Empty(fakes[Drums].Hits())
	s.Stop()
}
