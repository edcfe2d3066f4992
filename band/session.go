package band

import (
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/chartband/model"
)

// Session keeps the tune and settings a player is working with. Changing
// tempo, key or loop count while playing restarts playback once the changes
// settle, so a burst of edits costs one restart.
type Session struct {
	mu        sync.Mutex
	scheduler *Scheduler
	tune      model.Tune
	params    Params
	playing   bool
	debounced func(f func())
}

func NewSession(s *Scheduler, settle time.Duration) *Session {
	return &Session{
		scheduler: s,
		params:    Params{Levels: map[Role]float64{}},
		debounced: debounce.New(settle),
	}
}

// Load swaps in a new tune, taking its default tempo.
func (se *Session) Load(t model.Tune) {
	se.mu.Lock()
	se.tune = t
	se.params.Tempo = 0
	se.mu.Unlock()
	se.restart()
}

func (se *Session) Tune() model.Tune {
	se.mu.Lock()
	defer se.mu.Unlock()
	return se.tune
}

// Params returns a copy of the current settings.
func (se *Session) Params() Params {
	se.mu.Lock()
	defer se.mu.Unlock()
	return se.params.clone()
}

// Configure replaces every setting at once, as when a player starts from a
// saved band setup.
func (se *Session) Configure(p Params) {
	se.mu.Lock()
	se.params = p.clone()
	se.mu.Unlock()
	se.restart()
}

func (se *Session) Playing() bool {
	se.mu.Lock()
	defer se.mu.Unlock()
	return se.playing
}

func (se *Session) Play() Timeline {
	se.mu.Lock()
	se.playing = true
	se.mu.Unlock()
	return se.scheduler.Play(se.Tune(), se.Params())
}

func (se *Session) Stop() {
	se.mu.Lock()
	se.playing = false
	se.mu.Unlock()
	se.scheduler.Stop()
}

// Finished records that a finite playback ran out. Call it from the
// observer's PlaybackComplete.
func (se *Session) Finished() {
	se.mu.Lock()
	se.playing = false
	se.mu.Unlock()
}

func (se *Session) SetTempo(bpm float64) {
	se.mu.Lock()
	se.params.Tempo = bpm
	se.mu.Unlock()
	se.restart()
}

func (se *Session) SetTranspose(semitones int) {
	se.mu.Lock()
	se.params.Transpose = semitones
	se.mu.Unlock()
	se.restart()
}

func (se *Session) SetLoops(n int) {
	se.mu.Lock()
	se.params.Loops = n
	se.mu.Unlock()
	se.restart()
}

// SetLevel applies immediately; levels don't need a restart.
func (se *Session) SetLevel(r Role, db float64) {
	se.mu.Lock()
	se.params.Levels[r] = db
	se.mu.Unlock()
	se.scheduler.SetLevel(r, db)
}

// SetMute silences or restores one voice from the next restart on.
func (se *Session) SetMute(r Role, muted bool) {
	se.mu.Lock()
	if se.params.Mute == nil {
		se.params.Mute = map[Role]bool{}
	}
	se.params.Mute[r] = muted
	se.mu.Unlock()
	se.restart()
}

func (se *Session) restart() {
	if !se.Playing() {
		return
	}
	se.debounced(func() {
		if se.Playing() {
			se.Play()
		}
	})
}
