package midi

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/jsphweid/chartband/chord"
	"github.com/jsphweid/chartband/constants"
	"github.com/jsphweid/chartband/util"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	DrumChannel = 9
	// velocity at 0 dB
	DefaultVelocity = 96
)

// Velocity maps an output level in decibels onto a note velocity.
func Velocity(db float64) uint8 {
	v := math.Round(DefaultVelocity * math.Pow(10, db/20))
	return uint8(util.Clamp(int(v), 1, 127))
}

type recorded struct {
	notes    []chord.Note
	at       time.Duration
	dur      time.Duration
	velocity uint8
}

// Recorder is a voice that remembers what it was asked to play so that it
// can be written out as a track.
type Recorder struct {
	mu      sync.Mutex
	name    string
	channel uint8
	program uint8
	level   float64
	hits    []recorded
}

func NewRecorder(name string, channel, program uint8) *Recorder {
	return &Recorder{name: name, channel: channel, program: program}
}

func (r *Recorder) TriggerAttackRelease(notes []chord.Note, dur, at time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits = append(r.hits, recorded{notes: notes, at: at, dur: dur, velocity: Velocity(r.level)})
}

func (r *Recorder) SetLevel(db float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.level = db
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.hits)
}

func toTicks(d time.Duration, tempo float64) int64 {
	return int64(math.Round(d.Minutes() * tempo * constants.PPQ))
}

type trackEvent struct {
	tick int64
	off  bool
	msg  midi.Message
}

func (r *Recorder) track(tempo float64) smf.Track {
	r.mu.Lock()
	defer r.mu.Unlock()

	var events []trackEvent
	for _, h := range r.hits {
		on, off := toTicks(h.at, tempo), toTicks(h.at+h.dur, tempo)
		for _, n := range h.notes {
			key := uint8(util.Clamp(int(n), 0, 127))
			events = append(events,
				trackEvent{tick: on, msg: midi.NoteOn(r.channel, key, h.velocity)},
				trackEvent{tick: off, off: true, msg: midi.NoteOff(r.channel, key)},
			)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(r.name))
	if r.channel != DrumChannel {
		track.Add(0, midi.ProgramChange(r.channel, r.program))
	}
	var last int64
	for _, ev := range events {
		track.Add(uint32(ev.tick-last), ev.msg)
		last = ev.tick
	}
	track.Close(0)
	return track
}

// Render writes the recorded voices out as a type 1 file, one track each,
// after a conductor track holding meter and tempo.
func Render(tempo float64, recorders ...*Recorder) (*smf.SMF, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.PPQ)

	var conductor smf.Track
	conductor.Add(0, smf.MetaMeter(4, 4))
	conductor.Add(0, smf.MetaTempo(tempo))
	conductor.Close(0)
	if err := s.Add(conductor); err != nil {
		return nil, errors.Wrap(err, "Could not add conductor track")
	}

	for _, r := range recorders {
		if err := s.Add(r.track(tempo)); err != nil {
			return nil, errors.Wrapf(err, "Could not add track %v", r.name)
		}
	}
	return s, nil
}

func WriteFile(path string, s *smf.SMF) error {
	return errors.Wrapf(s.WriteFile(path), "Could not write midi file %v", path)
}
