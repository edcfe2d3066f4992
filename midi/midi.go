package midi

import (
	"bytes"
	"os"
	"sort"
	"time"

	"github.com/jsphweid/chartband/chord"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadFile(path string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			s, e = nil, errors.New(r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading midi file")
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrap(err, "Error parsing midi file")
	}
	return res, nil
}

// Sounding is a set of notes held together from At onwards.
type Sounding struct {
	At    time.Duration
	Notes []chord.Note
}

type reducedEvent struct {
	at    int64
	off   bool
	note  chord.Note
	track int
}

// Chords lists every distinct set of notes sounding in s on the given
// channel, in time order. A new set starts whenever a note starts or stops.
func Chords(s *smf.SMF, channel uint8) []Sounding {
	var events []reducedEvent
	for ti, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var ch, key, vel uint8
			switch {
			case event.Message.GetNoteOn(&ch, &key, &vel):
				if ch == channel {
					events = append(events, reducedEvent{at: s.TimeAt(absTicks), note: chord.Note(key), track: ti})
				}
			case event.Message.GetNoteOff(&ch, &key, &vel):
				if ch == channel {
					events = append(events, reducedEvent{at: s.TimeAt(absTicks), off: true, note: chord.Note(key), track: ti})
				}
			}
		}
	}

	// earlier first, and note offs before note ons at the same instant
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].at != events[j].at {
			return events[i].at < events[j].at
		}
		return events[i].off && !events[j].off
	})

	var res []Sounding
	pressed := make(map[chord.Note]int)
	for i, evt := range events {
		if evt.off {
			if pressed[evt.note] > 1 {
				pressed[evt.note]--
			} else {
				delete(pressed, evt.note)
			}
		} else {
			pressed[evt.note]++
		}
		if i+1 < len(events) && events[i+1].at == evt.at {
			continue
		}
		if len(pressed) == 0 {
			continue
		}
		res = append(res, Sounding{At: time.Duration(evt.at) * time.Microsecond, Notes: held(pressed)})
	}
	return res
}

func held(pressed map[chord.Note]int) []chord.Note {
	notes := make([]chord.Note, 0, len(pressed))
	for n := range pressed {
		notes = append(notes, n)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i] < notes[j] })
	return notes
}

// TrackSummary describes one track of a MIDI file.
type TrackSummary struct {
	Name    string
	Notes   int
	Channel int
	Ticks   int64
}

type Summary struct {
	TicksPerQuarter uint16
	Tempo           float64
	Tracks          []TrackSummary
}

func Summarize(s *smf.SMF) Summary {
	var sum Summary
	if tf, ok := s.TimeFormat.(smf.MetricTicks); ok {
		sum.TicksPerQuarter = tf.Resolution()
	}
	for _, track := range s.Tracks {
		ts := TrackSummary{Channel: -1}
		for _, event := range track {
			ts.Ticks += int64(event.Delta)
			var ch, key, vel uint8
			var bpm float64
			var text string
			switch {
			case event.Message.GetNoteOn(&ch, &key, &vel):
				ts.Notes++
				ts.Channel = int(ch)
			case event.Message.GetMetaTempo(&bpm):
				if sum.Tempo == 0 {
					sum.Tempo = bpm
				}
			case event.Message.GetMetaTrackName(&text):
				ts.Name = text
			}
		}
		sum.Tracks = append(sum.Tracks, ts)
	}
	return sum
}
