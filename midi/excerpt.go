package midi

import (
	"github.com/jsphweid/chartband/util"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func isEndOfTrack(msg smf.Message) bool {
	return len(msg) >= 2 && msg[0] == 0xFF && msg[1] == 0x2F
}

// Excerpt cuts the ticks [from, to) out of s, shifted to start at zero. Other
// events before from (names, tempo, program changes) are kept at the start
// and notes still sounding at to are released there. A to of 0 runs to the
// end of the file.
func Excerpt(s *smf.SMF, from, to int64) (*smf.SMF, error) {
	if from < 0 || (to != 0 && to <= from) {
		return nil, errors.Errorf("Bad excerpt range %v-%v", from, to)
	}
	res := smf.New()
	res.TimeFormat = s.TimeFormat

	for i, track := range s.Tracks {
		var out smf.Track
		var abs, last int64
		add := func(tick int64, msg []byte) {
			out.Add(uint32(tick-last), msg)
			last = tick
		}

		held := make(map[[2]uint8]bool)
	Events:
		for _, ev := range track {
			abs += int64(ev.Delta)
			if to != 0 && abs >= to {
				break Events
			}
			if isEndOfTrack(ev.Message) {
				continue
			}
			var ch, key, vel uint8
			switch {
			case ev.Message.GetNoteOn(&ch, &key, &vel):
				if abs >= from {
					add(abs-from, ev.Message)
					held[[2]uint8{ch, key}] = true
				}
			case ev.Message.GetNoteOff(&ch, &key, &vel):
				if held[[2]uint8{ch, key}] {
					add(abs-from, ev.Message)
					delete(held, [2]uint8{ch, key})
				}
			default:
				add(util.Max(abs-from, 0), ev.Message)
			}
		}

		if to != 0 {
			for k := range held {
				add(to-from, midi.NoteOff(k[0], k[1]))
			}
		}
		out.Close(0)
		if err := res.Add(out); err != nil {
			return nil, errors.Wrapf(err, "Could not add track %v", i)
		}
	}
	return res, nil
}
