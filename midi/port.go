package midi

import (
	"log"
	"sync"
	"time"

	"github.com/jsphweid/chartband/chord"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
)

// Send delivers one message to a device.
type Send func(msg midi.Message) error

// OpenOut opens the output port whose name contains name, or the first port
// when name is empty. A driver must be registered by importing one.
func OpenOut(name string) (Send, error) {
	out, err := midi.OutPort(0)
	if name != "" {
		out, err = midi.FindOutPort(name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Could not find midi out port %q", name)
	}
	send, err := midi.SendTo(out)
	if err != nil {
		return nil, errors.Wrap(err, "Could not open midi out port")
	}
	return send, nil
}

func CloseDriver() {
	midi.CloseDriver()
}

// Port is a voice that plays straight to a MIDI device as it is triggered;
// the transport decides when that is.
type Port struct {
	mu      sync.Mutex
	send    Send
	channel uint8
	level   float64
}

func NewPort(send Send, channel, program uint8) *Port {
	p := &Port{send: send, channel: channel}
	if channel != DrumChannel {
		p.write(midi.ProgramChange(channel, program))
	}
	return p
}

func (p *Port) write(msg midi.Message) {
	if err := p.send(msg); err != nil {
		log.Printf("Could not send midi message: %v", err)
	}
}

func (p *Port) TriggerAttackRelease(notes []chord.Note, dur, at time.Duration) {
	p.mu.Lock()
	vel := Velocity(p.level)
	p.mu.Unlock()

	for _, n := range notes {
		p.write(midi.NoteOn(p.channel, uint8(n), vel))
	}
	time.AfterFunc(dur, func() {
		for _, n := range notes {
			p.write(midi.NoteOff(p.channel, uint8(n)))
		}
	})
}

func (p *Port) SetLevel(db float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = db
}

// Listen reports the set of held notes on the input port whose name contains
// name (or the first port) every time it changes. Call stop to hang up.
func Listen(name string, fn func(held []chord.Note)) (stop func(), err error) {
	in, err := midi.InPort(0)
	if name != "" {
		in, err = midi.FindInPort(name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Could not find midi in port %q", name)
	}

	var mu sync.Mutex
	onNotes := make(map[chord.Note]int)
	stop, err = midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel uint8
		mu.Lock()
		defer mu.Unlock()
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			onNotes[chord.Note(key)]++
		case msg.GetNoteEnd(&ch, &key):
			delete(onNotes, chord.Note(key))
		default:
			return
		}
		fn(held(onNotes))
	})
	if err != nil {
		return nil, errors.Wrap(err, "Could not listen to midi in port")
	}
	return stop, nil
}
