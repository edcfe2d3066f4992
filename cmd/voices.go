package cmd

import (
	"github.com/jsphweid/chartband/band"
	"github.com/jsphweid/chartband/config"
	"github.com/jsphweid/chartband/constants"
	"github.com/jsphweid/chartband/midi"
	"github.com/jsphweid/chartband/model"
	"github.com/jsphweid/chartband/transport"
	"gitlab.com/gomidi/midi/v2/smf"
)

func channelFor(r band.Role) uint8 {
	switch r {
	case band.Bass:
		return 1
	case band.Click:
		return 2
	case band.Drums:
		return midi.DrumChannel
	}
	return 0
}

func loadConfig() (config.Band, error) {
	return config.Load(constants.GetBandConfigPath())
}

func recorders(cfg config.Band) (band.Voices, []*midi.Recorder) {
	var recs []*midi.Recorder
	var v band.Voices
	for _, r := range band.Roles {
		rec := midi.NewRecorder(r.String(), channelFor(r), cfg.Program(r))
		recs = append(recs, rec)
		switch r {
		case band.Piano:
			v.Piano = rec
		case band.Bass:
			v.Bass = rec
		case band.Drums:
			v.Drums = rec
		case band.Click:
			v.Click = rec
		}
	}
	return v, recs
}

func ports(send midi.Send, cfg config.Band) band.Voices {
	port := func(r band.Role) *midi.Port {
		return midi.NewPort(send, channelFor(r), cfg.Program(r))
	}
	return band.Voices{
		Piano: port(band.Piano),
		Bass:  port(band.Bass),
		Drums: port(band.Drums),
		Click: port(band.Click),
	}
}

// renderTune plays t through a virtual clock into a MIDI file. An endless
// loop count is rendered as a single pass.
func renderTune(t model.Tune, p band.Params, cfg config.Band) (*smf.SMF, error) {
	if p.Loops <= 0 {
		p.Loops = 1
	}
	voices, recs := recorders(cfg)
	tr := transport.NewManual()
	tl := band.NewScheduler(tr, voices, nil).Play(t, p)
	tr.Advance(tl.End)
	return midi.Render(tl.Tempo, recs...)
}
