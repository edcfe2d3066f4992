// Package config reads the band settings file.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/jsphweid/chartband/band"
	"github.com/pkg/errors"
)

// Band is what band.yaml holds. Zero tempo means the tune's own.
type Band struct {
	Tempo     float64            `yaml:"tempo"`
	Transpose int                `yaml:"transpose"`
	Loops     int                `yaml:"loops"`
	Click     bool               `yaml:"click"`
	Levels    map[string]float64 `yaml:"levels"`
	// Port is matched against MIDI output port names; empty takes the first.
	Port     string           `yaml:"port"`
	Programs map[string]uint8 `yaml:"programs"`
}

func Default() Band {
	return Band{
		Loops: 1,
		Click: true,
		Levels: map[string]float64{
			"piano": 0,
			"bass":  0,
			"drums": -3,
			"click": -6,
		},
		// General MIDI programs, counted from zero
		Programs: map[string]uint8{
			"piano": 0,
			"bass":  32,
			"click": 115,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Band, error) {
	b := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return b, nil
	}
	if err != nil {
		return b, errors.Wrapf(err, "Could not read %v", path)
	}
	if err := yaml.Unmarshal(data, &b); err != nil {
		return b, errors.Wrapf(err, "Could not parse %v", path)
	}
	b.fillDefaults()
	return b, nil
}

// fillDefaults restores per-role entries a file left out.
func (b *Band) fillDefaults() {
	def := Default()
	if b.Levels == nil {
		b.Levels = map[string]float64{}
	}
	for k, v := range def.Levels {
		if _, ok := b.Levels[k]; !ok {
			b.Levels[k] = v
		}
	}
	if b.Programs == nil {
		b.Programs = map[string]uint8{}
	}
	for k, v := range def.Programs {
		if _, ok := b.Programs[k]; !ok {
			b.Programs[k] = v
		}
	}
}

func (b Band) Save(path string) error {
	data, err := yaml.Marshal(b)
	if err != nil {
		return errors.Wrap(err, "Could not encode band settings")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0666), "Could not write %v", path)
}

// Params turns the settings into playback parameters. Unknown role names in
// levels are ignored.
func (b Band) Params() band.Params {
	p := band.Params{
		Tempo:     b.Tempo,
		Transpose: b.Transpose,
		Loops:     b.Loops,
		Levels:    map[band.Role]float64{},
	}
	for name, db := range b.Levels {
		if r, ok := band.ParseRole(name); ok {
			p.Levels[r] = db
		}
	}
	if !b.Click {
		p.Mute = map[band.Role]bool{band.Click: true}
	}
	return p
}

func (b Band) Program(r band.Role) uint8 {
	return b.Programs[r.String()]
}
