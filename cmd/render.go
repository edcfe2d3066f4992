package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jsphweid/chartband/band"
	"github.com/jsphweid/chartband/config"
	"github.com/jsphweid/chartband/constants"
	"github.com/jsphweid/chartband/midi"
	"github.com/jsphweid/chartband/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type playbackFlags struct {
	tempo     float64
	transpose int
	loops     int
	noClick   bool
}

func (f *playbackFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&f.tempo, "tempo", 0, "beats per minute (default: the chart's tempo)")
	fs.IntVarP(&f.transpose, "transpose", "t", 0, "semitones to transpose by")
	fs.IntVarP(&f.loops, "loops", "l", 1, "times through the tune, 0 to loop forever")
	fs.BoolVar(&f.noClick, "no-click", false, "leave the click out")
}

// params starts from the band settings and applies only the flags given.
func (f *playbackFlags) params(fs *pflag.FlagSet, cfg config.Band) band.Params {
	p := cfg.Params()
	if fs.Changed("tempo") {
		p.Tempo = f.tempo
	}
	if fs.Changed("transpose") {
		p.Transpose = f.transpose
	}
	if fs.Changed("loops") {
		p.Loops = f.loops
	}
	if f.noClick {
		p.Mute = map[band.Role]bool{band.Click: true}
	}
	return p
}

var (
	renderFlags   playbackFlags
	renderOut     string
	renderFromBar int
	renderToBar   int
)

func init() {
	renderFlags.register(renderCmd.Flags())
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "file to write (default: <OUT_DIR>/<title>.mid)")
	renderCmd.Flags().IntVar(&renderFromBar, "from-bar", 1, "first played bar to keep, counting repeats")
	renderCmd.Flags().IntVar(&renderToBar, "to-bar", 0, "last played bar to keep (default: the end)")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [chart file]",
	Short: "Renders a chart to a MIDI file",
	Long:  `Plays a chart through the band offline and writes what it played as a Standard MIDI File.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		t, err := readChart(args)
		if err != nil {
			return err
		}

		s, err := renderTune(t, renderFlags.params(cmd.Flags(), cfg), cfg)
		if err != nil {
			return err
		}
		if renderFromBar > 1 || renderToBar > 0 {
			var to int64
			if renderToBar > 0 {
				to = int64(renderToBar) * band.TicksPerBar
			}
			s, err = midi.Excerpt(s, int64(util.Max(renderFromBar-1, 0))*band.TicksPerBar, to)
			if err != nil {
				return err
			}
		}

		out := renderOut
		if out == "" {
			name := strings.TrimSpace(t.Title)
			if name == "" {
				name = "chart"
			}
			out = filepath.Join(constants.GetOutDir(), name+".mid")
			if err := util.EnsureDir(constants.GetOutDir()); err != nil {
				return err
			}
		}
		if err := midi.WriteFile(out, s); err != nil {
			return err
		}
		fmt.Printf("Wrote %v\n", out)
		return nil
	},
}
