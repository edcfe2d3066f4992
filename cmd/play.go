package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jsphweid/chartband/band"
	"github.com/jsphweid/chartband/chart"
	"github.com/jsphweid/chartband/hint"
	"github.com/jsphweid/chartband/midi"
	"github.com/jsphweid/chartband/model"
	"github.com/jsphweid/chartband/transport"
	"github.com/spf13/cobra"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

const settleTime = 300 * time.Millisecond

var (
	playFlags playbackFlags
	playPort  string
)

func init() {
	playFlags.register(playCmd.Flags())
	playCmd.Flags().StringVarP(&playPort, "port", "p", "", "midi out port (default: the band config's, else the first one)")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play [chart file]",
	Short: "Plays a chart through a MIDI synth",
	Long: `Plays a chart with piano, bass, drums and click on a MIDI output.

While playing, type a command and press enter:
  t <bpm>        set the tempo
  k <semitones>  transpose
  l <n>          loop n times, 0 for forever
  v <role> <db>  set a voice level (piano, bass, drums, click)
  c              toggle the click
  p              play from the top
  s              stop
  q              quit`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		t, err := readChart(args)
		if err != nil {
			return err
		}

		port := cfg.Port
		if playPort != "" {
			port = playPort
		}
		send, err := midi.OpenOut(port)
		if err != nil {
			return err
		}
		defer midi.CloseDriver()

		var se *band.Session
		observer := band.ObserverFuncs{
			OnPosition: func(pos model.Position) {
				t := chart.Transpose(se.Tune(), se.Params().Transpose)
				fmt.Println(describePosition(t, pos))
			},
			OnComplete: func() {
				se.Finished()
				fmt.Println("done")
			},
		}
		tr := transport.NewRealtime()
		se = band.NewSession(band.NewScheduler(tr, ports(send, cfg), observer), settleTime)
		se.Load(t)
		se.Configure(playFlags.params(cmd.Flags(), cfg))
		se.Play()
		defer se.Stop()

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			quit, err := command(se, scanner.Text())
			if err != nil {
				fmt.Println(err)
			}
			if quit {
				return nil
			}
		}
		return scanner.Err()
	},
}

func describePosition(t model.Tune, pos model.Position) string {
	if h, ok := hint.ForPosition(t, pos); ok {
		return describeHint(t, h)
	}
	return fmt.Sprintf("%v%d", t.Sections[pos.Section].Label, pos.Bar+1)
}

// command applies one line typed while playing and reports whether to quit.
func command(se *band.Session, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	arg := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	switch fields[0] {
	case "t":
		bpm, err := strconv.ParseFloat(arg(1), 64)
		if err != nil || bpm <= 0 {
			return false, fmt.Errorf("bad tempo %q", arg(1))
		}
		se.SetTempo(bpm)
	case "k":
		n, err := strconv.Atoi(arg(1))
		if err != nil {
			return false, fmt.Errorf("bad transposition %q", arg(1))
		}
		se.SetTranspose(n)
	case "l":
		n, err := strconv.Atoi(arg(1))
		if err != nil || n < 0 {
			return false, fmt.Errorf("bad loop count %q", arg(1))
		}
		se.SetLoops(n)
	case "v":
		r, ok := band.ParseRole(arg(1))
		if !ok {
			return false, fmt.Errorf("unknown voice %q", arg(1))
		}
		db, err := strconv.ParseFloat(arg(2), 64)
		if err != nil {
			return false, fmt.Errorf("bad level %q", arg(2))
		}
		se.SetLevel(r, db)
	case "c":
		se.SetMute(band.Click, !se.Params().Mute[band.Click])
	case "p":
		se.Play()
	case "s":
		se.Stop()
	case "q":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q", fields[0])
	}
	return false, nil
}
