package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/jsphweid/chartband/chord"
	"github.com/jsphweid/chartband/midi"
	"github.com/spf13/cobra"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var listenPort string

func init() {
	listenCmd.Flags().StringVarP(&listenPort, "port", "p", "", "midi in port to listen to (default: the first one)")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Names the chords played on a MIDI keyboard",
	Long:  `Listens to a MIDI input and prints the chord and suggested scales for every voicing held down.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer midi.CloseDriver()

		stop, err := midi.Listen(listenPort, func(held []chord.Note) {
			if len(held) < 3 {
				return
			}
			fmt.Println(describeVoicing(held))
		})
		if err != nil {
			return err
		}
		defer stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		<-sig
		return nil
	},
}

func describeVoicing(notes []chord.Note) string {
	names := strings.Join(chord.Names(notes), " ")
	sym, ok := chord.Identify(notes)
	if !ok {
		return fmt.Sprintf("%-16v ?", names)
	}
	return fmt.Sprintf("%-16v %-10v %v", names, sym, strings.Join(chord.SuggestedScales(sym), ", "))
}
