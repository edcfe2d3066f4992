package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/chartband/chord"
	"github.com/jsphweid/chartband/midi"
	"github.com/spf13/cobra"
)

var inspectChannel uint8

func init() {
	inspectCmd.Flags().Uint8VarP(&inspectChannel, "channel", "c", 0, "channel to read chords from")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [midi file]",
	Short: "Inspects a MIDI file",
	Long:  `Lists the tracks of a MIDI file, such as one written by render, and names the chords sounding on one channel.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0], inspectChannel)
	},
}

func inspect(path string, channel uint8) error {
	s, err := midi.ReadFile(path)
	if err != nil {
		return err
	}

	sum := midi.Summarize(s)
	fmt.Printf("ticks per quarter: %v\n", sum.TicksPerQuarter)
	fmt.Printf("tempo: %.2f\n", sum.Tempo)
	for i, tr := range sum.Tracks {
		fmt.Printf("track %v %q: %v notes on channel %v, %v ticks\n", i, tr.Name, tr.Notes, tr.Channel, tr.Ticks)
	}

	for _, snd := range midi.Chords(s, channel) {
		name := "?"
		if sym, ok := chord.Identify(snd.Notes); ok {
			name = sym.String()
		}
		fmt.Printf("%8v  %-10v %v\n", snd.At, name, strings.Join(chord.Names(snd.Notes), " "))
	}
	return nil
}
