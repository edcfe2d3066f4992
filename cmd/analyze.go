package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jsphweid/chartband/hint"
	"github.com/jsphweid/chartband/model"
	"github.com/spf13/cobra"
)

var analyzeJSON bool

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print JSON")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [chart file]",
	Short: "Suggests scales and finds ii-V-Is",
	Long:  `Prints, for every bar, scales to play over its first chord and any ii-V-I that starts there.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := readChart(args)
		if err != nil {
			return err
		}
		hints := hint.All(t)
		if analyzeJSON {
			out, err := json.MarshalIndent(model.AnalyzeResponse{Tune: t, Hints: hints}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}
		for _, h := range hints {
			fmt.Println(describeHint(t, h))
		}
		return nil
	},
}

func describeHint(t model.Tune, h model.BarHint) string {
	label := t.Sections[h.Position.Section].Label
	line := fmt.Sprintf("%v%-3d %-10v %v", label, h.Position.Bar+1, h.Chord, strings.Join(h.Scales, ", "))
	if c := h.Cadence; c != nil {
		kind := "ii-V-I"
		switch {
		case c.Implied:
			kind = "ii-V"
		case len(c.Chords) == 2:
			kind = "V-I"
		}
		line += fmt.Sprintf("  [%v in %v: %v]", kind, c.Key, strings.Join(c.Chords, " "))
	}
	return line
}
