package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/chartband/chart"
	"github.com/jsphweid/chartband/chord"
	"github.com/jsphweid/chartband/model"
	"github.com/spf13/cobra"
)

var (
	fmtTranspose int
	fmtMinorM    bool
	fmtGermanB   bool
	fmtGrid      bool
	fmtURI       bool
)

func init() {
	fmtCmd.Flags().IntVarP(&fmtTranspose, "transpose", "t", 0, "semitones to transpose by")
	fmtCmd.Flags().BoolVar(&fmtGrid, "grid", false, "print a bar grid instead of chart text")
	fmtCmd.Flags().BoolVar(&fmtMinorM, "minor-m", false, "write minor chords with m rather than -")
	fmtCmd.Flags().BoolVar(&fmtGermanB, "german", false, "write B as H")
	fmtCmd.Flags().BoolVar(&fmtURI, "uri", false, "print an irealbook:// link")
	rootCmd.AddCommand(fmtCmd)
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [chart file]",
	Short: "Rewrites a chart",
	Long:  `Reads a chart and writes it back out in canonical chart notation, optionally transposed.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := readChart(args)
		if err != nil {
			return err
		}
		t = chart.Transpose(t, fmtTranspose)

		switch {
		case fmtURI:
			fmt.Println(chart.URI(t))
		case fmtGrid:
			settings := chord.FormatSettings{GermanB: fmtGermanB}
			if fmtMinorM {
				settings.MinorDisplay = chord.MinorM
			}
			fmt.Print(grid(t, settings))
		default:
			fmt.Println(chart.Serialize(t))
		}
		return nil
	},
}

// grid lays a tune out four bars to a line.
func grid(t model.Tune, settings chord.FormatSettings) string {
	var sb strings.Builder
	for _, sec := range t.Sections {
		fmt.Fprintf(&sb, "[%v]\n", sec.Label)
		for i, bar := range sec.Bars {
			var cells []string
			for _, c := range bar.Chords {
				cells = append(cells, chord.Format(c, settings).String())
			}
			opener, closer := "|", ""
			if bar.RepeatStart {
				opener = "|:"
			}
			if bar.RepeatEnd > 0 {
				closer = fmt.Sprintf(" :|x%d", bar.RepeatEnd)
			}
			fmt.Fprintf(&sb, "%v %-12v%v", opener, strings.Join(cells, " "), closer)
			if i%4 == 3 || i == len(sec.Bars)-1 {
				sb.WriteString("|\n")
			}
		}
	}
	return sb.String()
}
