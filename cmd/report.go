package cmd

import (
	"fmt"

	"github.com/jsphweid/chartband/catalog"
	"github.com/jsphweid/chartband/constants"
	"github.com/jsphweid/chartband/util"
	"github.com/spf13/cobra"
)

var reportTop int

func init() {
	reportCmd.Flags().IntVarP(&reportTop, "top", "n", 20, "how many of the most used chords to list")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Creates a report",
	Long:  `Summarizes the chart index in OUT_DIR.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Load(constants.GetOutDir())
		if err != nil {
			return err
		}
		report(c.Report(reportTop))
		return nil
	},
}

func report(r catalog.Report) {
	fmt.Printf("tunes: %v\n", r.NumTunes)
	fmt.Printf("bars as written: %v\n", r.NumBars)
	fmt.Printf("bars as played: %v\n", r.NumUnrolledBars)
	fmt.Printf("chords: %v\n", r.NumChords)
	fmt.Printf("unparsed chords: %v\n", r.NumUnparsed)

	fmt.Println("by key:")
	for _, key := range util.GetKeys(r.ByKey) {
		fmt.Printf("  %-6v %v\n", key, r.ByKey[key])
	}
	fmt.Println("by style:")
	for _, style := range util.GetKeys(r.ByStyle) {
		fmt.Printf("  %-20v %v\n", style, r.ByStyle[style])
	}
	fmt.Println("most used chords:")
	for _, c := range r.TopChords {
		fmt.Printf("  %-8v %v\n", c.Name, c.Count)
	}
}
