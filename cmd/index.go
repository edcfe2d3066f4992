package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/chartband/catalog"
	"github.com/jsphweid/chartband/constants"
	"github.com/jsphweid/chartband/file"
	"github.com/jsphweid/chartband/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index [max files]",
	Short: "Creates the chart index",
	Long:  `Reads every chart under CHART_DIR and writes an index of the chords they use to OUT_DIR.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var maxNum int
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			maxNum = n
		}
		c, err := Index(constants.GetChartDir(), constants.GetOutDir(), maxNum)
		if err != nil {
			return err
		}
		fmt.Printf("Indexed %v tunes with %v distinct chords\n", len(c.Tunes), len(c.Index))
		return nil
	},
}

// Index catalogs up to maxNum chart files from chartDir (all of them when
// maxNum is 0) and saves the catalog to a fresh outDir.
func Index(chartDir, outDir string, maxNum int) (catalog.Catalog, error) {
	paths, err := file.GatherChartPaths(chartDir, maxNum)
	if err != nil {
		return catalog.Catalog{}, err
	}
	c := catalog.Build(paths)
	if err := util.RecreateDir(outDir); err != nil {
		return catalog.Catalog{}, err
	}
	return c, catalog.Save(outDir, c)
}
