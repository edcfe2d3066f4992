package cmd

import (
	"fmt"

	"github.com/jsphweid/chartband/catalog"
	"github.com/jsphweid/chartband/constants"
	"github.com/jsphweid/chartband/db"
	"github.com/jsphweid/chartband/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(saveCmd)
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Saves indexed tunes to DynamoDB",
	Long:  `Puts every tune in the chart index into the DynamoDB table so serve --dynamo can look them up.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Load(constants.GetOutDir())
		if err != nil {
			return err
		}
		store, err := db.Connect(constants.GetDynamoEndpoint(), constants.GetDynamoRegion(), constants.TunesTable)
		if err != nil {
			return err
		}
		ids := util.GetKeys(c.Tunes)
		for i, id := range ids {
			if err := store.PutTune(c.Tunes[id]); err != nil {
				return err
			}
			fmt.Printf("Saved %v of %v tunes\n", i+1, len(ids))
		}
		return nil
	},
}
