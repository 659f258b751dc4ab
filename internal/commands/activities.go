package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagActivitiesAll bool

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "List activities you can track time on",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, store, _, err := openRecorder()
		if err != nil {
			return err
		}
		defer store.Close()

		activities := rec.AvailableProjects()
		if flagActivitiesAll {
			activities = rec.Activities()
		}
		for _, a := range activities {
			fmt.Printf("%3d  %s\n", a.ID, a.Name)
		}
		return nil
	},
}

func init() {
	activitiesCmd.Flags().BoolVar(&flagActivitiesAll, "all", false, "include the reserved Lunch and Break activities")
}
