package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tydligtid/tydlig/internal/state"
)

var switchCmd = &cobra.Command{
	Use:   "switch <activity> [HH:mm]",
	Short: "Switch the current activity",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, store, _, err := openRecorder()
		if err != nil {
			return err
		}
		defer store.Close()

		activity, err := resolveActivity(rec, args[0])
		if err != nil {
			return err
		}
		timeArg := ""
		if len(args) == 2 {
			timeArg = args[1]
		}
		at, err := parseTimeOfDay(timeArg)
		if err != nil {
			return err
		}

		applied, err := rec.ChangeProject(activity.ID, at)
		if err != nil {
			return err
		}
		if !applied {
			fmt.Println("No day in progress. Use 'tydlig start' first.")
			return nil
		}
		fmt.Printf("Switched to %s at %s\n", activity.Name, at.Format(state.ClockFormat))
		return nil
	},
}
