package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tydligtid/tydlig/internal/state"
)

var startCmd = &cobra.Command{
	Use:   "start <activity> [HH:mm]",
	Short: "Start the workday on an activity",
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

		applied, err := rec.StartDay(activity.ID, at)
		if err != nil {
			return err
		}
		if !applied {
			fmt.Println("Day already started. Use 'tydlig switch' to change activity.")
			return nil
		}
		fmt.Printf("Day started at %s on %s\n", at.Format(state.ClockFormat), activity.Name)
		return nil
	},
}
