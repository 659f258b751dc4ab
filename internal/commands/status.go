package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tydligtid/tydlig/internal/state"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, store, _, err := openRecorder()
		if err != nil {
			return err
		}
		defer store.Close()

		summary, ok := rec.Today()
		if !ok {
			fmt.Println("No day in progress.")
			return nil
		}

		now := time.Now()
		fmt.Printf("Started:  %s\n", summary.StartTime.Format(state.ClockFormat))
		fmt.Printf("Lunch:    %d min\n", summary.LunchMinutes)
		fmt.Printf("Current:  %s\n", summary.CurrentProject.Name)
		fmt.Printf("Worked:   %.1f h\n", rec.WorkedHours(now))

		view, ok := rec.TimelineForToday()
		if !ok {
			return nil
		}
		fmt.Println("\nTimeline:")
		for _, e := range view.Entries {
			fmt.Printf("  %s - %s  %s (%d min)\n",
				e.Start.Format(state.ClockFormat),
				e.End.Format(state.ClockFormat),
				e.Activity.Name,
				e.Minutes(),
			)
		}
		return nil
	},
}
