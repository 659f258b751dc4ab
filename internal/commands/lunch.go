package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var lunchCmd = &cobra.Command{
	Use:   "lunch [minutes]",
	Short: "Start lunch, or set today's lunch length in minutes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, store, _, err := openRecorder()
		if err != nil {
			return err
		}
		defer store.Close()

		if len(args) == 0 {
			at, err := parseTimeOfDay("")
			if err != nil {
				return err
			}
			applied, err := rec.AddLunch(at)
			if err != nil {
				return err
			}
			if !applied {
				fmt.Println("No day in progress. Use 'tydlig start' first.")
				return nil
			}
			fmt.Println("Lunch started.")
			return nil
		}

		minutes, err := strconv.Atoi(args[0])
		if err != nil || minutes < 0 {
			return fmt.Errorf("invalid minutes %q", args[0])
		}
		applied, err := rec.UpdateLunch(minutes)
		if err != nil {
			return err
		}
		if !applied {
			fmt.Println("No lunch recorded today yet. Use 'tydlig lunch' to start one.")
			return nil
		}
		fmt.Printf("Lunch set to %d minutes.\n", minutes)
		return nil
	},
}
