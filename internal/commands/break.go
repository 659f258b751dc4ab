package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var breakCmd = &cobra.Command{
	Use:   "break [end <minutes>]",
	Short: "Start a break, or end one giving its length in minutes",
	Args:  cobra.MaximumNArgs(2),
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
			applied, err := rec.AddBreak(at)
			if err != nil {
				return err
			}
			if !applied {
				fmt.Println("No day in progress. Use 'tydlig start' first.")
				return nil
			}
			fmt.Println("Break started.")
			return nil
		}

		if args[0] != "end" || len(args) != 2 {
			return fmt.Errorf("usage: tydlig break [end <minutes>]")
		}
		minutes, err := strconv.Atoi(args[1])
		if err != nil || minutes < 0 {
			return fmt.Errorf("invalid minutes %q", args[1])
		}
		applied, err := rec.EndBreak(minutes)
		if err != nil {
			return err
		}
		if !applied {
			fmt.Println("No day in progress.")
			return nil
		}
		fmt.Println("Break ended.")
		return nil
	},
}
