package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the state with an exported snapshot file",
	Long: `Replaces the whole state with the contents of a snapshot file.
Both the current schema and the legacy projects/projectId schema are
accepted. A snapshot that does not parse, or that references a missing
activity, is rejected without touching the existing state.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, store, _, err := openRecorder()
		if err != nil {
			return err
		}
		defer store.Close()

		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read snapshot file: %w", err)
		}

		if err := rec.ImportFromFile(content); err != nil {
			return err
		}
		fmt.Println("Imported", args[0])
		return nil
	},
}
