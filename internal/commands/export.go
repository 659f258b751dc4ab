package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tydligtid/tydlig/internal/export"
)

var flagExportCSV bool

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export the full state to a JSON (or CSV) file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, store, _, err := openRecorder()
		if err != nil {
			return err
		}
		defer store.Close()

		path := export.DefaultJSONName
		if flagExportCSV {
			path = "tydlig-tid-state.csv"
		}
		if len(args) == 1 {
			path = args[0]
		}

		if flagExportCSV {
			err = export.ToCSV(rec.Snapshot(), path)
		} else {
			err = export.ToJSON(rec.Snapshot(), path)
		}
		if err != nil {
			return err
		}
		fmt.Println("Exported to", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().BoolVar(&flagExportCSV, "csv", false, "export flat CSV rows instead of the JSON snapshot")
}
