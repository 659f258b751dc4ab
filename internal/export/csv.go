package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/tydligtid/tydlig/internal/state"
)

// ToCSV writes every recorded entry as one flat row per entry, days in
// chronological order, for spreadsheet use.
func ToCSV(s *state.State, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Activity", "Start", "End", "Minutes"}); err != nil {
		return err
	}

	for _, day := range s.Days() {
		for _, e := range s.Timelines[day] {
			row := []string{
				day,
				e.Activity.Name,
				e.Start.Format(state.ClockFormat),
				e.End.Format(state.ClockFormat),
				fmt.Sprintf("%d", e.Minutes()),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}
