package export

import (
	"fmt"
	"os"

	"github.com/tydligtid/tydlig/internal/state"
)

// DefaultJSONName is the conventional file name for exported snapshots.
const DefaultJSONName = "tydlig-tid-state.json"

// ToJSON writes the full state as an indented snapshot document. The file
// round-trips through the importer unchanged.
func ToJSON(s *state.State, path string) error {
	data, err := state.EncodeIndented(s)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
