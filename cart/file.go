package cart

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// The snapshot is a plain JSON array of lines. There is no schema version
// field, so any shape drift must read as "malformed" and reset to empty.

func readSnapshotBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cart snapshot: %w", err)
	}
	return data, nil
}

// decodeSnapshot parses snapshot bytes, degrading to an empty cart on any
// parse or shape failure. Lines that violate the quantity invariant are
// dropped individually, and lines sharing a (product id, size) key are
// merged by summing quantities so the one-line-per-key invariant holds
// whatever the file claims.
func decodeSnapshot(data []byte, logger *slog.Logger) []Line {
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		logger.Debug("Malformed cart snapshot, starting empty", "error", err)
		return nil
	}

	valid := lines[:0]
	index := make(map[Key]int, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 {
			logger.Debug("Dropping cart line with invalid quantity",
				"product_id", l.ID,
				"quantity", l.Quantity)
			continue
		}
		if i, ok := index[l.key()]; ok {
			logger.Debug("Merging duplicate cart line",
				"product_id", l.ID,
				"size", l.SelectedSize)
			valid[i].Quantity += l.Quantity
			continue
		}
		index[l.key()] = len(valid)
		valid = append(valid, l)
	}
	return valid
}

// writeSnapshot persists lines to path, creating parent directories as
// needed, and returns the bytes written.
func writeSnapshot(path string, lines []Line) ([]byte, error) {
	// Encode an empty cart as [] rather than null.
	if lines == nil {
		lines = []Line{}
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("marshal cart snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create cart directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("write cart snapshot: %w", err)
	}

	return data, nil
}
