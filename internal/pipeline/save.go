package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rehabflow/rehabflow/internal/models"
)

// ErrUnsupportedFormat reports an output format SaveResult cannot write.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// SaveResult writes the result artifact to path. Only "json" is supported;
// any other format is a fatal error, not a silent fallback.
func SaveResult(result *models.Result, path, format string) error {
	switch strings.ToLower(format) {
	case "json", "":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
