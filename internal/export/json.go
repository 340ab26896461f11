package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/session-replay/internal"
)

// JSONExporter exports a replay view in JSON format (pretty-printed)
type JSONExporter struct{}

// Export exports a replay view to JSON format
func (e *JSONExporter) Export(view *internal.ReplayView, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(view)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
