package export

import (
	"io"

	"github.com/iksnae/session-replay/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports a replay view in YAML format
type YAMLExporter struct{}

// Export exports a replay view to YAML format
func (e *YAMLExporter) Export(view *internal.ReplayView, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(view)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
