package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/session-replay/internal"
	"gopkg.in/yaml.v3"
)

func TestYAMLExportRoundTrip(t *testing.T) {
	view := sampleView()

	var buf bytes.Buffer
	if err := (&YAMLExporter{}).Export(view, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded internal.ReplayView
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.SessionID != view.SessionID {
		t.Errorf("SessionID = %v, want %v", decoded.SessionID, view.SessionID)
	}
	if len(decoded.ToolCalls) != len(view.ToolCalls) {
		t.Fatalf("ToolCalls len = %v, want %v", len(decoded.ToolCalls), len(view.ToolCalls))
	}
	if decoded.ToolCalls[1].Args != view.ToolCalls[1].Args {
		t.Errorf("ToolCalls[1].Args = %v, want %v", decoded.ToolCalls[1].Args, view.ToolCalls[1].Args)
	}
}

func TestYAMLExportReadable(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLExporter{}).Export(sampleView(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	// Argument JSON comes out as plain text, not a binary blob
	if strings.Contains(out, "!!binary") {
		t.Errorf("output contains binary-encoded fields:\n%s", out)
	}
	if !strings.Contains(out, "session_id: session-1") {
		t.Errorf("output missing session_id field:\n%s", out)
	}
}
