package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/iksnae/session-replay/internal"
)

func TestJSONExportRoundTrip(t *testing.T) {
	view := sampleView()

	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(view, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded internal.ReplayView
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.SessionID != view.SessionID {
		t.Errorf("SessionID = %v, want %v", decoded.SessionID, view.SessionID)
	}
	if decoded.Playhead != view.Playhead {
		t.Errorf("Playhead = %v, want %v", decoded.Playhead, view.Playhead)
	}
	if len(decoded.Messages) != len(view.Messages) {
		t.Errorf("Messages len = %v, want %v", len(decoded.Messages), len(view.Messages))
	}
	if len(decoded.Files) != len(view.Files) {
		t.Errorf("Files len = %v, want %v", len(decoded.Files), len(view.Files))
	}
}

func TestJSONExportIndented(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(sampleView(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("\n  ")) {
		t.Error("output not indented, want pretty-printed JSON")
	}
}
