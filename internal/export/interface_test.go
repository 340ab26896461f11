package export

import (
	"testing"

	"github.com/iksnae/session-replay/internal"
)

func sampleView() *internal.ReplayView {
	return &internal.ReplayView{
		SessionID: "session-1",
		Playhead:  30000,
		Duration:  60000,
		Messages: []internal.ReplayMessage{
			{ID: "msg-1", Role: "user", Content: "Build me an *app*", Timestamp: 1700000001000},
			{ID: "msg-2", Role: "assistant", Content: "Working on it", Timestamp: 1700000020000},
		},
		ToolCalls: []internal.ReplayToolCall{
			{ID: "call-1", Name: "planArchitecture", Args: "{}", Timestamp: 1700000002000},
			{ID: "call-2", Name: "writeFile", Args: `{"path":"main.go"}`, Timestamp: 1700000010000},
		},
		ToolResults: []internal.ReplayToolResult{
			{ID: "result-call-1", CallID: "call-1", Payload: `{"models":2}`, Timestamp: 1700000005000},
		},
		Stages: []internal.ReplayStage{
			{ID: "stage-1", StageType: "generation", Status: "completed", Timestamp: 1700000015000},
		},
		Files: []internal.ReplayFile{
			{Path: "main.go", Content: "package main"},
		},
	}
}

func TestNewExporter(t *testing.T) {
	tests := []struct {
		format    string
		extension string
	}{
		{"json", "json"},
		{"jsonl", "jsonl"},
		{"yaml", "yaml"},
		{"md", "md"},
		{"markdown", "md"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			exporter, err := NewExporter(tt.format)
			if err != nil {
				t.Fatalf("NewExporter(%q) error = %v", tt.format, err)
			}
			if got := exporter.Extension(); got != tt.extension {
				t.Errorf("Extension() = %v, want %v", got, tt.extension)
			}
		})
	}
}

func TestNewExporterUnsupported(t *testing.T) {
	if _, err := NewExporter("xml"); err == nil {
		t.Error("NewExporter(xml) error = nil, want unsupported format error")
	}
}
