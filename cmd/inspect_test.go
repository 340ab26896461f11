package cmd

import (
	"testing"

	"github.com/iksnae/session-replay/internal"
	"github.com/iksnae/session-replay/testutil"
)

func TestSummarize(t *testing.T) {
	payload, err := internal.DecodeReplayPayload(testutil.SamplePayload(t, 1700000000000))
	if err != nil {
		t.Fatalf("DecodeReplayPayload() error = %v", err)
	}

	summary := summarize(payload.Session("session-1"))

	if summary.SessionID != "session-1" {
		t.Errorf("SessionID = %v, want session-1", summary.SessionID)
	}
	if summary.Duration != 60000 {
		t.Errorf("Duration = %v, want 60000", summary.Duration)
	}
	if summary.ItemCount != 6 {
		t.Errorf("ItemCount = %v, want 6", summary.ItemCount)
	}
	if summary.Messages != 2 {
		t.Errorf("Messages = %v, want 2", summary.Messages)
	}
	if summary.ToolCalls != 2 {
		t.Errorf("ToolCalls = %v, want 2", summary.ToolCalls)
	}
	if summary.ToolResults != 1 {
		t.Errorf("ToolResults = %v, want 1", summary.ToolResults)
	}
	if summary.Stages != 1 {
		t.Errorf("Stages = %v, want 1", summary.Stages)
	}
	if len(summary.Files) != 1 || summary.Files[0] != "main.go" {
		t.Errorf("Files = %v, want [main.go]", summary.Files)
	}
}

func TestInspectRequiresSession(t *testing.T) {
	oldFile := inspectFile
	defer func() { inspectFile = oldFile }()
	inspectFile = ""

	if _, err := executeCommand("inspect", "--file", ""); err == nil {
		t.Error("Execute(inspect) error = nil without a session, want error")
	}
}
