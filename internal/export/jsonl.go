package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/iksnae/session-replay/internal"
)

// JSONLExporter exports a replay view in JSONL format (one event per line,
// in timestamp order across all event types)
type JSONLExporter struct{}

type jsonlEvent struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Event     interface{} `json:"event"`
}

// Export exports a replay view to JSONL format
func (e *JSONLExporter) Export(view *internal.ReplayView, w io.Writer) error {
	events := make([]jsonlEvent, 0,
		len(view.Messages)+len(view.ToolCalls)+len(view.ToolResults)+len(view.Stages))

	for _, msg := range view.Messages {
		events = append(events, jsonlEvent{Type: internal.KindMessage, Timestamp: msg.Timestamp, Event: msg})
	}
	for _, call := range view.ToolCalls {
		events = append(events, jsonlEvent{Type: internal.KindToolCall, Timestamp: call.Timestamp, Event: call})
	}
	for _, result := range view.ToolResults {
		events = append(events, jsonlEvent{Type: internal.KindToolResult, Timestamp: result.Timestamp, Event: result})
	}
	for _, stage := range view.Stages {
		events = append(events, jsonlEvent{Type: internal.KindPipelineStage, Timestamp: stage.Timestamp, Event: stage})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp < events[j].Timestamp
	})

	enc := json.NewEncoder(w)
	for _, event := range events {
		if err := enc.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
