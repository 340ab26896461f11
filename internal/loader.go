package internal

import (
	"encoding/json"
	"os"

	"github.com/google/uuid"
)

// LoadReplayPayload reads a recorded session payload from a JSON file. This
// is the single inbound fetch boundary: the engine itself never retries or
// paginates.
func LoadReplayPayload(path string) (*ReplayPayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Op: "read", Err: err}
	}
	payload, err := DecodeReplayPayload(data)
	if err != nil {
		return nil, &LoadError{Path: path, Op: "decode", Err: err}
	}
	return payload, nil
}

// DecodeReplayPayload decodes a payload leniently: the envelope must parse,
// but individual timeline items and file snapshots that fail to decode are
// logged and skipped rather than failing the whole payload.
func DecodeReplayPayload(data []byte) (*ReplayPayload, error) {
	var envelope struct {
		SessionStartTime int64             `json:"sessionStartTime"`
		Duration         int64             `json:"duration"`
		TimelineItems    []json.RawMessage `json:"timelineItems"`
		Files            []json.RawMessage `json:"files"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &DecodeError{Source: "payload", Key: "envelope", Err: err}
	}

	payload := &ReplayPayload{
		SessionStartTime: envelope.SessionStartTime,
		Duration:         envelope.Duration,
		TimelineItems:    make([]TimelineItem, 0, len(envelope.TimelineItems)),
		Files:            make([]FileSnapshot, 0, len(envelope.Files)),
	}

	for i, raw := range envelope.TimelineItems {
		var item TimelineItem
		if err := json.Unmarshal(raw, &item); err != nil {
			LogWarn("Skipping malformed timeline item %d: %v", i, err)
			continue
		}
		if item.ID == "" {
			// Correlation joins need a key even for items recorded without one
			item.ID = uuid.NewString()
		}
		payload.TimelineItems = append(payload.TimelineItems, item)
	}

	for i, raw := range envelope.Files {
		var snap FileSnapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			LogWarn("Skipping malformed file snapshot %d: %v", i, err)
			continue
		}
		payload.Files = append(payload.Files, snap)
	}

	return payload, nil
}

// Session converts a payload into the immutable session handed to the store
func (p *ReplayPayload) Session(sessionID string) *RecordedSession {
	return &RecordedSession{
		SessionID: sessionID,
		StartTime: p.SessionStartTime,
		Duration:  p.Duration,
		Items:     p.TimelineItems,
		Files:     p.Files,
	}
}
