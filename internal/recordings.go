package internal

import (
	"database/sql"
	"fmt"
)

// RecordingInfo summarizes one catalog entry for listing
type RecordingInfo struct {
	SessionID  string `json:"session_id" yaml:"session_id"`
	RecordedAt int64  `json:"recorded_at" yaml:"recorded_at"` // epoch milliseconds
	Duration   int64  `json:"duration" yaml:"duration"`       // milliseconds
	ItemCount  int    `json:"item_count" yaml:"item_count"`
	FileCount  int    `json:"file_count" yaml:"file_count"`
}

// Catalog provides access to finished generation sessions persisted in a
// recordings database.
type Catalog struct {
	db *sql.DB
}

// NewCatalog creates a catalog over an open database
func NewCatalog(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

// List returns summaries of all recordings, newest first. Rows whose payload
// fails to decode are logged and skipped.
func (c *Catalog) List() ([]RecordingInfo, error) {
	rows, err := QueryRecordings(c.db)
	if err != nil {
		return nil, fmt.Errorf("failed to query recordings: %w", err)
	}

	infos := make([]RecordingInfo, 0, len(rows))
	for _, row := range rows {
		payload, err := DecodeReplayPayload([]byte(row.Payload))
		if err != nil {
			LogWarn("Skipping recording %s: %v", row.SessionID, err)
			continue
		}
		infos = append(infos, RecordingInfo{
			SessionID:  row.SessionID,
			RecordedAt: row.RecordedAt,
			Duration:   payload.Duration,
			ItemCount:  len(payload.TimelineItems),
			FileCount:  len(payload.Files),
		})
	}

	return infos, nil
}

// Load fetches and decodes one recorded session
func (c *Catalog) Load(sessionID string) (*RecordedSession, error) {
	payload, err := QueryRecording(c.db, sessionID)
	if err != nil {
		return nil, &RecordingError{SessionID: sessionID, Err: err}
	}
	decoded, err := DecodeReplayPayload([]byte(payload))
	if err != nil {
		return nil, &RecordingError{SessionID: sessionID, Err: err}
	}
	return decoded.Session(sessionID), nil
}
