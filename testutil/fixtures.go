package testutil

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// SamplePayload returns a small recorded session payload covering every item
// kind. All timestamps are relative to startTime.
func SamplePayload(t *testing.T, startTime int64) []byte {
	t.Helper()
	payload := map[string]interface{}{
		"sessionStartTime": startTime,
		"duration":         60000,
		"timelineItems": []map[string]interface{}{
			{
				"id": "msg-1", "kind": "message", "role": "user",
				"content": "Build me an app", "timestamp": startTime + 1000,
			},
			{
				"id": "call-1", "kind": "tool_call", "name": "planArchitecture",
				"args": map[string]interface{}{}, "timestamp": startTime + 2000,
			},
			{
				"id": "res-1", "kind": "tool_result", "correlatesWithCallId": "call-1",
				"resultPayload": map[string]interface{}{"models": 2, "endpoints": 4, "components": 6},
				"timestamp":     startTime + 5000,
			},
			{
				"id": "call-2", "kind": "tool_call", "name": "writeFile",
				"args": map[string]interface{}{"path": "main.go"}, "timestamp": startTime + 8000,
			},
			{
				"id": "stage-1", "kind": "pipeline_stage", "stageType": "generation",
				"status": "completed", "timestamp": startTime + 9000,
			},
			{
				"id": "msg-2", "kind": "message", "role": "assistant",
				"content": "Done", "timestamp": startTime + 50000,
			},
		},
		"files": []map[string]interface{}{
			{"path": "main.go", "timestamp": startTime + 8000, "content": "package main"},
			{"path": "main.go", "timestamp": startTime + 40000, "content": "package main // v2"},
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal sample payload: %v", err)
	}
	return data
}

// WritePayloadFixture writes a payload file and returns its path
func WritePayloadFixture(t *testing.T, dir string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, "payload.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write payload fixture: %v", err)
	}
	return path
}

// CreateRecordingsFixture creates a recordings database fixture with one
// recorded session per payload in the map
func CreateRecordingsFixture(t *testing.T, dbPath string, payloads map[string][]byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS recordings (
		session_id TEXT PRIMARY KEY,
		payload TEXT,
		recorded_at INTEGER
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	recordedAt := int64(1700000000000)
	insertSQL := "INSERT INTO recordings (session_id, payload, recorded_at) VALUES (?, ?, ?)"
	for sessionID, payload := range payloads {
		if _, err := db.Exec(insertSQL, sessionID, string(payload), recordedAt); err != nil {
			t.Fatalf("Failed to insert recording %s: %v", sessionID, err)
		}
		recordedAt += 1000
	}
}
