package internal

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenDatabase opens a recordings database in read-only mode
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// RecordingRow is one raw row of the recordings table
type RecordingRow struct {
	SessionID  string
	Payload    string
	RecordedAt int64
}

// QueryRecordings returns all recording rows, newest first
func QueryRecordings(db *sql.DB) ([]RecordingRow, error) {
	query := "SELECT session_id, payload, recorded_at FROM recordings WHERE payload IS NOT NULL ORDER BY recorded_at DESC"
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var recordings []RecordingRow
	for rows.Next() {
		var row RecordingRow
		var payload sql.NullString
		if err := rows.Scan(&row.SessionID, &payload, &row.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if payload.Valid {
			row.Payload = payload.String
			recordings = append(recordings, row)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return recordings, nil
}

// QueryRecording returns the payload for a single session
func QueryRecording(db *sql.DB, sessionID string) (string, error) {
	var payload string
	err := db.QueryRow("SELECT payload FROM recordings WHERE session_id = ?", sessionID).Scan(&payload)
	if err != nil {
		return "", fmt.Errorf("query failed: %w", err)
	}
	return payload, nil
}
