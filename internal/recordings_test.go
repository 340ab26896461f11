package internal

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/iksnae/session-replay/testutil"
)

func catalogFixture(t *testing.T) *Catalog {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "recordings.db")
	testutil.CreateRecordingsFixture(t, dbPath, map[string][]byte{
		"session-good":   testutil.SamplePayload(t, 1700000000000),
		"session-broken": []byte(`not a payload`),
	})

	db, err := OpenDatabase(dbPath)
	if err != nil {
		t.Fatalf("OpenDatabase() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewCatalog(db)
}

func TestCatalogListSkipsBrokenPayloads(t *testing.T) {
	catalog := catalogFixture(t)

	infos, err := catalog.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("List() len = %v, want 1 (broken payload skipped)", len(infos))
	}

	info := infos[0]
	if info.SessionID != "session-good" {
		t.Errorf("SessionID = %v, want session-good", info.SessionID)
	}
	if info.Duration != 60000 {
		t.Errorf("Duration = %v, want 60000", info.Duration)
	}
	if info.ItemCount != 6 {
		t.Errorf("ItemCount = %v, want 6", info.ItemCount)
	}
	if info.FileCount != 2 {
		t.Errorf("FileCount = %v, want 2", info.FileCount)
	}
}

func TestCatalogLoad(t *testing.T) {
	catalog := catalogFixture(t)

	session, err := catalog.Load("session-good")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if session.SessionID != "session-good" {
		t.Errorf("SessionID = %v, want session-good", session.SessionID)
	}
	if session.Duration != 60000 {
		t.Errorf("Duration = %v, want 60000", session.Duration)
	}
	if len(session.Items) != 6 {
		t.Errorf("Items len = %v, want 6", len(session.Items))
	}
}

func TestCatalogLoadMissing(t *testing.T) {
	catalog := catalogFixture(t)

	_, err := catalog.Load("no-such-session")
	if err == nil {
		t.Fatal("Load() error = nil, want error")
	}

	var recErr *RecordingError
	if !errors.As(err, &recErr) {
		t.Fatalf("error type = %T, want *RecordingError", err)
	}
	if recErr.SessionID != "no-such-session" {
		t.Errorf("RecordingError.SessionID = %v, want no-such-session", recErr.SessionID)
	}
}

func TestCatalogLoadBrokenPayload(t *testing.T) {
	catalog := catalogFixture(t)

	if _, err := catalog.Load("session-broken"); err == nil {
		t.Error("Load() error = nil for undecodable payload, want error")
	}
}

func TestOpenDatabaseMissing(t *testing.T) {
	if _, err := OpenDatabase(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("OpenDatabase() error = nil for a nonexistent read-only database, want error")
	}
}
