package internal

import "fmt"

// LoadError represents errors reading a replay payload from disk
type LoadError struct {
	Path string
	Op   string // "open", "read", "decode"
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// DecodeError represents errors decoding recorded data
type DecodeError struct {
	Source string // "payload", "recordings"
	Key    string // item id, session id, or file path
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RecordingError represents errors accessing the recordings catalog
type RecordingError struct {
	SessionID string
	Err       error
}

func (e *RecordingError) Error() string {
	return fmt.Sprintf("recording error [%s]: %v", e.SessionID, e.Err)
}

func (e *RecordingError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
