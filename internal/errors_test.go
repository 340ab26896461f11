package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{"load", &LoadError{Path: "/tmp/p.json", Op: "read", Err: cause}, []string{"read", "/tmp/p.json", "boom"}},
		{"decode", &DecodeError{Source: "payload", Key: "envelope", Err: cause}, []string{"payload", "envelope", "boom"}},
		{"recording", &RecordingError{SessionID: "session-1", Err: cause}, []string{"session-1", "boom"}},
		{"export", &ExportError{Format: "yaml", Path: "out.yaml", Err: cause}, []string{"yaml", "out.yaml", "boom"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, part := range tt.want {
				if !strings.Contains(msg, part) {
					t.Errorf("Error() = %q, want it to contain %q", msg, part)
				}
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")

	tests := []struct {
		name string
		err  error
	}{
		{"load", &LoadError{Path: "p", Op: "read", Err: cause}},
		{"decode", &DecodeError{Source: "payload", Key: "k", Err: cause}},
		{"recording", &RecordingError{SessionID: "s", Err: cause}},
		{"export", &ExportError{Format: "json", Path: "p", Err: cause}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, cause) {
				t.Errorf("errors.Is(%T, cause) = false, want true", tt.err)
			}
		})
	}
}
