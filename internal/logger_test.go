package internal

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldLogger := logger
	oldLevel := logLevel
	logger = log.New(&buf, "", 0)
	t.Cleanup(func() {
		logger = oldLogger
		logLevel = oldLevel
	})
	return &buf
}

func TestLogLevelFiltering(t *testing.T) {
	buf := captureLog(t)
	SetLogLevel(LogLevelWarn)

	LogError("e")
	LogWarn("w")
	LogInfo("i")
	LogDebug("d")

	out := buf.String()
	if !strings.Contains(out, "[ERROR] e") {
		t.Error("error message missing at warn level")
	}
	if !strings.Contains(out, "[WARN] w") {
		t.Error("warn message missing at warn level")
	}
	if strings.Contains(out, "[INFO]") || strings.Contains(out, "[DEBUG]") {
		t.Errorf("info/debug leaked at warn level: %q", out)
	}
}

func TestSetVerbose(t *testing.T) {
	buf := captureLog(t)

	SetVerbose(true)
	LogDebug("verbose on")
	if !strings.Contains(buf.String(), "[DEBUG] verbose on") {
		t.Error("debug message missing with verbose enabled")
	}

	buf.Reset()
	SetVerbose(false)
	LogDebug("verbose off")
	if strings.Contains(buf.String(), "verbose off") {
		t.Error("debug message leaked with verbose disabled")
	}
}
