package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLog_BufferAndWriter(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, zerolog.DebugLevel)

	Log("loaded %d comments", 3)
	LogError("GetComments", "owner/repo/1", errors.New("boom"))

	logs := GetLogs()
	if len(logs) != 2 {
		t.Fatalf("expected 2 buffered entries, got %d", len(logs))
	}
	if logs[0].Message != "[INFO] loaded 3 comments" {
		t.Errorf("unexpected first message %q", logs[0].Message)
	}
	if logs[1].Level != zerolog.ErrorLevel {
		t.Errorf("expected error level, got %v", logs[1].Level)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 JSON lines, got %d", len(lines))
	}
	var event map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &event); err != nil {
		t.Fatalf("invalid JSON line: %v", err)
	}
	if event["op"] != "GetComments" || event["error"] != "boom" {
		t.Errorf("unexpected error event %v", event)
	}
}

func TestLog_LevelFiltersWriterNotBuffer(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, zerolog.InfoLevel)

	LogFileOpen("/tmp/pats.json")

	if buf.Len() != 0 {
		t.Errorf("expected debug event filtered from writer, got %q", buf.String())
	}
	if logs := GetLogs(); len(logs) != 1 || logs[0].Message != "[FILE_OPEN] /tmp/pats.json" {
		t.Errorf("unexpected buffer %v", logs)
	}
}

func TestLog_RingBufferBound(t *testing.T) {
	InitWriter(&bytes.Buffer{}, zerolog.Disabled)

	for i := 0; i < maxBufferSize+10; i++ {
		Log("entry %d", i)
	}

	logs := GetLogs()
	if len(logs) != maxBufferSize {
		t.Fatalf("expected %d entries, got %d", maxBufferSize, len(logs))
	}
	if logs[0].Message != "[INFO] entry 10" {
		t.Errorf("expected oldest entries dropped, first is %q", logs[0].Message)
	}
}

func TestInit_BadPath(t *testing.T) {
	if err := Init("/nonexistent-dir/sub/app.log", zerolog.InfoLevel); err == nil {
		t.Error("expected error for unwritable path")
	}
}
