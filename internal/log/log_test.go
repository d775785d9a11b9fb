package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestNew_StripsTimestamps(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)
	logger.Info("hello", "key", "value")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not json: %v", err)
	}
	if _, ok := line["time"]; ok {
		t.Fatalf("expected no time attr, got %v", line)
	}
	if line["msg"] != "hello" || line["key"] != "value" {
		t.Fatalf("unexpected log line: %v", line)
	}
}

func TestFromContextOrDiscard(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	ctx := NewContext(context.Background(), logger)
	if got := FromContextOrDiscard(ctx); got != logger {
		t.Fatal("expected the logger stored in the context")
	}

	// A bare context still yields a usable logger.
	FromContextOrDiscard(context.Background()).Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("discard logger wrote output: %q", buf.String())
	}
}
