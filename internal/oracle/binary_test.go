package oracle

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/me/kborch/pkg/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// shSource builds a BinarySource that runs a shell snippet.
func shSource(t *testing.T, script string, timeout time.Duration) *BinarySource {
	t.Helper()
	return NewBinarySource("/bin/sh", []string{"-c", script}, timeout, testLogger())
}

func TestBinarySource_Fetch(t *testing.T) {
	src := shSource(t, `echo '`+directPayload+`'`, 5*time.Second)

	rec, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if rec != wantRecord {
		t.Errorf("record = %+v, want %+v", rec, wantRecord)
	}
}

// Diagnostic chatter before the verdict is ignored; the last line wins.
func TestBinarySource_LastLineWins(t *testing.T) {
	src := shSource(t, `echo 'sampling pool...'; echo '`+directPayload+`'`, 5*time.Second)

	rec, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if rec.Decision != model.DecisionKeep {
		t.Errorf("decision = %q, want Keep", rec.Decision)
	}
}

func TestBinarySource_MissingBinary(t *testing.T) {
	src := NewBinarySource("/nonexistent/entropy_health", nil, time.Second, testLogger())

	if _, err := src.Fetch(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestBinarySource_NonZeroExit(t *testing.T) {
	src := shSource(t, `exit 3`, time.Second)

	if _, err := src.Fetch(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestBinarySource_EmptyOutput(t *testing.T) {
	src := shSource(t, `true`, time.Second)

	if _, err := src.Fetch(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestBinarySource_Timeout(t *testing.T) {
	src := shSource(t, `sleep 5`, 50*time.Millisecond)

	if _, err := src.Fetch(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

// Garbage output is a normalization failure, not a transport one.
func TestBinarySource_GarbageOutput(t *testing.T) {
	src := shSource(t, `echo 'not json'`, time.Second)

	if _, err := src.Fetch(context.Background()); !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}
