package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner("Rendering svg...")
	s.w = &buf
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Rendering svg...") {
		t.Errorf("spinner output = %q, want message", buf.String())
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after a plain Stop")
	}
}

func TestSpinnerUpdate(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner("first")
	s.w = &buf
	s.Update("second")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if strings.Contains(buf.String(), "first") {
		t.Errorf("spinner drew replaced message: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "second") {
		t.Errorf("spinner output = %q, want updated message", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Testing with context...")
	s.w = &bytes.Buffer{}
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Testing with timeout...")
	s.w = &bytes.Buffer{}
	s.Start()

	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Testing idempotent stop...")
	s.w = &bytes.Buffer{}
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithMessage(t *testing.T) {
	var buf bytes.Buffer
	restore := captureOutput(&buf)
	defer restore()

	s := newSpinner("Working...")
	s.w = &bytes.Buffer{}
	s.Start()
	s.StopWithSuccess("Done!")

	s = newSpinner("Working...")
	s.w = &bytes.Buffer{}
	s.Start()
	s.StopWithError("Failed!")

	got := buf.String()
	if !strings.Contains(got, "Done!") || !strings.Contains(got, "Failed!") {
		t.Errorf("output = %q, want both messages", got)
	}
}
