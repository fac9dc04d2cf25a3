package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner("computing layout")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
}

func TestSpinnerCancelledByContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "computing layout")
	s.Start()
	cancel()

	// Give the goroutine time to notice cancellation.
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should report cancelled after context cancellation")
	}
}

func TestSpinnerCancelledByTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "computing layout")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should report cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("computing layout")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerSetMessage(t *testing.T) {
	s := newSpinner("computing layout")
	s.Start()
	s.SetMessage("rendering artifacts")
	time.Sleep(100 * time.Millisecond)
	s.Stop()
}

func TestSpinnerStopWithResult(t *testing.T) {
	s := newSpinner("computing layout")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("layout written")

	s = newSpinner("computing layout")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("layout failed")
}
