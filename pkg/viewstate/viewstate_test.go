package viewstate

import (
	"context"
	"errors"
	"testing"
	"time"
)

// waitFor polls the view until cond holds or the deadline passes.
func waitFor[T any](t *testing.T, v *View[T], cond func(State[T]) bool) State[T] {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s := v.Snapshot()
		if cond(s) {
			return s
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition never met, last state: %+v", v.Snapshot())
	return State[T]{}
}

// TestTriggerLifecycle walks idle -> loading -> success.
func TestTriggerLifecycle(t *testing.T) {
	var v View[int]
	if s := v.Snapshot(); s.IsLoading || s.Data != nil || s.Error != "" {
		t.Fatalf("zero view not idle: %+v", s)
	}

	release := make(chan struct{})
	v.Trigger(context.Background(), func(ctx context.Context) (int, error) {
		<-release
		return 42, nil
	})
	if s := v.Snapshot(); !s.IsLoading {
		t.Fatal("trigger did not enter loading state")
	}
	close(release)

	s := waitFor(t, &v, func(s State[int]) bool { return !s.IsLoading })
	if s.Data == nil || *s.Data != 42 || s.Error != "" {
		t.Errorf("unexpected final state: %+v", s)
	}
}

// TestTriggerError converts a load failure into the error field.
func TestTriggerError(t *testing.T) {
	var v View[int]
	v.Trigger(context.Background(), func(ctx context.Context) (int, error) {
		return 0, errors.New("load failed")
	})
	s := waitFor(t, &v, func(s State[int]) bool { return !s.IsLoading })
	if s.Error != "load failed" || s.Data != nil {
		t.Errorf("unexpected state: %+v", s)
	}
}

// TestSupersededResultDiscarded starts a slow load, supersedes it with a
// fast one, and asserts the slow completion cannot overwrite the newer
// result.
func TestSupersededResultDiscarded(t *testing.T) {
	var v View[string]
	slow := make(chan struct{})
	v.Trigger(context.Background(), func(ctx context.Context) (string, error) {
		<-slow
		return "old", nil
	})
	v.Trigger(context.Background(), func(ctx context.Context) (string, error) {
		return "new", nil
	})

	s := waitFor(t, &v, func(s State[string]) bool { return s.Data != nil })
	if *s.Data != "new" {
		t.Fatalf("expected new result, got %q", *s.Data)
	}
	// Let the superseded load finish and verify it is dropped.
	close(slow)
	time.Sleep(20 * time.Millisecond)
	if s := v.Snapshot(); s.Data == nil || *s.Data != "new" {
		t.Errorf("superseded result overwrote the cell: %+v", s)
	}
}

// TestNotifyFires checks the render callback runs on state changes.
func TestNotifyFires(t *testing.T) {
	var v View[int]
	fired := make(chan struct{}, 4)
	v.Notify = func() { fired <- struct{}{} }
	v.Trigger(context.Background(), func(ctx context.Context) (int, error) { return 1, nil })

	for i := 0; i < 2; i++ {
		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatalf("notify fired %d times, expected at least 2", i)
		}
	}
}
