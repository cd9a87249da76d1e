package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/five82/petdesk/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 200; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type countingRefresher struct {
	mu    sync.Mutex
	calls int
	out   state.Outcome
}

func (r *countingRefresher) Refresh(context.Context) state.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.out
}

func (r *countingRefresher) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func TestStartPoller_RefreshesUntilCancelled(t *testing.T) {
	r := &countingRefresher{out: state.Outcome{Source: state.SourceBackend}}
	ctx, cancel := context.WithCancel(context.Background())
	done := StartPoller(ctx, r, 5*time.Millisecond, nil)

	deadline := time.Now().Add(2 * time.Second)
	for r.Calls() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("poller made %d calls, want at least 3", r.Calls())
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("poller did not stop after cancel")
	}
	stopped := r.Calls()
	time.Sleep(20 * time.Millisecond)
	if r.Calls() != stopped {
		t.Fatalf("poller kept refreshing after stop: %d -> %d", stopped, r.Calls())
	}
}

func TestStartPoller_BacksOffOnFailure(t *testing.T) {
	r := &countingRefresher{out: state.Outcome{Source: state.SourceSamples, Err: errors.New("down")}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartPoller(ctx, r, 10*time.Millisecond, nil)

	// Waits are 10, 20, 40, 80ms...; 120ms fits at most four refreshes.
	time.Sleep(120 * time.Millisecond)
	if calls := r.Calls(); calls < 1 || calls > 4 {
		t.Fatalf("calls = %d, want between 1 and 4 with backoff", calls)
	}
}

func TestStartPoller_DisabledInterval(t *testing.T) {
	r := &countingRefresher{}
	done := StartPoller(context.Background(), r, 0, nil)
	select {
	case <-done:
	default:
		t.Fatalf("disabled poller should report done immediately")
	}
	if r.Calls() != 0 {
		t.Fatalf("calls = %d, want 0", r.Calls())
	}
}
