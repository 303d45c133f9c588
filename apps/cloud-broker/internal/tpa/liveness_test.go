package tpa

import (
	"testing"
	"time"
)

func TestHeartbeatHistoryKeepsRecent(t *testing.T) {
	h := newHeartbeatHistory(3)
	base := time.UnixMilli(1700000000000)
	for i := range 5 {
		h.record("r1", base.Add(time.Duration(i)*time.Second))
	}
	got := h.snapshot("r1")
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if !got[0].Equal(base.Add(2*time.Second)) || !got[2].Equal(base.Add(4*time.Second)) {
		t.Errorf("history = %v", got)
	}

	h.reset("r1", base)
	if got := h.snapshot("r1"); len(got) != 1 {
		t.Errorf("len after reset = %d, want 1", len(got))
	}
}

func TestIsStale(t *testing.T) {
	base := time.UnixMilli(1700000000000)
	window := 90 * time.Second
	every := func(interval time.Duration, n int) []time.Time {
		out := make([]time.Time, n)
		for i := range out {
			out[i] = base.Add(time.Duration(i) * interval)
		}
		return out
	}

	tests := []struct {
		name    string
		history []time.Time
		sinceHB time.Duration
		want    bool
	}{
		{"no history within window", nil, 60 * time.Second, false},
		{"no history past window", nil, 91 * time.Second, true},
		{"exactly at window", nil, 90 * time.Second, false},
		{"short interval past window", every(30*time.Second, 4), 91 * time.Second, true},
		{"long interval widens window", every(60*time.Second, 4), 110 * time.Second, false},
		{"long interval past widened window", every(60*time.Second, 4), 121 * time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := base
			if n := len(tt.history); n > 0 {
				last = tt.history[n-1]
			}
			got := isStale(base, tt.history, window, last.Add(tt.sinceHB))
			if got != tt.want {
				t.Errorf("isStale() = %v, want %v", got, tt.want)
			}
		})
	}
}
