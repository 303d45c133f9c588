package tpa

import (
	"sync"
	"time"
)

// heartbeatHistory は登録ごとの直近のハートビート時刻を保持する。
type heartbeatHistory struct {
	size int

	mu   sync.Mutex
	byID map[string][]time.Time
}

func newHeartbeatHistory(size int) *heartbeatHistory {
	if size < 2 {
		size = 2
	}
	return &heartbeatHistory{size: size, byID: make(map[string][]time.Time)}
}

// record はハートビートを記録し、古いものから捨てる。
func (h *heartbeatHistory) record(id string, at time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	list := append(h.byID[id], at)
	if len(list) > h.size {
		list = list[len(list)-h.size:]
	}
	h.byID[id] = list
}

// reset は履歴をatのみにする。
func (h *heartbeatHistory) reset(id string, at time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.byID[id] = []time.Time{at}
}

func (h *heartbeatHistory) snapshot(id string) []time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]time.Time(nil), h.byID[id]...)
}

// effectiveWindow は直近の最大間隔の2倍と設定値の大きい方を返す。
// 送信間隔が長めのサーバーでも揺らぎでstale判定されないようにする。
func effectiveWindow(history []time.Time, window time.Duration) time.Duration {
	var maxGap time.Duration
	for i := 1; i < len(history); i++ {
		if gap := history[i].Sub(history[i-1]); gap > maxGap {
			maxGap = gap
		}
	}
	if 2*maxGap > window {
		return 2 * maxGap
	}
	return window
}

// isStale は最終ハートビートが有効期間内にないかどうかを返す。
func isStale(last time.Time, history []time.Time, window time.Duration, now time.Time) bool {
	if n := len(history); n > 0 && history[n-1].After(last) {
		last = history[n-1]
	}
	return now.Sub(last) > effectiveWindow(history, window)
}
