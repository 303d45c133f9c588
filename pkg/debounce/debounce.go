// Package debounce は値の変化を一定時間静定させてから通知するユーティリティを提供する。
package debounce

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Debouncer は最後のTriggerからwindowの間変化がなければ値を確定させる。
// 確定値が前回の確定値と異なる場合のみonSettleを呼び出す。
type Debouncer[T comparable] struct {
	clock    clock.WithDelayedExecution
	window   time.Duration
	onSettle func(T)

	mu      sync.Mutex
	timer   clock.Timer
	gen     uint64
	pending T
	settled T
	stopped bool
}

// New は新しいDebouncerを生成する。initialは初期の確定値。
func New[T comparable](clk clock.WithDelayedExecution, window time.Duration, initial T, onSettle func(T)) *Debouncer[T] {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Debouncer[T]{
		clock:    clk,
		window:   window,
		onSettle: onSettle,
		pending:  initial,
		settled:  initial,
	}
}

// Trigger は新しい観測値を受け付け、静定タイマーを再始動する。
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = v
	d.timer = d.clock.AfterFunc(d.window, func() { d.fire(gen) })
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	if d.pending == d.settled {
		d.mu.Unlock()
		return
	}
	d.settled = d.pending
	v := d.settled
	d.mu.Unlock()

	if d.onSettle != nil {
		d.onSettle(v)
	}
}

// Settled は現在の確定値を返す。
func (d *Debouncer[T]) Settled() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settled
}

// Pending は静定待ちの最新観測値を返す。
func (d *Debouncer[T]) Pending() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop は保留中のタイマーを破棄し、以降の通知を停止する。
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
