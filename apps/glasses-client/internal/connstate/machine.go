// Package connstate はグラス接続状態の状態機械を提供する。
package connstate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/oyaguma3/glasses-session-broker/pkg/debounce"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	"k8s.io/utils/clock"
)

// State はグラスとの接続状態。
type State string

const (
	Disconnected State = "DISCONNECTED"
	Connecting   State = "CONNECTING"
	Connected    State = "CONNECTED"
)

// StopReasonDisconnected は切断確定時のアプリ停止理由
const StopReasonDisconnected = "glasses_disconnected"

// Valid は既知の状態かどうかを返す。
func (s State) Valid() bool {
	switch s {
	case Disconnected, Connecting, Connected:
		return true
	}
	return false
}

// Machine はグラスからの接続通知をデバウンスし、確定した遷移だけを処理する。
// 切断が確定した場合はデバイス側のアプリを全停止する。
// クラウド側のセッションはこの状態機械とは独立に維持される。
type Machine struct {
	ctx      context.Context
	stopper  AppStopper
	reporter StateReporter
	debounce *debounce.Debouncer[State]

	mu        sync.Mutex
	listeners []func(prev, next State)
	last      State
}

// NewMachine は新しいMachineを生成する。初期状態はDisconnected。
// ctxは確定時の通知処理に使う。
func NewMachine(ctx context.Context, clk clock.WithDelayedExecution, window time.Duration, stopper AppStopper, reporter StateReporter) *Machine {
	m := &Machine{
		ctx:      ctx,
		stopper:  stopper,
		reporter: reporter,
		last:     Disconnected,
	}
	m.debounce = debounce.New(clk, window, Disconnected, m.settle)
	return m
}

// Observe はグラスからの接続状態通知を受け付ける。
// 未知の状態は無視する。
func (m *Machine) Observe(s State) {
	if !s.Valid() {
		slog.Warn("unknown glasses connection state ignored", "state", string(s))
		return
	}
	m.debounce.Trigger(s)
}

// State は確定済みの接続状態を返す。
func (m *Machine) State() State {
	return m.debounce.Settled()
}

// OnSettled は状態確定時に呼ばれるリスナーを登録する。
func (m *Machine) OnSettled(fn func(prev, next State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Stop は保留中の通知を破棄する。
func (m *Machine) Stop() {
	m.debounce.Stop()
}

// settle は確定した状態遷移を処理する。
func (m *Machine) settle(next State) {
	m.mu.Lock()
	prev := m.last
	m.last = next
	listeners := append([]func(prev, next State){}, m.listeners...)
	m.mu.Unlock()

	slog.Info("glasses connection state settled",
		logging.FieldEventID, logging.EventGlassesState,
		"from", string(prev),
		"to", string(next),
	)

	if next == Disconnected && m.stopper != nil {
		m.stopper.StopAllApps(m.ctx, StopReasonDisconnected)
	}
	if m.reporter != nil {
		if err := m.reporter.ReportGlassesState(m.ctx, next); err != nil {
			slog.Warn("failed to report glasses state",
				logging.FieldEventID, logging.EventUplinkSendFail,
				logging.FieldError, err.Error(),
				"state", string(next),
			)
		}
	}
	for _, fn := range listeners {
		fn(prev, next)
	}
}
