// Package mic はデバイス側のマイク経路の選択と切り替えを提供する。
package mic

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	"k8s.io/utils/clock"
)

// Mode はマイク経路。
type Mode string

const (
	ModePhoneNormal    Mode = "phone-normal"
	ModeBluetoothSCO   Mode = "bluetooth-sco"
	ModeGlassesOnboard Mode = "glasses-onboard"
	ModePaused         Mode = "paused"
)

// Arbiter はマイク経路を選択する。
// Bluetoothアクセサリが現れたら即座にSCO経路を試み、
// 初回を含めmaxRetries+1回失敗したら直前の経路へ戻す。試行の間はretryInterval待ち、
// 待機中はロックを手放す。待機中に別の経路が選ばれた場合、再試行はそこで打ち切る。
// 通話中は電話側マイクを使わず、グラスのマイクがあればそちらへ、なければ一時停止する。
// 全操作は内部ロックで直列化される。
type Arbiter struct {
	route          Route
	glasses        GlassesMic
	clock          clock.Clock
	attemptTimeout time.Duration
	retryInterval  time.Duration
	maxRetries     int

	mu         sync.Mutex
	mode       Mode
	notified   Mode
	enabled    bool
	bluetooth  bool
	callActive bool
	listeners  []func(Mode)
	// routeGen は経路の選択ごとに進む。再試行の待機明けに自分が最新か確かめる
	routeGen   uint64
	scoWaiting bool
}

// NewArbiter は新しいArbiterを生成する。初期状態は一時停止。
func NewArbiter(route Route, glasses GlassesMic, clk clock.Clock, attemptTimeout, retryInterval time.Duration, maxRetries int) *Arbiter {
	return &Arbiter{
		route:          route,
		glasses:        glasses,
		clock:          clk,
		attemptTimeout: attemptTimeout,
		retryInterval:  retryInterval,
		maxRetries:     maxRetries,
		mode:           ModePaused,
		notified:       ModePaused,
	}
}

// Mode は現在の経路を返す。
func (a *Arbiter) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// OnChange は経路変更時に呼ばれるリスナーを登録する。
func (a *Arbiter) OnChange(fn func(Mode)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, fn)
}

// SetEnabled はマイク使用要否を切り替える。クラウドのmicrophone_state_changeに対応する。
func (a *Arbiter) SetEnabled(ctx context.Context, enabled bool) {
	a.do(func() {
		if a.enabled == enabled {
			return
		}
		a.enabled = enabled
		if enabled {
			a.startPreferredLocked(ctx)
			return
		}
		a.pauseLocked()
	})
}

// OnBluetoothConnected はBluetoothマイクの接続を通知する。
func (a *Arbiter) OnBluetoothConnected(ctx context.Context) {
	a.do(func() {
		a.bluetooth = true
		if !a.enabled || a.callActive || a.mode == ModeBluetoothSCO || a.scoWaiting {
			return
		}
		a.trySCOLocked(ctx, a.mode)
	})
}

// OnBluetoothDisconnected はBluetoothマイクの切断を通知する。
func (a *Arbiter) OnBluetoothDisconnected(ctx context.Context) {
	a.do(func() {
		a.bluetooth = false
		if a.mode != ModeBluetoothSCO && !a.scoWaiting {
			return
		}
		a.switchNormalLocked(ctx)
	})
}

// OnCallStateChanged は通話状態の変化を通知する。
func (a *Arbiter) OnCallStateChanged(ctx context.Context, active bool) {
	a.do(func() {
		if a.callActive == active {
			return
		}
		a.callActive = active
		if !a.enabled {
			return
		}
		if active {
			a.switchGlassesLocked(ctx)
			return
		}
		a.startPreferredLocked(ctx)
	})
}

// Close は現在の経路を停止する。
func (a *Arbiter) Close() {
	a.do(func() {
		a.enabled = false
		a.pauseLocked()
	})
}

// do はfnをロック下で実行し、最後に通知した経路から変わっていればリスナーへ通知する。
func (a *Arbiter) do(fn func()) {
	a.mu.Lock()
	fn()
	after := a.mode
	if after == a.notified {
		a.mu.Unlock()
		return
	}
	a.notified = after
	listeners := append([]func(Mode){}, a.listeners...)
	a.mu.Unlock()

	for _, l := range listeners {
		l(after)
	}
}

// startPreferredLocked は優先順位に従って経路を選ぶ。
func (a *Arbiter) startPreferredLocked(ctx context.Context) {
	switch {
	case a.callActive:
		a.switchGlassesLocked(ctx)
	case a.bluetooth:
		a.trySCOLocked(ctx, ModePhoneNormal)
	default:
		a.switchNormalLocked(ctx)
	}
}

// trySCOLocked はSCO経路を試行し、すべて失敗したらfallbackへ戻す。
func (a *Arbiter) trySCOLocked(ctx context.Context, fallback Mode) {
	gen := a.selectRouteLocked()
	a.stopCurrentLocked()
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if attempt > 0 && !a.waitRetryLocked(ctx, gen) {
			return
		}
		err := a.startLocked(ctx, ModeBluetoothSCO)
		if err == nil {
			a.setModeLocked(ModeBluetoothSCO)
			return
		}
		slog.Warn("bluetooth microphone start failed",
			logging.FieldEventID, logging.EventMicRouteFail,
			logging.FieldError, err.Error(),
			"attempt", attempt+1,
		)
		if ctx.Err() != nil {
			a.setModeLocked(ModePaused)
			return
		}
	}

	switch fallback {
	case ModeGlassesOnboard:
		a.switchGlassesLocked(ctx)
	default:
		a.switchNormalLocked(ctx)
	}
}

// waitRetryLocked はロックを手放して再試行間隔だけ待つ。
// 待機中に別の経路が選ばれていればfalseを返す。ctxが終了した場合は一時停止にしてfalseを返す。
func (a *Arbiter) waitRetryLocked(ctx context.Context, gen uint64) bool {
	a.scoWaiting = true
	a.mu.Unlock()

	timer := a.clock.NewTimer(a.retryInterval)
	select {
	case <-ctx.Done():
	case <-timer.C():
	}
	timer.Stop()

	a.mu.Lock()
	if a.routeGen != gen {
		return false
	}
	a.scoWaiting = false
	if ctx.Err() != nil {
		a.setModeLocked(ModePaused)
		return false
	}
	return true
}

// selectRouteLocked は新しい経路の選択を記録し、待機中のSCO再試行を打ち切る。
func (a *Arbiter) selectRouteLocked() uint64 {
	a.routeGen++
	a.scoWaiting = false
	return a.routeGen
}

// switchNormalLocked は電話本体のマイクへ切り替える。失敗したらグラスのマイクを試す。
func (a *Arbiter) switchNormalLocked(ctx context.Context) {
	a.selectRouteLocked()
	if a.callActive {
		a.pauseLocked()
		return
	}
	a.stopCurrentLocked()
	if err := a.startLocked(ctx, ModePhoneNormal); err != nil {
		slog.Warn("phone microphone start failed",
			logging.FieldEventID, logging.EventMicRouteFail,
			logging.FieldError, err.Error(),
		)
		a.switchGlassesLocked(ctx)
		return
	}
	a.setModeLocked(ModePhoneNormal)
}

// switchGlassesLocked はグラス内蔵マイクへ切り替える。使えなければ一時停止する。
func (a *Arbiter) switchGlassesLocked(ctx context.Context) {
	a.selectRouteLocked()
	if a.glasses == nil || !a.glasses.HasMicrophone() {
		a.pauseLocked()
		return
	}
	if a.mode == ModeGlassesOnboard {
		return
	}
	a.stopCurrentLocked()
	if err := a.startLocked(ctx, ModeGlassesOnboard); err != nil {
		slog.Warn("glasses microphone start failed",
			logging.FieldEventID, logging.EventMicRouteFail,
			logging.FieldError, err.Error(),
		)
		a.setModeLocked(ModePaused)
		return
	}
	a.setModeLocked(ModeGlassesOnboard)
}

// pauseLocked は録音を停止する。
func (a *Arbiter) pauseLocked() {
	a.selectRouteLocked()
	a.stopCurrentLocked()
	a.setModeLocked(ModePaused)
}

// stopCurrentLocked は現在の経路を停止する。通知は最終的な経路の確定時にまとめて行う。
func (a *Arbiter) stopCurrentLocked() {
	if a.mode != ModePaused {
		a.route.Stop(a.mode)
		a.mode = ModePaused
	}
}

// startLocked は試行時間内に経路を開始する。
func (a *Arbiter) startLocked(ctx context.Context, mode Mode) error {
	attemptCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- a.route.Start(attemptCtx, mode) }()

	timer := a.clock.NewTimer(a.attemptTimeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C():
		cancel()
		if err := <-done; err == nil {
			a.route.Stop(mode)
		}
		return ErrAttemptTimeout
	}
}

// setModeLocked は経路を更新する。
func (a *Arbiter) setModeLocked(mode Mode) {
	if a.mode == mode {
		return
	}
	slog.Info("microphone route changed",
		logging.FieldEventID, logging.EventMicRoute,
		"mode", string(mode),
	)
	a.mode = mode
}
