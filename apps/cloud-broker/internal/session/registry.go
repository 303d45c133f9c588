package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	"github.com/oyaguma3/glasses-session-broker/pkg/protocol"
	"k8s.io/utils/clock"
)

// DetachHook はセッション破棄時に呼び出されるコールバック。
// 破棄時点で起動していたアプリの一覧を受け取る。
type DetachHook func(sess *UserSession, apps []AppConnection)

// Registry は全ユーザーセッションを所有する。
// ユーザーごとに有効なデバイスセッションは常に1つ。
type Registry struct {
	opts   Options
	clock  clock.PassiveClock
	fields *logging.CommonFields

	mu     sync.RWMutex
	byUser map[string]*UserSession
	byID   map[string]*UserSession
	hooks  []DetachHook
}

// NewRegistry は新しいRegistryを生成する。
func NewRegistry(opts Options, clk clock.PassiveClock, fields *logging.CommonFields) *Registry {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if fields == nil {
		fields = logging.NewCommonFields(nil)
	}
	return &Registry{
		opts:   opts,
		clock:  clk,
		fields: fields,
		byUser: make(map[string]*UserSession),
		byID:   make(map[string]*UserSession),
	}
}

// OnDetach はセッション破棄時のフックを登録する。
func (r *Registry) OnDetach(hook DetachHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, hook)
}

// Attach は認証済みデバイス接続をユーザーのセッションに結び付ける。
// 既存セッションがあればデバイス接続を差し替えて再利用し、resumed=trueを返す。
// 差し替えられた旧接続は閉じられる。
func (r *Registry) Attach(userID string, conn Connection) (sess *UserSession, resumed bool) {
	r.mu.Lock()
	existing, ok := r.byUser[userID]
	if !ok {
		sess = newUserSession(uuid.NewString(), userID, conn, r.clock.Now(), r.opts)
		r.byUser[userID] = sess
		r.byID[sess.id] = sess
		r.mu.Unlock()

		slog.Info("session attached", r.fields.SessionLogFields(logging.EventSessionAttach, sess.id, userID)...)
		return sess, false
	}
	old := existing.replaceDevice(conn)
	r.mu.Unlock()

	if old != nil && old != conn {
		old.Close("superseded by new connection")
		slog.Info("previous device connection superseded",
			r.fields.SessionLogFields(logging.EventSessionSupersede, existing.id, userID)...)
	} else {
		slog.Info("session resumed",
			r.fields.SessionLogFields(logging.EventSessionAttach, existing.id, userID)...)
	}
	return existing, true
}

// Lookup はユーザーIDでセッションを検索する。
func (r *Registry) Lookup(userID string) (*UserSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.byUser[userID]
	return sess, ok
}

// LookupBySessionID はセッションIDでセッションを検索する。
func (r *Registry) LookupBySessionID(sessionID string) (*UserSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.byID[sessionID]
	return sess, ok
}

// GetSessionsForUser はユーザーのセッション一覧を返す（0件または1件）。
func (r *Registry) GetSessionsForUser(userID string) []*UserSession {
	if sess, ok := r.Lookup(userID); ok {
		return []*UserSession{sess}
	}
	return nil
}

// Sessions は全セッションのスナップショットを返す。
func (r *Registry) Sessions() []*UserSession {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*UserSession, 0, len(r.byID))
	for _, sess := range r.byID {
		out = append(out, sess)
	}
	return out
}

// Count は現在のセッション数を返す。
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// MarkDisconnected はデバイス接続の切断を記録し、猶予期間を開始する。
// connが既に差し替えられている場合は何もしない。
func (r *Registry) MarkDisconnected(sessionID string, conn Connection) bool {
	sess, ok := r.LookupBySessionID(sessionID)
	if !ok {
		return false
	}
	if !sess.markDeviceDisconnected(conn, r.clock.Now()) {
		return false
	}
	slog.Info("device disconnected, grace period started",
		append(r.fields.SessionLogFields(logging.EventSessionDisconnect, sessionID, sess.userID),
			"grace_period", r.opts.GracePeriod.String())...)
	return true
}

// Detach はセッションを破棄する。全アプリ接続に停止を通知して閉じる。
func (r *Registry) Detach(sessionID, reason string) bool {
	sess, hooks, ok := r.remove(sessionID, nil)
	if !ok {
		return false
	}
	r.teardown(sess, hooks, reason)
	return true
}

// remove はcondを満たすセッションをマップから取り除く。
func (r *Registry) remove(sessionID string, cond func(*UserSession) bool) (*UserSession, []DetachHook, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.byID[sessionID]
	if !ok || (cond != nil && !cond(sess)) {
		return nil, nil, false
	}
	delete(r.byID, sessionID)
	if r.byUser[sess.userID] == sess {
		delete(r.byUser, sess.userID)
	}
	return sess, append([]DetachHook(nil), r.hooks...), true
}

func (r *Registry) teardown(sess *UserSession, hooks []DetachHook, reason string) {
	device, apps := sess.close()
	now := r.clock.Now().UnixMilli()
	for _, app := range apps {
		if app.Conn == nil {
			continue
		}
		_ = app.Conn.Send(&protocol.AppStopped{
			Type:      protocol.TypeAppStopped,
			SessionID: sess.id,
			Reason:    reason,
			Timestamp: now,
		})
		app.Conn.Close(reason)
	}
	if device != nil {
		device.Close(reason)
	}
	for _, hook := range hooks {
		hook(sess, apps)
	}

	slog.Info("session detached",
		append(r.fields.SessionLogFields(logging.EventSessionDetach, sess.id, sess.userID),
			"reason", reason, "app_count", len(apps))...)
}

// SweepDisconnected は猶予期間を超えて切断されたままのセッションを破棄する。
func (r *Registry) SweepDisconnected() int {
	now := r.clock.Now()
	expired := func(sess *UserSession) bool {
		since, ok := sess.DisconnectedSince()
		return ok && now.Sub(since) >= r.opts.GracePeriod
	}

	n := 0
	for _, candidate := range r.Sessions() {
		if !expired(candidate) {
			continue
		}
		// 判定から削除までの間に再接続された場合は対象外
		sess, hooks, ok := r.remove(candidate.id, expired)
		if !ok {
			continue
		}
		slog.Info("grace period elapsed",
			r.fields.SessionLogFields(logging.EventSessionGraceEnd, sess.id, sess.userID)...)
		r.teardown(sess, hooks, "device disconnected")
		n++
	}
	return n
}

// RunGraceSweeper はctxが終了するまで定期的にSweepDisconnectedを実行する。
func (r *Registry) RunGraceSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.SweepDisconnected()
		}
	}
}
