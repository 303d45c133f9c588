package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/session"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/store"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/subscription"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	"github.com/oyaguma3/glasses-session-broker/pkg/model"
	"github.com/oyaguma3/glasses-session-broker/pkg/protocol"
	"k8s.io/utils/clock"
)

// 停止理由
const (
	ReasonUserStop       = "stopped by user"
	ReasonUninstall      = "app uninstalled"
	ReasonConnectTimeout = "connect timeout"
	ReasonWebhookFailed  = "webhook failed"
	ReasonSuperseded     = "superseded by new connection"
)

type timerKey struct {
	sessionID   string
	packageName string
}

// Manager はTPAの起動・停止を管理する。
// アプリ状態の変更はすべてUserSessionのアクセサ経由で行う。
type Manager struct {
	registry       *session.Registry
	subs           *subscription.Registry
	catalog        AppCatalog
	webhook        WebhookClient
	settings       SettingsStore
	clock          clock.WithDelayedExecution
	connectTimeout time.Duration
	fields         *logging.CommonFields

	mu     sync.Mutex
	timers map[timerKey]clock.Timer
}

// NewManager は新しいManagerを生成する。
func NewManager(
	registry *session.Registry,
	subs *subscription.Registry,
	catalog AppCatalog,
	webhook WebhookClient,
	settings SettingsStore,
	clk clock.WithDelayedExecution,
	connectTimeout time.Duration,
	fields *logging.CommonFields,
) *Manager {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if fields == nil {
		fields = logging.NewCommonFields(nil)
	}
	return &Manager{
		registry:       registry,
		subs:           subs,
		catalog:        catalog,
		webhook:        webhook,
		settings:       settings,
		clock:          clk,
		connectTimeout: connectTimeout,
		fields:         fields,
		timers:         make(map[timerKey]clock.Timer),
	}
}

// StartApp はセッション内でアプリを起動する。
// 既に起動中であれば現在の状態を返し、副作用は起こさない。
// 接続エントリを先に確保して状態を通知し、Webhookの失敗や接続待ちタイムアウトで取り消す。
func (m *Manager) StartApp(ctx context.Context, sess *session.UserSession, packageName string) (*model.AppStateChange, error) {
	app, err := m.catalog.GetApp(ctx, packageName)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAppNotFound, packageName)
		}
		return nil, err
	}
	installed := m.installedApps(ctx, sess)
	now := m.clock.Now()

	entry, created := sess.ReserveApp(app, now)
	if !created {
		return sess.AppState(installed, now), nil
	}

	logFields := m.appLogFields(logging.EventAppStart, sess, packageName)
	slog.Info("app start requested", logFields...)

	state := m.pushState(sess, installed)
	m.armConnectTimeout(sess.ID(), packageName, entry.Attempt)

	if err := m.webhook.TriggerSessionRequest(ctx, app.WebhookURL, sess.ID(), sess.UserID()); err != nil {
		slog.Warn("app start webhook failed",
			append(m.appLogFields(logging.EventAppStartFail, sess, packageName), logging.FieldError, err.Error())...)
		if _, removed := sess.RemoveAppIfAttempt(packageName, entry.Attempt); removed {
			m.cancelTimer(sess.ID(), packageName)
			state = m.pushState(sess, installed)
			m.updateMicrophone(sess)
		}
		return state, fmt.Errorf("failed to start %s: %w", packageName, err)
	}
	return state, nil
}

// StopApp はセッション内のアプリを停止する。起動していなければ現在の状態をそのまま返す。
func (m *Manager) StopApp(ctx context.Context, sess *session.UserSession, packageName, reason string) (*model.AppStateChange, error) {
	installed := m.installedApps(ctx, sess)

	entry, ok := sess.RemoveApp(packageName)
	if !ok {
		return sess.AppState(installed, m.clock.Now()), nil
	}
	m.cancelTimer(sess.ID(), packageName)
	m.closeAppConn(sess, entry, reason)

	state := m.pushState(sess, installed)
	m.updateMicrophone(sess)
	slog.Info("app stopped",
		append(m.appLogFields(logging.EventAppStop, sess, packageName), "reason", reason)...)

	// TPAサーバーへの通知はベストエフォート
	if app, err := m.catalog.GetApp(ctx, packageName); err == nil {
		if err := m.webhook.TriggerStop(ctx, app.WebhookURL, sess.ID(), sess.UserID(), reason); err != nil {
			slog.Debug("stop webhook failed",
				append(m.appLogFields(logging.EventWebhookErr, sess, packageName), logging.FieldError, err.Error())...)
		}
	}
	return state, nil
}

// StopAppForUninstall はアンインストール時にアプリを停止する。
// セッションやアプリが存在しなくても失敗しない。
func (m *Manager) StopAppForUninstall(ctx context.Context, userID, packageName string) {
	sess, ok := m.registry.Lookup(userID)
	if !ok {
		return
	}
	if _, err := m.StopApp(ctx, sess, packageName, ReasonUninstall); err != nil {
		slog.Warn("stop for uninstall failed",
			append(m.appLogFields(logging.EventAppStop, sess, packageName), logging.FieldError, err.Error())...)
	}
}

// TriggerAppStateChange はユーザーのデバイスへ最新のアプリ状態を通知する。
func (m *Manager) TriggerAppStateChange(ctx context.Context, userID string) (*model.AppStateChange, error) {
	sess, ok := m.registry.Lookup(userID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return m.pushState(sess, m.installedApps(ctx, sess)), nil
}

// CurrentState は通知せずに現在のアプリ状態を返す。
func (m *Manager) CurrentState(ctx context.Context, sess *session.UserSession) *model.AppStateChange {
	return sess.AppState(m.installedApps(ctx, sess), m.clock.Now())
}

// ConfirmConnection はTPAの接続を確定する。
// セッションまたは起動エントリが存在しない場合はエラーを返す。
func (m *Manager) ConfirmConnection(sessionID, packageName string, conn session.Connection) (*session.UserSession, error) {
	sess, ok := m.registry.LookupBySessionID(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	old, ok := sess.ConfirmApp(packageName, conn)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAppNotRunning, packageName)
	}
	m.cancelTimer(sessionID, packageName)
	if old != nil {
		old.Close(ReasonSuperseded)
	}

	slog.Info("app connected", m.appLogFields(logging.EventAppConnect, sess, packageName)...)
	return sess, nil
}

// HandleAppDisconnect はTPA接続の切断を処理する。
// 正常切断はアプリの停止として扱い、異常切断は接続待ちタイムアウトまで再接続を待つ。
func (m *Manager) HandleAppDisconnect(ctx context.Context, sessionID, packageName string, conn session.Connection, abnormal bool) {
	sess, ok := m.registry.LookupBySessionID(sessionID)
	if !ok {
		return
	}

	if abnormal {
		attempt, ok := sess.DetachAppConn(packageName, conn)
		if !ok {
			return
		}
		m.armConnectTimeout(sessionID, packageName, attempt)
		slog.Warn("app connection lost, waiting for reconnect",
			m.appLogFields(logging.EventAppDisconnect, sess, packageName)...)
		return
	}

	if _, ok := sess.RemoveAppIfConn(packageName, conn); !ok {
		return
	}
	m.cancelTimer(sessionID, packageName)
	m.pushState(sess, m.installedApps(ctx, sess))
	m.updateMicrophone(sess)
	slog.Info("app disconnected", m.appLogFields(logging.EventAppDisconnect, sess, packageName)...)
}

// ReconnectApp はTPAサーバー再起動後にアプリ接続を張り直す。
// 再接続待ちの状態にしてからwebhookURLへ接続を依頼する。
func (m *Manager) ReconnectApp(ctx context.Context, sessionID, packageName, webhookURL string) error {
	sess, ok := m.registry.LookupBySessionID(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	attempt, ok := sess.MarkAppReconnecting(packageName)
	if !ok {
		return ErrAppNotRunning
	}
	m.armConnectTimeout(sessionID, packageName, attempt)

	if err := m.webhook.TriggerSessionRequest(ctx, webhookURL, sessionID, sess.UserID()); err != nil {
		return fmt.Errorf("failed to reconnect %s: %w", packageName, err)
	}
	return nil
}

// AppSettings はTPA接続確立時に渡す設定を返す。
func (m *Manager) AppSettings(ctx context.Context, userID, packageName string) json.RawMessage {
	if m.settings == nil {
		return nil
	}
	settings, err := m.settings.Get(ctx, userID, packageName)
	if err != nil {
		slog.Warn("failed to load app settings",
			logging.FieldEventID, logging.EventValkeyErr,
			logging.FieldPackageName, packageName,
			logging.FieldError, err.Error(),
		)
		return nil
	}
	return settings
}

// PushSettings は設定を保存し、起動中のTPAへ通知する。
// TPAへの通知はベストエフォートで、保存に失敗した場合のみエラーを返す。
func (m *Manager) PushSettings(ctx context.Context, userID, packageName string, settings json.RawMessage) error {
	if err := m.settings.Put(ctx, userID, packageName, settings); err != nil {
		return err
	}

	if sess, ok := m.registry.Lookup(userID); ok {
		err := sess.SendToApp(packageName, &protocol.SettingsUpdate{
			Type:        protocol.TypeSettingsUpdate,
			PackageName: packageName,
			Settings:    settings,
			Timestamp:   m.clock.Now().UnixMilli(),
		})
		if err != nil {
			slog.Debug("settings not delivered over websocket",
				append(m.appLogFields(logging.EventSettingsPush, sess, packageName), logging.FieldError, err.Error())...)
		}
	}

	app, err := m.catalog.GetApp(ctx, packageName)
	if err != nil || app.PublicURL == "" {
		return nil
	}
	if err := m.webhook.PushSettings(ctx, app.PublicURL, userID, settings); err != nil {
		slog.Warn("settings push to TPA server failed",
			logging.FieldEventID, logging.EventSettingsPush,
			logging.FieldPackageName, packageName,
			logging.FieldError, err.Error(),
		)
	}
	return nil
}

// UpdateMicrophone はマイク使用要否をデバイスへ通知する。
func (m *Manager) UpdateMicrophone(sess *session.UserSession) {
	m.updateMicrophone(sess)
}

func (m *Manager) updateMicrophone(sess *session.UserSession) {
	enabled := m.subs.MicrophoneRequired(sess)
	err := sess.SendToDevice(&protocol.MicrophoneStateChange{
		Type:                protocol.TypeMicrophoneStateChange,
		IsMicrophoneEnabled: enabled,
		Timestamp:           m.clock.Now().UnixMilli(),
	})
	if err != nil {
		return
	}
	slog.Debug("microphone state pushed",
		append(m.fields.SessionLogFields(logging.EventMicState, sess.ID(), sess.UserID()), "enabled", enabled)...)
}

// onConnectTimeout は接続待ちの期限切れを処理する。
// セッションはIDで引き直し、世代番号が一致する未接続エントリのみ取り消す。
func (m *Manager) onConnectTimeout(sessionID, packageName string, attempt uint64) {
	m.mu.Lock()
	delete(m.timers, timerKey{sessionID, packageName})
	m.mu.Unlock()

	sess, ok := m.registry.LookupBySessionID(sessionID)
	if !ok {
		return
	}
	if _, removed := sess.RemoveAppIfAttempt(packageName, attempt); !removed {
		return
	}

	slog.Warn("app did not connect in time",
		append(m.appLogFields(logging.EventAppConnectTimeout, sess, packageName),
			"timeout", m.connectTimeout.String())...)

	ctx, cancel := context.WithTimeout(context.Background(), m.connectTimeout)
	defer cancel()
	m.pushState(sess, m.installedApps(ctx, sess))
	m.updateMicrophone(sess)
}

func (m *Manager) armConnectTimeout(sessionID, packageName string, attempt uint64) {
	key := timerKey{sessionID, packageName}
	// コールバックはクロックのロック下で呼ばれうるため、別goroutineで処理する
	timer := m.clock.AfterFunc(m.connectTimeout, func() {
		go m.onConnectTimeout(sessionID, packageName, attempt)
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.timers[key]; ok {
		old.Stop()
	}
	m.timers[key] = timer
}

func (m *Manager) cancelTimer(sessionID, packageName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := timerKey{sessionID, packageName}
	if t, ok := m.timers[key]; ok {
		t.Stop()
		delete(m.timers, key)
	}
}

// CancelSessionTimers はセッション破棄時に接続待ちタイマーをすべて止める。
func (m *Manager) CancelSessionTimers(sess *session.UserSession, apps []session.AppConnection) {
	for _, app := range apps {
		m.cancelTimer(sess.ID(), app.PackageName)
	}
}

func (m *Manager) closeAppConn(sess *session.UserSession, entry session.AppConnection, reason string) {
	if entry.Conn == nil {
		return
	}
	_ = entry.Conn.Send(&protocol.AppStopped{
		Type:      protocol.TypeAppStopped,
		SessionID: sess.ID(),
		Reason:    reason,
		Timestamp: m.clock.Now().UnixMilli(),
	})
	entry.Conn.Close(reason)
}

// pushState はアプリ状態をデバイスへ通知する。デバイス未接続は正常系として扱う。
func (m *Manager) pushState(sess *session.UserSession, installed []*model.App) *model.AppStateChange {
	state, err := sess.PushAppState(installed, m.clock.Now())
	switch {
	case err == nil:
		slog.Debug("app state pushed",
			append(m.fields.SessionLogFields(logging.EventAppStatePush, sess.ID(), sess.UserID()),
				"generation", state.Generation)...)
	case errors.Is(err, session.ErrDeviceNotConnected):
	default:
		slog.Warn("app state push failed",
			append(m.fields.SessionLogFields(logging.EventAppStatePushFail, sess.ID(), sess.UserID()),
				logging.FieldError, err.Error())...)
	}
	return state
}

// installedApps はカタログ障害時も空のリストで状態通知を継続する。
func (m *Manager) installedApps(ctx context.Context, sess *session.UserSession) []*model.App {
	apps, err := m.catalog.InstalledApps(ctx, sess.UserID())
	if err != nil {
		slog.Warn("failed to load installed apps",
			append(m.fields.SessionLogFields(logging.EventValkeyErr, sess.ID(), sess.UserID()),
				logging.FieldError, err.Error())...)
		return nil
	}
	return apps
}

func (m *Manager) appLogFields(eventID string, sess *session.UserSession, packageName string) []any {
	return append(m.fields.SessionLogFields(eventID, sess.ID(), sess.UserID()),
		logging.FieldPackageName, packageName)
}
