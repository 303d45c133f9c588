package tpa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/session"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/store"
	"github.com/oyaguma3/glasses-session-broker/pkg/apperr"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	"github.com/oyaguma3/glasses-session-broker/pkg/model"
	"k8s.io/utils/clock"
)

// RegisterRequest はTPAサーバーの登録要求。
type RegisterRequest struct {
	PackageName string
	APIKey      string
	WebhookURL  string
	ServerURLs  []string
}

// Options はManagerの動作設定。
type Options struct {
	HeartbeatWindow      time.Duration
	HistorySize          int
	AllowTemporaryAPIKey bool
	// OnStaleCount は定期チェックごとにstale登録数を受け取る（省略可）
	OnStaleCount func(n int)
}

// Manager はTPAサーバーの登録と生存監視を行う。
// stale判定は監視用で、セッションを終了させることはない。
type Manager struct {
	store       RegistrationStore
	catalog     AppCatalog
	registry    *session.Registry
	reconnector AppReconnector
	clock       clock.WithTicker
	opts        Options
	history     *heartbeatHistory
}

// NewManager は新しいManagerを生成する。
func NewManager(
	regStore RegistrationStore,
	catalog AppCatalog,
	registry *session.Registry,
	reconnector AppReconnector,
	clk clock.WithTicker,
	opts Options,
) *Manager {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Manager{
		store:       regStore,
		catalog:     catalog,
		registry:    registry,
		reconnector: reconnector,
		clock:       clk,
		opts:        opts,
		history:     newHeartbeatHistory(opts.HistorySize),
	}
}

// Register はTPAサーバーを登録する。
// APIキー省略時は一時キーとして受け付ける。指定時はカタログのハッシュと照合する。
func (m *Manager) Register(ctx context.Context, req RegisterRequest) (*model.TpaServerRegistration, error) {
	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}

	var hash string
	temporary := req.APIKey == ""
	if temporary {
		if !m.opts.AllowTemporaryAPIKey {
			return nil, ErrAPIKeyRequired
		}
	} else {
		if err := m.VerifyAPIKey(ctx, req.PackageName, req.APIKey); err != nil {
			return nil, err
		}
		hash = HashAPIKey(req.APIKey)
	}

	now := m.clock.Now()
	reg := model.NewTpaServerRegistration(uuid.NewString(), req.PackageName, hash, req.WebhookURL, req.ServerURLs, now)
	reg.TemporaryKey = temporary
	if err := m.store.Save(ctx, reg); err != nil {
		return nil, err
	}
	m.history.reset(reg.RegistrationID, now)

	if temporary {
		slog.Warn("TPA server registered with temporary key",
			logging.FieldEventID, logging.EventTPATempKey,
			logging.FieldPackageName, reg.PackageName,
			"registration_id", reg.RegistrationID,
		)
	}
	slog.Info("TPA server registered",
		logging.FieldEventID, logging.EventTPARegister,
		logging.FieldPackageName, reg.PackageName,
		"registration_id", reg.RegistrationID,
		"webhook_url", reg.WebhookURL,
	)
	return reg, nil
}

// VerifyAPIKey はTPA接続時のAPIキーを検証する。
// 空のキーは一時キーが許可されている場合のみ受け付ける。
func (m *Manager) VerifyAPIKey(ctx context.Context, packageName, apiKey string) error {
	if apiKey == "" {
		if m.opts.AllowTemporaryAPIKey {
			return nil
		}
		return ErrAPIKeyRequired
	}
	app, err := m.catalog.GetApp(ctx, packageName)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrAppNotFound, packageName)
		}
		return err
	}
	if app.HashedAPIKey != "" && !verifyAPIKey(apiKey, app.HashedAPIKey) {
		return ErrInvalidAPIKey
	}
	return nil
}

func validateRegisterRequest(req RegisterRequest) error {
	if req.PackageName == "" {
		return apperr.NewValidationError("packageName", "must not be empty")
	}
	if _, err := url.ParseRequestURI(req.WebhookURL); err != nil {
		return apperr.NewValidationError("webhookUrl", "invalid URL")
	}
	for _, u := range req.ServerURLs {
		if _, err := url.ParseRequestURI(u); err != nil {
			return apperr.NewValidationError("serverUrls", "invalid URL: "+u)
		}
	}
	return nil
}

// Heartbeat はハートビートを記録する。未登録のIDにはfalseを返す。
// staleだった登録は生存に戻す。
func (m *Manager) Heartbeat(ctx context.Context, registrationID string) (bool, error) {
	reg, err := m.store.Get(ctx, registrationID)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}

	now := m.clock.Now()
	if err := m.store.UpdateHeartbeat(ctx, registrationID, now.UnixMilli()); err != nil {
		return false, err
	}
	m.history.record(registrationID, now)

	if reg.Stale {
		if err := m.store.SetStale(ctx, registrationID, false); err != nil {
			return false, err
		}
		slog.Info("TPA server is alive again",
			logging.FieldEventID, logging.EventTPARecovered,
			logging.FieldPackageName, reg.PackageName,
			"registration_id", registrationID,
		)
	}
	slog.Debug("TPA heartbeat",
		logging.FieldEventID, logging.EventTPAHeartbeat,
		"registration_id", registrationID,
	)
	return true, nil
}

// CheckLiveness は全登録のstaleフラグを更新し、stale件数を返す。
func (m *Manager) CheckLiveness(ctx context.Context) (int, error) {
	regs, err := m.store.List(ctx)
	if err != nil {
		return 0, err
	}

	now := m.clock.Now()
	staleCount := 0
	for _, reg := range regs {
		stale := isStale(reg.LastHeartbeat(), m.history.snapshot(reg.RegistrationID), m.opts.HeartbeatWindow, now)
		if stale {
			staleCount++
		}
		if stale == reg.Stale {
			continue
		}
		if err := m.store.SetStale(ctx, reg.RegistrationID, stale); err != nil {
			slog.Warn("failed to update stale flag",
				logging.FieldEventID, logging.EventValkeyErr,
				"registration_id", reg.RegistrationID,
				logging.FieldError, err.Error(),
			)
			continue
		}
		if stale {
			slog.Warn("TPA server heartbeat missing",
				logging.FieldEventID, logging.EventTPAStale,
				logging.FieldPackageName, reg.PackageName,
				"registration_id", reg.RegistrationID,
				"last_heartbeat_at", reg.LastHeartbeatAt,
			)
		} else {
			slog.Info("TPA server is alive again",
				logging.FieldEventID, logging.EventTPARecovered,
				logging.FieldPackageName, reg.PackageName,
				"registration_id", reg.RegistrationID,
			)
		}
	}
	return staleCount, nil
}

// Run はctxが終了するまで一定間隔でCheckLivenessを実行する。
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := m.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			n, err := m.CheckLiveness(ctx)
			if err != nil {
				slog.Warn("liveness check failed",
					logging.FieldEventID, logging.EventValkeyErr,
					logging.FieldError, err.Error(),
				)
				continue
			}
			if m.opts.OnStaleCount != nil {
				m.opts.OnStaleCount(n)
			}
		}
	}
}

// OnRestart はTPAサーバーの再起動通知を処理し、復旧したアプリ接続数を返す。
// 対象パッケージのアプリ接続を持つセッションだけを張り直し、他のセッションやアプリには触れない。
func (m *Manager) OnRestart(ctx context.Context, registrationID string) (int, error) {
	reg, err := m.store.Get(ctx, registrationID)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return 0, ErrRegistrationNotFound
		}
		return 0, err
	}

	now := m.clock.Now()
	if err := m.store.UpdateHeartbeat(ctx, registrationID, now.UnixMilli()); err != nil {
		return 0, err
	}
	m.history.reset(registrationID, now)
	if reg.Stale {
		if err := m.store.SetStale(ctx, registrationID, false); err != nil {
			return 0, err
		}
	}

	recovered := 0
	for _, sess := range m.registry.Sessions() {
		if _, ok := sess.App(reg.PackageName); !ok {
			continue
		}
		if err := m.reconnector.ReconnectApp(ctx, sess.ID(), reg.PackageName, reg.WebhookURL); err != nil {
			slog.Warn("app reconnect after TPA restart failed",
				logging.FieldEventID, logging.EventTPARestart,
				logging.FieldSessionID, sess.ID(),
				logging.FieldPackageName, reg.PackageName,
				logging.FieldError, err.Error(),
			)
			continue
		}
		recovered++
	}

	slog.Info("TPA server restart handled",
		logging.FieldEventID, logging.EventTPARestart,
		logging.FieldPackageName, reg.PackageName,
		"registration_id", registrationID,
		"recovered", recovered,
	)
	return recovered, nil
}

// RecentHeartbeats は登録の直近のハートビート時刻を古い順に返す。
func (m *Manager) RecentHeartbeats(registrationID string) []time.Time {
	return m.history.snapshot(registrationID)
}
