// Package main はクラウドブローカー（セッション・プロトコルブローカー）のエントリーポイント。
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/auth"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/capture"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/config"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/dispatch"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/handler"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/lifecycle"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/metrics"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/server"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/session"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/store"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/subscription"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/tpa"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/transport"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/webhook"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	"k8s.io/utils/clock"
)

func main() {
	// 1. 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. ロガー初期化
	initLogger(cfg)
	fields := logging.NewCommonFields(logging.NewMasker(cfg.LogMaskUserID))

	slog.Info("starting cloud-broker",
		"listen_addr", cfg.ListenAddr,
		"log_level", cfg.LogLevel,
		"grace_period", cfg.SessionGracePeriod.String(),
	)

	// 3. Valkey接続
	valkeyClient, err := store.NewValkeyClient(cfg)
	if err != nil {
		slog.Error("failed to connect to Valkey",
			logging.FieldEventID, logging.EventValkeyErr,
			logging.FieldError, err.Error(),
		)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	slog.Info("connected to Valkey", "addr", cfg.RedisAddr())

	// 4. Store層
	catalog := store.NewAppCatalog(valkeyClient)
	registrations := store.NewRegistrationStore(valkeyClient)
	gallery := store.NewGalleryStore(valkeyClient)
	photos := store.NewPhotoStore(valkeyClient)
	settings := store.NewSettingsStore(valkeyClient)

	// 5. セッション・購読・ライフサイクル
	clk := clock.RealClock{}
	m := metrics.New()
	registry := session.NewRegistry(session.Options{
		AudioRetention:      cfg.AudioBufferDuration(),
		TranscriptRetention: cfg.TranscriptRetention,
		GracePeriod:         cfg.SessionGracePeriod,
	}, clk, fields)
	subs := subscription.New(fields)
	appLifecycle := lifecycle.NewManager(registry, subs, catalog, webhook.NewClient(cfg), settings,
		clk, cfg.AppConnectTimeout, fields)
	registry.OnDetach(appLifecycle.CancelSessionTimers)

	// 6. キャプチャ・TPAサーバー登録
	captures := capture.NewCorrelator(gallery, capture.NewSessionSink(registry), clk, cfg.CaptureRequestTTL, fields)
	tpaServers := tpa.NewManager(registrations, catalog, registry, appLifecycle, clk, tpa.Options{
		HeartbeatWindow:      cfg.HeartbeatWindow,
		HistorySize:          config.HeartbeatHistorySize,
		AllowTemporaryAPIKey: cfg.AllowTemporaryAPIKey,
		OnStaleCount:         m.SetStaleTPAs,
	})

	// 7. メッセージ処理
	devices := dispatch.NewDeviceProcessor(registry, subs, appLifecycle, captures, m, clk, fields)
	tpas := dispatch.NewTpaProcessor(registry, subs, appLifecycle, captures, tpaServers, m, clk, fields)

	// 8. バックグラウンド処理
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go registry.RunGraceSweeper(ctx, config.GraceSweepInterval)
	go captures.Run(ctx, cfg.CaptureSweepInterval)
	go tpaServers.Run(ctx, cfg.LivenessCheckInterval)

	// 9. ハンドラー・サーバー
	wsOpts := transport.Options{
		SendQueueSize:   config.SendQueueSize,
		WriteTimeout:    config.WriteTimeout,
		MaxMessageBytes: config.MaxMessageBytes,
	}
	srv := server.New(cfg, &server.Handlers{
		WS: handler.NewWSHandler(ctx, registry, auth.NewVerifier(cfg.CoreTokenSecret, clk),
			devices, tpas, m, wsOpts, config.TpaInitTimeout),
		TpaServer: handler.NewTpaServerHandler(tpaServers),
		Photo:     handler.NewPhotoHandler(captures, photos, cfg.PublicURL, cfg.MaxUploadBytes, m),
		Internal:  handler.NewInternalHandler(registry, appLifecycle, gallery),
		Audio:     handler.NewAudioHandler(registry, tpaServers),
		Health:    handler.NewHealthHandler(registry),
		Metrics:   m.Handler(),
	})

	// 10. Graceful Shutdown設定
	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// 11. シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	// WebSocket接続と定期処理を停止し、起動中のアプリ操作の完了を待つ
	stop()
	devices.Wait()

	slog.Info("server stopped", "sessions", registry.Count())
}

// initLogger はロガーを初期化する。
func initLogger(cfg *config.Config) {
	level := slog.LevelInfo
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	h := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(h).With("app", "cloud-broker")
	slog.SetDefault(logger)
}
