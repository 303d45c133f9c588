// Package main はグラスクライアント（デバイス側の音声・接続パイプライン）のエントリーポイント。
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/oyaguma3/glasses-session-broker/apps/glasses-client/internal/audio"
	"github.com/oyaguma3/glasses-session-broker/apps/glasses-client/internal/config"
	"github.com/oyaguma3/glasses-session-broker/apps/glasses-client/internal/connstate"
	"github.com/oyaguma3/glasses-session-broker/apps/glasses-client/internal/glasses"
	"github.com/oyaguma3/glasses-session-broker/apps/glasses-client/internal/mic"
	"github.com/oyaguma3/glasses-session-broker/apps/glasses-client/internal/uplink"
	"github.com/oyaguma3/glasses-session-broker/pkg/audiocodec"
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

	slog.Info("starting glasses-client",
		"cloud_url", cfg.HTTPBaseURL(),
		"glasses_model", cfg.GlassesModel,
		"log_level", cfg.LogLevel,
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	clk := clock.RealClock{}

	// 3. 音声パイプライン
	codec, err := audiocodec.New(audiocodec.NamePCMU)
	if err != nil {
		slog.Error("failed to create codec", "error", err)
		os.Exit(1)
	}
	queue := audio.NewQueue(cfg.UplinkQueueSize)
	pipeline := audio.NewPipeline(codec, audio.NewQueueSink(queue, nil), clk)

	// 4. グラス
	device, err := glasses.New(cfg.GlassesModel, clk)
	if err != nil {
		slog.Error("failed to create glasses device", "error", err, "models", glasses.Models())
		os.Exit(1)
	}

	// 5. マイク経路
	route := mic.NewCaptureRoute(pipeline, phoneSource(cfg.AudioSource), device, clk)
	arbiter := mic.NewArbiter(route, device, clk, cfg.ScoAttemptTimeout, config.ScoRetryInterval, config.MaxScoRetries)

	// 6. クラウド接続・接続状態
	client := uplink.NewClient(uplink.Options{
		URL:                   cfg.WebsocketURL(),
		Token:                 cfg.CoreToken,
		GlassesModel:          cfg.GlassesModel,
		OutboxSize:            config.OutboxSize,
		WriteTimeout:          config.WriteTimeout,
		ReconnectInitialDelay: config.ReconnectInitialDelay,
		ReconnectMaxInterval:  cfg.ReconnectMaxInterval,
	}, queue, arbiter, device, clk)
	machine := connstate.NewMachine(ctx, clk, cfg.ConnectionDebounce, client, client)
	uploader := uplink.NewUploader(cfg.PhotoUploadURL(), cfg.CoreToken, cfg.UploadTimeout)
	device.SetEventSink(uplink.NewEventForwarder(ctx, client, machine, uploader, pipeline, clk))

	// 7. 起動
	runErr := make(chan error, 1)
	go func() { runErr <- client.Run(ctx) }()

	if err := device.Connect(ctx); err != nil {
		slog.Error("failed to connect glasses",
			logging.FieldEventID, logging.EventGlassesState,
			logging.FieldError, err.Error(),
		)
	}
	if cfg.BluetoothMic {
		arbiter.OnBluetoothConnected(ctx)
	}

	// 8. シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-runErr:
		if err != nil {
			slog.Error("uplink stopped", "error", err)
		}
	}

	slog.Info("shutting down glasses-client...")

	// 9. 停止処理
	arbiter.Close()
	machine.Stop()
	if err := device.Disconnect(); err != nil && !errors.Is(err, glasses.ErrUnsupported) {
		slog.Warn("glasses disconnect error", "error", err)
	}
	stop()
	queue.Close()

	slog.Info("glasses-client stopped", "session_id", client.SessionID(), "audio_dropped", queue.Dropped())
}

// phoneSource は電話側マイクの音声ソースを返す。
// pathが空なら無音、指定されていればそのファイルを16kHzモノラルPCMとして読む。
func phoneSource(path string) mic.PhoneSource {
	return func(mic.Mode) (io.ReadCloser, error) {
		if path == "" {
			return io.NopCloser(audio.Silence), nil
		}
		return os.Open(path)
	}
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
	logger := slog.New(h).With("app", "glasses-client")
	slog.SetDefault(logger)
}
