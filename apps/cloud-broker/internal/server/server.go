// Package server はHTTPサーバーの管理を提供する。
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/config"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/handler"
)

// Handlers はルーティングするハンドラー群。
type Handlers struct {
	WS        *handler.WSHandler
	TpaServer *handler.TpaServerHandler
	Photo     *handler.PhotoHandler
	Internal  *handler.InternalHandler
	Audio     *handler.AudioHandler
	Health    *handler.HealthHandler
	Metrics   http.Handler
}

// Server はHTTPサーバーを管理する。
type Server struct {
	engine *gin.Engine
	server *http.Server
	cfg    *config.Config
}

// New は新しいServerを生成する。
func New(cfg *config.Config, h *Handlers) *Server {
	// Ginモード設定
	gin.SetMode(cfg.GinMode)

	engine := gin.New()

	// ミドルウェア登録
	engine.Use(TraceIDMiddleware())
	engine.Use(LoggingMiddleware())
	engine.Use(RecoveryMiddleware())

	// ルーティング
	SetupRouter(engine, h, cfg.InternalAPIToken)

	return &Server{
		engine: engine,
		server: &http.Server{
			Addr:    cfg.ListenAddr,
			Handler: engine,
		},
		cfg: cfg,
	}
}

// Handler はルーティング済みのhttp.Handlerを返す。
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run はサーバーを起動する。
func (s *Server) Run() error {
	slog.Info("starting server", "addr", s.cfg.ListenAddr)
	return s.server.ListenAndServe()
}

// Shutdown はサーバーをシャットダウンする。
// WebSocket接続はハイジャック済みのため、呼び出し側でハンドラーのコンテキストをキャンセルする。
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down server")
	return s.server.Shutdown(ctx)
}
