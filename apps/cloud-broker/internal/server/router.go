package server

import (
	"github.com/gin-gonic/gin"
)

// SetupRouter はルーティングを設定する。
func SetupRouter(engine *gin.Engine, h *Handlers, internalToken string) {
	// ヘルスチェック・メトリクス
	engine.GET("/health", h.Health.HandleHealth)
	if h.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(h.Metrics))
	}

	// WebSocket
	engine.GET("/glasses-ws", h.WS.HandleGlassesWS)
	engine.GET("/tpa-ws", h.WS.HandleTpaWS)

	api := engine.Group("/api")
	{
		tpaServer := api.Group("/tpa-server")
		tpaServer.POST("/register", h.TpaServer.HandleRegister)
		tpaServer.POST("/heartbeat", h.TpaServer.HandleHeartbeat)
		tpaServer.POST("/restart", h.TpaServer.HandleRestart)

		api.POST("/photos/upload", h.Photo.HandleUpload)
		api.GET("/photos/:requestId", h.Photo.HandleGetPhoto)

		api.GET("/sessions/:sessionId/audio", h.Audio.HandleSessionAudio)

		internal := api.Group("/internal", InternalAuthMiddleware(internalToken))
		internal.POST("/app-state/:userId", h.Internal.HandleAppState)
		internal.GET("/sessions/:userId", h.Internal.HandleSessions)
		internal.POST("/uninstall/:userId/:packageName", h.Internal.HandleUninstall)
		internal.POST("/settings/:userId/:packageName", h.Internal.HandleSettings)
		internal.GET("/gallery/:userId", h.Internal.HandleGallery)
	}
}
