package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/session"
	"github.com/oyaguma3/glasses-session-broker/pkg/model"
)

// HealthHandler はヘルスチェックのハンドラー。
type HealthHandler struct {
	registry *session.Registry
}

// NewHealthHandler は新しいHealthHandlerを生成する。
func NewHealthHandler(registry *session.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// HandleHealth はGET /health のハンドラー。
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, model.BrokerHealth{Status: "ok", Sessions: h.registry.Count()})
}
