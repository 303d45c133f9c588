package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/store"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/tpa"
	"github.com/oyaguma3/glasses-session-broker/pkg/apperr"
	"github.com/oyaguma3/glasses-session-broker/pkg/httputil"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
)

// TpaServerHandler はTPAサーバー登録APIのハンドラー。
type TpaServerHandler struct {
	servers TpaServerRegistry
}

// NewTpaServerHandler は新しいTpaServerHandlerを生成する。
func NewTpaServerHandler(servers TpaServerRegistry) *TpaServerHandler {
	return &TpaServerHandler{servers: servers}
}

// HandleRegister はPOST /api/tpa-server/register のハンドラー。
func (h *TpaServerHandler) HandleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, slog.LevelWarn, logging.EventTPARegister, httputil.BadRequest("invalid request body"), err)
		return
	}

	reg, err := h.servers.Register(c.Request.Context(), tpa.RegisterRequest{
		PackageName: req.PackageName,
		APIKey:      req.APIKey,
		WebhookURL:  req.WebhookURL,
		ServerURLs:  req.ServerURLs,
	})
	if err != nil {
		h.handleError(c, logging.EventTPARegister, err)
		return
	}
	c.JSON(http.StatusOK, RegisterResponse{Success: true, Registration: reg})
}

// HandleHeartbeat はPOST /api/tpa-server/heartbeat のハンドラー。
func (h *TpaServerHandler) HandleHeartbeat(c *gin.Context) {
	var req RegistrationIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, slog.LevelWarn, logging.EventTPAHeartbeat, httputil.BadRequest("registrationId is required"), err)
		return
	}

	found, err := h.servers.Heartbeat(c.Request.Context(), req.RegistrationID)
	if err != nil {
		h.handleError(c, logging.EventTPAHeartbeat, err)
		return
	}
	if !found {
		fail(c, slog.LevelInfo, logging.EventTPAHeartbeat, httputil.NotFound("registration not found"), nil)
		return
	}
	c.JSON(http.StatusOK, HeartbeatResponse{Success: true})
}

// HandleRestart はPOST /api/tpa-server/restart のハンドラー。
func (h *TpaServerHandler) HandleRestart(c *gin.Context) {
	var req RegistrationIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, slog.LevelWarn, logging.EventTPARestart, httputil.BadRequest("registrationId is required"), err)
		return
	}

	n, err := h.servers.OnRestart(c.Request.Context(), req.RegistrationID)
	if err != nil {
		h.handleError(c, logging.EventTPARestart, err)
		return
	}
	c.JSON(http.StatusOK, RestartResponse{Success: true, RecoveredSessions: n})
}

func (h *TpaServerHandler) handleError(c *gin.Context, eventID string, err error) {
	var vErr *apperr.ValidationError
	switch {
	case errors.As(err, &vErr):
		fail(c, slog.LevelWarn, eventID, httputil.BadRequest(vErr.Field+": "+vErr.Message), err)
	case errors.Is(err, tpa.ErrInvalidAPIKey), errors.Is(err, tpa.ErrAPIKeyRequired):
		fail(c, slog.LevelWarn, eventID, httputil.Unauthorized(err.Error()), err)
	case errors.Is(err, tpa.ErrAppNotFound), errors.Is(err, tpa.ErrRegistrationNotFound):
		fail(c, slog.LevelInfo, eventID, httputil.NotFound(err.Error()), err)
	case errors.Is(err, store.ErrValkeyUnavailable):
		fail(c, slog.LevelError, logging.EventValkeyErr, httputil.ServiceUnavailable("storage unavailable"), err)
	default:
		fail(c, slog.LevelError, logging.EventSystemErr, httputil.InternalServerError("An unexpected error occurred"), err)
	}
}
