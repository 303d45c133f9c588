package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/config"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/lifecycle"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/session"
	"github.com/oyaguma3/glasses-session-broker/pkg/httputil"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	"github.com/oyaguma3/glasses-session-broker/pkg/model"
)

// ギャラリー一覧のデフォルト件数
const defaultGalleryLimit = 50

// InternalHandler はCRUD層など内部コンポーネント向けAPIのハンドラー。
type InternalHandler struct {
	registry *session.Registry
	apps     AppStateController
	gallery  GalleryReader
}

// NewInternalHandler は新しいInternalHandlerを生成する。
func NewInternalHandler(registry *session.Registry, apps AppStateController, gallery GalleryReader) *InternalHandler {
	return &InternalHandler{registry: registry, apps: apps, gallery: gallery}
}

// HandleAppState はPOST /api/internal/app-state/:userId のハンドラー。
func (h *InternalHandler) HandleAppState(c *gin.Context) {
	state, err := h.apps.TriggerAppStateChange(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, lifecycle.ErrSessionNotFound) {
			httputil.WriteError(c, httputil.NotFound("no active session"))
			return
		}
		fail(c, slog.LevelError, logging.EventAppStatePushFail, httputil.InternalServerError("failed to push app state"), err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// HandleSessions はGET /api/internal/sessions/:userId のハンドラー。
func (h *InternalHandler) HandleSessions(c *gin.Context) {
	sessions := h.registry.GetSessionsForUser(c.Param("userId"))
	out := make([]model.SessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, summarize(sess))
	}
	c.JSON(http.StatusOK, out)
}

func summarize(sess *session.UserSession) model.SessionSummary {
	s := model.SessionSummary{
		SessionID:       sess.ID(),
		UserID:          sess.UserID(),
		CreatedAt:       sess.CreatedAt().UnixMilli(),
		DeviceConnected: sess.IsDeviceConnected(),
		RunningApps:     sess.RunningApps(),
		AudioBufferedMs: sess.Audio().Duration().Milliseconds(),
	}
	if since, ok := sess.DisconnectedSince(); ok {
		s.DisconnectedSince = since.UnixMilli()
	}
	return s
}

// HandleUninstall はPOST /api/internal/uninstall/:userId/:packageName のハンドラー。
func (h *InternalHandler) HandleUninstall(c *gin.Context) {
	h.apps.StopAppForUninstall(c.Request.Context(), c.Param("userId"), c.Param("packageName"))
	c.Status(http.StatusNoContent)
}

// HandleSettings はPOST /api/internal/settings/:userId/:packageName のハンドラー。
// ボディのJSONをそのまま設定として保存し、起動中のTPAへ通知する。
func (h *InternalHandler) HandleSettings(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxMessageBytes))
	if err != nil || !json.Valid(body) {
		fail(c, slog.LevelWarn, logging.EventSettingsPush, httputil.BadRequest("settings must be valid JSON"), err)
		return
	}

	err = h.apps.PushSettings(c.Request.Context(), c.Param("userId"), c.Param("packageName"), json.RawMessage(body))
	if err != nil {
		fail(c, slog.LevelError, logging.EventValkeyErr, httputil.ServiceUnavailable("failed to store settings"), err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleGallery はGET /api/internal/gallery/:userId のハンドラー。
func (h *InternalHandler) HandleGallery(c *gin.Context) {
	limit := defaultGalleryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > config.GalleryMaxEntries {
			httputil.WriteError(c, httputil.BadRequest("limit must be between 1 and "+strconv.Itoa(config.GalleryMaxEntries)))
			return
		}
		limit = n
	}

	photos, err := h.gallery.List(c.Request.Context(), c.Param("userId"), limit)
	if err != nil {
		fail(c, slog.LevelError, logging.EventValkeyErr, httputil.ServiceUnavailable("failed to load gallery"), err)
		return
	}
	c.JSON(http.StatusOK, photos)
}
