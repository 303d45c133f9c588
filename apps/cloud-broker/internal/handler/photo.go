package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/capture"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/metrics"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/store"
	"github.com/oyaguma3/glasses-session-broker/pkg/httputil"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
)

// multipartをメモリに保持する上限。超過分は一時ファイルに書き出される
const multipartMemory = 8 << 20

// PhotoHandler は撮影結果のアップロードと配信を行う。
type PhotoHandler struct {
	captures  CaptureResolver
	photos    PhotoStore
	publicURL string
	maxBytes  int64
	metrics   *metrics.Metrics
}

// NewPhotoHandler は新しいPhotoHandlerを生成する。
func NewPhotoHandler(captures CaptureResolver, photos PhotoStore, publicURL string, maxBytes int64, m *metrics.Metrics) *PhotoHandler {
	return &PhotoHandler{
		captures:  captures,
		photos:    photos,
		publicURL: strings.TrimRight(publicURL, "/"),
		maxBytes:  maxBytes,
		metrics:   m,
	}
}

// HandleUpload はPOST /api/photos/upload のハンドラー。
// 保留中の要求を取り出せなければ写真を保存せずに404（失効済みは410）を返す。
// 保存に失敗した場合は要求を保留に戻し、再アップロードを受け付ける。
func (h *PhotoHandler) HandleUpload(c *gin.Context) {
	ctx := c.Request.Context()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)

	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, slog.LevelWarn, logging.EventCaptureResolve, httputil.RequestEntityTooLarge("photo exceeds upload limit"), err)
			return
		}
		fail(c, slog.LevelWarn, logging.EventCaptureResolve, httputil.BadRequest("multipart form required"), err)
		return
	}

	requestID := c.PostForm("requestId")
	if requestID == "" {
		fail(c, slog.LevelWarn, logging.EventCaptureResolve, httputil.BadRequest("requestId is required"), nil)
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		fail(c, slog.LevelWarn, logging.EventCaptureResolve, httputil.BadRequest("photo is required"), err)
		return
	}
	f, err := file.Open()
	if err != nil {
		fail(c, slog.LevelError, logging.EventSystemErr, httputil.InternalServerError("failed to read photo"), err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		fail(c, slog.LevelError, logging.EventSystemErr, httputil.InternalServerError("failed to read photo"), err)
		return
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	// 要求を取り出してから保存する。重複・期限切れのアップロードは何も書き込まない
	req, outcome := h.captures.Claim(requestID)
	if outcome != capture.OutcomeResolved {
		h.rejectOutcome(c, requestID, outcome)
		return
	}

	if err := h.photos.Put(ctx, requestID, req.UserID, mimeType, data); err != nil {
		h.captures.Release(req)
		fail(c, slog.LevelError, logging.EventValkeyErr, httputil.ServiceUnavailable("failed to store photo"), err)
		return
	}

	photoURL := h.publicURL + "/api/photos/" + requestID
	h.captures.Complete(ctx, req, capture.Result{
		PhotoURL: photoURL,
		MimeType: mimeType,
		Size:     int64(len(data)),
	})
	h.metrics.CaptureOutcome(string(capture.OutcomeResolved))
	c.JSON(http.StatusOK, UploadResponse{Success: true, RequestID: requestID, PhotoURL: photoURL})
}

func (h *PhotoHandler) rejectOutcome(c *gin.Context, requestID string, outcome capture.Outcome) {
	h.metrics.CaptureOutcome(string(outcome))
	args := []any{
		logging.FieldTraceID, traceID(c),
		logging.FieldRequestID, requestID,
	}
	if outcome == capture.OutcomeExpired {
		slog.Info("upload for expired capture request",
			append(args, logging.FieldEventID, logging.EventCaptureExpired)...)
		httputil.WriteError(c, httputil.Gone("capture request expired"))
		return
	}
	slog.Info("upload for unknown capture request",
		append(args, logging.FieldEventID, logging.EventCaptureUnknown)...)
	httputil.WriteError(c, httputil.NotFound("capture request not found"))
}

// HandleGetPhoto はGET /api/photos/:requestId のハンドラー。
func (h *PhotoHandler) HandleGetPhoto(c *gin.Context) {
	photo, err := h.photos.Get(c.Request.Context(), c.Param("requestId"))
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			httputil.WriteError(c, httputil.NotFound("photo not found"))
			return
		}
		fail(c, slog.LevelError, logging.EventValkeyErr, httputil.ServiceUnavailable("failed to load photo"), err)
		return
	}
	c.Data(http.StatusOK, photo.MimeType, photo.Data)
}
