package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/session"
	"github.com/oyaguma3/glasses-session-broker/pkg/audiocodec"
	"github.com/oyaguma3/glasses-session-broker/pkg/httputil"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
)

// TPAの認証ヘッダー
const (
	headerPackageName = "X-Package-Name"
	headerAPIKey      = "X-API-Key"
)

// AudioHandler はセッションの直近音声をTPAに提供する。
type AudioHandler struct {
	registry *session.Registry
	keys     KeyVerifier
}

// NewAudioHandler は新しいAudioHandlerを生成する。
func NewAudioHandler(registry *session.Registry, keys KeyVerifier) *AudioHandler {
	return &AudioHandler{registry: registry, keys: keys}
}

// HandleSessionAudio はGET /api/sessions/:sessionId/audio のハンドラー。
// セッション内で接続済みのTPAだけが取得でき、16kHzモノラルの16bit PCMを返す。
func (h *AudioHandler) HandleSessionAudio(c *gin.Context) {
	packageName := c.GetHeader(headerPackageName)
	if packageName == "" {
		httputil.WriteError(c, httputil.Unauthorized(headerPackageName+" header required"))
		return
	}
	if err := h.keys.VerifyAPIKey(c.Request.Context(), packageName, c.GetHeader(headerAPIKey)); err != nil {
		fail(c, slog.LevelWarn, logging.EventProtocolErr, httputil.Unauthorized("invalid API key"), err)
		return
	}

	sess, ok := h.registry.LookupBySessionID(c.Param("sessionId"))
	if !ok {
		httputil.WriteError(c, httputil.NotFound("session not found"))
		return
	}
	entry, ok := sess.App(packageName)
	if !ok || entry.State != session.AppConnConnected {
		httputil.WriteError(c, httputil.Forbidden("app is not running in this session"))
		return
	}

	pcm, skipped := decodeFrames(sess.Audio().Snapshot())
	if skipped > 0 {
		slog.Warn("undecodable audio frames skipped",
			logging.FieldEventID, logging.EventProtocolErr,
			logging.FieldSessionID, sess.ID(),
			"skipped", skipped,
		)
	}
	c.Header("X-Audio-Sample-Rate", strconv.Itoa(audiocodec.SampleRate))
	c.Data(http.StatusOK, "audio/L16;rate=16000;channels=1", audiocodec.PCMBytes(pcm))
}

// decodeFrames は同じコーデックが続く区間ごとに復号して連結する。
func decodeFrames(frames []session.AudioFrame) ([]int16, int) {
	var (
		out     []int16
		skipped int
	)
	for start := 0; start < len(frames); {
		name := frames[start].Codec
		end := start
		var chunks [][]byte
		for end < len(frames) && frames[end].Codec == name {
			chunks = append(chunks, frames[end].Data)
			end++
		}
		start = end

		codec, err := audiocodec.New(name)
		if err != nil {
			skipped += len(chunks)
			continue
		}
		pcm, n := audiocodec.DecodeAll(codec, chunks)
		out = append(out, pcm...)
		skipped += n
	}
	return out, skipped
}
