package server

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/handler"
	"github.com/oyaguma3/glasses-session-broker/pkg/httputil"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
)

const (
	traceIDHeader       = "X-Trace-ID"
	internalTokenHeader = "X-Internal-Token"
)

// TraceIDMiddleware はX-Trace-IDヘッダからトレースIDを取得する。
// ヘッダがなければ生成し、レスポンスヘッダにも設定する。
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Set(handler.TraceIDKey, traceID)
		c.Header(traceIDHeader, traceID)
		c.Next()
	}
}

// LoggingMiddleware はリクエストログを出力する。
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		traceID, _ := c.Get(handler.TraceIDKey)

		slog.Info("request completed",
			logging.FieldTraceID, traceID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			logging.FieldHTTPStatus, c.Writer.Status(),
			logging.FieldLatencyMs, latency.Milliseconds(),
		)
	}
}

// RecoveryMiddleware はパニックからの復旧を行う。
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				traceID, _ := c.Get(handler.TraceIDKey)
				slog.Error("panic recovered",
					logging.FieldTraceID, traceID,
					logging.FieldEventID, logging.EventSystemErr,
					logging.FieldError, err,
				)
				httputil.AbortWithError(c, httputil.InternalServerError("An unexpected error occurred"))
			}
		}()
		c.Next()
	}
}

// InternalAuthMiddleware は内部APIトークンを検証する。
// トークン未設定時は内部APIを無効化する。
func InternalAuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			httputil.AbortWithError(c, httputil.Forbidden("internal API disabled"))
			return
		}
		got := c.GetHeader(internalTokenHeader)
		if got == "" {
			got = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			slog.Warn("internal API token mismatch",
				logging.FieldTraceID, c.GetString(handler.TraceIDKey),
				logging.FieldEventID, logging.EventProtocolErr,
				logging.FieldHTTPStatus, http.StatusUnauthorized,
			)
			httputil.AbortWithError(c, httputil.Unauthorized("invalid internal API token"))
			return
		}
		c.Next()
	}
}
