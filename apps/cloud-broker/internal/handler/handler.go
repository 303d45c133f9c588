// Package handler はHTTPとWebSocketのリクエストハンドラーを提供する。
package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/glasses-session-broker/pkg/httputil"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
)

// TraceIDKey はコンテキストにTraceIDを格納するキー。
const TraceIDKey = httputil.TraceIDKey

func traceID(c *gin.Context) string {
	if v, ok := c.Get(TraceIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// fail はエラーをログに出力してProblemDetailを返す。
func fail(c *gin.Context, level slog.Level, eventID string, problem *httputil.ProblemDetail, err error) {
	args := []any{
		logging.FieldTraceID, traceID(c),
		logging.FieldEventID, eventID,
		logging.FieldHTTPStatus, problem.Status,
	}
	if err != nil {
		args = append(args, logging.FieldError, err.Error())
	}
	slog.Log(c.Request.Context(), level, problem.Detail, args...)
	httputil.WriteError(c, problem)
}
