// Package audit は運用者による参照操作の監査ログを提供する。
package audit

import (
	"io"
	"log/slog"

	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
)

// Operation は監査ログの操作種別を表す。
type Operation string

const (
	// OpView は一覧・詳細の参照
	OpView Operation = "view"
	// OpSearch はユーザー指定の検索
	OpSearch Operation = "search"
)

// TargetType は監査ログの対象種別を表す。
type TargetType string

const (
	// TargetRegistration はTPAサーバー登録
	TargetRegistration TargetType = "registration"
	// TargetApp はアプリカタログ
	TargetApp TargetType = "app"
	// TargetSession はユーザーセッション
	TargetSession TargetType = "session"
)

// Logger は監査ログを出力する。
// ユーザーIDはマスキング設定に従って出力する。
type Logger struct {
	logger *slog.Logger
	fields *logging.CommonFields
}

// NewLogger は指定されたWriterにJSONで出力するLoggerを生成する。
func NewLogger(w io.Writer, app, operator string, maskUserID bool) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &Logger{
		logger: slog.New(handler).With("app", app, "operator", operator),
		fields: logging.NewCommonFields(logging.NewMasker(maskUserID)),
	}
}

// LogView は参照操作を記録する。
func (l *Logger) LogView(target TargetType, key string) {
	l.logger.Info(string(target)+" viewed",
		logging.FieldEventID, logging.EventAuditLog,
		"operation", OpView,
		"target_type", target,
		"target_key", key,
	)
}

// LogSessionSearch はユーザーセッションの検索を記録する。
func (l *Logger) LogSessionSearch(userID string, resultCount int) {
	l.logger.Info("session searched",
		logging.FieldEventID, logging.EventAuditLog,
		"operation", OpSearch,
		"target_type", TargetSession,
		l.fields.WithUserID(userID),
		"result_count", resultCount,
	)
}
