package logging

import "log/slog"

// ログフィールド名の定数
const (
	FieldTraceID     = "trace_id"
	FieldEventID     = "event_id"
	FieldError       = "error"
	FieldUserID      = "user_id"
	FieldSessionID   = "session_id"
	FieldPackageName = "package_name"
	FieldRequestID   = "request_id"
	FieldLatencyMs   = "latency_ms"
	FieldHTTPStatus  = "http_status"
)

// WithTraceID はトレースIDのslog.Attrを返す。
func WithTraceID(traceID string) slog.Attr {
	return slog.String(FieldTraceID, traceID)
}

// WithEventID はイベントIDのslog.Attrを返す。
func WithEventID(eventID string) slog.Attr {
	return slog.String(FieldEventID, eventID)
}

// WithError はエラーのslog.Attrを返す。
func WithError(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}

// WithSessionID はセッションIDのslog.Attrを返す。
func WithSessionID(sessionID string) slog.Attr {
	return slog.String(FieldSessionID, sessionID)
}

// WithPackageName はTPAパッケージ名のslog.Attrを返す。
func WithPackageName(packageName string) slog.Attr {
	return slog.String(FieldPackageName, packageName)
}

// WithRequestID はキャプチャ要求IDのslog.Attrを返す。
func WithRequestID(requestID string) slog.Attr {
	return slog.String(FieldRequestID, requestID)
}

// WithLatency はレイテンシ（ミリ秒）のslog.Attrを返す。
func WithLatency(ms int64) slog.Attr {
	return slog.Int64(FieldLatencyMs, ms)
}

// WithHTTPStatus はHTTPステータスコードのslog.Attrを返す。
func WithHTTPStatus(status int) slog.Attr {
	return slog.Int(FieldHTTPStatus, status)
}

// CommonFields はマスキング設定を保持するログフィールド生成器。
type CommonFields struct {
	masker *Masker
}

// NewCommonFields は新しいCommonFieldsを生成する。
func NewCommonFields(masker *Masker) *CommonFields {
	if masker == nil {
		masker = NewMasker(false)
	}
	return &CommonFields{masker: masker}
}

// WithUserID はマスキングされたユーザーIDのslog.Attrを返す。
func (cf *CommonFields) WithUserID(userID string) slog.Attr {
	return slog.String(FieldUserID, cf.masker.UserID(userID))
}

// SessionLogFields はセッションログ用の共通フィールドを返す。
func (cf *CommonFields) SessionLogFields(eventID, sessionID, userID string) []any {
	return []any{
		WithEventID(eventID),
		WithSessionID(sessionID),
		cf.WithUserID(userID),
	}
}
