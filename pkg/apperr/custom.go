package apperr

import "fmt"

// ValidationError はバリデーションエラーを表す。
type ValidationError struct {
	Field   string // エラーが発生したフィールド名
	Message string // エラーメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field=%s, message=%s", e.Field, e.Message)
}

// NewValidationError はValidationErrorを生成する。
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// WebhookError はTPAサーバーへのWebhook呼び出しエラーを表す。
type WebhookError struct {
	URL        string // 呼び出し先URL
	StatusCode int    // HTTPステータスコード（未応答時は0）
	Cause      error  // 根本原因
}

// Error はerrorインターフェースを実装する。
func (e *WebhookError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("webhook error: url=%s, statusCode=%d, cause=%v",
			e.URL, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("webhook error: url=%s, statusCode=%d", e.URL, e.StatusCode)
}

// Unwrap は根本原因を返す。
func (e *WebhookError) Unwrap() error {
	return e.Cause
}

// NewWebhookError はWebhookErrorを生成する。
func NewWebhookError(url string, statusCode int, cause error) *WebhookError {
	return &WebhookError{
		URL:        url,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// ValkeyError はValkeyとの操作エラーを表す。
type ValkeyError struct {
	Operation string // 操作名（GET, SET, DEL等）
	Key       string // 操作対象のキー
	Cause     error  // 根本原因
}

// Error はerrorインターフェースを実装する。
func (e *ValkeyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("valkey error: operation=%s, key=%s, cause=%v",
			e.Operation, e.Key, e.Cause)
	}
	return fmt.Sprintf("valkey error: operation=%s, key=%s", e.Operation, e.Key)
}

// Unwrap は根本原因を返す。
func (e *ValkeyError) Unwrap() error {
	return e.Cause
}

// NewValkeyError はValkeyErrorを生成する。
func NewValkeyError(operation, key string, cause error) *ValkeyError {
	return &ValkeyError{
		Operation: operation,
		Key:       key,
		Cause:     cause,
	}
}

// ProtocolError は受信メッセージのプロトコル違反を表す。
type ProtocolError struct {
	MessageType string // 受信したメッセージ種別
	Reason      string // エラーの理由
}

// Error はerrorインターフェースを実装する。
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: type=%s, reason=%s", e.MessageType, e.Reason)
}

// Unwrap はErrInvalidMessageを返す。
func (e *ProtocolError) Unwrap() error {
	return ErrInvalidMessage
}

// NewProtocolError はProtocolErrorを生成する。
func NewProtocolError(messageType, reason string) *ProtocolError {
	return &ProtocolError{
		MessageType: messageType,
		Reason:      reason,
	}
}
