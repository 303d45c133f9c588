package webhook

import "errors"

// センチネルエラー
var (
	// ErrCircuitOpen は送信先ホストのCircuit BreakerがOpen状態の場合のエラー
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrNoWebhookURL は送信先URLが未設定の場合のエラー
	ErrNoWebhookURL = errors.New("webhook url not configured")
)
