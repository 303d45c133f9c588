// Package webhook はTPAサーバーへのHTTP通知を提供する。
package webhook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/config"
	"github.com/oyaguma3/glasses-session-broker/pkg/apperr"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	"github.com/sony/gobreaker"
)

// Client はTPAサーバーへのWebhookクライアント。
// Circuit Breakerは送信先ホストごとに独立して持つ。
type Client struct {
	httpClient   *resty.Client
	websocketURL string
	now          func() time.Time

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewClient は新しいWebhookクライアントを生成する。
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient:   resty.New().SetTimeout(cfg.WebhookTimeout),
		websocketURL: tpaWebsocketURL(cfg.PublicURL),
		now:          time.Now,
		breakers:     make(map[string]*gobreaker.CircuitBreaker),
	}
}

// tpaWebsocketURL は公開URLからTPA接続用のWebSocket URLを組み立てる。
func tpaWebsocketURL(publicURL string) string {
	base := strings.TrimRight(publicURL, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/tpa-ws"
}

// TriggerSessionRequest はTPAにセッションへの接続を依頼する。
func (c *Client) TriggerSessionRequest(ctx context.Context, webhookURL, sessionID, userID string) error {
	return c.post(ctx, webhookURL, &SessionRequest{
		Type:         TypeSessionRequest,
		SessionID:    sessionID,
		UserID:       userID,
		WebsocketURL: c.websocketURL,
		Timestamp:    c.now().UnixMilli(),
	})
}

// TriggerStop はTPAにセッションからの離脱を通知する。
func (c *Client) TriggerStop(ctx context.Context, webhookURL, sessionID, userID, reason string) error {
	return c.post(ctx, webhookURL, &StopRequest{
		Type:      TypeStopRequest,
		SessionID: sessionID,
		UserID:    userID,
		Reason:    reason,
		Timestamp: c.now().UnixMilli(),
	})
}

// PushSettings はTPAサーバーにユーザー設定の更新を通知する。
func (c *Client) PushSettings(ctx context.Context, serverURL, userID string, settings []byte) error {
	if serverURL == "" {
		return ErrNoWebhookURL
	}
	return c.post(ctx, strings.TrimRight(serverURL, "/")+settingsPath, &SettingsRequest{
		UserIDForSettings: userID,
		Settings:          settings,
	})
}

// post はJSONボディをPOSTする。
// 5xxと接続エラーのみCircuit Breakerの失敗として数える。
func (c *Client) post(ctx context.Context, target string, body any) error {
	if target == "" {
		return ErrNoWebhookURL
	}
	cb, err := c.breaker(target)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := cb.Execute(func() (any, error) {
		req := c.httpClient.R().
			SetContext(ctx).
			SetHeader(HeaderContentType, ContentTypeJSON).
			SetBody(body)
		if traceID := TraceIDFromContext(ctx); traceID != "" {
			req.SetHeader(HeaderTraceID, traceID)
		}

		resp, err := req.Post(target)
		if err != nil {
			return nil, apperr.NewWebhookError(target, 0, fmt.Errorf("%w: %v", apperr.ErrWebhookCommunication, err))
		}

		status := resp.StatusCode()
		if status >= 500 {
			return nil, apperr.NewWebhookError(target, status, apperr.ErrWebhookCommunication)
		}
		if status >= 300 {
			// CB対象外のエラーはnilを返してカウントに含めない
			return apperr.NewWebhookError(target, status, apperr.ErrWebhookCommunication), nil
		}
		return nil, nil
	})
	latencyMs := time.Since(start).Milliseconds()

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return ErrCircuitOpen
		}
		logWebhookError(target, err, latencyMs)
		return err
	}
	if whErr, ok := result.(*apperr.WebhookError); ok {
		logWebhookError(target, whErr, latencyMs)
		return whErr
	}

	slog.Debug("webhook delivered",
		"url", target,
		logging.FieldLatencyMs, latencyMs,
	)
	return nil
}

func logWebhookError(target string, err error, latencyMs int64) {
	status := 0
	var whErr *apperr.WebhookError
	if errors.As(err, &whErr) {
		status = whErr.StatusCode
	}
	slog.Warn("webhook error",
		logging.FieldEventID, logging.EventWebhookErr,
		logging.FieldError, err.Error(),
		"url", target,
		logging.FieldHTTPStatus, status,
		logging.FieldLatencyMs, latencyMs,
	)
}

// breaker は送信先ホストのCircuit Breakerを返す。
func (c *Client) breaker(target string) (*gobreaker.CircuitBreaker, error) {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return nil, apperr.NewWebhookError(target, 0, fmt.Errorf("%w: invalid url", apperr.ErrWebhookCommunication))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cb, ok := c.breakers[u.Host]; ok {
		return cb, nil
	}
	cb := gobreaker.NewCircuitBreaker(breakerSettings(u.Host))
	c.breakers[u.Host] = cb
	return cb, nil
}

func breakerSettings(host string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "tpa:" + host,
		MaxRequests: config.CBMaxRequests,
		Interval:    config.CBInterval,
		Timeout:     config.CBTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.CBFailureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			switch to {
			case gobreaker.StateOpen:
				slog.Warn("circuit breaker opened",
					logging.FieldEventID, logging.EventCBOpen,
					"cb_name", name,
				)
			case gobreaker.StateHalfOpen:
				slog.Info("circuit breaker half-open",
					logging.FieldEventID, logging.EventCBHalfOpen,
					"cb_name", name,
				)
			case gobreaker.StateClosed:
				slog.Info("circuit breaker closed",
					logging.FieldEventID, logging.EventCBClose,
					"cb_name", name,
				)
			}
		},
	}
}

// traceIDKey はコンテキストからTrace IDを取得するためのキー型
type traceIDKey struct{}

// WithTraceID はコンテキストにTrace IDを設定する。
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext はコンテキストのTrace IDを返す。未設定なら空文字列。
func TraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}
