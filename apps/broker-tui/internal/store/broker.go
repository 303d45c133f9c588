package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/oyaguma3/glasses-session-broker/pkg/httputil"
	"github.com/oyaguma3/glasses-session-broker/pkg/model"
)

const internalTokenHeader = "X-Internal-Token"

var (
	// ErrInternalAPIDisabled は内部APIトークンが未設定の場合のエラー
	ErrInternalAPIDisabled = errors.New("internal API token is not configured")
	// ErrBrokerUnauthorized は内部APIトークンが拒否された場合のエラー
	ErrBrokerUnauthorized = errors.New("internal API token rejected")
)

// BrokerError はブローカーがエラー応答を返した場合のエラー。
type BrokerError struct {
	StatusCode int
	Message    string
}

func (e *BrokerError) Error() string {
	return fmt.Sprintf("broker error (status %d): %s", e.StatusCode, e.Message)
}

// BrokerClient はクラウドブローカーの内部APIクライアント。
type BrokerClient struct {
	client *resty.Client
	token  string
}

// NewBrokerClient は新しいBrokerClientを生成する。
func NewBrokerClient(baseURL, token string, timeout time.Duration) *BrokerClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &BrokerClient{client: client, token: token}
}

// Enabled は内部APIを呼び出せるかどうかを返す。
func (c *BrokerClient) Enabled() bool {
	return c.token != ""
}

// Health はブローカーのヘルスチェック結果を取得する。
func (c *BrokerClient) Health(ctx context.Context) (*model.BrokerHealth, error) {
	var health model.BrokerHealth
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&health).
		Get("/health")
	if err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	if resp.IsError() {
		return nil, parseBrokerError(resp)
	}
	return &health, nil
}

// UserSessions は指定ユーザーのセッション概要を取得する。
func (c *BrokerClient) UserSessions(ctx context.Context, userID string) ([]model.SessionSummary, error) {
	if !c.Enabled() {
		return nil, ErrInternalAPIDisabled
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errors.New("user id is required")
	}

	var sessions []model.SessionSummary
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader(internalTokenHeader, c.token).
		SetResult(&sessions).
		Get("/api/internal/sessions/" + url.PathEscape(userID))
	if err != nil {
		return nil, fmt.Errorf("sessions request failed: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, ErrBrokerUnauthorized
	}
	if resp.IsError() {
		return nil, parseBrokerError(resp)
	}
	return sessions, nil
}

func parseBrokerError(resp *resty.Response) error {
	if problem, ok := httputil.ParseProblem(resp.Body()); ok {
		return &BrokerError{StatusCode: resp.StatusCode(), Message: problem.Summary()}
	}
	return &BrokerError{StatusCode: resp.StatusCode(), Message: http.StatusText(resp.StatusCode())}
}
