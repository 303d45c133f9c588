package uplink

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/oyaguma3/glasses-session-broker/pkg/httputil"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
)

// UploadResult は写真アップロードの応答。
type UploadResult struct {
	Success   bool   `json:"success"`
	RequestID string `json:"requestId"`
	PhotoURL  string `json:"photoUrl"`
}

// Uploader は撮影した写真をクラウドへmultipartでアップロードする。
type Uploader struct {
	httpClient *resty.Client
	url        string
	token      string
}

// NewUploader は新しいUploaderを生成する。
func NewUploader(url, token string, timeout time.Duration) *Uploader {
	return &Uploader{
		httpClient: resty.New().SetTimeout(timeout),
		url:        url,
		token:      token,
	}
}

// Upload は写真をアップロードする。2xx以外はAPIErrorを返す。
func (u *Uploader) Upload(ctx context.Context, requestID string, data []byte, mimeType string) (*UploadResult, error) {
	start := time.Now()

	var result UploadResult
	resp, err := u.httpClient.R().
		SetContext(ctx).
		SetAuthToken(u.token).
		SetFormData(map[string]string{"requestId": requestID}).
		SetMultipartField("photo", requestID+extension(mimeType), mimeType, bytes.NewReader(data)).
		SetResult(&result).
		Post(u.url)
	if err != nil {
		return nil, fmt.Errorf("photo upload failed: %w", err)
	}

	latencyMs := time.Since(start).Milliseconds()
	if resp.IsError() {
		apiErr := parseAPIError(resp.StatusCode(), resp.Body())
		slog.Warn("photo upload rejected",
			logging.FieldEventID, logging.EventPhotoUploadFail,
			logging.FieldRequestID, requestID,
			logging.FieldHTTPStatus, resp.StatusCode(),
			logging.FieldLatencyMs, latencyMs,
			logging.FieldError, apiErr.Error(),
		)
		return nil, apiErr
	}

	slog.Info("photo uploaded",
		logging.FieldEventID, logging.EventPhotoUpload,
		logging.FieldRequestID, requestID,
		logging.FieldLatencyMs, latencyMs,
		"size", len(data),
	)
	return &result, nil
}

// parseAPIError はエラーレスポンスをAPIErrorに変換する。
func parseAPIError(statusCode int, body []byte) *APIError {
	if details, ok := httputil.ParseProblem(body); ok {
		return &APIError{
			StatusCode: statusCode,
			Message:    details.Title,
			Details:    details,
		}
	}
	msg := string(body)
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	return &APIError{StatusCode: statusCode, Message: msg}
}

// extension はMIMEタイプに対応するファイル拡張子を返す。
func extension(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "video/mp4":
		return ".mp4"
	default:
		return ""
	}
}
