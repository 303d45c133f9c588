// Package httputil はHTTP関連のユーティリティを提供する。
package httputil

import (
	"encoding/json"
	"net/http"
)

// ContentType はRFC 7807で定義されたContent-Typeヘッダー値。
const ContentType = "application/problem+json"

// ProblemDetail はRFC 7807準拠のエラーレスポンス。
// TraceIDはブローカー独自の拡張メンバー。
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	TraceID  string `json:"traceId,omitempty"`
}

// NewProblemDetail は新しいProblemDetailを生成する。titleが空ならステータス文言を使う。
func NewProblemDetail(status int, title, detail string) *ProblemDetail {
	if title == "" {
		title = http.StatusText(status)
	}
	return &ProblemDetail{
		Type:   "about:blank",
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

// Error はerrorインターフェースを満たす。
func (p *ProblemDetail) Error() string {
	return p.Summary()
}

// Summary は "Title: Detail" 形式の一行表現を返す。
func (p *ProblemDetail) Summary() string {
	if p.Detail == "" {
		return p.Title
	}
	return p.Title + ": " + p.Detail
}

// ParseProblem はレスポンスボディをProblemDetailとして解釈する。
// JSONでない場合やtitleが無い場合はfalseを返す。
func ParseProblem(body []byte) (*ProblemDetail, bool) {
	var p ProblemDetail
	if err := json.Unmarshal(body, &p); err != nil || p.Title == "" {
		return nil, false
	}
	return &p, true
}

func BadRequest(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusBadRequest, "", detail)
}

func Unauthorized(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusUnauthorized, "", detail)
}

func Forbidden(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusForbidden, "", detail)
}

func NotFound(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusNotFound, "", detail)
}

// Gone は期限切れのキャプチャリクエストなど、存在したが失効したリソースに使う。
func Gone(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusGone, "", detail)
}

func RequestEntityTooLarge(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusRequestEntityTooLarge, "", detail)
}

func InternalServerError(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusInternalServerError, "", detail)
}

func BadGateway(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusBadGateway, "", detail)
}

func ServiceUnavailable(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusServiceUnavailable, "", detail)
}
