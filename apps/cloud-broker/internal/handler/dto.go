package handler

import "github.com/oyaguma3/glasses-session-broker/pkg/model"

// RegisterRequest はPOST /api/tpa-server/register のリクエスト。
type RegisterRequest struct {
	PackageName string   `json:"packageName"`
	APIKey      string   `json:"apiKey"`
	WebhookURL  string   `json:"webhookUrl"`
	ServerURLs  []string `json:"serverUrls"`
}

// RegisterResponse はTPAサーバー登録のレスポンス。
type RegisterResponse struct {
	Success      bool                         `json:"success"`
	Registration *model.TpaServerRegistration `json:"registration"`
}

// RegistrationIDRequest はハートビートと再起動通知のリクエスト。
type RegistrationIDRequest struct {
	RegistrationID string `json:"registrationId" binding:"required"`
}

// HeartbeatResponse はハートビートのレスポンス。
type HeartbeatResponse struct {
	Success bool `json:"success"`
}

// RestartResponse は再起動通知のレスポンス。
type RestartResponse struct {
	Success           bool `json:"success"`
	RecoveredSessions int  `json:"recoveredSessions"`
}

// UploadResponse は写真アップロードのレスポンス。
type UploadResponse struct {
	Success   bool   `json:"success"`
	RequestID string `json:"requestId"`
	PhotoURL  string `json:"photoUrl"`
}
