package model

import (
	"strings"
	"time"
)

// TpaServerRegistration はTPAサーバーの登録情報を表す。
// Valkeyキー: tpareg:{RegistrationID}
// 古くなった登録も自動削除はしない。
type TpaServerRegistration struct {
	RegistrationID  string   `redis:"registration_id" json:"registrationId"`
	PackageName     string   `redis:"package_name" json:"packageName"`
	APIKeyHash      string   `redis:"api_key_hash" json:"-"`
	TemporaryKey    bool     `redis:"temporary_key" json:"temporaryKey"`
	WebhookURL      string   `redis:"webhook_url" json:"webhookUrl"`
	ServerURLsRaw   string   `redis:"server_urls" json:"-"`
	ServerURLs      []string `redis:"-" json:"serverUrls"`
	RegisteredAt    int64    `redis:"registered_at" json:"registeredAt"`        // Unixミリ秒
	LastHeartbeatAt int64    `redis:"last_heartbeat_at" json:"lastHeartbeatAt"` // Unixミリ秒
	Stale           bool     `redis:"stale" json:"stale"`
}

// NewTpaServerRegistration は新しいTpaServerRegistrationを生成する。
func NewTpaServerRegistration(id, packageName, apiKeyHash, webhookURL string, serverURLs []string, now time.Time) *TpaServerRegistration {
	r := &TpaServerRegistration{
		RegistrationID:  id,
		PackageName:     packageName,
		APIKeyHash:      apiKeyHash,
		WebhookURL:      webhookURL,
		RegisteredAt:    now.UnixMilli(),
		LastHeartbeatAt: now.UnixMilli(),
	}
	r.SetServerURLs(serverURLs)
	return r
}

// SetServerURLs はServerURLsとValkey保存用の文字列を同時に設定する。
func (r *TpaServerRegistration) SetServerURLs(urls []string) {
	r.ServerURLs = urls
	r.ServerURLsRaw = strings.Join(urls, ",")
}

// ParseServerURLs はValkeyから読み込んだ文字列をServerURLsに展開する。
func (r *TpaServerRegistration) ParseServerURLs() {
	if r.ServerURLsRaw == "" {
		r.ServerURLs = nil
		return
	}
	r.ServerURLs = strings.Split(r.ServerURLsRaw, ",")
}

// LastHeartbeat は最終ハートビート時刻を返す。
func (r *TpaServerRegistration) LastHeartbeat() time.Time {
	return time.UnixMilli(r.LastHeartbeatAt)
}
