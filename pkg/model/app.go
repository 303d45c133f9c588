// Package model はクラウドブローカーとクライアントで共有するデータモデルを提供する。
package model

// AppType はTPAの種別を表す。
type AppType string

const (
	// AppTypeStandard はフォアグラウンドで表示を持つ通常アプリ
	AppTypeStandard AppType = "standard"
	// AppTypeBackground は表示を持たないバックグラウンドアプリ
	AppTypeBackground AppType = "background"
)

// App はアプリカタログ上のTPA定義を表す。
// Valkeyキー: app:{PackageName}
// CRUD層が書き込み、ブローカーは読み取りのみ行う。
type App struct {
	PackageName  string  `redis:"package_name" json:"packageName"`
	Name         string  `redis:"name" json:"name"`
	AppType      AppType `redis:"app_type" json:"appType"`
	WebhookURL   string  `redis:"webhook_url" json:"webhookURL"`
	PublicURL    string  `redis:"public_url" json:"publicURL"`
	HashedAPIKey string  `redis:"hashed_api_key" json:"-"`
}

// IsBackground はバックグラウンドアプリかどうかを返す。
func (a *App) IsBackground() bool {
	return a.AppType == AppTypeBackground
}

// AppInfo はアプリ状態通知に含まれる1アプリ分の情報。
type AppInfo struct {
	PackageName  string  `json:"packageName"`
	Name         string  `json:"name"`
	AppType      AppType `json:"appType"`
	IsRunning    bool    `json:"is_running"`
	IsForeground bool    `json:"is_foreground"`
}

// AppStateChange はデバイスへ通知するアプリ状態のスナップショット。
// Generationはセッション内で単調増加する。
type AppStateChange struct {
	SessionID             string    `json:"sessionId"`
	Generation            uint64    `json:"generation"`
	Apps                  []AppInfo `json:"installedApps"`
	ActiveAppPackageNames []string  `json:"activeAppPackageNames"`
	Timestamp             int64     `json:"timestamp"`
}

// IsRunning は指定パッケージが起動中かどうかを返す。
func (s *AppStateChange) IsRunning(packageName string) bool {
	for _, name := range s.ActiveAppPackageNames {
		if name == packageName {
			return true
		}
	}
	return false
}
