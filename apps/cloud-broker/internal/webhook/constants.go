package webhook

// HTTPヘッダ名
const (
	HeaderTraceID     = "X-Trace-ID"
	HeaderContentType = "Content-Type"
)

// Content-Type
const (
	ContentTypeJSON = "application/json"
)

// TPAサーバーの設定受け付けパス
const settingsPath = "/settings"
