package logging

// イベントID定数
const (
	// セッション
	EventSessionAttach     = "SESSION_ATTACH"
	EventSessionSupersede  = "SESSION_SUPERSEDE"
	EventSessionDisconnect = "SESSION_DISCONNECT"
	EventSessionDetach     = "SESSION_DETACH"
	EventSessionGraceEnd   = "SESSION_GRACE_END"

	// アプリライフサイクル
	EventAppStart          = "APP_START"
	EventAppStartFail      = "APP_START_ERR"
	EventAppConnect        = "APP_CONNECT"
	EventAppConnectTimeout = "APP_CONNECT_TIMEOUT"
	EventAppStop           = "APP_STOP"
	EventAppDisconnect     = "APP_DISCONNECT"
	EventAppStatePush      = "APP_STATE_PUSH"
	EventAppStatePushFail  = "APP_STATE_PUSH_ERR"

	// イベント配信
	EventRouteDelivered = "ROUTE_OK"
	EventRouteFallback  = "ROUTE_FALLBACK"
	EventRouteSendFail  = "ROUTE_SEND_ERR"
	EventSubscription   = "SUBSCRIPTION_UPDATE"
	EventMicState       = "MIC_STATE_PUSH"
	EventDisplayRelay   = "DISPLAY_RELAY"
	EventSettingsPush   = "SETTINGS_PUSH"

	// キャプチャ
	EventCaptureCreate   = "CAPTURE_CREATE"
	EventCaptureResolve  = "CAPTURE_RESOLVE"
	EventCaptureExpired  = "CAPTURE_EXPIRED"
	EventCaptureUnknown  = "CAPTURE_UNKNOWN"
	EventCaptureSweep    = "CAPTURE_SWEEP"
	EventGallerySaveFail = "GALLERY_SAVE_ERR"
	EventCaptureForward  = "CAPTURE_FORWARD_ERR"

	// TPAサーバー登録
	EventTPARegister  = "TPA_REGISTER"
	EventTPATempKey   = "TPA_TEMP_KEY"
	EventTPAHeartbeat = "TPA_HEARTBEAT"
	EventTPAStale     = "TPA_STALE"
	EventTPARecovered = "TPA_RECOVERED"
	EventTPARestart   = "TPA_RESTART"

	// 外部連携
	EventWebhookErr = "WEBHOOK_ERR"
	EventCBOpen     = "CB_OPEN"
	EventCBHalfOpen = "CB_HALF_OPEN"
	EventCBClose    = "CB_CLOSE"

	// デバイス
	EventAudioEncodeErr   = "AUDIO_ENCODE_ERR"
	EventAudioCaptureErr  = "AUDIO_CAPTURE_ERR"
	EventGlassesState     = "GLASSES_STATE"
	EventGlassesDisplay   = "GLASSES_DISPLAY"
	EventMicRoute         = "MIC_ROUTE"
	EventMicRouteFail     = "MIC_ROUTE_ERR"
	EventUplinkConnect    = "UPLINK_CONNECT"
	EventUplinkDisconnect = "UPLINK_DISCONNECT"
	EventUplinkSendFail   = "UPLINK_SEND_ERR"
	EventPhotoUpload      = "PHOTO_UPLOAD"
	EventPhotoUploadFail  = "PHOTO_UPLOAD_ERR"

	// 運用TUI
	EventAuditLog = "AUDIT_LOG"

	// インフラ
	EventValkeyErr   = "VALKEY_ERR"
	EventProtocolErr = "PROTOCOL_ERR"
	EventSystemErr   = "SYS_ERR"
)
