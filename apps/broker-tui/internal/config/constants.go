package config

import "time"

// MinRefreshInterval は自動更新間隔の下限。
const MinRefreshInterval = time.Second

// AppName はログおよび監査ログに出力するアプリケーション名。
const AppName = "broker-tui"
