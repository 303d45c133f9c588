package connstate

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=connstate

import "context"

// AppStopper はデバイス側で起動中のアプリをすべて停止する。
type AppStopper interface {
	StopAllApps(ctx context.Context, reason string)
}

// StateReporter は確定した接続状態をクラウドへ通知する。
type StateReporter interface {
	ReportGlassesState(ctx context.Context, state State) error
}
