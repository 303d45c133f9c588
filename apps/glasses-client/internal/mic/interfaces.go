package mic

import "context"

// Route はマイク経路のハードウェア操作。
// Startはctxがキャンセルされたら速やかに戻らなければならない。
// ctxは開始処理にのみ使い、開始後の録音はStopまで継続する。
type Route interface {
	Start(ctx context.Context, mode Mode) error
	Stop(mode Mode)
}

// GlassesMic はグラス内蔵マイクの有無を返す。
type GlassesMic interface {
	HasMicrophone() bool
}

// GlassesMicSwitch はグラス内蔵マイクの有効・無効を切り替える。
type GlassesMicSwitch interface {
	SetMicrophoneEnabled(enabled bool) error
}
