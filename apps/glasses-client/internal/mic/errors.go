package mic

import "errors"

var (
	// ErrAttemptTimeout は経路の開始が試行時間内に完了しなかった場合のエラー
	ErrAttemptTimeout = errors.New("microphone route start timed out")
	// ErrUnsupportedMode は経路が扱えないモードのエラー
	ErrUnsupportedMode = errors.New("unsupported microphone mode")
	// ErrNoGlassesMic はグラスにマイクがない場合のエラー
	ErrNoGlassesMic = errors.New("glasses have no microphone")
)
