package session

// Connection はデバイスまたはTPAとの双方向接続。
// 実装は送信キューを持ち、Send系メソッドはブロックしない。
type Connection interface {
	// Send はJSONメッセージを送信キューに積む
	Send(v any) error
	// SendBinary はバイナリメッセージを送信キューに積む
	SendBinary(data []byte) error
	// Close は接続を閉じる
	Close(reason string)
	// IsOpen は接続が有効かどうかを返す
	IsOpen() bool
}
