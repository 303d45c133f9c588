package glasses

import "errors"

var (
	// ErrUnsupported はモデルが持たない機能を呼び出した場合のエラー
	ErrUnsupported = errors.New("not supported by this glasses model")
	// ErrUnknownModel は未登録のモデル名のエラー
	ErrUnknownModel = errors.New("unknown glasses model")
	// ErrNotConnected は未接続のグラスを操作した場合のエラー
	ErrNotConnected = errors.New("glasses not connected")
)
