package audio

import "errors"

// ErrQueueClosed はクローズ済みキューから取り出そうとした場合のエラー
var ErrQueueClosed = errors.New("audio queue closed")
