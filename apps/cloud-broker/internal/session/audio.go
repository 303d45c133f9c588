package session

import (
	"sync"
	"time"
)

// AudioFrame はリングバッファに保持する符号化済み音声チャンク。
type AudioFrame struct {
	Seq       uint64
	Timestamp time.Time
	Duration  time.Duration
	Codec     string
	Data      []byte
}

// AudioBuffer は直近retention分の音声チャンクを保持するリングバッファ。
// 書き込みは単一プロデューサー、読み出しはコピーを返す。
type AudioBuffer struct {
	mu        sync.RWMutex
	frames    []AudioFrame
	head      int
	total     time.Duration
	retention time.Duration
}

// NewAudioBuffer は新しいAudioBufferを生成する。
func NewAudioBuffer(retention time.Duration) *AudioBuffer {
	return &AudioBuffer{retention: retention}
}

// Append はチャンクを追加し、保持時間を超えた古いチャンクを破棄する。
func (b *AudioBuffer) Append(f AudioFrame) {
	if f.Duration <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.frames = append(b.frames, f)
	b.total += f.Duration
	for b.total > b.retention && b.head < len(b.frames) {
		b.total -= b.frames[b.head].Duration
		b.frames[b.head] = AudioFrame{}
		b.head++
	}

	// 先頭の空き領域が半分を超えたら詰める
	if b.head > 0 && b.head*2 >= len(b.frames) {
		n := copy(b.frames, b.frames[b.head:])
		clear(b.frames[n:])
		b.frames = b.frames[:n]
		b.head = 0
	}
}

// Snapshot は保持中のチャンクを古い順にコピーして返す。
func (b *AudioBuffer) Snapshot() []AudioFrame {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]AudioFrame, len(b.frames)-b.head)
	copy(out, b.frames[b.head:])
	return out
}

// Duration は保持中の音声の合計時間を返す。
func (b *AudioBuffer) Duration() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.total
}

// Len は保持中のチャンク数を返す。
func (b *AudioBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.frames) - b.head
}

// Retention は保持時間を返す。
func (b *AudioBuffer) Retention() time.Duration {
	return b.retention
}
