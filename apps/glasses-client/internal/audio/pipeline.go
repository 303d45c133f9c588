// Package audio はデバイス側の音声キャプチャパイプラインを提供する。
package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/oyaguma3/glasses-session-broker/pkg/audiocodec"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	"github.com/oyaguma3/glasses-session-broker/pkg/protocol"
	"k8s.io/utils/clock"
)

// readChunkBytes は1回の読み込みサイズ。フレーム境界とは一致させない。
const readChunkBytes = 1024

// Pipeline は16kHzモノラルPCMのバイト列を10msフレームに区切り、
// 符号化してAudioSinkへ渡す。フレームに満たない端数は次の書き込みへ持ち越す。
type Pipeline struct {
	codec audiocodec.Codec
	sink  AudioSink
	clock clock.PassiveClock

	mu           sync.Mutex
	carry        []byte
	seq          uint64
	encodeErrors uint64
}

// NewPipeline は新しいPipelineを生成する。
func NewPipeline(codec audiocodec.Codec, sink AudioSink, clk clock.PassiveClock) *Pipeline {
	return &Pipeline{
		codec: codec,
		sink:  sink,
		clock: clk,
		carry: make([]byte, 0, audiocodec.BytesPerFrame),
	}
}

// Write はリトルエンディアン16bit PCMを受け取る。io.Writerを満たす。
func (p *Pipeline) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(data)
	for len(data) > 0 {
		need := audiocodec.BytesPerFrame - len(p.carry)
		if need > len(data) {
			p.carry = append(p.carry, data...)
			break
		}
		p.carry = append(p.carry, data[:need]...)
		data = data[need:]
		p.emit(p.carry)
		p.carry = p.carry[:0]
	}
	return n, nil
}

// emit は1フレーム分のバイト列をサンプル化し、シンクへ渡す。
func (p *Pipeline) emit(frame []byte) {
	pcm := make([]int16, audiocodec.SamplesPerFrame)
	for i := range pcm {
		pcm[i] = int16(binary.LittleEndian.Uint16(frame[i*2:]))
	}
	p.sink.OnPCM(pcm)

	encoded, err := p.codec.Encode(pcm)
	if err != nil {
		p.encodeErrors++
		slog.Warn("audio frame encode failed",
			logging.FieldEventID, logging.EventAudioEncodeErr,
			logging.FieldError, err.Error(),
			"codec", p.codec.Name(),
		)
		return
	}
	p.seq++
	p.sink.OnChunk(&protocol.AudioChunk{
		Seq:        p.seq,
		Timestamp:  p.clock.Now().UnixMilli(),
		DurationMs: audiocodec.FrameDurationMs,
		Codec:      p.codec.Name(),
		Data:       encoded,
	})
}

// Pending は持ち越し中の端数バイト数を返す。
func (p *Pipeline) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.carry)
}

// EncodeErrors は符号化に失敗してスキップしたフレーム数を返す。
func (p *Pipeline) EncodeErrors() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encodeErrors
}

// Reset は持ち越し中の端数を破棄する。マイク経路の切り替え時に呼ぶ。
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.carry = p.carry[:0]
}

// Capture はrからEOFまたはctxの終了まで読み込み、パイプラインへ流す。
func (p *Pipeline) Capture(ctx context.Context, r io.Reader) error {
	buf := make([]byte, readChunkBytes)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := r.Read(buf)
		if n > 0 {
			_, _ = p.Write(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
