// Package audiocodec は音声フレームの符号化・復号を提供する。
package audiocodec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/zaf/g711"
)

// 音声フォーマット
const (
	SampleRate      = 16000 // Hz
	FrameDurationMs = 10
	SamplesPerFrame = SampleRate * FrameDurationMs / 1000 // 160
	BytesPerFrame   = SamplesPerFrame * 2                 // 16bit PCM
)

// コーデック名
const (
	NamePCMU  = "pcmu"
	NamePCM16 = "pcm16"
)

var (
	// ErrEmptyFrame は空フレームを符号化しようとした場合のエラー
	ErrEmptyFrame = errors.New("empty audio frame")
	// ErrUnknownCodec は未対応のコーデック名のエラー
	ErrUnknownCodec = errors.New("unknown codec")
)

// Codec は音声フレームの符号化方式。
type Codec interface {
	Name() string
	Encode(pcm []int16) ([]byte, error)
	Decode(data []byte) ([]int16, error)
}

// New はコーデック名からCodecを生成する。
func New(name string) (Codec, error) {
	switch name {
	case NamePCMU:
		return muLaw{}, nil
	case NamePCM16:
		return pcm16{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCodec, name)
	}
}

// muLaw はG.711 µ-lawによる低ビットレート伝送用コーデック。
type muLaw struct{}

func (muLaw) Name() string { return NamePCMU }

func (muLaw) Encode(pcm []int16) ([]byte, error) {
	if len(pcm) == 0 {
		return nil, ErrEmptyFrame
	}
	return g711.EncodeUlaw(samplesToBytes(pcm)), nil
}

func (muLaw) Decode(data []byte) ([]int16, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFrame
	}
	return bytesToSamples(g711.DecodeUlaw(data)), nil
}

// pcm16 は無圧縮のリトルエンディアン16bit PCM。
type pcm16 struct{}

func (pcm16) Name() string { return NamePCM16 }

func (pcm16) Encode(pcm []int16) ([]byte, error) {
	if len(pcm) == 0 {
		return nil, ErrEmptyFrame
	}
	return samplesToBytes(pcm), nil
}

func (pcm16) Decode(data []byte) ([]int16, error) {
	if len(data) == 0 || len(data)%2 != 0 {
		return nil, fmt.Errorf("invalid pcm16 payload length %d", len(data))
	}
	return bytesToSamples(data), nil
}

// samplesToBytes はサンプル列をリトルエンディアンのバイト列に変換する。
func samplesToBytes(pcm []int16) []byte {
	buf := make([]byte, len(pcm)*2)
	for i, s := range pcm {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}

// bytesToSamples はリトルエンディアンのバイト列をサンプル列に変換する。
func bytesToSamples(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
	}
	return out
}

// DecodeAll は同一コーデックの複数チャンクを連結したPCMに復号する。
// 復号できないチャンクはスキップし、その数を返す。
func DecodeAll(c Codec, chunks [][]byte) ([]int16, int) {
	var (
		out     []int16
		skipped int
	)
	for _, chunk := range chunks {
		pcm, err := c.Decode(chunk)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, pcm...)
	}
	return out, skipped
}

// PCMBytes はサンプル列をリトルエンディアンのバイト列に変換する。
func PCMBytes(pcm []int16) []byte {
	return samplesToBytes(pcm)
}
