package protocol

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/oyaguma3/glasses-session-broker/pkg/apperr"
)

// AudioChunk はデバイスからバイナリフレームで送信される音声チャンク。
type AudioChunk struct {
	Seq        uint64 `cbor:"1,keyasint"`
	Timestamp  int64  `cbor:"2,keyasint"` // キャプチャ時刻（Unixミリ秒）
	DurationMs uint32 `cbor:"3,keyasint"`
	Codec      string `cbor:"4,keyasint"`
	Data       []byte `cbor:"5,keyasint"`
}

var audioEncMode cbor.EncMode

func init() {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	audioEncMode = em
}

// EncodeAudioChunk はAudioChunkをCBORにエンコードする。
func EncodeAudioChunk(c *AudioChunk) ([]byte, error) {
	return audioEncMode.Marshal(c)
}

// DecodeAudioChunk はCBORバイト列をAudioChunkにデコードする。
func DecodeAudioChunk(data []byte) (*AudioChunk, error) {
	var c AudioChunk
	if err := cbor.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidMessage, err)
	}
	if c.DurationMs == 0 {
		return nil, apperr.NewProtocolError("audio_chunk", "zero duration")
	}
	return &c, nil
}
