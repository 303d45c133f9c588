package audio

import "github.com/oyaguma3/glasses-session-broker/pkg/protocol"

// AudioSink はキャプチャしたフレームの受け取り先。
// 1フレームごとに生PCMと符号化済みチャンクの両方が渡される。
type AudioSink interface {
	OnPCM(pcm []int16)
	OnChunk(chunk *protocol.AudioChunk)
}
