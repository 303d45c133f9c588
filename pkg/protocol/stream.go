package protocol

import "strings"

// StreamType はTPAが購読できるイベントストリームの種別。
// 言語付きストリームは "transcription:en-US" の形式をとる。
type StreamType string

const (
	StreamAll                    StreamType = "*"
	StreamButtonPress            StreamType = "button_press"
	StreamHeadPosition           StreamType = "head_position"
	StreamTranscription          StreamType = "transcription"
	StreamTranslation            StreamType = "translation"
	StreamAudioChunk             StreamType = "audio_chunk"
	StreamPhotoResponse          StreamType = "photo_response"
	StreamGlassesBattery         StreamType = "glasses_battery_update"
	StreamPhoneBattery           StreamType = "phone_battery_update"
	StreamGlassesConnectionState StreamType = "glasses_connection_state"
	StreamLocationUpdate         StreamType = "location_update"
	StreamCalendarEvent          StreamType = "calendar_event"
	StreamVAD                    StreamType = "VAD"
	StreamPhoneNotification      StreamType = "phone_notification"
	StreamCoreStatus             StreamType = "core_status_update"
	StreamCustomMessage          StreamType = "custom_message"
)

// DefaultLanguage は言語修飾のない文字起こしストリームが受け取る言語。
const DefaultLanguage = "en-US"

var knownStreams = map[StreamType]struct{}{
	StreamAll:                    {},
	StreamButtonPress:            {},
	StreamHeadPosition:           {},
	StreamTranscription:          {},
	StreamTranslation:            {},
	StreamAudioChunk:             {},
	StreamPhotoResponse:          {},
	StreamGlassesBattery:         {},
	StreamPhoneBattery:           {},
	StreamGlassesConnectionState: {},
	StreamLocationUpdate:         {},
	StreamCalendarEvent:          {},
	StreamVAD:                    {},
	StreamPhoneNotification:      {},
	StreamCoreStatus:             {},
	StreamCustomMessage:          {},
}

// Base は言語修飾を除いたストリーム種別を返す。
func (s StreamType) Base() StreamType {
	base, _, _ := strings.Cut(string(s), ":")
	return StreamType(base)
}

// Language は言語修飾を返す。修飾がなければ空文字列。
func (s StreamType) Language() string {
	_, lang, _ := strings.Cut(string(s), ":")
	return lang
}

// IsValid は既知のストリーム種別かどうかを返す。
func (s StreamType) IsValid() bool {
	_, ok := knownStreams[s.Base()]
	if !ok {
		return false
	}
	if s.Language() != "" {
		base := s.Base()
		return base == StreamTranscription || base == StreamTranslation
	}
	return true
}

// RequiresMicrophone はマイク入力を必要とするストリームかどうかを返す。
func (s StreamType) RequiresMicrophone() bool {
	switch s.Base() {
	case StreamAudioChunk, StreamTranscription, StreamTranslation, StreamVAD, StreamAll:
		return true
	}
	return false
}

// LanguageStream は言語付きストリーム種別を生成する。
func LanguageStream(base StreamType, language string) StreamType {
	if language == "" {
		return base
	}
	return StreamType(string(base) + ":" + language)
}

// StreamForMessage はデバイスメッセージ種別に対応するストリーム種別を返す。
func StreamForMessage(t MessageType) (StreamType, bool) {
	s := StreamType(t)
	if s == StreamAll || s == StreamAudioChunk || s == StreamPhotoResponse {
		return "", false
	}
	if _, ok := knownStreams[s]; !ok {
		return "", false
	}
	return s, true
}
