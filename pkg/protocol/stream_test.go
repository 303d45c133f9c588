package protocol

import "testing"

func TestStreamTypeBaseAndLanguage(t *testing.T) {
	tests := []struct {
		stream   StreamType
		wantBase StreamType
		wantLang string
	}{
		{StreamButtonPress, StreamButtonPress, ""},
		{"transcription:en-US", StreamTranscription, "en-US"},
		{"translation:ja-JP", StreamTranslation, "ja-JP"},
	}

	for _, tt := range tests {
		t.Run(string(tt.stream), func(t *testing.T) {
			if got := tt.stream.Base(); got != tt.wantBase {
				t.Errorf("Base() = %q, want %q", got, tt.wantBase)
			}
			if got := tt.stream.Language(); got != tt.wantLang {
				t.Errorf("Language() = %q, want %q", got, tt.wantLang)
			}
		})
	}
}

func TestStreamTypeIsValid(t *testing.T) {
	tests := []struct {
		stream StreamType
		want   bool
	}{
		{StreamAll, true},
		{StreamHeadPosition, true},
		{"transcription:en-US", true},
		{"button_press:en-US", false},
		{"unknown_stream", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.stream), func(t *testing.T) {
			if got := tt.stream.IsValid(); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.stream, got, tt.want)
			}
		})
	}
}

func TestStreamForMessage(t *testing.T) {
	if s, ok := StreamForMessage(TypeButtonPress); !ok || s != StreamButtonPress {
		t.Errorf("StreamForMessage(button_press) = %q, %v", s, ok)
	}
	if _, ok := StreamForMessage(TypeStartApp); ok {
		t.Error("StreamForMessage(start_app) should not map to a stream")
	}
}

func TestRequiresMicrophone(t *testing.T) {
	if !StreamType("transcription:en-US").RequiresMicrophone() {
		t.Error("transcription should require microphone")
	}
	if StreamButtonPress.RequiresMicrophone() {
		t.Error("button_press should not require microphone")
	}
}

func TestLanguageStream(t *testing.T) {
	if got := LanguageStream(StreamTranscription, "en-US"); got != "transcription:en-US" {
		t.Errorf("LanguageStream() = %q", got)
	}
	if got := LanguageStream(StreamTranscription, ""); got != StreamTranscription {
		t.Errorf("LanguageStream() = %q", got)
	}
}
