package glasses

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"log/slog"
	"sync"
	"time"

	"github.com/oyaguma3/glasses-session-broker/pkg/audiocodec"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	"k8s.io/utils/clock"
)

// 模擬撮影画像のサイズ
const (
	photoWidth  = 64
	photoHeight = 48
)

// DisplayState は最後に表示した内容。
type DisplayState struct {
	View   string
	Text   string
	Layout json.RawMessage
}

// Simulated は実機なしで動くグラス実装。Capabilitiesにない機能はBaseの既定動作になる。
// 内蔵マイクは無音を実時間で送り、カメラは単色のJPEGを返す。
type Simulated struct {
	*Base
	clock clock.WithTicker

	mu      sync.Mutex
	display DisplayState
	micStop context.CancelFunc
	micDone chan struct{}
}

// NewSimulated は新しいSimulatedを生成する。
func NewSimulated(caps Capabilities, clk clock.WithTicker) *Simulated {
	return &Simulated{Base: NewBase(caps), clock: clk}
}

// Connect は接続を通知し、続けてバッテリー残量を通知する。
func (s *Simulated) Connect(ctx context.Context) error {
	if err := s.Base.Connect(ctx); err != nil {
		return err
	}
	s.SetBattery(100, false)
	return nil
}

// Disconnect はマイクを止めてから切断を通知する。
func (s *Simulated) Disconnect() error {
	s.stopMic()
	return s.Base.Disconnect()
}

// DisplayText はテキストを表示する。
func (s *Simulated) DisplayText(view, text string) error {
	return s.show(DisplayState{View: view, Text: text})
}

// DisplayLayout はレイアウトを表示する。
func (s *Simulated) DisplayLayout(view string, layout json.RawMessage) error {
	return s.show(DisplayState{View: view, Layout: layout})
}

// ClearDisplay は表示を消去する。
func (s *Simulated) ClearDisplay() error {
	return s.show(DisplayState{})
}

func (s *Simulated) show(state DisplayState) error {
	if !s.caps.HasDisplay {
		return ErrUnsupported
	}
	if !s.Connected() {
		return ErrNotConnected
	}
	s.mu.Lock()
	s.display = state
	s.mu.Unlock()

	slog.Debug("glasses display updated",
		logging.FieldEventID, logging.EventGlassesDisplay,
		"view", state.View,
		"text_len", len(state.Text),
		"layout_len", len(state.Layout),
	)
	return nil
}

// Display は最後に表示した内容を返す。
func (s *Simulated) Display() DisplayState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display
}

// SetMicrophoneEnabled は内蔵マイクを切り替える。
func (s *Simulated) SetMicrophoneEnabled(enabled bool) error {
	if !s.caps.HasMicrophone {
		return ErrUnsupported
	}
	if !enabled {
		s.stopMic()
		return nil
	}
	if !s.Connected() {
		return ErrNotConnected
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.micStop != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.micStop, s.micDone = cancel, done
	go s.streamMic(ctx, done)
	return nil
}

// MicrophoneEnabled は内蔵マイクが有効かどうかを返す。
func (s *Simulated) MicrophoneEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.micStop != nil
}

func (s *Simulated) streamMic(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := s.clock.NewTicker(audiocodec.FrameDurationMs * time.Millisecond)
	defer ticker.Stop()

	frame := make([]byte, audiocodec.BytesPerFrame)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if sink := s.eventSink(); sink != nil {
				sink.OnAudio(frame)
			}
		}
	}
}

func (s *Simulated) stopMic() {
	s.mu.Lock()
	stop, done := s.micStop, s.micDone
	s.micStop, s.micDone = nil, nil
	s.mu.Unlock()
	if stop != nil {
		stop()
		<-done
	}
}

// RequestPhoto は撮影を行い、結果を非同期にOnPhotoで通知する。
func (s *Simulated) RequestPhoto(ctx context.Context, requestID string) error {
	if !s.caps.HasCamera {
		return ErrUnsupported
	}
	if !s.Connected() {
		return ErrNotConnected
	}
	go func() {
		data, err := placeholderJPEG()
		if err != nil {
			slog.Error("failed to encode simulated photo", logging.FieldError, err.Error())
			return
		}
		if sink := s.eventSink(); sink != nil {
			sink.OnPhoto(requestID, data, "image/jpeg")
		}
	}()
	return nil
}

// PressButton はボタン押下を通知する。
func (s *Simulated) PressButton(buttonID, pressType string) {
	if sink := s.eventSink(); sink != nil {
		sink.OnButtonPress(buttonID, pressType)
	}
}

// Look は頭部の向きの変化を通知する。
func (s *Simulated) Look(position string) {
	if sink := s.eventSink(); sink != nil {
		sink.OnHeadPosition(position)
	}
}

// SetBattery はバッテリー残量を通知する。
func (s *Simulated) SetBattery(level int, charging bool) {
	if sink := s.eventSink(); sink != nil {
		sink.OnBattery(level, charging)
	}
}

// placeholderJPEG は単色の小さなJPEGを生成する。
func placeholderJPEG() ([]byte, error) {
	img := image.NewGray(image.Rect(0, 0, photoWidth, photoHeight))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	img.Set(0, 0, color.Gray{Y: 0xff})

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
