package mic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/oyaguma3/glasses-session-broker/apps/glasses-client/internal/audio"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	"k8s.io/utils/clock"
)

// PhoneSource は電話側マイク経路の音声ソースを開く。
type PhoneSource func(mode Mode) (io.ReadCloser, error)

// CaptureRoute は電話側の経路をパイプラインへ流し込み、
// グラス経路ではグラス内蔵マイクを有効化する。
// グラス経路の音声はデバイスイベントとしてパイプラインへ届く。
type CaptureRoute struct {
	pipeline *audio.Pipeline
	open     PhoneSource
	glasses  GlassesMicSwitch
	clock    clock.WithTicker

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewCaptureRoute は新しいCaptureRouteを生成する。
func NewCaptureRoute(pipeline *audio.Pipeline, open PhoneSource, glasses GlassesMicSwitch, clk clock.WithTicker) *CaptureRoute {
	return &CaptureRoute{
		pipeline: pipeline,
		open:     open,
		glasses:  glasses,
		clock:    clk,
	}
}

// Start は経路を開始する。
func (r *CaptureRoute) Start(ctx context.Context, mode Mode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch mode {
	case ModeGlassesOnboard:
		if r.glasses == nil {
			return ErrNoGlassesMic
		}
		return r.glasses.SetMicrophoneEnabled(true)
	case ModePhoneNormal, ModeBluetoothSCO:
		return r.startCapture(mode)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedMode, mode)
	}
}

func (r *CaptureRoute) startCapture(mode Mode) error {
	src, err := r.open(mode)
	if err != nil {
		return fmt.Errorf("failed to open %s source: %w", mode, err)
	}

	captureCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	paced := audio.NewPacedReader(src, r.clock)
	go func() {
		defer close(done)
		defer src.Close()
		defer paced.Close()
		if err := r.pipeline.Capture(captureCtx, paced); err != nil && !errors.Is(err, context.Canceled) {
			slog.Warn("audio capture stopped",
				logging.FieldEventID, logging.EventAudioCaptureErr,
				logging.FieldError, err.Error(),
				"mode", string(mode),
			)
		}
	}()

	r.mu.Lock()
	r.cancel, r.done = cancel, done
	r.mu.Unlock()
	return nil
}

// Stop は経路を停止し、パイプラインの端数を破棄する。
func (r *CaptureRoute) Stop(mode Mode) {
	switch mode {
	case ModeGlassesOnboard:
		if r.glasses != nil {
			if err := r.glasses.SetMicrophoneEnabled(false); err != nil {
				slog.Warn("failed to disable glasses microphone", logging.FieldError, err.Error())
			}
		}
	case ModePhoneNormal, ModeBluetoothSCO:
		r.mu.Lock()
		cancel, done := r.cancel, r.done
		r.cancel, r.done = nil, nil
		r.mu.Unlock()
		if cancel != nil {
			cancel()
			<-done
		}
	}
	r.pipeline.Reset()
}
