package audio

import (
	"io"
	"time"

	"github.com/oyaguma3/glasses-session-broker/pkg/audiocodec"
	"k8s.io/utils/clock"
)

// Silence は無音のPCMを無限に返すio.Reader。
var Silence io.Reader = silence{}

type silence struct{}

func (silence) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

// PacedReader は下位のReaderを実時間のフレームレートで読み出す。
// 1回のReadは最大1フレーム分で、フレーム長ごとに1回だけ読み出しを許可する。
type PacedReader struct {
	r      io.Reader
	ticker clock.Ticker
}

// NewPacedReader は新しいPacedReaderを生成する。
func NewPacedReader(r io.Reader, clk clock.WithTicker) *PacedReader {
	return &PacedReader{
		r:      r,
		ticker: clk.NewTicker(audiocodec.FrameDurationMs * time.Millisecond),
	}
}

// Read は次のフレーム時刻まで待ってから読み込む。
func (p *PacedReader) Read(b []byte) (int, error) {
	<-p.ticker.C()
	if len(b) > audiocodec.BytesPerFrame {
		b = b[:audiocodec.BytesPerFrame]
	}
	return p.r.Read(b)
}

// Close はティッカーを停止する。
func (p *PacedReader) Close() error {
	p.ticker.Stop()
	return nil
}
