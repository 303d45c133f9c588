// Package uplink はデバイスとクラウド間の通信を提供する。
package uplink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/oyaguma3/glasses-session-broker/apps/glasses-client/internal/audio"
	"github.com/oyaguma3/glasses-session-broker/apps/glasses-client/internal/connstate"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	"github.com/oyaguma3/glasses-session-broker/pkg/model"
	"github.com/oyaguma3/glasses-session-broker/pkg/protocol"
	"k8s.io/utils/clock"
	"nhooyr.io/websocket"
)

// Options はClientの設定。
type Options struct {
	URL                   string
	Token                 string
	GlassesModel          string
	OutboxSize            int
	WriteTimeout          time.Duration
	ReconnectInitialDelay time.Duration
	ReconnectMaxInterval  time.Duration
}

// Client はクラウドへのWebSocket接続を維持する。
// 切断時は指数バックオフで再接続し、音声チャンクはその間もキューに溜まる。
type Client struct {
	opts    Options
	audio   *audio.Queue
	mic     MicController
	glasses Glasses
	clock   clock.PassiveClock

	outbox  chan []byte
	micCmds chan bool

	mu        sync.Mutex
	sessionID string
	appState  *model.AppStateChange
	connected bool
}

// NewClient は新しいClientを生成する。
func NewClient(opts Options, queue *audio.Queue, mic MicController, glasses Glasses, clk clock.PassiveClock) *Client {
	if opts.OutboxSize <= 0 {
		opts.OutboxSize = 64
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	return &Client{
		opts:    opts,
		audio:   queue,
		mic:     mic,
		glasses: glasses,
		clock:   clk,
		outbox:  make(chan []byte, opts.OutboxSize),
		micCmds: make(chan bool, 8),
	}
}

// Run はctxが終了するまで接続と再接続を繰り返す。
// トークンが拒否された場合はErrUnauthorizedを返して終了する。
func (c *Client) Run(ctx context.Context) error {
	go c.micLoop(ctx)

	for {
		conn, err := c.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		err = c.serve(ctx, conn)
		if ctx.Err() != nil {
			return nil
		}
		slog.Warn("uplink disconnected, reconnecting",
			logging.FieldEventID, logging.EventUplinkDisconnect,
			logging.FieldError, errString(err),
			"rejected", errors.Is(err, ErrRejected),
			"audio_dropped", c.audio.Dropped(),
		)

		// 再接続前に間を置く
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.opts.ReconnectInitialDelay):
		}
	}
}

// dial はバックオフ付きで接続を確立する。
func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	b := backoff.NewExponentialBackOff()
	if c.opts.ReconnectInitialDelay > 0 {
		b.InitialInterval = c.opts.ReconnectInitialDelay
	}
	if c.opts.ReconnectMaxInterval > 0 {
		b.MaxInterval = c.opts.ReconnectMaxInterval
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.opts.Token)

	conn, err := backoff.Retry(ctx, func() (*websocket.Conn, error) {
		conn, resp, err := websocket.Dial(ctx, c.opts.URL, &websocket.DialOptions{HTTPHeader: header})
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusUnauthorized {
				return nil, backoff.Permanent(ErrUnauthorized)
			}
			return nil, err
		}
		return conn, nil
	},
		backoff.WithBackOff(b),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			slog.Warn("uplink dial failed",
				logging.FieldEventID, logging.EventUplinkDisconnect,
				logging.FieldError, err.Error(),
				"retry_in", next.String(),
			)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cloud: %w", err)
	}
	return conn, nil
}

// serve は1本の接続を切断まで処理する。
func (c *Client) serve(ctx context.Context, conn *websocket.Conn) error {
	defer conn.CloseNow()

	hello := &protocol.ConnectionInit{Type: protocol.TypeConnectionInit, GlassesModel: c.opts.GlassesModel}
	if err := c.write(ctx, conn, websocket.MessageText, mustJSON(hello)); err != nil {
		return err
	}

	connCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer cancel()
		c.writeAudio(connCtx, conn)
	}()
	go func() {
		defer wg.Done()
		defer cancel()
		c.writeOutbox(connCtx, conn)
	}()

	err := c.readLoop(connCtx, conn)
	cancel()
	wg.Wait()

	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()

	if ctx.Err() != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "client shutting down")
	}
	return err
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		if typ != websocket.MessageText {
			continue
		}
		if err := c.handleMessage(ctx, data); err != nil {
			return err
		}
	}
}

// handleMessage はクラウドからのメッセージを処理する。
// 接続を継続できないエラーのみを返す。
func (c *Client) handleMessage(ctx context.Context, data []byte) error {
	env, err := protocol.DecodeEnvelope(data)
	if err != nil {
		logProtocolError(err)
		return nil
	}

	switch env.Type {
	case protocol.TypeConnectionAck:
		var ack protocol.ConnectionAck
		if err := protocol.Decode(data, &ack); err != nil {
			logProtocolError(err)
			return nil
		}
		c.mu.Lock()
		c.sessionID = ack.SessionID
		c.appState = ack.AppState
		c.connected = true
		c.mu.Unlock()
		slog.Info("uplink connected",
			logging.FieldEventID, logging.EventUplinkConnect,
			logging.FieldSessionID, ack.SessionID,
		)

	case protocol.TypeConnectionError, protocol.TypeAuthError:
		var ce protocol.ConnectionError
		if err := protocol.Decode(data, &ce); err != nil {
			logProtocolError(err)
		}
		return fmt.Errorf("%w: %s", ErrRejected, ce.Message)

	case protocol.TypeAppStateChange:
		var msg protocol.AppStateChange
		if err := protocol.Decode(data, &msg); err != nil {
			logProtocolError(err)
			return nil
		}
		c.mu.Lock()
		state := msg.AppStateChange
		c.appState = &state
		c.mu.Unlock()

	case protocol.TypeMicrophoneStateChange:
		var msg protocol.MicrophoneStateChange
		if err := protocol.Decode(data, &msg); err != nil {
			logProtocolError(err)
			return nil
		}
		select {
		case c.micCmds <- msg.IsMicrophoneEnabled:
		case <-ctx.Done():
		}

	case protocol.TypeDisplayEvent:
		var ev protocol.DisplayEvent
		if err := protocol.Decode(data, &ev); err != nil {
			logProtocolError(err)
			return nil
		}
		if err := c.glasses.DisplayLayout(ev.View, ev.Layout); err != nil {
			slog.Debug("display event not shown",
				logging.FieldEventID, logging.EventGlassesDisplay,
				logging.FieldPackageName, ev.PackageName,
				logging.FieldError, err.Error(),
			)
		}

	case protocol.TypePhotoRequest:
		var req protocol.PhotoRequest
		if err := protocol.Decode(data, &req); err != nil {
			logProtocolError(err)
			return nil
		}
		if err := c.glasses.RequestPhoto(ctx, req.RequestID); err != nil {
			slog.Warn("photo request failed",
				logging.FieldEventID, logging.EventPhotoUploadFail,
				logging.FieldRequestID, req.RequestID,
				logging.FieldError, err.Error(),
			)
		}

	default:
		slog.Debug("ignored cloud message", "type", string(env.Type))
	}
	return nil
}

// micLoop はマイク切り替えを受信順に1つずつ適用する。
func (c *Client) micLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case enabled := <-c.micCmds:
			c.mic.SetEnabled(ctx, enabled)
		}
	}
}

// writeAudio はキューの音声チャンクをバイナリフレームで送信する。
func (c *Client) writeAudio(ctx context.Context, conn *websocket.Conn) {
	for {
		chunk, err := c.audio.Pop(ctx)
		if err != nil {
			return
		}
		data, err := protocol.EncodeAudioChunk(chunk)
		if err != nil {
			slog.Warn("failed to encode audio chunk", logging.FieldError, err.Error())
			continue
		}
		if err := c.write(ctx, conn, websocket.MessageBinary, data); err != nil {
			logSendError(ctx, err)
			return
		}
	}
}

// writeOutbox は送信待ちのJSONメッセージを送信する。
func (c *Client) writeOutbox(ctx context.Context, conn *websocket.Conn) {
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-c.outbox:
			if err := c.write(ctx, conn, websocket.MessageText, data); err != nil {
				logSendError(ctx, err)
				return
			}
		}
	}
}

func (c *Client) write(ctx context.Context, conn *websocket.Conn, typ websocket.MessageType, data []byte) error {
	wctx, cancel := context.WithTimeout(ctx, c.opts.WriteTimeout)
	defer cancel()
	return conn.Write(wctx, typ, data)
}

// Send はJSONメッセージを送信待ちに積む。未接続の間は接続後に送信される。
func (c *Client) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	select {
	case c.outbox <- data:
		return nil
	default:
		return ErrOutboxFull
	}
}

// ReportGlassesState はグラスの接続状態をクラウドへ通知する。
func (c *Client) ReportGlassesState(_ context.Context, state connstate.State) error {
	return c.Send(&protocol.GlassesConnectionState{
		Type:      protocol.TypeGlassesConnectionState,
		Status:    string(state),
		ModelName: c.opts.GlassesModel,
		Timestamp: c.clock.Now().UnixMilli(),
	})
}

// StopAllApps は起動中のアプリすべての停止をクラウドへ要求する。
func (c *Client) StopAllApps(_ context.Context, reason string) {
	for _, pkg := range c.RunningApps() {
		if err := c.StopApp(pkg); err != nil {
			slog.Warn("failed to request app stop",
				logging.FieldEventID, logging.EventUplinkSendFail,
				logging.FieldPackageName, pkg,
				logging.FieldError, err.Error(),
			)
			continue
		}
		slog.Info("requested app stop",
			logging.FieldEventID, logging.EventAppStop,
			logging.FieldPackageName, pkg,
			"reason", reason,
		)
	}
}

// StartApp はアプリの起動をクラウドへ要求する。
func (c *Client) StartApp(packageName string) error {
	return c.Send(&protocol.AppCommand{Type: protocol.TypeStartApp, PackageName: packageName})
}

// StopApp はアプリの停止をクラウドへ要求する。
func (c *Client) StopApp(packageName string) error {
	return c.Send(&protocol.AppCommand{Type: protocol.TypeStopApp, PackageName: packageName})
}

// SessionID は接続確認で受け取ったセッションIDを返す。
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Connected はクラウドとの接続が確立しているかどうかを返す。
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// RunningApps は最後に受け取ったアプリ状態で起動中のアプリを返す。
func (c *Client) RunningApps() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.appState == nil {
		return nil
	}
	return append([]string(nil), c.appState.ActiveAppPackageNames...)
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func logProtocolError(err error) {
	slog.Warn("invalid cloud message",
		logging.FieldEventID, logging.EventProtocolErr,
		logging.FieldError, err.Error(),
	)
}

func logSendError(ctx context.Context, err error) {
	if ctx.Err() != nil {
		return
	}
	slog.Warn("uplink write failed",
		logging.FieldEventID, logging.EventUplinkSendFail,
		logging.FieldError, err.Error(),
	)
}
