// Package transport はwebsocket接続を送信キュー付きのsession.Connectionとして提供する。
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"nhooyr.io/websocket"
)

// 閉鎖理由の最大長（close frameの制約）
const maxCloseReason = 123

// Options は接続の設定。
type Options struct {
	SendQueueSize   int
	WriteTimeout    time.Duration
	MaxMessageBytes int64
}

type outbound struct {
	typ  websocket.MessageType
	data []byte
}

// Conn はwebsocket接続のラッパー。
// 送信はキューに積むだけでブロックせず、WriteLoopが順に書き出す。
type Conn struct {
	ws   *websocket.Conn
	opts Options

	send chan outbound
	done chan struct{}

	mu     sync.Mutex
	closed bool
	reason string
}

// Accept はHTTPリクエストをwebsocketにアップグレードする。
func Accept(w http.ResponseWriter, r *http.Request, opts Options) (*Conn, error) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		return nil, fmt.Errorf("websocket upgrade failed: %w", err)
	}
	return NewConn(ws, opts), nil
}

// NewConn は確立済みのwebsocket接続からConnを生成する。
func NewConn(ws *websocket.Conn, opts Options) *Conn {
	if opts.SendQueueSize <= 0 {
		opts.SendQueueSize = 64
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	if opts.MaxMessageBytes > 0 {
		ws.SetReadLimit(opts.MaxMessageBytes)
	}
	return &Conn{
		ws:   ws,
		opts: opts,
		send: make(chan outbound, opts.SendQueueSize),
		done: make(chan struct{}),
	}
}

// Send はvをJSONにして送信キューに積む。
func (c *Conn) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	return c.enqueue(outbound{typ: websocket.MessageText, data: data})
}

// SendBinary はバイナリメッセージを送信キューに積む。
func (c *Conn) SendBinary(data []byte) error {
	return c.enqueue(outbound{typ: websocket.MessageBinary, data: data})
}

// enqueue はキューが溢れた場合に接続を閉じる。遅い受信側で送信元を止めない。
func (c *Conn) enqueue(msg outbound) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnectionClosed
	}
	select {
	case c.send <- msg:
		return nil
	default:
		c.closeLocked("send queue full")
		return ErrSendQueueFull
	}
}

// Close は接続を閉じる。キュー済みのメッセージは書き出してから閉じる。
func (c *Conn) Close(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked(reason)
}

func (c *Conn) closeLocked(reason string) {
	if c.closed {
		return
	}
	if len(reason) > maxCloseReason {
		reason = reason[:maxCloseReason]
	}
	c.closed = true
	c.reason = reason
	close(c.done)
}

// IsOpen は接続が閉じられていないかを返す。
func (c *Conn) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

// Done は接続が閉じられたときに閉じるチャネルを返す。
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Read は次のメッセージを読み込む。
func (c *Conn) Read(ctx context.Context) (websocket.MessageType, []byte, error) {
	return c.ws.Read(ctx)
}

// WriteLoop は送信キューを書き出す。Closeされるかctxが終了するまで戻らない。
func (c *Conn) WriteLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.Close("server shutting down")
			c.flushAndClose()
			return
		case <-c.done:
			c.flushAndClose()
			return
		case msg := <-c.send:
			if err := c.write(ctx, msg); err != nil {
				c.Close("write failed")
				_ = c.ws.CloseNow()
				return
			}
		}
	}
}

// flushAndClose は残りのキューを書き出してからclose frameを送る。
func (c *Conn) flushAndClose() {
	ctx, cancel := context.WithTimeout(context.Background(), c.opts.WriteTimeout)
	defer cancel()
	for {
		select {
		case msg := <-c.send:
			if err := c.write(ctx, msg); err != nil {
				_ = c.ws.CloseNow()
				return
			}
		default:
			c.mu.Lock()
			reason := c.reason
			c.mu.Unlock()
			_ = c.ws.Close(websocket.StatusNormalClosure, reason)
			return
		}
	}
}

func (c *Conn) write(ctx context.Context, msg outbound) error {
	wctx, cancel := context.WithTimeout(ctx, c.opts.WriteTimeout)
	defer cancel()
	return c.ws.Write(wctx, msg.typ, msg.data)
}

// IsAbnormalClose は読み込みエラーが正常な切断以外によるものかを返す。
func IsAbnormalClose(err error) bool {
	if err == nil {
		return false
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return false
	}
	return !errors.Is(err, context.Canceled)
}
