package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/auth"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/dispatch"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/metrics"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/session"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/transport"
	"github.com/oyaguma3/glasses-session-broker/pkg/httputil"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	"nhooyr.io/websocket"
)

// 切断処理に使うタイムアウト
const closeHandlingTimeout = 10 * time.Second

// WSHandler はデバイスとTPAのWebSocket接続を受け付ける。
type WSHandler struct {
	ctx         context.Context
	registry    *session.Registry
	tokens      TokenVerifier
	devices     DeviceMessageHandler
	tpas        TpaMessageHandler
	metrics     *metrics.Metrics
	wsOpts      transport.Options
	initTimeout time.Duration
}

// NewWSHandler は新しいWSHandlerを生成する。
// ctxはサーバー停止時にキャンセルされ、全接続の読み書きを終了させる。
func NewWSHandler(
	ctx context.Context,
	registry *session.Registry,
	tokens TokenVerifier,
	devices DeviceMessageHandler,
	tpas TpaMessageHandler,
	m *metrics.Metrics,
	wsOpts transport.Options,
	initTimeout time.Duration,
) *WSHandler {
	return &WSHandler{
		ctx:         ctx,
		registry:    registry,
		tokens:      tokens,
		devices:     devices,
		tpas:        tpas,
		metrics:     m,
		wsOpts:      wsOpts,
		initTimeout: initTimeout,
	}
}

// HandleGlassesWS はGET /glasses-ws のハンドラー。
func (h *WSHandler) HandleGlassesWS(c *gin.Context) {
	token, err := auth.BearerToken(c.GetHeader("Authorization"))
	if err != nil {
		fail(c, slog.LevelWarn, logging.EventProtocolErr, httputil.Unauthorized("bearer token required"), err)
		return
	}
	userID, err := h.tokens.Verify(token)
	if err != nil {
		fail(c, slog.LevelWarn, logging.EventProtocolErr, httputil.Unauthorized("invalid core token"), err)
		return
	}

	conn, err := transport.Accept(c.Writer, c.Request, h.wsOpts)
	if err != nil {
		slog.Warn("device websocket upgrade failed",
			logging.FieldTraceID, traceID(c),
			logging.FieldEventID, logging.EventProtocolErr,
			logging.FieldError, err.Error(),
		)
		return
	}

	ctx, cancel := context.WithCancel(h.ctx)
	defer cancel()
	defer h.runWriteLoop(ctx, conn)()

	sess, _ := h.registry.Attach(userID, conn)
	h.metrics.ConnectionOpened(metrics.SourceDevice)
	defer h.metrics.ConnectionClosed(metrics.SourceDevice)

	abnormal := h.readDevice(ctx, sess, conn)
	conn.Close("connection closed")
	h.devices.HandleClose(sess, conn, abnormal)
}

// runWriteLoop は送信ループを開始し、その終了を待つ関数を返す。
// ハンドラーが戻るとgin側で接続が片付けられるため、close frameを書き終えるまで待つ。
func (h *WSHandler) runWriteLoop(ctx context.Context, conn *transport.Conn) func() {
	wrote := make(chan struct{})
	go func() {
		defer close(wrote)
		conn.WriteLoop(ctx)
	}()
	return func() {
		conn.Close("connection closed")
		<-wrote
	}
}

// readDevice は切断まで読み込みを続け、異常切断かどうかを返す。
func (h *WSHandler) readDevice(ctx context.Context, sess *session.UserSession, conn *transport.Conn) bool {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return conn.IsOpen() && transport.IsAbnormalClose(err)
		}
		switch typ {
		case websocket.MessageText:
			// 不正なメッセージはその接続内で破棄し、読み込みは継続する
			_ = h.devices.HandleText(ctx, sess, data)
		case websocket.MessageBinary:
			_ = h.devices.HandleBinary(sess, data)
		}
	}
}

// HandleTpaWS はGET /tpa-ws のハンドラー。
// 最初のメッセージはtpa_connection_initでなければならない。
func (h *WSHandler) HandleTpaWS(c *gin.Context) {
	conn, err := transport.Accept(c.Writer, c.Request, h.wsOpts)
	if err != nil {
		slog.Warn("TPA websocket upgrade failed",
			logging.FieldTraceID, traceID(c),
			logging.FieldEventID, logging.EventProtocolErr,
			logging.FieldError, err.Error(),
		)
		return
	}

	ctx, cancel := context.WithCancel(h.ctx)
	defer cancel()
	defer h.runWriteLoop(ctx, conn)()

	h.metrics.ConnectionOpened(metrics.SourceTPA)
	defer h.metrics.ConnectionClosed(metrics.SourceTPA)

	binding, err := h.initTpa(ctx, conn)
	if err != nil {
		conn.Close("connection init failed")
		return
	}

	abnormal := h.readTpa(ctx, binding, conn)
	conn.Close("connection closed")

	closeCtx, closeCancel := context.WithTimeout(context.WithoutCancel(ctx), closeHandlingTimeout)
	defer closeCancel()
	h.tpas.HandleClose(closeCtx, binding, conn, abnormal)
}

func (h *WSHandler) initTpa(ctx context.Context, conn *transport.Conn) (*dispatch.TpaBinding, error) {
	initCtx, cancel := context.WithTimeout(ctx, h.initTimeout)
	defer cancel()

	typ, data, err := conn.Read(initCtx)
	if err != nil {
		slog.Warn("TPA connection init not received",
			logging.FieldEventID, logging.EventProtocolErr,
			logging.FieldError, err.Error(),
		)
		return nil, err
	}
	if typ != websocket.MessageText {
		return nil, errors.New("connection init must be a text message")
	}
	return h.tpas.HandleInit(ctx, conn, data)
}

func (h *WSHandler) readTpa(ctx context.Context, b *dispatch.TpaBinding, conn *transport.Conn) bool {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return conn.IsOpen() && transport.IsAbnormalClose(err)
		}
		if typ != websocket.MessageText {
			continue
		}
		if err := h.tpas.HandleMessage(ctx, b, data); errors.Is(err, dispatch.ErrSessionNotFound) {
			// セッション終了後の接続は閉じる
			return false
		}
	}
}
