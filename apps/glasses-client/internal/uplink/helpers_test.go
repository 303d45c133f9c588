package uplink

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/oyaguma3/glasses-session-broker/apps/glasses-client/internal/audio"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
	"nhooyr.io/websocket"
)

const testToken = "core-token"

type fakeMic struct {
	mu      sync.Mutex
	enabled []bool
}

func (m *fakeMic) SetEnabled(_ context.Context, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = append(m.enabled, enabled)
}

func (m *fakeMic) calls() []bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]bool(nil), m.enabled...)
}

type fakeGlasses struct {
	mu     sync.Mutex
	views  []string
	photos []string
}

func (g *fakeGlasses) DisplayLayout(view string, _ json.RawMessage) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.views = append(g.views, view)
	return nil
}

func (g *fakeGlasses) RequestPhoto(_ context.Context, requestID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.photos = append(g.photos, requestID)
	return nil
}

func (g *fakeGlasses) snapshot() ([]string, []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.views...), append([]string(nil), g.photos...)
}

// cloudStub はデバイス用WebSocketエンドポイントの代替。受け付けた接続をconnsへ流す。
type cloudStub struct {
	srv   *httptest.Server
	conns chan *websocket.Conn
}

func newCloudStub(t *testing.T) *cloudStub {
	t.Helper()
	s := &cloudStub{conns: make(chan *websocket.Conn, 4)}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		s.conns <- c
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *cloudStub) url() string {
	return "ws" + strings.TrimPrefix(s.srv.URL, "http") + "/glasses-ws"
}

// accept は次の接続を待つ。
func (s *cloudStub) accept(t *testing.T) *websocket.Conn {
	t.Helper()
	select {
	case c := <-s.conns:
		t.Cleanup(func() { c.CloseNow() })
		return c
	case <-time.After(3 * time.Second):
		t.Fatal("no connection from client")
		return nil
	}
}

func newTestClient(t *testing.T, url, token string) (*Client, *audio.Queue, *fakeMic, *fakeGlasses) {
	t.Helper()
	q := audio.NewQueue(16)
	mic := &fakeMic{}
	g := &fakeGlasses{}
	c := NewClient(Options{
		URL:                   url,
		Token:                 token,
		GlassesModel:          "virtual",
		WriteTimeout:          time.Second,
		ReconnectInitialDelay: 10 * time.Millisecond,
		ReconnectMaxInterval:  50 * time.Millisecond,
	}, q, mic, g, testingclock.NewFakePassiveClock(time.UnixMilli(1700000000000)))
	return c, q, mic, g
}

// runClient はクライアントを起動し、テスト終了時に停止する。
func runClient(t *testing.T, c *Client) <-chan error {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(3 * time.Second):
			t.Error("client did not stop")
		}
	})
	return done
}

// readText は次のテキストメッセージを読み、種別ごとのマップとして返す。
func readText(t *testing.T, c *websocket.Conn) map[string]any {
	t.Helper()
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		typ, data, err := c.Read(ctx)
		cancel()
		require.NoError(t, err)
		if typ != websocket.MessageText {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}
}

// readBinary は次のバイナリメッセージを読む。
func readBinary(t *testing.T, c *websocket.Conn) []byte {
	t.Helper()
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		typ, data, err := c.Read(ctx)
		cancel()
		require.NoError(t, err)
		if typ == websocket.MessageBinary {
			return data
		}
	}
}

func writeJSON(t *testing.T, c *websocket.Conn, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, c.Write(ctx, websocket.MessageText, data))
}
