package dispatch

import (
	"sync"
	"testing"
	"time"

	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/session"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/subscription"
	"github.com/oyaguma3/glasses-session-broker/pkg/model"
	"github.com/oyaguma3/glasses-session-broker/pkg/protocol"
	"go.uber.org/mock/gomock"
	testingclock "k8s.io/utils/clock/testing"
)

// recConn は送信内容を記録するテスト用Connection。
type recConn struct {
	mu     sync.Mutex
	sent   []any
	binary [][]byte
	closed bool
}

func (c *recConn) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, v)
	return nil
}

func (c *recConn) SendBinary(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.binary = append(c.binary, data)
	return nil
}

func (c *recConn) Close(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *recConn) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

func (c *recConn) messages() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.sent...)
}

func (c *recConn) binaries() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.binary...)
}

type testEnv struct {
	registry  *session.Registry
	subs      *subscription.Registry
	lifecycle *MockAppLifecycle
	captures  *MockCaptureRequester
	keys      *MockKeyVerifier
	clock     *testingclock.FakeClock
	device    *recConn
	sess      *session.UserSession
	devices   *DeviceProcessor
	tpa       *TpaProcessor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	clk := testingclock.NewFakeClock(time.UnixMilli(1700000000000))
	env := &testEnv{
		registry:  session.NewRegistry(session.Options{AudioRetention: 10 * time.Second, TranscriptRetention: time.Minute}, clk, nil),
		subs:      subscription.New(nil),
		lifecycle: NewMockAppLifecycle(ctrl),
		captures:  NewMockCaptureRequester(ctrl),
		keys:      NewMockKeyVerifier(ctrl),
		clock:     clk,
		device:    &recConn{},
	}
	env.sess, _ = env.registry.Attach("u1@example.com", env.device)
	env.devices = NewDeviceProcessor(env.registry, env.subs, env.lifecycle, env.captures, nil, clk, nil)
	env.tpa = NewTpaProcessor(env.registry, env.subs, env.lifecycle, env.captures, env.keys, nil, clk, nil)
	return env
}

// runApp はアプリを接続済みにして購読を設定する。
func (e *testEnv) runApp(t *testing.T, pkg string, streams ...protocol.StreamType) *recConn {
	t.Helper()
	conn := &recConn{}
	e.sess.ReserveApp(&model.App{PackageName: pkg, AppType: model.AppTypeStandard}, e.clock.Now())
	e.sess.ConfirmApp(pkg, conn)
	if len(streams) > 0 {
		if err := e.subs.Subscribe(e.sess, pkg, streams); err != nil {
			t.Fatalf("Subscribe failed: %v", err)
		}
	}
	return conn
}

func ofType[T any](msgs []any) []T {
	var out []T
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
