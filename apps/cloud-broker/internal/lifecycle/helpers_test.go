package lifecycle

import (
	"context"
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

const testConnectTimeout = 10 * time.Second

// recordingConn は送信メッセージを記録するテスト用Connection。
type recordingConn struct {
	mu     sync.Mutex
	sent   []any
	closed bool
}

func (c *recordingConn) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, v)
	return nil
}

func (c *recordingConn) SendBinary([]byte) error { return nil }

func (c *recordingConn) Close(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *recordingConn) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

func (c *recordingConn) appStates() []*protocol.AppStateChange {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*protocol.AppStateChange
	for _, m := range c.sent {
		if s, ok := m.(*protocol.AppStateChange); ok {
			out = append(out, s)
		}
	}
	return out
}

func (c *recordingConn) messages() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.sent...)
}

type testEnv struct {
	mgr      *Manager
	registry *session.Registry
	subs     *subscription.Registry
	clock    *testingclock.FakeClock
	catalog  *MockAppCatalog
	webhook  *MockWebhookClient
	settings *MockSettingsStore
	device   *recordingConn
	sess     *session.UserSession
}

var (
	photoApp   = &model.App{PackageName: "photo.app", Name: "Photo", AppType: model.AppTypeStandard, WebhookURL: "http://photo.example.com/webhook"}
	captionApp = &model.App{PackageName: "captions.app", Name: "Captions", AppType: model.AppTypeStandard, WebhookURL: "http://captions.example.com/webhook", PublicURL: "http://captions.example.com"}
)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	clk := testingclock.NewFakeClock(time.UnixMilli(1700000000000))
	reg := session.NewRegistry(session.Options{AudioRetention: time.Second}, clk, nil)
	subs := subscription.New(nil)

	env := &testEnv{
		registry: reg,
		subs:     subs,
		clock:    clk,
		catalog:  NewMockAppCatalog(ctrl),
		webhook:  NewMockWebhookClient(ctrl),
		settings: NewMockSettingsStore(ctrl),
		device:   &recordingConn{},
	}
	env.mgr = NewManager(reg, subs, env.catalog, env.webhook, env.settings, clk, testConnectTimeout, nil)
	env.sess, _ = reg.Attach("u1@example.com", env.device)

	apps := map[string]*model.App{photoApp.PackageName: photoApp, captionApp.PackageName: captionApp}
	env.catalog.EXPECT().InstalledApps(gomock.Any(), "u1@example.com").
		Return([]*model.App{captionApp, photoApp}, nil).AnyTimes()
	env.catalog.EXPECT().GetApp(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pkg string) (*model.App, error) {
			if app, ok := apps[pkg]; ok {
				return app, nil
			}
			return nil, errNotInCatalog
		}).AnyTimes()
	return env
}

// waitFor は条件が満たされるまで待つ。FakeClockのAfterFuncは別goroutineで実行される。
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func running(state *model.AppStateChange, pkg string) bool {
	for _, a := range state.Apps {
		if a.PackageName == pkg {
			return a.IsRunning
		}
	}
	return false
}
