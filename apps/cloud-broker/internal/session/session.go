package session

import (
	"sort"
	"sync"
	"time"

	"github.com/oyaguma3/glasses-session-broker/pkg/model"
	"github.com/oyaguma3/glasses-session-broker/pkg/protocol"
)

// UserSession は1ユーザー分のライブセッション。
// サブ状態の変更はすべてアクセサ経由で行い、セッション単位のロックで直列化する。
type UserSession struct {
	id         string
	userID     string
	createdAt  time.Time
	audio      *AudioBuffer
	transcript *TranscriptStore

	mu             sync.Mutex
	device         Connection
	disconnectedAt time.Time
	apps           map[string]*AppConnection
	subscriptions  map[string]map[protocol.StreamType]struct{}
	userDatetime   string
	generation     uint64
	attempts       uint64
	closed         bool
}

func newUserSession(id, userID string, device Connection, now time.Time, opts Options) *UserSession {
	return &UserSession{
		id:            id,
		userID:        userID,
		createdAt:     now,
		audio:         NewAudioBuffer(opts.AudioRetention),
		transcript:    NewTranscriptStore(opts.TranscriptRetention),
		device:        device,
		apps:          make(map[string]*AppConnection),
		subscriptions: make(map[string]map[protocol.StreamType]struct{}),
	}
}

// ID はセッションIDを返す。
func (s *UserSession) ID() string { return s.id }

// UserID はユーザーIDを返す。
func (s *UserSession) UserID() string { return s.userID }

// CreatedAt はセッション生成時刻を返す。
func (s *UserSession) CreatedAt() time.Time { return s.createdAt }

// Audio は音声リングバッファを返す。
func (s *UserSession) Audio() *AudioBuffer { return s.audio }

// Transcript は文字起こし履歴を返す。
func (s *UserSession) Transcript() *TranscriptStore { return s.transcript }

// IsClosed はセッションが破棄済みかどうかを返す。
func (s *UserSession) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// IsDeviceConnected はデバイス接続が有効かどうかを返す。
func (s *UserSession) IsDeviceConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.device != nil && s.device.IsOpen()
}

// SendToDevice はデバイスへメッセージを送信する。
func (s *UserSession) SendToDevice(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sendToDeviceLocked(v)
}

// SendBinaryToDevice はデバイスへバイナリメッセージを送信する。
func (s *UserSession) SendBinaryToDevice(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.device == nil || !s.device.IsOpen() {
		return ErrDeviceNotConnected
	}
	return s.device.SendBinary(data)
}

func (s *UserSession) sendToDeviceLocked(v any) error {
	if s.device == nil || !s.device.IsOpen() {
		return ErrDeviceNotConnected
	}
	return s.device.Send(v)
}

// replaceDevice はデバイス接続を差し替え、旧接続を返す。
func (s *UserSession) replaceDevice(conn Connection) Connection {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.device
	s.device = conn
	s.disconnectedAt = time.Time{}
	return old
}

// markDeviceDisconnected は現在の接続がconnである場合に切断時刻を記録する。
func (s *UserSession) markDeviceDisconnected(conn Connection, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.device != conn {
		return false
	}
	s.device = nil
	s.disconnectedAt = now
	return true
}

// DisconnectedSince はデバイス切断時刻を返す。接続中ならok=false。
func (s *UserSession) DisconnectedSince() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disconnectedAt.IsZero() {
		return time.Time{}, false
	}
	return s.disconnectedAt, true
}

// SetUserDatetime はクライアントが報告した現地時刻を記録する。
func (s *UserSession) SetUserDatetime(datetime string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userDatetime = datetime
}

// UserDatetime は最後に報告された現地時刻を返す。
func (s *UserSession) UserDatetime() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userDatetime
}

// ReserveApp はアプリの接続エントリをPendingで確保する。
// 既にエントリがある場合は既存エントリのコピーとcreated=falseを返す。
func (s *UserSession) ReserveApp(app *model.App, now time.Time) (AppConnection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.apps[app.PackageName]; ok {
		return *e, false
	}
	s.attempts++
	e := &AppConnection{
		PackageName: app.PackageName,
		AppType:     app.AppType,
		State:       AppConnPending,
		Attempt:     s.attempts,
		StartedAt:   now,
	}
	s.apps[app.PackageName] = e
	return *e, true
}

// ConfirmApp はTPAの接続を確定する。エントリがない場合はfalseを返す。
// 旧接続が存在すれば返す。
func (s *UserSession) ConfirmApp(packageName string, conn Connection) (Connection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.apps[packageName]
	if !ok || s.closed {
		return nil, false
	}
	var old Connection
	if e.Conn != conn {
		old = e.Conn
	}
	e.Conn = conn
	e.State = AppConnConnected
	return old, true
}

// MarkAppReconnecting は既存エントリを再接続待ちにし、新しい世代番号を返す。
func (s *UserSession) MarkAppReconnecting(packageName string) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.apps[packageName]
	if !ok {
		return 0, false
	}
	s.attempts++
	e.State = AppConnReconnecting
	e.Attempt = s.attempts
	return e.Attempt, true
}

// DetachAppConn は現在の接続がconnである場合にエントリを再接続待ちにし、新しい世代番号を返す。
// 購読は保持する。
func (s *UserSession) DetachAppConn(packageName string, conn Connection) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.apps[packageName]
	if !ok || e.Conn != conn || e.State != AppConnConnected {
		return 0, false
	}
	s.attempts++
	e.Conn = nil
	e.State = AppConnReconnecting
	e.Attempt = s.attempts
	return e.Attempt, true
}

// RemoveApp はアプリの接続エントリと購読を削除する。
func (s *UserSession) RemoveApp(packageName string) (AppConnection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.apps[packageName]
	if !ok {
		return AppConnection{}, false
	}
	delete(s.apps, packageName)
	delete(s.subscriptions, packageName)
	return *e, true
}

// RemoveAppIfAttempt は世代番号が一致し、まだ接続確定していない場合のみエントリを削除する。
func (s *UserSession) RemoveAppIfAttempt(packageName string, attempt uint64) (AppConnection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.apps[packageName]
	if !ok || e.Attempt != attempt || e.State == AppConnConnected {
		return AppConnection{}, false
	}
	delete(s.apps, packageName)
	delete(s.subscriptions, packageName)
	return *e, true
}

// RemoveAppIfConn は現在の接続がconnである場合のみエントリを削除する。
func (s *UserSession) RemoveAppIfConn(packageName string, conn Connection) (AppConnection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.apps[packageName]
	if !ok || e.Conn != conn || e.State != AppConnConnected {
		return AppConnection{}, false
	}
	delete(s.apps, packageName)
	delete(s.subscriptions, packageName)
	return *e, true
}

// App はアプリの接続エントリのコピーを返す。
func (s *UserSession) App(packageName string) (AppConnection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.apps[packageName]
	if !ok {
		return AppConnection{}, false
	}
	return *e, true
}

// RunningApps は起動中（接続待ちを含む）のパッケージ名をソートして返す。
func (s *UserSession) RunningApps() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runningAppsLocked()
}

func (s *UserSession) runningAppsLocked() []string {
	names := make([]string, 0, len(s.apps))
	for name := range s.apps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SendBinaryToApp は接続済みアプリへバイナリメッセージを送信する。
func (s *UserSession) SendBinaryToApp(packageName string, data []byte) error {
	conn := s.appConn(packageName)
	if conn == nil || !conn.IsOpen() {
		return ErrAppNotConnected
	}
	return conn.SendBinary(data)
}

func (s *UserSession) appConn(packageName string) Connection {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.apps[packageName]; ok && e.State == AppConnConnected {
		return e.Conn
	}
	return nil
}

// SendToApp は接続済みアプリへメッセージを送信する。
func (s *UserSession) SendToApp(packageName string, v any) error {
	conn := s.appConn(packageName)
	if conn == nil || !conn.IsOpen() {
		return ErrAppNotConnected
	}
	return conn.Send(v)
}

// foregroundLocked は最も新しく起動した標準アプリを返す。
func (s *UserSession) foregroundLocked() string {
	var (
		name   string
		latest time.Time
	)
	for _, e := range s.apps {
		if e.AppType == model.AppTypeBackground {
			continue
		}
		if name == "" || e.StartedAt.After(latest) || (e.StartedAt.Equal(latest) && e.PackageName < name) {
			name = e.PackageName
			latest = e.StartedAt
		}
	}
	return name
}

// PushAppState は現在のアプリ状態スナップショットを生成してデバイスへ送信する。
// 生成と送信キュー投入を同一ロック内で行うため、通知は世代順に届く。
// 送信に失敗してもスナップショットは返す。
func (s *UserSession) PushAppState(installed []*model.App, now time.Time) (*model.AppStateChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	state := s.buildAppStateLocked(installed, now)
	err := s.sendToDeviceLocked(&protocol.AppStateChange{
		Type:           protocol.TypeAppStateChange,
		AppStateChange: *state,
	})
	return state, err
}

// AppState は送信せずに現在のアプリ状態スナップショットを返す。
func (s *UserSession) AppState(installed []*model.App, now time.Time) *model.AppStateChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildAppStateLocked(installed, now)
}

func (s *UserSession) buildAppStateLocked(installed []*model.App, now time.Time) *model.AppStateChange {
	running := s.runningAppsLocked()
	foreground := s.foregroundLocked()

	apps := make([]model.AppInfo, 0, len(installed)+len(running))
	seen := make(map[string]struct{}, len(installed))
	for _, app := range installed {
		_, isRunning := s.apps[app.PackageName]
		apps = append(apps, model.AppInfo{
			PackageName:  app.PackageName,
			Name:         app.Name,
			AppType:      app.AppType,
			IsRunning:    isRunning,
			IsForeground: app.PackageName == foreground,
		})
		seen[app.PackageName] = struct{}{}
	}
	// カタログ外で起動中のアプリも含める
	for _, name := range running {
		if _, ok := seen[name]; ok {
			continue
		}
		e := s.apps[name]
		apps = append(apps, model.AppInfo{
			PackageName:  name,
			Name:         name,
			AppType:      e.AppType,
			IsRunning:    true,
			IsForeground: name == foreground,
		})
	}

	return &model.AppStateChange{
		SessionID:             s.id,
		Generation:            s.generation,
		Apps:                  apps,
		ActiveAppPackageNames: running,
		Timestamp:             now.UnixMilli(),
	}
}

// SetSubscriptions はアプリの購読集合を置き換える。
// 接続エントリがないアプリの購読は受け付けない。
func (s *UserSession) SetSubscriptions(packageName string, streams []protocol.StreamType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.apps[packageName]; !ok {
		return false
	}
	set := make(map[protocol.StreamType]struct{}, len(streams))
	for _, st := range streams {
		set[st] = struct{}{}
	}
	s.subscriptions[packageName] = set
	return true
}

// RemoveSubscriptions はアプリの購読から指定ストリームを外す。
// streamsが空の場合はすべて外す。
func (s *UserSession) RemoveSubscriptions(packageName string, streams ...protocol.StreamType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(streams) == 0 {
		delete(s.subscriptions, packageName)
		return
	}
	set := s.subscriptions[packageName]
	for _, st := range streams {
		delete(set, st)
	}
	if len(set) == 0 {
		delete(s.subscriptions, packageName)
	}
}

// Subscriptions はアプリの購読ストリームをソートして返す。
func (s *UserSession) Subscriptions(packageName string) []protocol.StreamType {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.subscriptions[packageName]
	out := make([]protocol.StreamType, 0, len(set))
	for st := range set {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ViewSubscriptions はロック内で全アプリの購読集合を走査する。
// fnの中でセッションのメソッドを呼び出してはならない。
func (s *UserSession) ViewSubscriptions(fn func(packageName string, streams map[protocol.StreamType]struct{})) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, set := range s.subscriptions {
		fn(name, set)
	}
}

// close はセッションを破棄済みにし、保持している接続を返す。
func (s *UserSession) close() (Connection, []AppConnection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, nil
	}
	s.closed = true
	device := s.device
	s.device = nil

	apps := make([]AppConnection, 0, len(s.apps))
	for _, e := range s.apps {
		apps = append(apps, *e)
	}
	s.apps = make(map[string]*AppConnection)
	s.subscriptions = make(map[string]map[protocol.StreamType]struct{})
	return device, apps
}
