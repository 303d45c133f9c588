// Package main はBroker TUI（TPAサーバー登録と生存状態の運用コンソール）のエントリーポイント。
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/audit"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/config"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/store"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/ui"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/ui/monitoring"
	"github.com/oyaguma3/glasses-session-broker/pkg/valkey"
	"github.com/redis/go-redis/v9"
	"k8s.io/utils/clock"
)

// ページ名
const (
	pageStartupError       = "startup-error"
	pageMainMenu           = "main-menu"
	pageRegistrationList   = "registration-list"
	pageRegistrationDetail = "registration-detail"
	pageAppList            = "app-list"
	pageSessionSearch      = "session-search"
	pageStatistics         = "statistics"
)

// Application はアプリケーション全体を管理する。
type Application struct {
	app         *ui.App
	cfg         *config.Config
	clock       clock.WithTicker
	auditLogger *audit.Logger
	redisClient *redis.Client

	// Stores
	registrations *store.RegistrationStore
	apps          *store.AppStore
	broker        *store.BrokerClient
	statistics    *store.StatisticsStore
}

func main() {
	// 1. 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	// 2. ログ出力先（画面と混ざらないようファイルのみ）
	logWriter, closeLog, err := openLogWriter(cfg.AuditLog)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open audit log:", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(slog.New(slog.NewJSONHandler(logWriter, nil)).With("app", config.AppName))

	// 3. アプリケーション作成
	application := &Application{
		app:         ui.NewApp(),
		cfg:         cfg,
		clock:       clock.RealClock{},
		auditLogger: audit.NewLogger(logWriter, config.AppName, cfg.Operator, cfg.LogMaskUserID),
		broker:      store.NewBrokerClient(cfg.BrokerBaseURL(), cfg.InternalAPIToken, cfg.BrokerTimeout),
	}

	// 4. Valkey接続（失敗時はリトライ画面）
	if err := application.connectValkey(); err != nil {
		application.showStartupError(err.Error())
	} else {
		application.showMainMenu()
	}

	// 5. グローバルキーバインド・自動更新
	application.setupGlobalKeyBindings()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go application.refreshLoop(ctx)

	// 6. 実行
	if err := application.app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "application error:", err)
		application.cleanup()
		os.Exit(1)
	}
	application.cleanup()
}

func openLogWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func (a *Application) connectValkey() error {
	opts := valkey.TUIProfile.Options(a.cfg.ValkeyAddr(), a.cfg.RedisPass)
	client, err := valkey.Connect(context.Background(), opts)
	if err != nil {
		slog.Error("valkey connection failed", "addr", a.cfg.ValkeyAddr(), "error", err)
		return err
	}

	a.redisClient = client
	s := store.New(client)
	a.registrations = s.Registrations()
	a.apps = s.Apps()
	a.statistics = store.NewStatisticsStore(a.registrations, a.apps, a.broker, a.cfg.HeartbeatWindow, a.clock)
	a.app.GetStatusBar().SetSuffix("valkey " + a.cfg.ValkeyAddr() + " | broker " + a.cfg.BrokerBaseURL())
	return nil
}

func (a *Application) showStartupError(errorMessage string) {
	modal := ui.NewStartupErrorModal(
		a.cfg.ValkeyAddr(),
		errorMessage,
		func() {
			if err := a.connectValkey(); err != nil {
				a.app.GetStatusBar().ShowError("Connection failed: " + err.Error())
				return
			}
			a.app.ClosePage(pageStartupError)
			a.showMainMenu()
		},
		a.quit,
	)
	a.app.AddPage(pageStartupError, modal, true, true)
}

func (a *Application) showMainMenu() {
	menu := ui.NewMainMenu(ui.DefaultMenuItems(ui.MenuActions{
		Registrations: func() { a.showRegistrationList("") },
		Apps:          a.showAppList,
		Sessions:      a.showSessionSearch,
		Statistics:    a.showStatistics,
		Exit:          a.quit,
	}), a.quit)

	a.app.AddPage(pageMainMenu, menu, true, true)
	a.app.SwitchToPage(pageMainMenu)
	a.app.SetFocus(menu)
}

func (a *Application) backToMenu(page string) func() {
	return func() {
		a.app.ClosePage(page)
		a.app.SwitchToPage(pageMainMenu)
	}
}

func (a *Application) setupGlobalKeyBindings() {
	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case ui.KeyQuit:
			a.quit()
			return nil
		case ui.KeyHelp:
			a.showHelp()
			return nil
		}
		return event
	})
}

func (a *Application) showHelp() {
	if a.app.HasPage(ui.PageHelp) {
		return
	}
	modal := ui.NewHelpModal(ui.DefaultHelpSections(), func() {
		a.app.ClosePage(ui.PageHelp)
	})
	a.app.AddPage(ui.PageHelp, modal, true, true)
}

// refreshLoop は表示中の画面を一定間隔で更新する。
func (a *Application) refreshLoop(ctx context.Context) {
	ticker := a.clock.NewTicker(a.cfg.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			a.app.RefreshActive()
		}
	}
}

// TPA Server Registrations
func (a *Application) showRegistrationList(packageFilter string) {
	screen := monitoring.NewRegistrationListScreen(a.app, a.registrations, a.cfg.HeartbeatWindow, a.clock)
	screen.SetOnSelect(a.showRegistrationDetail)
	screen.SetOnBack(a.backToMenu(pageRegistrationList))

	a.app.AddPage(pageRegistrationList, screen.GetTable(), true, false)
	a.app.ShowScreen(pageRegistrationList, screen)
	a.app.SetFocus(screen.GetTable())
	a.auditLogger.LogView(audit.TargetRegistration, store.KeyRegistrationAll)

	go func() {
		a.app.QueueUpdateDraw(func() {
			if err := screen.Load(context.Background()); err != nil {
				a.app.GetStatusBar().ShowError("Failed to load: " + err.Error())
				return
			}
			if packageFilter != "" {
				screen.SetFilter(packageFilter)
			}
		})
	}()
}

func (a *Application) showRegistrationDetail(id string) {
	screen := monitoring.NewRegistrationDetailScreen(a.app, a.registrations, a.apps, a.cfg.HeartbeatWindow, a.clock)
	screen.SetOnBack(func() {
		a.app.ClosePage(pageRegistrationDetail)
		a.showRegistrationList("")
	})

	a.app.AddPage(pageRegistrationDetail, screen.GetTextView(), true, false)
	a.app.ShowScreen(pageRegistrationDetail, screen)
	a.app.SetFocus(screen.GetTextView())
	a.auditLogger.LogView(audit.TargetRegistration, store.RegistrationKey(id))

	if err := screen.Load(context.Background(), id); err != nil {
		a.app.GetStatusBar().ShowError("Failed to load registration: " + err.Error())
	}
}

// App Catalog
func (a *Application) showAppList() {
	screen := monitoring.NewAppListScreen(a.app, a.apps, a.registrations, a.cfg.HeartbeatWindow, a.clock)
	screen.SetOnSelect(func(packageName string) {
		a.app.ClosePage(pageAppList)
		a.showRegistrationList(packageName)
	})
	screen.SetOnBack(a.backToMenu(pageAppList))

	a.app.AddPage(pageAppList, screen.GetTable(), true, false)
	a.app.ShowScreen(pageAppList, screen)
	a.app.SetFocus(screen.GetTable())
	a.auditLogger.LogView(audit.TargetApp, store.PrefixApp+"*")

	go func() {
		a.app.QueueUpdateDraw(func() {
			if err := screen.Load(context.Background()); err != nil {
				a.app.GetStatusBar().ShowError("Failed to load: " + err.Error())
			}
		})
	}()
}

// User Sessions
func (a *Application) showSessionSearch() {
	screen := monitoring.NewSessionSearchScreen(a.app, a.broker, a.auditLogger, a.clock)
	screen.SetOnBack(a.backToMenu(pageSessionSearch))

	a.app.AddPage(pageSessionSearch, screen.GetFlex(), true, false)
	a.app.ShowScreen(pageSessionSearch, screen)
	a.app.SetFocus(screen.GetTable())
	screen.ShowSearchDialog()
}

// Statistics
func (a *Application) showStatistics() {
	screen := monitoring.NewStatisticsScreen(a.app, a.statistics)
	screen.SetOnBack(a.backToMenu(pageStatistics))

	a.app.AddPage(pageStatistics, screen.GetTextView(), true, false)
	a.app.ShowScreen(pageStatistics, screen)
	a.app.SetFocus(screen.GetTextView())

	go func() {
		ctx := context.Background()
		a.app.QueueUpdateDraw(func() {
			if err := screen.Load(ctx); err != nil {
				a.app.GetStatusBar().ShowError("Failed to load: " + err.Error())
			}
		})
	}()
}

func (a *Application) quit() {
	a.app.Stop()
}

func (a *Application) cleanup() {
	if a.redisClient != nil {
		_ = a.redisClient.Close()
	}
}
