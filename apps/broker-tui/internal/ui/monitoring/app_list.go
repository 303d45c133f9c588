package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/store"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/ui"
	"github.com/oyaguma3/glasses-session-broker/pkg/model"
	"github.com/rivo/tview"
	"k8s.io/utils/clock"
)

var appHeaders = []string{"Package", "Name", "Type", "Webhook", "Servers (alive/total)"}

// AppListScreen はアプリカタログの一覧画面を表す。
// 各アプリについて登録済みTPAサーバーの生存数を併記する。
type AppListScreen struct {
	table  *tview.Table
	app    *ui.App
	apps   *store.AppStore
	regs   *store.RegistrationStore
	clock  clock.PassiveClock
	window time.Duration
	items  []*model.App
	counts map[string][2]int
	filter *ui.Filter

	onSelect func(packageName string)
	onBack   func()
}

// NewAppListScreen は新しいAppListScreenを生成する。
func NewAppListScreen(app *ui.App, apps *store.AppStore, regs *store.RegistrationStore, window time.Duration, clk clock.PassiveClock) *AppListScreen {
	s := &AppListScreen{
		table:  ui.NewTable("App Catalog"),
		app:    app,
		apps:   apps,
		regs:   regs,
		clock:  clk,
		window: window,
		filter: &ui.Filter{},
	}
	s.setupKeyBindings()
	return s
}

// SetOnSelect はアプリ選択時のコールバックを設定する。
func (s *AppListScreen) SetOnSelect(handler func(packageName string)) {
	s.onSelect = handler
}

// SetOnBack は戻る時のコールバックを設定する。
func (s *AppListScreen) SetOnBack(handler func()) {
	s.onBack = handler
}

// GetTable は内部のtview.Tableを返す。
func (s *AppListScreen) GetTable() *tview.Table {
	return s.table
}

// Load はカタログと登録を読み込む。
func (s *AppListScreen) Load(ctx context.Context) error {
	apps, err := s.apps.List(ctx)
	if err != nil {
		return err
	}
	regs, err := s.regs.List(ctx)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	counts := make(map[string][2]int)
	for _, reg := range regs {
		c := counts[reg.PackageName]
		if store.Classify(reg, s.window, now) == store.LivenessAlive {
			c[0]++
		}
		c[1]++
		counts[reg.PackageName] = c
	}

	s.items = apps
	s.counts = counts
	s.render()
	return nil
}

// AutoRefresh は定期更新で呼び出される。
func (s *AppListScreen) AutoRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	if err := s.Load(ctx); err != nil {
		s.app.GetStatusBar().ShowError("Failed to refresh: " + err.Error())
	}
}

// SelectedPackage は選択されているパッケージ名を返す。
func (s *AppListScreen) SelectedPackage() string {
	row, _ := s.table.GetSelection()
	if row < 1 {
		return ""
	}
	if pkg, ok := s.table.GetCell(row, 0).GetReference().(string); ok {
		return pkg
	}
	return ""
}

func (s *AppListScreen) render() {
	s.table.Clear()
	ui.SetHeader(s.table, appHeaders, -1, false)

	items := ui.FilterItems(s.items, s.filter, func(a *model.App) []string {
		return []string{a.PackageName, a.Name}
	})
	for i, a := range items {
		row := i + 1
		c := s.counts[a.PackageName]
		countColor := ui.ColorAlive
		switch {
		case c[1] == 0:
			countColor = ui.ColorTextMuted
		case c[0] == 0:
			countColor = ui.ColorStale
		case c[0] < c[1]:
			countColor = ui.ColorOverdue
		}

		s.table.SetCell(row, 0, ui.Cell(a.PackageName, ui.ColorText).SetReference(a.PackageName))
		s.table.SetCell(row, 1, ui.Cell(a.Name, ui.ColorText))
		s.table.SetCell(row, 2, ui.Cell(string(a.AppType), ui.ColorTextMuted))
		s.table.SetCell(row, 3, ui.Cell(orDash(a.WebhookURL), ui.ColorTextMuted))
		s.table.SetCell(row, 4, ui.Cell(fmt.Sprintf("%d/%d", c[0], c[1]), countColor))
	}

	title := fmt.Sprintf(" App Catalog [gray](%d apps)[-] ", len(s.items))
	if s.filter.Active {
		title += "[yellow](" + s.filter.Status() + ")[-] "
	}
	s.table.SetTitle(title)
	if len(items) > 0 {
		s.table.Select(1, 0)
	}
}

func (s *AppListScreen) setupKeyBindings() {
	s.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEsc && s.filter.Active:
			s.filter.Clear()
			s.render()
			return nil
		case ui.IsBack(event):
			if s.onBack != nil {
				s.onBack()
			}
			return nil
		case ui.IsRefresh(event):
			s.AutoRefresh()
			return nil
		case event.Key() == tcell.KeyEnter:
			if pkg := s.SelectedPackage(); pkg != "" && s.onSelect != nil {
				s.onSelect(pkg)
			}
			return nil
		case event.Rune() == ui.RuneFilter:
			closeDialog := func() {
				s.app.ClosePage(ui.PageFilterDialog)
				s.app.SetFocus(s.table)
			}
			dialog := ui.NewInputDialog("Filter Apps", "Package/name contains:", s.filter.Query, 24,
				func(value string) {
					s.filter.SetQuery(value)
					s.render()
					closeDialog()
				},
				closeDialog,
			)
			s.app.AddPage(ui.PageFilterDialog, ui.Centered(dialog, 60, 7), true, true)
			s.app.SetFocus(dialog)
			return nil
		}
		return event
	})
}
