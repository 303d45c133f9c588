// Package monitoring はブローカーの状態を参照する画面を提供する。
package monitoring

import (
	"context"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/format"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/store"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/ui"
	"github.com/oyaguma3/glasses-session-broker/pkg/model"
	"github.com/rivo/tview"
	"k8s.io/utils/clock"
)

// 画面からのValkey読み取りのタイムアウト
const loadTimeout = 5 * time.Second

// RegistrationSort は登録一覧のソート列を表す。
type RegistrationSort int

const (
	// SortByPackage はパッケージ名でソート
	SortByPackage RegistrationSort = iota
	// SortByLiveness は生存状態でソート（stale → overdue → alive）
	SortByLiveness
	// SortByHeartbeat は最終ハートビートでソート（古い順）
	SortByHeartbeat
	sortFieldCount
)

var registrationHeaders = []string{"Package", "Registration", "Liveness", "Last Heartbeat", "Age", "Servers", "Key"}

// ソート列とヘッダー位置の対応
var sortColumn = map[RegistrationSort]int{SortByPackage: 0, SortByLiveness: 2, SortByHeartbeat: 3}

// RegistrationListScreen はTPAサーバー登録の一覧画面を表す。
type RegistrationListScreen struct {
	table      *tview.Table
	app        *ui.App
	regs       *store.RegistrationStore
	clock      clock.PassiveClock
	window     time.Duration
	items      []*model.TpaServerRegistration
	filter     *ui.Filter
	pagination *ui.Pagination
	sortField  RegistrationSort
	onSelect   func(id string)
	onBack     func()
}

// NewRegistrationListScreen は新しいRegistrationListScreenを生成する。
func NewRegistrationListScreen(app *ui.App, regs *store.RegistrationStore, window time.Duration, clk clock.PassiveClock) *RegistrationListScreen {
	s := &RegistrationListScreen{
		table:      ui.NewTable("TPA Server Registrations"),
		app:        app,
		regs:       regs,
		clock:      clk,
		window:     window,
		filter:     &ui.Filter{},
		pagination: ui.NewPagination(ui.DefaultPageSize),
		sortField:  SortByLiveness,
	}
	s.setupKeyBindings()
	return s
}

// SetOnSelect は登録選択時のコールバックを設定する。
func (s *RegistrationListScreen) SetOnSelect(handler func(id string)) {
	s.onSelect = handler
}

// SetOnBack は戻る時のコールバックを設定する。
func (s *RegistrationListScreen) SetOnBack(handler func()) {
	s.onBack = handler
}

// GetTable は内部のtview.Tableを返す。
func (s *RegistrationListScreen) GetTable() *tview.Table {
	return s.table
}

// Load はデータを読み込む。選択行は可能な限り維持する。
func (s *RegistrationListScreen) Load(ctx context.Context) error {
	selected := s.SelectedID()
	items, err := s.regs.List(ctx)
	if err != nil {
		return err
	}
	s.items = items
	s.sort()
	s.render(selected)
	return nil
}

// AutoRefresh は定期更新で呼び出される。
func (s *RegistrationListScreen) AutoRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	if err := s.Load(ctx); err != nil {
		s.app.GetStatusBar().ShowError("Failed to refresh: " + err.Error())
	}
}

// SetFilter はフィルタを設定する。
func (s *RegistrationListScreen) SetFilter(query string) {
	s.filter.SetQuery(query)
	s.pagination.FirstPage()
	s.render("")
}

// ClearFilter はフィルタを解除する。
func (s *RegistrationListScreen) ClearFilter() {
	s.filter.Clear()
	s.pagination.FirstPage()
	s.render("")
}

// ToggleSort はソート列を切り替える。
func (s *RegistrationListScreen) ToggleSort() {
	s.sortField = (s.sortField + 1) % sortFieldCount
	s.sort()
	s.render(s.SelectedID())
}

// SelectedID は選択されている登録IDを返す。
func (s *RegistrationListScreen) SelectedID() string {
	row, _ := s.table.GetSelection()
	cell := s.table.GetCell(row, 1)
	if row < 1 || cell == nil {
		return ""
	}
	if id, ok := cell.GetReference().(string); ok {
		return id
	}
	return ""
}

func (s *RegistrationListScreen) sort() {
	now := s.clock.Now()
	rank := map[store.Liveness]int{store.LivenessStale: 0, store.LivenessOverdue: 1, store.LivenessAlive: 2}

	sort.SliceStable(s.items, func(i, j int) bool {
		a, b := s.items[i], s.items[j]
		switch s.sortField {
		case SortByLiveness:
			ra := rank[store.Classify(a, s.window, now)]
			rb := rank[store.Classify(b, s.window, now)]
			if ra != rb {
				return ra < rb
			}
			return a.PackageName < b.PackageName
		case SortByHeartbeat:
			return a.LastHeartbeatAt < b.LastHeartbeatAt
		default:
			if a.PackageName != b.PackageName {
				return a.PackageName < b.PackageName
			}
			return a.RegisteredAt < b.RegisteredAt
		}
	})
}

func (s *RegistrationListScreen) filtered() []*model.TpaServerRegistration {
	return ui.FilterItems(s.items, s.filter, func(r *model.TpaServerRegistration) []string {
		values := []string{r.PackageName, r.RegistrationID, r.WebhookURL}
		return append(values, r.ServerURLs...)
	})
}

func (s *RegistrationListScreen) render(keepID string) {
	s.table.Clear()
	ui.SetHeader(s.table, registrationHeaders, sortColumn[s.sortField], false)

	now := s.clock.Now()
	page := ui.PageItems(s.filtered(), s.pagination)
	selectRow := 1
	for i, reg := range page {
		row := i + 1
		liveness := store.Classify(reg, s.window, now)
		key := "api"
		if reg.TemporaryKey {
			key = "temporary"
		}

		s.table.SetCell(row, 0, ui.Cell(reg.PackageName, ui.ColorText))
		s.table.SetCell(row, 1, ui.Cell(format.TruncateMiddle(reg.RegistrationID, 13), ui.ColorTextMuted).
			SetReference(reg.RegistrationID))
		s.table.SetCell(row, 2, ui.Cell(ui.LivenessLabel(liveness), ui.LivenessColor(liveness)))
		s.table.SetCell(row, 3, ui.Cell(format.DateTimeShort(reg.LastHeartbeatAt), ui.ColorTextMuted))
		s.table.SetCell(row, 4, ui.Cell(format.Duration(store.HeartbeatAge(reg, now)), tcell.ColorTeal))
		s.table.SetCell(row, 5, ui.Cell(format.JoinLimited(reg.ServerURLs, 1), ui.ColorText))
		s.table.SetCell(row, 6, ui.Cell(key, ui.ColorTextMuted))

		if reg.RegistrationID == keepID {
			selectRow = row
		}
	}

	title := " TPA Server Registrations "
	if s.filter.Active {
		title += "[yellow](" + s.filter.Status() + ")[-] "
	}
	title += "[gray]" + s.pagination.Info() + "[-] "
	s.table.SetTitle(title)

	if len(page) > 0 {
		s.table.Select(selectRow, 0)
	}
}

func (s *RegistrationListScreen) setupKeyBindings() {
	s.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEsc && s.filter.Active:
			s.ClearFilter()
			return nil
		case ui.IsBack(event):
			if s.onBack != nil {
				s.onBack()
			}
			return nil
		case ui.IsRefresh(event):
			s.AutoRefresh()
			s.app.GetStatusBar().ShowSuccess("Refreshed")
			return nil
		}

		switch event.Key() {
		case tcell.KeyPgUp:
			if s.pagination.PrevPage() {
				s.render("")
			}
			return nil
		case tcell.KeyPgDn:
			if s.pagination.NextPage() {
				s.render("")
			}
			return nil
		case tcell.KeyEnter:
			if id := s.SelectedID(); id != "" && s.onSelect != nil {
				s.onSelect(id)
			}
			return nil
		}

		switch event.Rune() {
		case ui.RuneSort:
			s.ToggleSort()
			return nil
		case ui.RuneFilter:
			s.showFilterDialog()
			return nil
		}
		return event
	})
}

func (s *RegistrationListScreen) showFilterDialog() {
	closeDialog := func() {
		s.app.ClosePage(ui.PageFilterDialog)
		s.app.SetFocus(s.table)
	}
	dialog := ui.NewInputDialog("Filter Registrations", "Package/ID/URL contains:", s.filter.Query, 24,
		func(value string) {
			s.SetFilter(value)
			closeDialog()
		},
		closeDialog,
	)
	s.app.AddPage(ui.PageFilterDialog, ui.Centered(dialog, 60, 7), true, true)
	s.app.SetFocus(dialog)
}
