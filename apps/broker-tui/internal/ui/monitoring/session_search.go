package monitoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/audit"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/format"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/store"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/ui"
	"github.com/oyaguma3/glasses-session-broker/pkg/model"
	"github.com/rivo/tview"
	"k8s.io/utils/clock"
)

var sessionHeaders = []string{"Session", "Device", "Disconnected For", "Running Apps", "Audio Buffer", "Created"}

// SessionSearchScreen はユーザーのライブセッションを検索する画面を表す。
// セッションはブローカーのメモリ上にのみ存在するため内部API経由で取得する。
type SessionSearchScreen struct {
	flex        *tview.Flex
	header      *tview.TextView
	table       *tview.Table
	app         *ui.App
	broker      *store.BrokerClient
	auditLogger *audit.Logger
	clock       clock.PassiveClock
	userID      string
	sessions    []model.SessionSummary
	onBack      func()
}

// NewSessionSearchScreen は新しいSessionSearchScreenを生成する。
func NewSessionSearchScreen(app *ui.App, broker *store.BrokerClient, auditLogger *audit.Logger, clk clock.PassiveClock) *SessionSearchScreen {
	header := tview.NewTextView().
		SetDynamicColors(true)
	header.SetBorder(true).
		SetTitle(" User Sessions ").
		SetBorderColor(ui.ColorBorder)

	table := tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)
	table.SetBorder(true).
		SetTitle(" Sessions ").
		SetBorderColor(ui.ColorTextMuted)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 5, 0, false).
		AddItem(table, 0, 1, true)

	s := &SessionSearchScreen{
		flex:        flex,
		header:      header,
		table:       table,
		app:         app,
		broker:      broker,
		auditLogger: auditLogger,
		clock:       clk,
	}
	s.setupKeyBindings()
	s.render()
	return s
}

// SetOnBack は戻る時のコールバックを設定する。
func (s *SessionSearchScreen) SetOnBack(handler func()) {
	s.onBack = handler
}

// GetFlex は内部のtview.Flexを返す。
func (s *SessionSearchScreen) GetFlex() *tview.Flex {
	return s.flex
}

// GetTable は内部のtview.Tableを返す。
func (s *SessionSearchScreen) GetTable() *tview.Table {
	return s.table
}

// Search は指定ユーザーのセッションを取得して表示する。
func (s *SessionSearchScreen) Search(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	sessions, err := s.broker.UserSessions(ctx, userID)
	if err != nil {
		return err
	}
	s.userID = userID
	s.sessions = sessions
	s.auditLogger.LogSessionSearch(userID, len(sessions))
	s.render()
	return nil
}

// AutoRefresh は定期更新で呼び出される。
// 内部APIの呼び出しはUIゴルーチン外で行う。
func (s *SessionSearchScreen) AutoRefresh() {
	if s.userID != "" {
		s.searchAsync(s.userID, false)
	}
}

// searchAsync は内部APIを非同期に呼び出す。
// 運用者の明示的な検索のみ監査ログに記録する。
func (s *SessionSearchScreen) searchAsync(userID string, audited bool) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		sessions, err := s.broker.UserSessions(ctx, userID)
		s.app.QueueUpdateDraw(func() {
			if err != nil {
				s.app.GetStatusBar().ShowError("Search failed: " + err.Error())
				return
			}
			if audited {
				s.auditLogger.LogSessionSearch(userID, len(sessions))
			}
			s.userID = userID
			s.sessions = sessions
			s.render()
		})
	}()
}

// ShowSearchDialog は検索ダイアログを表示する。
func (s *SessionSearchScreen) ShowSearchDialog() {
	if !s.broker.Enabled() {
		s.app.GetStatusBar().ShowWarning("INTERNAL_API_TOKEN is not set; session lookup is disabled")
		return
	}
	closeDialog := func() {
		s.app.ClosePage(ui.PageSearchDialog)
		s.app.SetFocus(s.table)
	}
	dialog := ui.NewInputDialog("Search Sessions", "User ID:", s.userID, 32,
		func(value string) {
			closeDialog()
			if strings.TrimSpace(value) == "" {
				return
			}
			s.searchAsync(strings.TrimSpace(value), true)
		},
		closeDialog,
	)
	s.app.AddPage(ui.PageSearchDialog, ui.Centered(dialog, 60, 7), true, true)
	s.app.SetFocus(dialog)
}

func (s *SessionSearchScreen) render() {
	var b strings.Builder
	switch {
	case !s.broker.Enabled():
		b.WriteString("[yellow]INTERNAL_API_TOKEN is not set; the broker internal API cannot be queried.[-]\n")
	case s.userID == "":
		b.WriteString("[gray]Press '/' to look up a user's sessions[-]\n")
	default:
		fmt.Fprintf(&b, "[yellow]User:[-] %s\n", s.userID)
		fmt.Fprintf(&b, "[cyan]Sessions found:[-] %d\n", len(s.sessions))
		b.WriteString("[gray]Press '/' to search for another user[-]")
	}
	s.header.SetText(b.String())

	s.table.Clear()
	ui.SetHeader(s.table, sessionHeaders, -1, false)
	if len(s.sessions) == 0 {
		s.table.SetCell(1, 0, tview.NewTableCell("No sessions").
			SetTextColor(ui.ColorTextMuted).
			SetSelectable(false))
		return
	}

	now := s.clock.Now()
	for i, sess := range s.sessions {
		row := i + 1
		device, deviceColor := "connected", ui.ColorAlive
		disconnected := "-"
		if !sess.DeviceConnected {
			device, deviceColor = "grace", ui.ColorOverdue
			disconnected = format.Since(sess.DisconnectedSince, now)
		}
		s.table.SetCell(row, 0, ui.Cell(format.TruncateMiddle(sess.SessionID, 13), ui.ColorText))
		s.table.SetCell(row, 1, ui.Cell(device, deviceColor))
		s.table.SetCell(row, 2, ui.Cell(disconnected, ui.ColorTextMuted))
		s.table.SetCell(row, 3, ui.Cell(format.JoinLimited(sess.RunningApps, 2), ui.ColorText))
		s.table.SetCell(row, 4, ui.Cell(format.Millis(sess.AudioBufferedMs), tcell.ColorTeal))
		s.table.SetCell(row, 5, ui.Cell(format.DateTimeShort(sess.CreatedAt), ui.ColorTextMuted))
	}
	s.table.Select(1, 0)
}

func (s *SessionSearchScreen) setupKeyBindings() {
	s.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case ui.IsBack(event):
			if s.onBack != nil {
				s.onBack()
			}
			return nil
		case ui.IsRefresh(event):
			s.AutoRefresh()
			return nil
		case event.Rune() == ui.RuneSearch:
			s.ShowSearchDialog()
			return nil
		}
		return event
	})
}
