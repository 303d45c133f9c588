package monitoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/format"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/store"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/ui"
	"github.com/rivo/tview"
)

// StatisticsScreen は統計ダッシュボード画面を表す。
type StatisticsScreen struct {
	textView   *tview.TextView
	app        *ui.App
	statistics *store.StatisticsStore
	onBack     func()
}

// NewStatisticsScreen は新しいStatisticsScreenを生成する。
func NewStatisticsScreen(app *ui.App, statistics *store.StatisticsStore) *StatisticsScreen {
	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)

	textView.SetTitle(" Statistics ").
		SetTitleAlign(tview.AlignCenter).
		SetBorder(true).
		SetBorderColor(ui.ColorBorder)

	s := &StatisticsScreen{
		textView:   textView,
		app:        app,
		statistics: statistics,
	}
	s.setupKeyBindings()
	return s
}

// SetOnBack は戻る時のコールバックを設定する。
func (s *StatisticsScreen) SetOnBack(handler func()) {
	s.onBack = handler
}

// GetTextView は内部のtview.TextViewを返す。
func (s *StatisticsScreen) GetTextView() *tview.TextView {
	return s.textView
}

// Load はキャッシュを利用して統計を読み込む。
func (s *StatisticsScreen) Load(ctx context.Context) error {
	stats, err := s.statistics.Get(ctx)
	if stats != nil {
		s.textView.SetText(renderStatistics(stats, err))
	}
	return err
}

// AutoRefresh は定期更新で呼び出される。キャッシュの期限内は再集計しない。
func (s *StatisticsScreen) AutoRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	_ = s.Load(ctx)
}

func renderStatistics(stats *store.Statistics, loadErr error) string {
	var b strings.Builder
	b.WriteString("[yellow::b]TPA Servers[-::-]\n\n")
	fmt.Fprintf(&b, "  [cyan]Registrations:[-] %d (%d packages)\n", stats.RegistrationCount, stats.PackageCount)
	fmt.Fprintf(&b, "  %s  %d\n", ui.StyleLiveness(store.LivenessAlive), stats.Liveness.Alive)
	fmt.Fprintf(&b, "  %s  %d\n", ui.StyleLiveness(store.LivenessOverdue), stats.Liveness.Overdue)
	fmt.Fprintf(&b, "  %s  %d\n", ui.StyleLiveness(store.LivenessStale), stats.Liveness.Stale)
	fmt.Fprintf(&b, "  [cyan]Catalog apps:[-]  %d\n", stats.AppCount)

	b.WriteString("\n[yellow::b]Broker[-::-]\n\n")
	if stats.BrokerErr != "" {
		fmt.Fprintf(&b, "  [cyan]Status:[-] [red]%s[-]\n", stats.BrokerStatus)
		fmt.Fprintf(&b, "  [gray]%s[-]\n", tview.Escape(stats.BrokerErr))
	} else {
		fmt.Fprintf(&b, "  [cyan]Status:[-]          [green]%s[-]\n", stats.BrokerStatus)
		fmt.Fprintf(&b, "  [cyan]Active sessions:[-] %d\n", stats.ActiveSessions)
	}

	if loadErr != nil {
		fmt.Fprintf(&b, "\n[red]Partial result: %s[-]\n", tview.Escape(loadErr.Error()))
	}

	b.WriteString("\n[gray]Last updated: " + format.Clock(stats.UpdatedAt) + "[-]\n")
	b.WriteString("[gray](Cached for 30 seconds. Press 'r' to force refresh)[-]\n")
	return b.String()
}

func (s *StatisticsScreen) setupKeyBindings() {
	s.textView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case ui.IsBack(event):
			if s.onBack != nil {
				s.onBack()
			}
			return nil
		case ui.IsRefresh(event):
			s.statistics.ClearCache()
			s.AutoRefresh()
			s.app.GetStatusBar().ShowSuccess("Statistics refreshed")
			return nil
		}
		return event
	})
}
