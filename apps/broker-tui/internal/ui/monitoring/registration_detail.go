package monitoring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/format"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/store"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/ui"
	"github.com/oyaguma3/glasses-session-broker/pkg/model"
	"github.com/rivo/tview"
	"k8s.io/utils/clock"
)

// RegistrationDetailScreen はTPAサーバー登録の詳細画面を表す。
type RegistrationDetailScreen struct {
	textView *tview.TextView
	app      *ui.App
	regs     *store.RegistrationStore
	apps     *store.AppStore
	clock    clock.PassiveClock
	window   time.Duration
	id       string
	onBack   func()
}

// NewRegistrationDetailScreen は新しいRegistrationDetailScreenを生成する。
func NewRegistrationDetailScreen(app *ui.App, regs *store.RegistrationStore, apps *store.AppStore, window time.Duration, clk clock.PassiveClock) *RegistrationDetailScreen {
	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	textView.SetBorder(true).
		SetTitle(" Registration Detail ").
		SetBorderColor(ui.ColorBorder)

	s := &RegistrationDetailScreen{
		textView: textView,
		app:      app,
		regs:     regs,
		apps:     apps,
		clock:    clk,
		window:   window,
	}
	s.setupKeyBindings()
	return s
}

// SetOnBack は戻る時のコールバックを設定する。
func (s *RegistrationDetailScreen) SetOnBack(handler func()) {
	s.onBack = handler
}

// GetTextView は内部のtview.TextViewを返す。
func (s *RegistrationDetailScreen) GetTextView() *tview.TextView {
	return s.textView
}

// Load は指定IDの登録と同一パッケージの登録、カタログ情報を読み込む。
func (s *RegistrationDetailScreen) Load(ctx context.Context, id string) error {
	s.id = id
	reg, err := s.regs.Get(ctx, id)
	if err != nil {
		s.textView.SetText("[red]Error: " + err.Error() + "[-]")
		return err
	}
	siblings, err := s.regs.ListByPackage(ctx, reg.PackageName)
	if err != nil {
		return err
	}
	app, err := s.apps.Get(ctx, reg.PackageName)
	if err != nil && !errors.Is(err, store.ErrAppNotFound) {
		return err
	}
	s.textView.SetText(s.content(reg, siblings, app))
	s.textView.ScrollToBeginning()
	return nil
}

// AutoRefresh は定期更新で呼び出される。
func (s *RegistrationDetailScreen) AutoRefresh() {
	if s.id == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	if err := s.Load(ctx, s.id); err != nil {
		s.app.GetStatusBar().ShowError("Failed to refresh: " + err.Error())
	}
}

func (s *RegistrationDetailScreen) content(reg *model.TpaServerRegistration, siblings []*model.TpaServerRegistration, app *model.App) string {
	now := s.clock.Now()
	liveness := store.Classify(reg, s.window, now)

	var b strings.Builder
	b.WriteString("[yellow::b]TPA Server Registration[-::-]\n\n")
	fmt.Fprintf(&b, "  [cyan]Registration ID:[-] %s\n", reg.RegistrationID)
	fmt.Fprintf(&b, "  [cyan]Package:[-]         %s\n", reg.PackageName)
	fmt.Fprintf(&b, "  [cyan]Liveness:[-]        %s\n", ui.StyleLiveness(liveness))
	fmt.Fprintf(&b, "  [cyan]Last heartbeat:[-]  %s (%s)\n", format.DateTime(reg.LastHeartbeatAt), format.Ago(store.HeartbeatAge(reg, now)))
	fmt.Fprintf(&b, "  [cyan]Registered at:[-]   %s\n", format.DateTime(reg.RegisteredAt))
	fmt.Fprintf(&b, "  [cyan]Window:[-]          %s\n", format.Duration(s.window))
	if reg.TemporaryKey {
		b.WriteString("  [cyan]API key:[-]         [yellow]temporary (not in catalog)[-]\n")
	} else {
		b.WriteString("  [cyan]API key:[-]         catalog\n")
	}
	fmt.Fprintf(&b, "  [cyan]Webhook URL:[-]     %s\n", orDash(reg.WebhookURL))

	b.WriteString("\n[yellow::b]Server URLs[-::-]\n")
	if len(reg.ServerURLs) == 0 {
		b.WriteString("  [gray]none[-]\n")
	}
	for _, u := range reg.ServerURLs {
		b.WriteString("  - " + u + "\n")
	}

	b.WriteString("\n[yellow::b]App Catalog[-::-]\n")
	if app == nil {
		b.WriteString("  [gray]not in catalog[-]\n")
	} else {
		fmt.Fprintf(&b, "  [cyan]Name:[-]        %s\n", app.Name)
		fmt.Fprintf(&b, "  [cyan]Type:[-]        %s\n", app.AppType)
		fmt.Fprintf(&b, "  [cyan]Webhook URL:[-] %s\n", orDash(app.WebhookURL))
		fmt.Fprintf(&b, "  [cyan]Public URL:[-]  %s\n", orDash(app.PublicURL))
	}

	b.WriteString("\n[yellow::b]Other registrations of this package[-::-]\n")
	others := 0
	for _, sib := range siblings {
		if sib.RegistrationID == reg.RegistrationID {
			continue
		}
		others++
		l := store.Classify(sib, s.window, now)
		fmt.Fprintf(&b, "  %s  %s  %s\n", sib.RegistrationID, ui.StyleLiveness(l), format.DateTimeShort(sib.LastHeartbeatAt))
	}
	if others == 0 {
		b.WriteString("  [gray]none[-]\n")
	}

	b.WriteString("\n[gray]r: refresh | q/Esc: back[-]\n")
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (s *RegistrationDetailScreen) setupKeyBindings() {
	s.textView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case ui.IsBack(event):
			if s.onBack != nil {
				s.onBack()
			}
			return nil
		case ui.IsRefresh(event):
			s.AutoRefresh()
			return nil
		}
		return event
	})
}
