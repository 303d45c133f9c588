package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// HelpSection はヘルプのセクションを表す。
type HelpSection struct {
	Title    string
	Bindings []KeyBinding
}

// NewHelpModal はヘルプモーダルを生成する。
func NewHelpModal(sections []HelpSection, onClose func()) *tview.Modal {
	modal := tview.NewModal().
		SetText(FormatHelp(sections)).
		AddButtons([]string{"Close"}).
		SetDoneFunc(func(int, string) {
			if onClose != nil {
				onClose()
			}
		})

	modal.SetTitle(" Help ").
		SetBorder(true).
		SetBorderColor(tcell.ColorTeal)
	return modal
}

// FormatHelp はヘルプ本文を組み立てる。
func FormatHelp(sections []HelpSection) string {
	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("[::b]" + section.Title + "[::-]\n")
		for _, binding := range section.Bindings {
			b.WriteString("  " + binding.Label() + "  " + binding.Description + "\n")
		}
	}
	return b.String()
}

// DefaultHelpSections はヘルプセクションを返す。
func DefaultHelpSections() []HelpSection {
	return []HelpSection{
		{
			Title: "Navigation",
			Bindings: []KeyBinding{
				{tcell.KeyUp, 0, "Move up"},
				{tcell.KeyDown, 0, "Move down"},
				{tcell.KeyPgUp, 0, "Previous page"},
				{tcell.KeyPgDn, 0, "Next page"},
				{tcell.KeyEnter, 0, "Open detail"},
				{tcell.KeyEsc, 0, "Back / clear filter"},
			},
		},
		{
			Title: "Lists",
			Bindings: []KeyBinding{
				{KeyRefresh, 0, "Refresh now"},
				{0, RuneRefresh, "Refresh now (alt)"},
				{0, RuneFilter, "Filter / search"},
				{0, RuneSort, "Cycle sort column"},
			},
		},
		{
			Title: "Liveness",
			Bindings: []KeyBinding{
				{0, '●', "alive: heartbeat within window"},
				{0, '◐', "overdue: window passed, not yet stale"},
				{0, '○', "stale: marked by the broker"},
			},
		},
		{
			Title: "Global",
			Bindings: []KeyBinding{
				{KeyHelp, 0, "Show this help"},
				{0, RuneQuit, "Back/Quit"},
				{KeyQuit, 0, "Exit application"},
			},
		},
	}
}
