package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/store"
)

func TestFilter(t *testing.T) {
	f := &Filter{}
	if !f.MatchAny("anything") {
		t.Error("inactive filter should match everything")
	}

	f.SetQuery("  Notes ")
	if !f.Active || f.Query != "Notes" {
		t.Fatalf("SetQuery() = %q active=%v", f.Query, f.Active)
	}
	if !f.MatchAny("com.example.notes", "x") {
		t.Error("expected case-insensitive match")
	}
	if f.MatchAny("com.example.cam") {
		t.Error("unexpected match")
	}
	if f.Status() != `Filter: "Notes"` {
		t.Errorf("Status() = %q", f.Status())
	}

	got := FilterItems([]string{"notes", "cam", "NOTES2"}, f, func(s string) []string { return []string{s} })
	if len(got) != 2 {
		t.Errorf("FilterItems() = %v", got)
	}

	f.SetQuery("   ")
	if f.Active {
		t.Error("blank query should clear the filter")
	}
}

func TestPagination(t *testing.T) {
	p := NewPagination(2)
	items := []int{1, 2, 3, 4, 5}

	if got := PageItems(items, p); len(got) != 2 || got[0] != 1 {
		t.Errorf("page 1 = %v", got)
	}
	if p.TotalPages() != 3 {
		t.Errorf("TotalPages() = %d, want 3", p.TotalPages())
	}
	p.NextPage()
	p.NextPage()
	if p.NextPage() {
		t.Error("NextPage() past last page")
	}
	if got := PageItems(items, p); len(got) != 1 || got[0] != 5 {
		t.Errorf("page 3 = %v", got)
	}
	if p.Info() != "5-5 of 5 (Page 3/3)" {
		t.Errorf("Info() = %q", p.Info())
	}

	// 件数が減った場合は最終ページに収める
	if got := PageItems(items[:2], p); len(got) != 2 || p.CurrentPage != 1 {
		t.Errorf("shrunk page = %v (page %d)", got, p.CurrentPage)
	}
	if got := PageItems([]int{}, p); got != nil || p.Info() != "No items" {
		t.Errorf("empty page = %v, %q", got, p.Info())
	}
}

func TestLivenessStyle(t *testing.T) {
	tests := []struct {
		l     store.Liveness
		color tcell.Color
		label string
	}{
		{store.LivenessAlive, ColorAlive, "● alive"},
		{store.LivenessOverdue, ColorOverdue, "◐ overdue"},
		{store.LivenessStale, ColorStale, "○ stale"},
	}
	for _, tt := range tests {
		t.Run(string(tt.l), func(t *testing.T) {
			if got := LivenessColor(tt.l); got != tt.color {
				t.Errorf("LivenessColor() = %v, want %v", got, tt.color)
			}
			if got := LivenessLabel(tt.l); got != tt.label {
				t.Errorf("LivenessLabel() = %q, want %q", got, tt.label)
			}
			if got := StyleLiveness(tt.l); !strings.Contains(got, tt.label) {
				t.Errorf("StyleLiveness() = %q", got)
			}
		})
	}
}

func TestFormatHelp(t *testing.T) {
	text := FormatHelp(DefaultHelpSections())

	for _, want := range []string{"[::b]Navigation[::-]", "F5  Refresh now", "Ctrl+Q  Exit application", "/  Filter / search"} {
		if !strings.Contains(text, want) {
			t.Errorf("help text missing %q", want)
		}
	}
}

func TestKeyPredicates(t *testing.T) {
	tests := []struct {
		name    string
		event   *tcell.EventKey
		refresh bool
		back    bool
	}{
		{"F5", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), true, false},
		{"r", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), true, false},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false, true},
		{"Esc", tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone), false, true},
		{"x", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRefresh(tt.event); got != tt.refresh {
				t.Errorf("IsRefresh() = %v, want %v", got, tt.refresh)
			}
			if got := IsBack(tt.event); got != tt.back {
				t.Errorf("IsBack() = %v, want %v", got, tt.back)
			}
		})
	}
}

func TestStatusBar(t *testing.T) {
	s := NewStatusBar()
	s.SetSuffix("valkey 127.0.0.1:6379")
	if !strings.Contains(s.Text(), "valkey 127.0.0.1:6379") {
		t.Errorf("Text() = %q", s.Text())
	}

	s.ShowError("boom")
	if !strings.Contains(s.Text(), "boom") {
		t.Errorf("Text() = %q", s.Text())
	}
}

func TestMainMenuItems(t *testing.T) {
	called := ""
	items := DefaultMenuItems(MenuActions{
		Registrations: func() { called = "registrations" },
	})
	if len(items) != 5 {
		t.Fatalf("len(items) = %d, want 5", len(items))
	}
	items[0].Action()
	if called != "registrations" {
		t.Errorf("called = %q", called)
	}
	if items[len(items)-1].Key != 'q' {
		t.Errorf("last item key = %q, want q", items[len(items)-1].Key)
	}
}
