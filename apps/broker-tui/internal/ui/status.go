package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// StatusType はステータスメッセージの種類を表す。
type StatusType int

const (
	// StatusInfo は情報メッセージ
	StatusInfo StatusType = iota
	// StatusSuccess は成功メッセージ
	StatusSuccess
	// StatusWarning は警告メッセージ
	StatusWarning
	// StatusError はエラーメッセージ
	StatusError
)

const (
	defaultStatusText = " F1:Help | F5:Refresh | q:Back | Ctrl+Q:Exit"
	messageDuration   = 5 * time.Second
)

// StatusBar はステータスバーを管理する。
type StatusBar struct {
	view       *tview.TextView
	app        *tview.Application
	clearTimer *time.Timer
	suffix     string
}

// NewStatusBar は新しいStatusBarを生成する。
func NewStatusBar() *StatusBar {
	view := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	view.SetBackgroundColor(tcell.ColorDarkBlue)
	view.SetTextColor(tcell.ColorWhite)

	s := &StatusBar{view: view}
	s.ShowDefault()
	return s
}

// SetApp はtview.Applicationへの参照を設定する。
func (s *StatusBar) SetApp(app *tview.Application) {
	s.app = app
}

// SetSuffix は既定表示の末尾に付ける文字列を設定する（接続先や最終更新時刻）。
func (s *StatusBar) SetSuffix(text string) {
	s.suffix = text
	if s.clearTimer == nil {
		s.ShowDefault()
	}
}

// ShowDefault はデフォルトのステータスメッセージを表示する。
func (s *StatusBar) ShowDefault() {
	text := defaultStatusText
	if s.suffix != "" {
		text += " | [gray]" + s.suffix + "[-]"
	}
	s.view.SetText(text)
}

// Show はステータスメッセージを一定時間表示する。
func (s *StatusBar) Show(statusType StatusType, message string) {
	if s.clearTimer != nil {
		s.clearTimer.Stop()
	}

	var colored string
	switch statusType {
	case StatusSuccess:
		colored = "[green::b] ✓ " + message + " [-::-]"
	case StatusWarning:
		colored = "[yellow::b] ⚠ " + message + " [-::-]"
	case StatusError:
		colored = "[red::b] ✗ " + message + " [-::-]"
	default:
		colored = "[cyan] ℹ " + message + " [-]"
	}
	s.view.SetText(colored)

	s.clearTimer = time.AfterFunc(messageDuration, func() {
		if s.app == nil {
			return
		}
		s.app.QueueUpdateDraw(func() {
			s.clearTimer = nil
			s.ShowDefault()
		})
	})
}

// ShowInfo は情報メッセージを表示する。
func (s *StatusBar) ShowInfo(message string) {
	s.Show(StatusInfo, message)
}

// ShowSuccess は成功メッセージを表示する。
func (s *StatusBar) ShowSuccess(message string) {
	s.Show(StatusSuccess, message)
}

// ShowWarning は警告メッセージを表示する。
func (s *StatusBar) ShowWarning(message string) {
	s.Show(StatusWarning, message)
}

// ShowError はエラーメッセージを表示する。
func (s *StatusBar) ShowError(message string) {
	s.Show(StatusError, message)
}

// Text は現在の表示内容を返す。
func (s *StatusBar) Text() string {
	return s.view.GetText(false)
}
