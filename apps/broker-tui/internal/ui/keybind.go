package ui

import "github.com/gdamore/tcell/v2"

// キーバインド定義
const (
	KeyHelp    = tcell.KeyF1
	KeyRefresh = tcell.KeyF5
	KeyQuit    = tcell.KeyCtrlQ

	RuneRefresh = 'r'
	RuneFilter  = '/'
	RuneSort    = 's'
	RuneSearch  = '/'
	RuneQuit    = 'q'
)

// KeyBinding はキーバインドの情報を表す。
type KeyBinding struct {
	Key         tcell.Key
	Rune        rune
	Description string
}

// Label はキー表示用の文字列を返す。
func (b KeyBinding) Label() string {
	if b.Key != 0 {
		return keyToString(b.Key)
	}
	return string(b.Rune)
}

func keyToString(key tcell.Key) string {
	switch key {
	case tcell.KeyF1:
		return "F1"
	case tcell.KeyF5:
		return "F5"
	case tcell.KeyUp:
		return "↑"
	case tcell.KeyDown:
		return "↓"
	case tcell.KeyPgUp:
		return "PgUp"
	case tcell.KeyPgDn:
		return "PgDn"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyEsc:
		return "Esc"
	case tcell.KeyCtrlQ:
		return "Ctrl+Q"
	default:
		return "?"
	}
}

// IsRefresh はイベントが再読み込み操作かどうかを返す。
func IsRefresh(event *tcell.EventKey) bool {
	return event.Key() == KeyRefresh || (event.Key() == tcell.KeyRune && event.Rune() == RuneRefresh)
}

// IsBack はイベントが戻る操作かどうかを返す。
func IsBack(event *tcell.EventKey) bool {
	return event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == RuneQuit)
}
