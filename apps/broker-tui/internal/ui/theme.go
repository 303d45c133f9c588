package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/glasses-session-broker/apps/broker-tui/internal/store"
	"github.com/rivo/tview"
)

// 色定義
var (
	ColorBorder    = tcell.ColorBlue
	ColorHeader    = tcell.ColorYellow
	ColorText      = tcell.ColorWhite
	ColorTextMuted = tcell.ColorGray
	ColorAlive     = tcell.ColorGreen
	ColorOverdue   = tcell.ColorYellow
	ColorStale     = tcell.ColorRed
)

// LivenessColor は生存状態に対応する色を返す。
func LivenessColor(l store.Liveness) tcell.Color {
	switch l {
	case store.LivenessAlive:
		return ColorAlive
	case store.LivenessOverdue:
		return ColorOverdue
	case store.LivenessStale:
		return ColorStale
	default:
		return ColorTextMuted
	}
}

// LivenessLabel は生存状態の表示ラベルを返す。
func LivenessLabel(l store.Liveness) string {
	switch l {
	case store.LivenessAlive:
		return "● alive"
	case store.LivenessOverdue:
		return "◐ overdue"
	case store.LivenessStale:
		return "○ stale"
	default:
		return "? " + string(l)
	}
}

// NewTable は一覧画面用のテーブルを生成する。
func NewTable(title string) *tview.Table {
	table := tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)

	table.SetTitle(" " + title + " ").
		SetTitleAlign(tview.AlignCenter).
		SetBorder(true).
		SetBorderColor(ColorBorder)
	return table
}

// SetHeader はテーブルのヘッダー行を設定する。
// sortCol が範囲内ならその列に並び順の記号を付ける。
func SetHeader(table *tview.Table, headers []string, sortCol int, desc bool) {
	for col, header := range headers {
		if col == sortCol {
			if desc {
				header += " ▼"
			} else {
				header += " ▲"
			}
		}
		table.SetCell(0, col, tview.NewTableCell(header).
			SetTextColor(ColorHeader).
			SetSelectable(false).
			SetExpansion(1))
	}
}

// Cell はデータ行のセルを生成する。
func Cell(text string, color tcell.Color) *tview.TableCell {
	return tview.NewTableCell(text).
		SetTextColor(color).
		SetAlign(tview.AlignLeft).
		SetExpansion(1)
}

// StyleLiveness は生存状態を色付き文字列で返す。
func StyleLiveness(l store.Liveness) string {
	color := "gray"
	switch l {
	case store.LivenessAlive:
		color = "green"
	case store.LivenessOverdue:
		color = "yellow"
	case store.LivenessStale:
		color = "red"
	}
	return "[" + color + "]" + LivenessLabel(l) + "[-]"
}
