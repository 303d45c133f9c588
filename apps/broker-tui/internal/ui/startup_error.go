package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// NewStartupErrorModal はValkey接続失敗時のモーダルを生成する。
func NewStartupErrorModal(addr, errorMessage string, onRetry, onExit func()) *tview.Modal {
	text := fmt.Sprintf("Failed to connect to Valkey at %s:\n\n%s\n\nPlease check:\n- REDIS_HOST / REDIS_PORT point at the broker's Valkey\n- REDIS_PASS is set correctly", addr, errorMessage)

	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"Retry", "Exit"}).
		SetDoneFunc(func(_ int, buttonLabel string) {
			if buttonLabel == "Retry" {
				if onRetry != nil {
					onRetry()
				}
				return
			}
			if onExit != nil {
				onExit()
			}
		})

	modal.SetTitle(" Connection Error ").
		SetBorder(true).
		SetBorderColor(tcell.ColorRed)
	modal.SetBackgroundColor(tcell.ColorBlack)
	return modal
}
