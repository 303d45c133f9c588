// Package ui はBroker TUIの画面基盤を提供する。
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Refresher は自動更新の対象となる画面。
type Refresher interface {
	AutoRefresh()
}

// App はTUIアプリケーションを管理する。
type App struct {
	app       *tview.Application
	pages     *tview.Pages
	statusBar *StatusBar
	layout    *tview.Flex

	// UIゴルーチンからのみ参照する
	active Refresher
}

// NewApp は新しいAppを生成する。
func NewApp() *App {
	app := tview.NewApplication()
	pages := tview.NewPages()
	statusBar := NewStatusBar()

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(pages, 0, 1, true).
		AddItem(statusBar.view, 1, 0, false)

	return &App{
		app:       app,
		pages:     pages,
		statusBar: statusBar,
		layout:    layout,
	}
}

// Run はアプリケーションを実行する。
func (a *App) Run() error {
	a.statusBar.SetApp(a.app)
	return a.app.SetRoot(a.layout, true).EnableMouse(false).Run()
}

// Stop はアプリケーションを停止する。
func (a *App) Stop() {
	a.app.Stop()
}

// GetStatusBar はステータスバーを返す。
func (a *App) GetStatusBar() *StatusBar {
	return a.statusBar
}

// AddPage はページを追加する。
func (a *App) AddPage(name string, page tview.Primitive, resize, visible bool) {
	a.pages.AddPage(name, page, resize, visible)
}

// HasPage はページが存在するかどうかを返す。
func (a *App) HasPage(name string) bool {
	return a.pages.HasPage(name)
}

// SwitchToPage は指定されたページに切り替える。
// 自動更新の対象は解除される。
func (a *App) SwitchToPage(name string) {
	a.active = nil
	a.pages.SwitchToPage(name)
}

// ShowScreen はページに切り替え、画面を自動更新の対象にする。
func (a *App) ShowScreen(name string, screen Refresher) {
	a.pages.SwitchToPage(name)
	a.active = screen
}

// ClosePage はページを非表示にして削除する。
func (a *App) ClosePage(name string) {
	a.pages.HidePage(name)
	a.pages.RemovePage(name)
}

// SetFocus はフォーカスを設定する。
func (a *App) SetFocus(p tview.Primitive) {
	a.app.SetFocus(p)
}

// QueueUpdateDraw はUIの更新をキューに追加する。
func (a *App) QueueUpdateDraw(f func()) {
	a.app.QueueUpdateDraw(f)
}

// RefreshActive は表示中の画面を更新する。
// UIゴルーチン外から呼び出す。
func (a *App) RefreshActive() {
	a.app.QueueUpdateDraw(func() {
		if a.active != nil && !a.hasModal() {
			a.active.AutoRefresh()
		}
	})
}

// hasModal はダイアログ類が前面に出ているかどうかを返す。
func (a *App) hasModal() bool {
	for _, name := range modalPages {
		if a.pages.HasPage(name) {
			return true
		}
	}
	return false
}

// SetInputCapture はグローバルなキー入力ハンドラを設定する。
func (a *App) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	a.app.SetInputCapture(capture)
}

// ダイアログとして重ねて表示するページ名
const (
	PageHelp         = "help"
	PageFilterDialog = "filter-dialog"
	PageSearchDialog = "search-dialog"
)

var modalPages = []string{PageHelp, PageFilterDialog, PageSearchDialog}
