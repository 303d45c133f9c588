package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MenuItem はメニュー項目を表す。
type MenuItem struct {
	Label       string
	Description string
	Key         rune
	Action      func()
}

// NewMainMenu はメインメニューを生成する。
func NewMainMenu(items []MenuItem, onQuit func()) *tview.List {
	list := tview.NewList().
		ShowSecondaryText(true)

	for _, item := range items {
		list.AddItem(item.Label, item.Description, item.Key, item.Action)
	}

	list.SetTitle(" Broker TUI ").
		SetTitleAlign(tview.AlignCenter).
		SetBorder(true).
		SetBorderColor(tcell.ColorBlue)

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if IsBack(event) {
			if onQuit != nil {
				onQuit()
			}
			return nil
		}
		return event
	})
	return list
}

// MenuActions はメインメニューの各項目に対応する処理。
type MenuActions struct {
	Registrations func()
	Apps          func()
	Sessions      func()
	Statistics    func()
	Exit          func()
}

// DefaultMenuItems はメインメニューの項目を返す。
func DefaultMenuItems(actions MenuActions) []MenuItem {
	return []MenuItem{
		{
			Label:       "TPA Server Registrations",
			Description: "Registered TPA servers with heartbeat liveness",
			Key:         '1',
			Action:      actions.Registrations,
		},
		{
			Label:       "App Catalog",
			Description: "Apps known to the broker",
			Key:         '2',
			Action:      actions.Apps,
		},
		{
			Label:       "User Sessions",
			Description: "Look up live sessions of a user via the broker internal API",
			Key:         '3',
			Action:      actions.Sessions,
		},
		{
			Label:       "Statistics",
			Description: "Registration counts and broker health",
			Key:         '4',
			Action:      actions.Statistics,
		},
		{
			Label:       "Exit",
			Description: "Exit the application",
			Key:         'q',
			Action:      actions.Exit,
		},
	}
}
