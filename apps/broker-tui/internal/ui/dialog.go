package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// NewInputDialog は1項目の入力ダイアログを生成する。
func NewInputDialog(title, label, defaultValue string, width int, onSubmit func(value string), onCancel func()) *tview.Form {
	form := tview.NewForm()
	input := tview.NewInputField().
		SetLabel(label).
		SetText(defaultValue).
		SetFieldWidth(width)
	form.AddFormItem(input)

	form.AddButton("OK", func() {
		if onSubmit != nil {
			onSubmit(input.GetText())
		}
	})
	form.AddButton("Cancel", func() {
		if onCancel != nil {
			onCancel()
		}
	})
	form.SetCancelFunc(func() {
		if onCancel != nil {
			onCancel()
		}
	})

	form.SetBorder(true).
		SetTitle(" " + title + " ").
		SetTitleAlign(tview.AlignCenter).
		SetBorderColor(tcell.ColorWhite)
	return form
}

// Centered はプリミティブを画面中央に配置する。
func Centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
