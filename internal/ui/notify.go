package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// Notifier surfaces the confirmation shown after a save.
type Notifier interface {
	Notify(title, message string)
}

// DialogNotifier shows an information dialog on Window and mirrors it as a
// desktop notification.
type DialogNotifier struct {
	Window fyne.Window
}

func (n DialogNotifier) Notify(title, message string) {
	fyne.Do(func() {
		if n.Window != nil {
			dialog.ShowInformation(title, message, n.Window)
		}
		if a := fyne.CurrentApp(); a != nil {
			a.SendNotification(fyne.NewNotification(title, message))
		}
	})
}
