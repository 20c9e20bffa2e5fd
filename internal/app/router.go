package app

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"productive-lock/internal/logger"
	"productive-lock/internal/navigation"
)

// Router shows the top of the navigation stack in the window, under a header
// with the screen title and a back button.
type Router struct {
	window fyne.Window
	nav    *navigation.Stack
	logger logger.Logger

	title *widget.Label
	back  *widget.Button
}

func NewRouter(window fyne.Window, nav *navigation.Stack, log logger.Logger) *Router {
	r := &Router{
		window: window,
		nav:    nav,
		logger: log,
		title:  widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
	}
	r.back = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { nav.Back() })

	nav.OnChange(r.show)
	window.Canvas().SetOnTypedKey(r.handleKey)
	return r
}

func (r *Router) show(screen navigation.Screen) {
	if screen == nil {
		return
	}

	r.title.SetText(screen.Title())
	if r.nav.CanGoBack() {
		r.back.Show()
	} else {
		r.back.Hide()
	}

	header := container.NewBorder(nil, nil, r.back, nil, r.title)
	r.window.SetContent(container.NewBorder(
		container.NewVBox(header, widget.NewSeparator()),
		nil, nil, nil,
		screen.Content(),
	))

	r.logger.Debug("Router", "screen shown", map[string]interface{}{
		"screen": string(screen.ID()),
	})
}

// handleKey maps the Android back key and Escape to stack navigation.
func (r *Router) handleKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case mobile.KeyBack, fyne.KeyEscape:
		r.nav.Back()
	}
}

// Title is the header text currently displayed.
func (r *Router) Title() string {
	return r.title.Text
}

// BackVisible reports whether the header offers a back button.
func (r *Router) BackVisible() bool {
	return r.back.Visible()
}
