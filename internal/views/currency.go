package views

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"productive-lock/internal/currency"
	"productive-lock/internal/navigation"
)

const (
	CurrencyTitle = "Currency"
	CurrencyLabel = "Current Currency:"
)

type CurrencyScreen struct {
	counter  *currency.Counter
	count    *canvas.Text
	decrease *widget.Button
	increase *widget.Button
	content  fyne.CanvasObject
}

func NewCurrencyScreen(counter *currency.Counter) *CurrencyScreen {
	s := &CurrencyScreen{counter: counter}

	title := canvas.NewText("Currency Page", theme.Color(theme.ColorNameForeground))
	title.TextSize = 24
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	label := canvas.NewText(CurrencyLabel, ColorMuted)
	label.TextSize = 18
	label.Alignment = fyne.TextAlignCenter

	s.count = canvas.NewText(strconv.Itoa(counter.Value()), ColorIdle)
	s.count.TextSize = 48
	s.count.TextStyle = fyne.TextStyle{Bold: true}
	s.count.Alignment = fyne.TextAlignCenter

	s.decrease = widget.NewButton("-", func() { counter.Decrease() })
	s.decrease.Importance = widget.HighImportance
	s.increase = widget.NewButton("+", func() { counter.Increase() })
	s.increase.Importance = widget.HighImportance

	counter.OnChange(s.show)

	buttons := container.NewHBox(
		layout.NewSpacer(),
		container.NewGridWrap(fyne.NewSize(60, 60), s.decrease),
		layout.NewSpacer(),
		container.NewGridWrap(fyne.NewSize(60, 60), s.increase),
		layout.NewSpacer(),
	)

	s.content = container.NewCenter(container.NewVBox(
		title,
		layout.NewSpacer(),
		label,
		s.count,
		layout.NewSpacer(),
		buttons,
	))
	return s
}

func (s *CurrencyScreen) show(value int) {
	s.count.Text = strconv.Itoa(value)
	s.count.Refresh()
}

// Displayed is the value currently drawn on screen.
func (s *CurrencyScreen) Displayed() string {
	return s.count.Text
}

func (s *CurrencyScreen) ID() navigation.ScreenID { return navigation.Currency }

func (s *CurrencyScreen) Title() string { return CurrencyTitle }

func (s *CurrencyScreen) Content() fyne.CanvasObject { return s.content }

func (s *CurrencyScreen) Teardown() {}
