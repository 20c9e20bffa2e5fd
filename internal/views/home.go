package views

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"

	"productive-lock/internal/feedback"
	"productive-lock/internal/hold"
	"productive-lock/internal/host"
	"productive-lock/internal/logger"
	"productive-lock/internal/navigation"
)

const (
	HomeTitle       = "Home"
	HomeHeadline    = "Welcome to Productive Lock"
	HomeButtonTitle = "🚀 Go to Currency Page"
)

// HomeDeps are the collaborators of the Home screen.
type HomeDeps struct {
	Host      host.Host
	Navigator navigation.Navigator
	Feedback  feedback.Service
	Observer  hold.Observer
	Logger    logger.Logger

	// HoldOptions tune the control (timing, etc.); unset values keep the
	// hold package defaults.
	HoldOptions []hold.Option
}

type HomeScreen struct {
	button  *HoldButton
	content fyne.CanvasObject
}

func NewHomeScreen(deps HomeDeps) *HomeScreen {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	opts := []hold.Option{
		hold.WithName("home"),
		hold.WithLogger(log),
		hold.WithFeedback(deps.Feedback),
		hold.WithOnActivate(func() {
			if err := deps.Navigator.NavigateTo(navigation.Currency); err != nil {
				log.Error("HomeScreen", err, map[string]interface{}{
					"target": string(navigation.Currency),
				})
			}
		}),
	}
	if deps.Observer != nil {
		opts = append(opts, hold.WithObserver(deps.Observer))
	}
	opts = append(opts, deps.HoldOptions...)

	button := NewHoldButton(HomeButtonTitle, hold.New(deps.Host, opts...))

	headline := canvas.NewText(HomeHeadline, theme.Color(theme.ColorNameForeground))
	headline.TextSize = 30
	headline.TextStyle = fyne.TextStyle{Bold: true}
	headline.Alignment = fyne.TextAlignCenter

	content := container.NewCenter(container.NewVBox(
		headline,
		container.NewCenter(button),
	))

	return &HomeScreen{button: button, content: content}
}

func (h *HomeScreen) ID() navigation.ScreenID { return navigation.Home }

func (h *HomeScreen) Title() string { return HomeTitle }

func (h *HomeScreen) Content() fyne.CanvasObject { return h.content }

func (h *HomeScreen) Button() *HoldButton { return h.button }

func (h *HomeScreen) Teardown() {
	h.button.Close()
}
