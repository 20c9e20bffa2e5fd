package app

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"productive-lock/internal/config"
	"productive-lock/internal/currency"
	"productive-lock/internal/feedback"
	"productive-lock/internal/hold"
	"productive-lock/internal/host"
	"productive-lock/internal/logger"
	"productive-lock/internal/navigation"
	"productive-lock/internal/telemetry"
	"productive-lock/internal/views"
)

const (
	AppName    = "Productive Lock"
	AppID      = "com.productivelock.app"
	AppVersion = "1.0.0"

	// phone-sized window on desktop; ignored on mobile
	WindowWidth  = 390
	WindowHeight = 700

	telemetryBuffer = 64
)

type Application struct {
	fyneApp   fyne.App
	window    fyne.Window
	logger    logger.Logger
	config    config.Config
	host      host.Host
	feedback  *feedback.Logged
	bus       *telemetry.Bus
	tracker   *telemetry.Tracker
	navigator *navigation.Stack
	router    *Router
	lifecycle *Lifecycle
}

func NewApplication(cfg config.Config, log logger.Logger) (*Application, error) {
	fyneApp := app.NewWithID(AppID)
	return newApplication(fyneApp, host.NewFyne(), cfg, log)
}

func newApplication(fyneApp fyne.App, h host.Host, cfg config.Config, log logger.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	window.SetMaster()

	log.Info("Application", "starting application", map[string]interface{}{
		"version":        AppVersion,
		"hold_ms":        cfg.HoldDuration.Milliseconds(),
		"celebration_ms": cfg.CelebrationDelay.Milliseconds(),
		"telemetry":      cfg.Telemetry,
	})

	a := &Application{
		fyneApp:   fyneApp,
		window:    window,
		logger:    log,
		config:    cfg,
		host:      h,
		feedback:  feedback.NewLogged(log),
		navigator: navigation.NewStack(log),
		lifecycle: NewLifecycle(log),
	}

	if cfg.Telemetry {
		a.bus = telemetry.NewBus(telemetryBuffer)
		a.tracker = telemetry.NewTracker(a.bus)
		handlers := NewHandlers(log, a.tracker)
		a.bus.Subscribe(telemetry.AllEvents, handlers.TelemetryLogger())
		a.lifecycle.Register("telemetry", a.bus.Shutdown)
	}

	a.registerScreens()
	a.router = NewRouter(window, a.navigator, log)
	a.lifecycle.Register("navigator", a.navigator.Shutdown)

	if err := a.navigator.NavigateTo(navigation.Home); err != nil {
		a.lifecycle.Shutdown()
		return nil, err
	}

	log.Info("Application", "initialization complete", nil)
	return a, nil
}

func (a *Application) registerScreens() {
	a.navigator.Register(navigation.Home, func(nav navigation.Navigator) (navigation.Screen, error) {
		deps := views.HomeDeps{
			Host:             a.host,
			Navigator:        nav,
			Feedback:         a.feedback,
			Logger:           a.logger,
			HoldOptions: []hold.Option{
				hold.WithDuration(a.config.HoldDuration),
				hold.WithCelebrationDelay(a.config.CelebrationDelay),
			},
		}
		if a.tracker != nil {
			deps.Observer = a.tracker
		}
		return views.NewHomeScreen(deps), nil
	})

	a.navigator.Register(navigation.Currency, func(navigation.Navigator) (navigation.Screen, error) {
		return views.NewCurrencyScreen(currency.NewCounter(a.config.CounterStep)), nil
	})
}

func (a *Application) Run() error {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.lifecycle.Shutdown()
		a.window.Close()
	})

	a.lifecycle.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	a.window.Show()
	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.lifecycle.Shutdown()
	return nil
}

// Navigator exposes the screen stack, mainly for headless drivers and tests.
func (a *Application) Navigator() *navigation.Stack {
	return a.navigator
}

func (a *Application) Window() fyne.Window {
	return a.window
}

// HoldStats reports timings of finished holds; zero when telemetry is off.
func (a *Application) HoldStats(outcome telemetry.Outcome) telemetry.Stats {
	if a.tracker == nil {
		return telemetry.Stats{}
	}
	return a.tracker.Stats(outcome)
}

func (a *Application) Shutdown() {
	a.lifecycle.Shutdown()
}
