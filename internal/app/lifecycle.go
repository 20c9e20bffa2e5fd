package app

import (
	"os"
	"sync"

	"productive-lock/internal/logger"
	"productive-lock/internal/shutdown"
)

// Lifecycle tears the application down in reverse construction order: the
// screens (and with them every pending hold timer) go before the telemetry
// bus, so the last hold events still reach the log.
type Lifecycle struct {
	manager *shutdown.Manager
	logger  logger.Logger

	mu         sync.Mutex
	isShutdown bool
}

func NewLifecycle(log logger.Logger) *Lifecycle {
	return &Lifecycle{
		manager: shutdown.NewManager(log),
		logger:  log,
	}
}

func (l *Lifecycle) Register(name string, fn func()) {
	l.manager.Register(shutdown.Func(func() {
		fn()
		l.logger.Debug("Lifecycle", "component stopped", map[string]interface{}{
			"component": name,
		})
	}))
}

// Listen turns SIGINT/SIGTERM into a shutdown followed by onSignal.
func (l *Lifecycle) Listen(onSignal func()) {
	l.manager.Notify(func(sig os.Signal) {
		l.handleSignal(sig, onSignal)
	})
}

func (l *Lifecycle) handleSignal(sig os.Signal, onSignal func()) {
	l.logger.Info("Lifecycle", "shutdown signal received", map[string]interface{}{
		"signal": sig.String(),
	})
	l.Shutdown()
	if onSignal != nil {
		onSignal()
	}
}

func (l *Lifecycle) Shutdown() {
	l.mu.Lock()
	if l.isShutdown {
		l.mu.Unlock()
		return
	}
	l.isShutdown = true
	l.mu.Unlock()

	l.logger.Info("Lifecycle", "shutdown sequence initiated", nil)
	l.manager.Shutdown()
	l.logger.Info("Lifecycle", "shutdown sequence completed", nil)
}

func (l *Lifecycle) IsShutdown() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.isShutdown
}
