// Package navigation implements a stack navigator. Screens are built when
// pushed and torn down when popped, so anything a screen owns (timers,
// animations) is released as soon as it leaves the stack.
package navigation

import (
	"errors"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"

	"productive-lock/internal/logger"
)

type ScreenID string

const (
	Home     ScreenID = "Home"
	Currency ScreenID = "Currency"
)

var (
	ErrUnknownScreen = errors.New("unknown screen")
	ErrClosed        = errors.New("navigator closed")
)

type Screen interface {
	ID() ScreenID
	Title() string
	Content() fyne.CanvasObject
	// Teardown releases everything the screen owns. Called once, on unmount.
	Teardown()
}

// Navigator is what screens use to move around.
type Navigator interface {
	NavigateTo(id ScreenID) error
	Back() bool
}

type Factory func(nav Navigator) (Screen, error)

type Stack struct {
	mu        sync.Mutex
	factories map[ScreenID]Factory
	screens   []Screen
	listeners []func(Screen)
	closed    bool
	log       logger.Logger
}

func NewStack(log logger.Logger) *Stack {
	if log == nil {
		log = logger.Nop()
	}
	return &Stack{
		factories: make(map[ScreenID]Factory),
		log:       log,
	}
}

func (s *Stack) Register(id ScreenID, factory Factory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.factories[id] = factory
}

// OnChange registers fn to receive the new top screen after every change.
func (s *Stack) OnChange(fn func(Screen)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// NavigateTo shows id. If id is already on top nothing happens; if it is
// deeper in the stack, the screens above it are popped; otherwise a new
// screen is built and pushed.
func (s *Stack) NavigateTo(id ScreenID) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}

	for i := len(s.screens) - 1; i >= 0; i-- {
		if s.screens[i].ID() != id {
			continue
		}
		if i == len(s.screens)-1 {
			s.mu.Unlock()
			return nil
		}
		popped := s.popToLocked(i + 1)
		top, listeners := s.topLocked(), s.listenersLocked()
		s.mu.Unlock()

		teardown(popped)
		s.log.Info("Navigator", "popped to screen", map[string]interface{}{
			"screen": string(id),
			"popped": len(popped),
		})
		notify(listeners, top)
		return nil
	}

	factory, ok := s.factories[id]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("navigate to %q: %w", id, ErrUnknownScreen)
	}

	screen, err := factory(s)
	if err != nil {
		return fmt.Errorf("build screen %q: %w", id, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		screen.Teardown()
		return ErrClosed
	}
	s.screens = append(s.screens, screen)
	depth, listeners := len(s.screens), s.listenersLocked()
	s.mu.Unlock()

	s.log.Info("Navigator", "pushed screen", map[string]interface{}{
		"screen": string(id),
		"depth":  depth,
	})
	notify(listeners, screen)
	return nil
}

// Back pops the top screen. The root screen is never popped.
func (s *Stack) Back() bool {
	s.mu.Lock()
	if s.closed || len(s.screens) <= 1 {
		s.mu.Unlock()
		return false
	}
	popped := s.popToLocked(len(s.screens) - 1)
	top, listeners := s.topLocked(), s.listenersLocked()
	s.mu.Unlock()

	teardown(popped)
	s.log.Info("Navigator", "back", map[string]interface{}{
		"screen": string(top.ID()),
	})
	notify(listeners, top)
	return true
}

func (s *Stack) Current() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topLocked()
}

func (s *Stack) CanGoBack() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.screens) > 1
}

// Routes lists screen ids from root to top.
func (s *Stack) Routes() []ScreenID {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]ScreenID, len(s.screens))
	for i, screen := range s.screens {
		ids[i] = screen.ID()
	}
	return ids
}

// Shutdown tears down every mounted screen, top first. Later navigation fails
// with ErrClosed.
func (s *Stack) Shutdown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	popped := s.popToLocked(0)
	s.mu.Unlock()

	teardown(popped)
	s.log.Debug("Navigator", "all screens unmounted", map[string]interface{}{
		"count": len(popped),
	})
}

// popToLocked removes screens from index n upwards, returning them top first.
func (s *Stack) popToLocked(n int) []Screen {
	popped := make([]Screen, 0, len(s.screens)-n)
	for i := len(s.screens) - 1; i >= n; i-- {
		popped = append(popped, s.screens[i])
	}
	s.screens = s.screens[:n]
	return popped
}

func (s *Stack) topLocked() Screen {
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[len(s.screens)-1]
}

func (s *Stack) listenersLocked() []func(Screen) {
	return append([]func(Screen){}, s.listeners...)
}

func teardown(screens []Screen) {
	for _, screen := range screens {
		screen.Teardown()
	}
}

func notify(listeners []func(Screen), top Screen) {
	for _, fn := range listeners {
		fn(top)
	}
}
