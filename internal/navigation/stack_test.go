package navigation

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productive-lock/internal/logger"
)

type fakeScreen struct {
	id        ScreenID
	teardowns int
}

func (f *fakeScreen) ID() ScreenID               { return f.id }
func (f *fakeScreen) Title() string              { return string(f.id) }
func (f *fakeScreen) Content() fyne.CanvasObject { return nil }
func (f *fakeScreen) Teardown()                  { f.teardowns++ }

type registry struct {
	built []*fakeScreen
}

func (r *registry) factory(id ScreenID) Factory {
	return func(Navigator) (Screen, error) {
		s := &fakeScreen{id: id}
		r.built = append(r.built, s)
		return s, nil
	}
}

func newStack(t *testing.T) (*Stack, *registry) {
	t.Helper()
	r := &registry{}
	s := NewStack(logger.Nop())
	s.Register(Home, r.factory(Home))
	s.Register(Currency, r.factory(Currency))
	require.NoError(t, s.NavigateTo(Home))
	return s, r
}

func TestInitialRoute(t *testing.T) {
	s, _ := newStack(t)

	assert.Equal(t, Home, s.Current().ID())
	assert.False(t, s.CanGoBack())
	assert.False(t, s.Back())
}

func TestNavigateAndBack(t *testing.T) {
	s, r := newStack(t)

	require.NoError(t, s.NavigateTo(Currency))
	assert.Equal(t, []ScreenID{Home, Currency}, s.Routes())
	assert.True(t, s.CanGoBack())

	assert.True(t, s.Back())
	assert.Equal(t, []ScreenID{Home}, s.Routes())
	require.Len(t, r.built, 2)
	assert.Equal(t, 1, r.built[1].teardowns, "popped screen is unmounted")
	assert.Zero(t, r.built[0].teardowns)
}

func TestNavigateToTopIsNoop(t *testing.T) {
	s, r := newStack(t)
	require.NoError(t, s.NavigateTo(Currency))
	require.NoError(t, s.NavigateTo(Currency))

	assert.Equal(t, []ScreenID{Home, Currency}, s.Routes())
	assert.Len(t, r.built, 2)
}

func TestNavigateToDeeperScreenPops(t *testing.T) {
	s, r := newStack(t)
	require.NoError(t, s.NavigateTo(Currency))

	require.NoError(t, s.NavigateTo(Home))

	assert.Equal(t, []ScreenID{Home}, s.Routes())
	assert.Equal(t, 1, r.built[1].teardowns)
	assert.Same(t, r.built[0], s.Current())
}

func TestNavigateUnknownScreen(t *testing.T) {
	s, _ := newStack(t)

	err := s.NavigateTo("Settings")
	assert.ErrorIs(t, err, ErrUnknownScreen)
	assert.Equal(t, []ScreenID{Home}, s.Routes())
}

func TestFactoryError(t *testing.T) {
	s := NewStack(nil)
	boom := errors.New("boom")
	s.Register(Home, func(Navigator) (Screen, error) { return nil, boom })

	err := s.NavigateTo(Home)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, s.Current())
}

func TestOnChange(t *testing.T) {
	s, _ := newStack(t)
	var seen []ScreenID
	s.OnChange(func(top Screen) { seen = append(seen, top.ID()) })

	require.NoError(t, s.NavigateTo(Currency))
	s.Back()

	assert.Equal(t, []ScreenID{Currency, Home}, seen)
}

func TestShutdownUnmountsAll(t *testing.T) {
	s, r := newStack(t)
	require.NoError(t, s.NavigateTo(Currency))

	s.Shutdown()
	s.Shutdown()

	for _, screen := range r.built {
		assert.Equal(t, 1, screen.teardowns)
	}
	assert.Empty(t, s.Routes())
	assert.ErrorIs(t, s.NavigateTo(Home), ErrClosed)
	assert.False(t, s.Back())
}

func TestFactoryReceivesNavigator(t *testing.T) {
	s := NewStack(nil)
	var nav Navigator
	s.Register(Home, func(n Navigator) (Screen, error) {
		nav = n
		return &fakeScreen{id: Home}, nil
	})
	s.Register(Currency, func(Navigator) (Screen, error) {
		return &fakeScreen{id: Currency}, nil
	})
	require.NoError(t, s.NavigateTo(Home))

	require.NoError(t, nav.NavigateTo(Currency))
	assert.Equal(t, Currency, s.Current().ID())
}
