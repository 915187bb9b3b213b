package bubbletea_test

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/seri"
	bt "github.com/fwojciec/seri/bubbletea"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// fixture is a two-day schedule with one abstract on each day.
func fixture() seri.Schedule {
	return seri.Schedule{Days: []seri.Day{
		{
			Label: "2024-11-06",
			Sessions: []seri.Session{
				{
					Kind:     seri.KindTalk,
					Title:    "Compilers for fun",
					Speakers: []seri.Speaker{"Grace Hopper"},
					Start:    ptr(seri.NewTimeOfDay(10, 0)),
					Duration: ptr(45 * time.Minute),
					Abstract: ptr("We write a compiler **live**."),
				},
				{
					Kind:     seri.KindMeal,
					Title:    "Lunch",
					Start:    ptr(seri.NewTimeOfDay(12, 0)),
					Duration: ptr(time.Hour),
				},
			},
		},
		{
			Label: "2024-11-07",
			Sessions: []seri.Session{
				{
					Kind:     seri.KindTalk,
					Title:    "Type systems",
					Speakers: []seri.Speaker{"Barbara Liskov"},
					Abstract: ptr("Substitution, revisited."),
				},
			},
		},
	}}
}

func loadFixture(context.Context) (seri.Schedule, error) {
	return fixture(), nil
}

// initModel creates a model, sizes it and delivers the loaded fixture.
func initModel(t *testing.T, load bt.LoadFunc) bt.Model {
	t.Helper()
	return initModelWithSize(t, load, 80, 24)
}

// initModelWithSize creates a loaded model with a custom terminal size.
func initModelWithSize(t *testing.T, load bt.LoadFunc, width, height int) bt.Model {
	t.Helper()
	m := bt.New(load, seri.DefaultTheme())
	m = updateModel(t, m, tea.WindowSizeMsg{Width: width, Height: height})
	s, err := load(context.Background())
	return updateModel(t, m, bt.LoadedMsg{Schedule: s, Err: err})
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
