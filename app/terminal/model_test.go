package terminal

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joefazee/atlas/app/countries"
	"github.com/joefazee/atlas/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func records(n int) []models.Country {
	out := []models.Country{
		{CommonName: "Germany", Region: "Europe", Population: 83240525, Code: "DEU", AlphaTwo: "DE"},
	}
	for i := 1; i < n; i++ {
		out = append(out, models.Country{
			CommonName: fmt.Sprintf("Island %02d", i),
			Region:     "Oceania",
			Population: int64(i * 10),
			Code:       fmt.Sprintf("I%02d", i),
		})
	}
	return out
}

func settledLoader(t *testing.T, result []models.Country, err error) (*countries.Loader, *countries.MockRepository) {
	t.Helper()
	repo := new(countries.MockRepository)
	repo.On("FetchAll", mock.Anything).Return(result, err).Once()

	loader := countries.NewLoader(repo, countries.GetDefaultConfig(), nil, nil)
	loader.Reload(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, waitErr := loader.Wait(ctx)
	require.NoError(t, waitErr)
	return loader, repo
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func typeText(t *testing.T, m Model, text string) Model {
	for _, r := range text {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_Loading(t *testing.T) {
	loader := countries.NewLoader(new(countries.MockRepository), countries.GetDefaultConfig(), nil, nil)
	m := New(loader, countries.GetDefaultConfig())

	assert.Contains(t, m.View(), "Countries of the World")
	assert.Contains(t, m.View(), "Loading Countries ...")

	m = typeText(t, m, "abc")
	assert.Contains(t, m.View(), "Loading Countries ...")
}

func TestModel_LoadedMessage(t *testing.T) {
	loader, _ := settledLoader(t, records(45), nil)
	empty := countries.NewLoader(new(countries.MockRepository), countries.GetDefaultConfig(), nil, nil)

	m := New(empty, countries.GetDefaultConfig())
	m = update(t, m, loadedMsg{snap: loader.Snapshot()})

	view := m.View()
	assert.Contains(t, view, "Germany")
	assert.Contains(t, view, "Population: 83,240,525")
	assert.Contains(t, view, "Page 1 of 3")
}

func TestModel_SearchAndPaginate(t *testing.T) {
	loader, _ := settledLoader(t, records(45), nil)
	m := New(loader, countries.GetDefaultConfig())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Contains(t, m.View(), "Page 2 of 3")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Contains(t, m.View(), "Page 3 of 3")

	m = typeText(t, m, "isl")
	assert.Contains(t, m.View(), "Page 1 of 3")
	assert.NotContains(t, m.View(), "Germany")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Contains(t, m.View(), "Page 1 of 3")

	m = typeText(t, m, "and 4")
	assert.Contains(t, m.View(), "Island 40")
	assert.Contains(t, m.View(), "Page 1 of 1")
}

func TestModel_NoResults(t *testing.T) {
	loader, _ := settledLoader(t, records(5), nil)
	m := New(loader, countries.GetDefaultConfig())

	m = typeText(t, m, "zzz")
	assert.Contains(t, m.View(), "No countries found!")
	assert.Contains(t, m.View(), "Page 1 of 0")
}

func TestModel_ErrorAndRetry(t *testing.T) {
	loader, repo := settledLoader(t, nil, errors.New("Failed to fetch data. Status: 500 Internal Server Error"))
	m := New(loader, countries.GetDefaultConfig())

	view := m.View()
	assert.Contains(t, view, "Something went wrong!")
	assert.Contains(t, view, "Failed to fetch data. Status: 500 Internal Server Error")
	assert.Contains(t, view, "Try Again")

	release := make(chan time.Time)
	repo.On("FetchAll", mock.Anything).Return(records(3), nil).Once().WaitUntil(release)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Loading Countries ...")

	close(release)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	snap, err := loader.Wait(ctx)
	require.NoError(t, err)

	m = update(t, m, loadedMsg{snap: snap})
	assert.Contains(t, m.View(), "Page 1 of 1")
	repo.AssertNumberOfCalls(t, "FetchAll", 2)
}

func TestModel_Quit(t *testing.T) {
	loader, _ := settledLoader(t, records(3), nil)
	m := New(loader, countries.GetDefaultConfig())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_WaitForLoad(t *testing.T) {
	loader, _ := settledLoader(t, records(3), nil)

	msg := waitForLoad(loader)()
	loaded, ok := msg.(loadedMsg)
	require.True(t, ok)
	assert.Equal(t, countries.StateReady, loaded.snap.State)
}
