// Package terminal is the interactive terminal front end of the countries browser.
package terminal

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joefazee/atlas/app/countries"
	"github.com/joefazee/atlas/models"
	"golang.org/x/text/language"
)

const (
	title       = "Countries of the World"
	placeholder = "search for a country"
	cardsPerRow = 2
	cardWidth   = 36
)

// loadedMsg carries the loader state once it leaves loading
type loadedMsg struct {
	snap countries.Snapshot
}

// Model browses the collection of a Loader. The search query is applied on
// every keystroke; left and right arrows change the page.
type Model struct {
	loader   *countries.Loader
	pageSize int
	locale   language.Tag

	input   textinput.Model
	spinner spinner.Model

	snap  countries.Snapshot
	ctrl  *countries.Controller
	width int
}

// New creates a Model over loader. The loader should already be loading.
func New(loader *countries.Loader, cfg *countries.Config) Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = cfg.MaxQueryRunes
	ti.Width = cardWidth*cardsPerRow - 4

	locale, err := language.Parse(cfg.Locale)
	if err != nil {
		locale = language.AmericanEnglish
	}

	m := Model{
		loader:   loader,
		pageSize: cfg.PageSize,
		locale:   locale,
		input:    ti,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:    cardWidth * cardsPerRow,
	}
	m.apply(loader.Snapshot())
	return m
}

// apply switches to snap, starting a new search session when it is ready.
func (m *Model) apply(snap countries.Snapshot) {
	m.snap = snap
	m.ctrl = nil
	if snap.State == countries.StateReady {
		m.ctrl = countries.NewController(snap.Records, m.pageSize)
		m.ctrl.SetQuery(m.input.Value())
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		waitForLoad(m.loader),
	)
}

func waitForLoad(loader *countries.Loader) tea.Cmd {
	return func() tea.Msg {
		snap, _ := loader.Wait(context.Background())
		return loadedMsg{snap: snap}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case loadedMsg:
		m.apply(msg.snap)
		return m, nil

	case spinner.TickMsg:
		if m.snap.State != countries.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	}

	switch m.snap.State {
	case countries.StateError:
		switch msg.String() {
		case "r", "ctrl+r", "enter":
			return m.retry()
		}
		return m, nil
	case countries.StateLoading:
		return m, nil
	}

	switch msg.String() {
	case "left", "pgup":
		_ = m.ctrl.GoToPage(countries.DirectionPrevious)
		return m, nil
	case "right", "pgdown":
		_ = m.ctrl.GoToPage(countries.DirectionNext)
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.ctrl.SetQuery(m.input.Value())
	}
	return m, cmd
}

func (m Model) retry() (tea.Model, tea.Cmd) {
	m.loader.Reload(context.Background())
	m.apply(m.loader.Snapshot())
	return m, tea.Batch(m.spinner.Tick, waitForLoad(m.loader))
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")

	switch m.snap.State {
	case countries.StateLoading:
		b.WriteString(m.spinner.View() + " Loading Countries ...\n")
	case countries.StateError:
		b.WriteString(ErrorStyle.Render("Something went wrong!"))
		b.WriteString("\n")
		if m.snap.Err != nil {
			b.WriteString(m.snap.Err.Error() + "\n")
		}
		b.WriteString("\n" + HintStyle.Render("r: Try Again | esc: quit"))
	default:
		b.WriteString(m.viewReady())
	}
	return b.String()
}

func (m Model) viewReady() string {
	var b strings.Builder
	view := m.ctrl.View()

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case view.CollectionEmpty:
		b.WriteString(DimStyle.Render("No countries available.") + "\n")
	case view.NoResults:
		b.WriteString("No countries found!\n")
	default:
		b.WriteString(m.viewGrid(view.PageItems))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Page %d of %d", view.CurrentPage, view.TotalPages)
	b.WriteString("\n" + HintStyle.Render("←: Previous | →: Next | esc: quit"))
	return b.String()
}

func (m Model) viewGrid(items []models.Country) string {
	perRow := m.width / (cardWidth + 2)
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	var row []string
	for i := range items {
		row = append(row, m.viewCard(&items[i]))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func (m Model) viewCard(c *models.Country) string {
	card := countries.ToCountryResponse(c, m.locale)
	lines := []string{
		NameStyle.Render(card.Name),
		"Population: " + card.PopulationDisplay,
		DimStyle.Render(card.Region),
	}
	if card.DialingCode != "" {
		lines = append(lines, DimStyle.Render("Dialing code: "+card.DialingCode))
	}
	return CardStyle.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

// Run shows the browser until the user quits
func Run(loader *countries.Loader, cfg *countries.Config) error {
	p := tea.NewProgram(New(loader, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal program error: %w", err)
	}
	return nil
}
