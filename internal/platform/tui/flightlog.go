package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lander/internal/storage"
)

// Flight log layout constants
const (
	maxFlights = 100 // Max flights to load per view
)

// FlightLogView selects which flights the log shows.
type FlightLogView int

const (
	ViewBestLandings FlightLogView = iota
	ViewRecentFlights
)

func (v FlightLogView) String() string {
	if v == ViewRecentFlights {
		return "Recent flights"
	}
	return "Best landings"
}

// FlightLogKeyMap defines the key bindings for the flight log.
type FlightLogKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	SwitchView key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k FlightLogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.SwitchView, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k FlightLogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.SwitchView},
		{k.Back, k.Quit},
	}
}

// DefaultFlightLogKeyMap returns default key bindings.
func DefaultFlightLogKeyMap() FlightLogKeyMap {
	return FlightLogKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "best/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// FlightLogModel is the Bubble Tea model for the flight log screen.
type FlightLogModel struct {
	gameID    string
	store     *storage.Store
	view      FlightLogView
	flights   []storage.Flight
	stats     *storage.FlightStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      FlightLogKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewFlightLogModel creates a new flight log model showing the best landings.
func NewFlightLogModel(store *storage.Store, gameID string, width, height int) FlightLogModel {
	h := help.New()
	h.ShowAll = false

	m := FlightLogModel{
		gameID: gameID,
		store:  store,
		keys:   DefaultFlightLogKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}

	m.table = m.createTable()
	m.load()

	return m
}

// createTable creates a new table with columns sized to the screen.
func (m *FlightLogModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Pilot", Width: 12},
		{Title: "Outcome", Width: 9},
		{Title: "Score", Width: 6},
		{Title: "Fuel", Width: 7},
		{Title: "Ticks", Width: 6},
		{Title: "Date", Width: 12},
	}

	// Give spare width to the pilot column
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := m.width - 6 - used; spare > 0 {
		columns[1].Width += min(spare, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, stats, help and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches flights for the current view and the aggregate stats.
func (m *FlightLogModel) load() {
	m.flights, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		if m.view == ViewRecentFlights {
			m.flights, m.loadErr = m.store.RecentFlights(m.gameID, maxFlights)
		} else {
			m.flights, m.loadErr = m.store.TopFlights(m.gameID, maxFlights)
		}
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.Stats(m.gameID)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded flights.
func (m *FlightLogModel) updateTableRows() {
	m.table.SetRows(FlightRows(m.flights))

	// Reset cursor to top
	m.table.GotoTop()
}

// FlightRows formats flights as table rows.
func FlightRows(flights []storage.Flight) []table.Row {
	rows := make([]table.Row, len(flights))
	for i, f := range flights {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			f.Pilot,
			f.Outcome,
			fmt.Sprintf("%d", f.Score),
			fmt.Sprintf("%.2f", f.FuelLeft),
			fmt.Sprintf("%d", f.Ticks),
			f.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the flight log model.
func (m FlightLogModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the flight log.
func (m FlightLogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.SwitchView):
			m.view = (m.view + 1) % 2
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the flight log.
func (m FlightLogModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("FLIGHT LOG - "+m.view.String()), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the whole log.
func (m FlightLogModel) statsLine() string {
	return FormatStats(m.stats)
}

// FormatStats renders flight statistics on one line.
func FormatStats(st *storage.FlightStats) string {
	if st == nil || st.Flights == 0 {
		return "No flights yet"
	}
	return fmt.Sprintf("Flights: %d  Landed: %d (%.0f%%)  Crashed: %d  Best: %d",
		st.Flights, st.Landed, st.LandingRate()*100, st.Crashed, st.BestScore)
}

// renderTableContent renders the table or empty message.
func (m FlightLogModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not read the flight log:\n" + m.loadErr.Error())
	case m.store == nil:
		return emptyStyle.Render("Flight log is not available.")
	case len(m.flights) == 0 && m.view == ViewBestLandings:
		return emptyStyle.Render("No landings recorded yet.\nSet it down on the pad to make the list!")
	case len(m.flights) == 0:
		return emptyStyle.Render("No flights recorded yet.")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m FlightLogModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m FlightLogModel) IsQuitting() bool {
	return m.quitting
}

// RunFlightLog runs the flight log screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunFlightLog(store *storage.Store, gameID string, width, height int) (goBack bool, err error) {
	model := NewFlightLogModel(store, gameID, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(FlightLogModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
