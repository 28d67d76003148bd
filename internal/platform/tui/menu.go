package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/registry"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

// MenuItemKind identifies what a menu entry does.
type MenuItemKind int

const (
	MenuItemFly MenuItemKind = iota
	MenuItemFlightLog
	MenuItemQuit
)

// MenuItem represents a selectable menu entry.
type MenuItem struct {
	Kind       MenuItemKind
	Title      string
	Hint       string
	Difficulty config.DifficultyPreset // set for MenuItemFly
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	title     string
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	highScore int
	notice    string // shown under the title, e.g. a configuration error
	quitting  bool
	selected  *MenuItem // Set when user selects an entry
}

// NewMenuModel creates a new menu model with the cursor on the normal preset.
func NewMenuModel(store *storage.Store, gameID string, cfg core.RuntimeConfig) MenuModel {
	items := make([]MenuItem, 0, len(config.Presets)+2)
	cursor := 0
	for _, p := range config.Presets {
		if p == config.DifficultyNormal {
			cursor = len(items)
		}
		items = append(items, MenuItem{
			Kind:       MenuItemFly,
			Title:      "Fly - " + strings.ToUpper(string(p[:1])) + string(p[1:]),
			Hint:       p.Description(),
			Difficulty: p,
		})
	}
	items = append(items,
		MenuItem{Kind: MenuItemFlightLog, Title: "Flight log", Hint: "best landings and recent flights"},
		MenuItem{Kind: MenuItemQuit, Title: "Quit"},
	)

	m := MenuModel{
		title:     registry.Title(gameID),
		items:     items,
		cursor:    cursor,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}

	if store != nil {
		if score, err := store.HighScore(gameID); err == nil {
			m.highScore = score
		}
	}

	return m
}

// WithNotice returns the menu with a message shown under the title.
func (m MenuModel) WithNotice(notice string) MenuModel {
	m.notice = notice
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		selected := m.items[m.cursor]
		if selected.Kind == MenuItemQuit {
			m.quitting = true
			return m, tea.Quit
		}
		m.selected = &selected
		return m, tea.Quit // Exit menu to start the flight or open the log
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  "+spaced(strings.ToUpper(m.title))+"  "), m.width))
	b.WriteString("\n\n")

	subtitle := "Set it down on the blue pad"
	if m.highScore > 0 {
		subtitle = fmt.Sprintf("Best landing: %d", m.highScore)
	}
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(centerText(m.notice, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = menuCursor.Render("> ")
		}

		line := cursor + fmt.Sprintf("%-14s", item.Title)
		if item.Hint != "" {
			line += menuHintStyle.Render(" " + item.Hint)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(menuHintStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// spaced puts a space between letters, e.g. "ABC" -> "A B C".
func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Difficulty     config.DifficultyPreset
	Config         core.RuntimeConfig
	WantsFlightLog bool
	Quit           bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, gameID string, cfg core.RuntimeConfig, notice string) (MenuResult, error) {
	model := NewMenuModel(store, gameID, cfg).WithNotice(notice)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	switch sel := m.Selected(); {
	case sel == nil:
		result.Quit = true
	case sel.Kind == MenuItemFlightLog:
		result.WantsFlightLog = true
	default:
		result.Difficulty = sel.Difficulty
	}

	return result, nil
}
