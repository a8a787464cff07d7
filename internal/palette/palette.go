// Package palette is a Ctrl+P command palette for bubbletea programs. The
// host owns the command list and reacts to the SelectedAction message.
package palette

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"
)

// maxVisible is how many commands fit in the window before it scrolls
const maxVisible = 10

// Colors drives every palette style
type Colors struct {
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Subtle     lipgloss.Color
	Foreground lipgloss.Color
}

// DefaultColors matches the default TUI theme
func DefaultColors() Colors {
	return Colors{
		Primary:    lipgloss.Color("#7D56F4"),
		Accent:     lipgloss.Color("#FF00FF"),
		Subtle:     lipgloss.Color("#626262"),
		Foreground: lipgloss.Color("#FFFFFF"),
	}
}

type styles struct {
	header   lipgloss.Style
	frame    lipgloss.Style
	selected lipgloss.Style
	normal   lipgloss.Style
	shortcut lipgloss.Style
	footer   lipgloss.Style
	prompt   lipgloss.Style
}

func newStyles(c Colors) styles {
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(c.Foreground).Background(c.Primary),
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c.Primary),
		selected: lipgloss.NewStyle().Background(c.Accent).Foreground(c.Foreground).Bold(true),
		normal:   lipgloss.NewStyle().Foreground(c.Foreground),
		shortcut: lipgloss.NewStyle().Foreground(c.Subtle),
		footer:   lipgloss.NewStyle().Foreground(c.Subtle),
		prompt:   lipgloss.NewStyle().Foreground(c.Primary).Bold(true),
	}
}

// Command is one palette entry
type Command struct {
	Name   string
	Key    string // shortcut shown on the right
	Action string // sent back as SelectedAction
}

// SelectedAction is emitted when a command is chosen
type SelectedAction string

// Model is the command palette
type Model struct {
	commands []Command
	filtered []Command
	input    textinput.Model
	styles   styles
	selected int
	offset   int
	Active   bool
	width    int
}

// New creates a closed palette over commands
func New(commands []Command) Model {
	ti := textinput.New()
	ti.Placeholder = "Type to filter"
	ti.Prompt = "> "
	ti.CharLimit = 50

	m := Model{
		commands: commands,
		filtered: commands,
		input:    ti,
		width:    60,
	}
	m.SetColors(DefaultColors())
	return m
}

// SetColors restyles the palette, e.g. after a theme change
func (m *Model) SetColors(c Colors) {
	m.styles = newStyles(c)
	m.input.PromptStyle = m.styles.prompt
	m.input.TextStyle = m.styles.normal
}

// SetWidth sets the outer width of the palette box
func (m *Model) SetWidth(width int) {
	if width < 24 {
		width = 24
	}
	m.width = width
	m.input.Width = width - 6
}

func (m *Model) Open() {
	m.Active = true
	m.input.Reset()
	m.input.Focus()
	m.filtered = m.commands
	m.selected = 0
	m.offset = 0
}

func (m *Model) Close() {
	m.Active = false
	m.input.Blur()
}

// Filtered returns the commands matching the current query
func (m Model) Filtered() []Command {
	return m.filtered
}

// Update handles keys while the palette is open
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.Active {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "ctrl+c", "ctrl+p":
			m.Close()
			return m, nil
		case "enter":
			if m.selected < len(m.filtered) {
				action := m.filtered[m.selected].Action
				m.Close()
				return m, func() tea.Msg { return SelectedAction(action) }
			}
			return m, nil
		case "up", "ctrl+k":
			m.move(-1)
			return m, nil
		case "down", "ctrl+j":
			m.move(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filter(m.input.Value())
	return m, cmd
}

// move wraps the selection and keeps it inside the visible window
func (m *Model) move(delta int) {
	n := len(m.filtered)
	if n == 0 {
		return
	}
	m.selected = (m.selected + delta + n) % n
	switch {
	case m.selected < m.offset:
		m.offset = m.selected
	case m.selected >= m.offset+maxVisible:
		m.offset = m.selected - maxVisible + 1
	}
}

// filter ranks commands by fuzzy score against name and shortcut
func (m *Model) filter(query string) {
	query = strings.TrimSpace(query)
	m.selected, m.offset = 0, 0
	if query == "" {
		m.filtered = m.commands
		return
	}

	targets := make([]string, len(m.commands))
	for i, c := range m.commands {
		targets[i] = c.Name + " " + c.Key
	}
	matches := fuzzy.Find(query, targets)
	m.filtered = make([]Command, 0, len(matches))
	for _, match := range matches {
		m.filtered = append(m.filtered, m.commands[match.Index])
	}
}

// View renders the palette box, or nothing when closed
func (m Model) View() string {
	if !m.Active {
		return ""
	}

	inner := m.width - 2
	title := " Commands "
	stripe := strings.Repeat("/", max(0, (inner-len(title))/2))

	lines := []string{
		m.styles.header.Width(inner).Render(stripe + title + stripe),
		" " + m.input.View(),
		"",
	}

	if len(m.filtered) == 0 {
		lines = append(lines, m.styles.footer.Render("  No matching commands"))
	}
	end := min(m.offset+maxVisible, len(m.filtered))
	for i := m.offset; i < end; i++ {
		c := m.filtered[i]
		nameWidth := inner - 12
		name := fmt.Sprintf("%-*s", nameWidth, ansi.Truncate(c.Name, nameWidth, "…"))
		if i == m.selected {
			lines = append(lines, m.styles.selected.Width(inner).Render(name+c.Key))
			continue
		}
		lines = append(lines, m.styles.normal.Render(name)+m.styles.shortcut.Render(c.Key))
	}
	if len(m.filtered) > maxVisible {
		lines = append(lines, m.styles.footer.Render(fmt.Sprintf("  %d/%d", m.selected+1, len(m.filtered))))
	}

	lines = append(lines, "", m.styles.footer.Render("↑↓ choose • enter confirm • esc cancel"))
	return m.styles.frame.Width(m.width).Render(strings.Join(lines, "\n"))
}

// Overlay draws the palette over background, horizontally centered and a
// third of the way down. Background styling outside the box is kept.
func (m Model) Overlay(background string, termWidth, termHeight int) string {
	if !m.Active {
		return background
	}

	box := m.View()
	boxWidth := lipgloss.Width(box)
	boxLines := strings.Split(box, "\n")
	x := max(0, (termWidth-boxWidth)/2)
	y := max(0, (termHeight-len(boxLines))/3)

	bg := strings.Split(background, "\n")
	for len(bg) < y+len(boxLines) {
		bg = append(bg, "")
	}

	for i, line := range boxLines {
		row := bg[y+i]
		if w := ansi.StringWidth(row); w < x+boxWidth {
			row += strings.Repeat(" ", x+boxWidth-w)
		}
		left := ansi.Truncate(row, x, "")
		right := ansi.TruncateLeft(row, x+boxWidth, "")
		bg[y+i] = left + line + right
	}
	return strings.Join(bg, "\n")
}
