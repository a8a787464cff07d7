package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ethanolivertroy/crosswalk/internal/model"
)

// panel colors; the browser's default theme
var (
	accent  = lipgloss.Color("#7D56F4")
	success = lipgloss.Color("#04B575")
	muted   = lipgloss.Color("#626262")
	failure = lipgloss.Color("#FF5F56")
	white   = lipgloss.Color("#FFFFFF")
)

type styles struct {
	title, divider, footer    lipgloss.Style
	userLabel, agentLabel     lipgloss.Style
	userText, agentText       lipgloss.Style
	systemText, errorText     lipgloss.Style
	prompt, input             lipgloss.Style
	badges                    map[model.Classification]lipgloss.Style
	badgeFallback, badgeTitle lipgloss.Style
}

func newStyles() styles {
	badge := func(fg, bg string) lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.Color(fg)).Background(lipgloss.Color(bg))
	}
	return styles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(white).Background(accent).Padding(0, 2),
		divider:    lipgloss.NewStyle().Foreground(muted),
		footer:     lipgloss.NewStyle().Foreground(muted),
		userLabel:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		agentLabel: lipgloss.NewStyle().Bold(true).Foreground(success),
		userText: lipgloss.NewStyle().Foreground(white).
			Background(lipgloss.Color("#5A3FBA")).Padding(0, 1).MarginLeft(2),
		agentText: lipgloss.NewStyle().Foreground(white).
			BorderLeft(true).BorderStyle(lipgloss.NormalBorder()).BorderForeground(success).
			PaddingLeft(1).MarginLeft(2),
		systemText: lipgloss.NewStyle().Foreground(muted).Italic(true).MarginLeft(2),
		errorText:  lipgloss.NewStyle().Foreground(failure).Italic(true).MarginLeft(2),
		prompt:     lipgloss.NewStyle().Foreground(accent).Bold(true),
		input:      lipgloss.NewStyle().Foreground(white),
		badges: map[model.Classification]lipgloss.Style{
			model.ClassFullyMapped:     badge("#0B2E1B", "#86EFAC"),
			model.ClassPartiallyMapped: badge("#3B2A05", "#FCD34D"),
			model.ClassGap:             badge("#3F0D0D", "#FCA5A5"),
		},
		badgeFallback: badge("#86EFAC", "#1E3A2F"),
		badgeTitle:    lipgloss.NewStyle().Foreground(muted),
	}
}

// contextBadge shows the attached record colored by its classification
func (s styles) contextBadge(item *model.MasterItem, width int) string {
	st, ok := s.badges[item.Class]
	if !ok {
		st = s.badgeFallback
	}
	title := ansi.Truncate(item.Title(), max(0, width-len(item.ID)-8), "…")
	return st.Render(item.ID) + " " + s.badgeTitle.Render(title)
}

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dracula"),
		glamour.WithWordWrap(max(30, width-10)),
	)
	if err != nil {
		return nil
	}
	return r
}

func (m Model) renderMessage(msg ChatMessage) string {
	wrap := max(10, m.width-8)
	switch msg.Role {
	case RoleUser:
		return m.styles.userLabel.Render("You:") + "\n" +
			m.styles.userText.Render(ansi.Wrap(msg.Content, wrap, ""))
	case RoleAgent:
		return m.styles.agentLabel.Render("Assistant:") + "\n" + m.renderMarkdown(msg.Content)
	}
	if msg.IsError {
		return m.styles.errorText.Render(ansi.Wrap(msg.Content, wrap, ""))
	}
	return m.styles.systemText.Render(msg.Content)
}

// renderMarkdown uses the cached glamour renderer and falls back to
// wrapped plain text
func (m Model) renderMarkdown(content string) string {
	plain := func() string {
		return m.styles.agentText.Render(ansi.Wrap(content, max(30, m.width-10), ""))
	}
	if m.renderer == nil {
		return plain()
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return plain()
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for i := range lines {
		lines[i] = "  " + lines[i]
	}
	return strings.Join(lines, "\n")
}

// transcript renders the whole conversation for the viewport
func (m Model) transcript() string {
	parts := make([]string, 0, len(m.messages)+1)
	for _, msg := range m.messages {
		parts = append(parts, m.renderMessage(msg))
	}
	if m.thinking {
		parts = append(parts, m.styles.systemText.Render(m.spinner.View()+" Looking at the crosswalk..."))
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// View renders the panel
func (m Model) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.styles.title.Render("Crosswalk Assistant"))
	b.WriteString("\n")
	if m.current != nil {
		b.WriteString(m.styles.contextBadge(m.current, m.width))
	}
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.styles.divider.Render(strings.Repeat("─", max(0, m.width-2))))
	b.WriteString("\n  ")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")

	footer := "  PgUp/Dn scroll  ↑/↓ history  /help"
	if m.thinking {
		footer = "  " + m.spinner.View() + " Thinking..."
	}
	b.WriteString(m.styles.footer.Render(footer))
	return b.String()
}
