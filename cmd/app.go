package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ethanolivertroy/crosswalk/internal/agent"
	"github.com/ethanolivertroy/crosswalk/internal/chat"
	"github.com/ethanolivertroy/crosswalk/internal/grc"
	"github.com/ethanolivertroy/crosswalk/internal/llm"
	"github.com/ethanolivertroy/crosswalk/internal/logging"
	"github.com/ethanolivertroy/crosswalk/internal/model"
	"github.com/ethanolivertroy/crosswalk/internal/tui"
)

// Layout
const (
	AgentPanelWidth   = 55  // fixed width of the assistant sidebar
	CompactBreakpoint = 100 // below this width the sidebar is hidden
	MouseThrottle     = 15 * time.Millisecond
)

// PanelType identifies the focused panel
type PanelType int

const (
	PanelBrowser PanelType = iota
	PanelAgent
)

var (
	primaryColor    = lipgloss.Color("#7D56F4")
	subtleColor     = lipgloss.Color("#626262")
	borderFocused   = lipgloss.Color("#7D56F4")
	borderUnfocused = lipgloss.Color("#3a3a3a")
)

// agentFactory builds the assistant once a result is loaded
type agentFactory func(ctx context.Context, result grc.Result) (chat.Asker, error)

type agentInitMsg struct {
	asker chat.Asker
	ctx   context.Context
}

type agentInitErrorMsg struct {
	err error
}

// AppModel lays out the browser with the assistant sidebar
type AppModel struct {
	browser   tea.Model
	assistant tea.Model

	newAgent agentFactory
	provider string
	llmErr   error // non-nil when no provider is usable

	agentError   string
	focusedPanel PanelType
	compact      bool
	agentVisible bool              // toggled with \
	pendingItem  *model.MasterItem // selection to replay once the assistant exists
	lastMouse    time.Time

	width  int
	height int
}

func newAppModel(load tui.Loader, exportDir string, llmCfg llm.Config, factory agentFactory) AppModel {
	return AppModel{
		browser:      tui.NewModel(load, exportDir),
		newAgent:     factory,
		provider:     llmCfg.Provider,
		llmErr:       llmCfg.Validate(),
		focusedPanel: PanelBrowser,
		agentVisible: true,
		// defaults until the first WindowSizeMsg
		width:  120,
		height: 30,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.browser.Init()
}

func (m AppModel) assistantEnabled() bool {
	return m.llmErr == nil && m.newAgent != nil
}

func (m AppModel) agentActive() bool {
	return m.focusedPanel == PanelAgent && m.assistant != nil && !m.compact && m.agentVisible
}

func (m AppModel) initAgent(result grc.Result) tea.Cmd {
	factory := m.newAgent
	return func() tea.Msg {
		ctx := context.Background()
		a, err := factory(ctx, result)
		if err != nil {
			return agentInitErrorMsg{err: err}
		}
		return agentInitMsg{asker: a, ctx: ctx}
	}
}

func (m AppModel) updateBrowser(msg tea.Msg) (AppModel, tea.Cmd) {
	var cmd tea.Cmd
	m.browser, cmd = m.browser.Update(msg)
	return m, cmd
}

func (m AppModel) updateAssistant(msg tea.Msg) (AppModel, tea.Cmd) {
	if m.assistant == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.assistant, cmd = m.assistant.Update(msg)
	return m, cmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.ResultLoadedMsg:
		// a reload rebuilds the assistant around the new result
		next, cmd := m.updateBrowser(msg)
		if !next.assistantEnabled() {
			return next, cmd
		}
		next.agentError = ""
		return next, tea.Batch(cmd, next.initAgent(msg.Result))

	case agentInitMsg:
		m.assistant = chat.NewModel(msg.ctx, msg.asker)
		cmds := []tea.Cmd{m.assistant.Init()}
		if !m.compact {
			var cmd tea.Cmd
			m, cmd = m.updateAssistant(tea.WindowSizeMsg{Width: AgentPanelWidth, Height: m.height})
			cmds = append(cmds, cmd)
		}
		if m.pendingItem != nil {
			var cmd tea.Cmd
			m, cmd = m.updateAssistant(model.MasterSelectedMsg{Item: m.pendingItem})
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case agentInitErrorMsg:
		m.agentError = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "\\":
			if !m.compact {
				m.agentVisible = !m.agentVisible
				if !m.agentVisible {
					m.focusedPanel = PanelBrowser
				}
				return m, nil
			}
		case "tab":
			if !m.compact && m.agentVisible {
				if m.focusedPanel == PanelBrowser {
					m.focusedPanel = PanelAgent
				} else {
					m.focusedPanel = PanelBrowser
				}
				return m, nil
			}
		}
		if m.agentActive() {
			return m.updateAssistant(msg)
		}
		return m.updateBrowser(msg)

	case tea.MouseMsg:
		now := time.Now()
		if now.Sub(m.lastMouse) < MouseThrottle {
			return m, nil
		}
		m.lastMouse = now

		browserWidth := m.width - AgentPanelWidth
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && !m.compact && m.agentVisible {
			if msg.X < browserWidth {
				m.focusedPanel = PanelBrowser
			} else {
				m.focusedPanel = PanelAgent
			}
		}
		if m.agentActive() {
			msg.X -= browserWidth
			return m.updateAssistant(msg)
		}
		return m.updateBrowser(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.compact = msg.Width < CompactBreakpoint

		if m.compact {
			return m.updateBrowser(msg)
		}
		next, browserCmd := m.updateBrowser(tea.WindowSizeMsg{Width: m.width - AgentPanelWidth, Height: m.height})
		next, agentCmd := next.updateAssistant(tea.WindowSizeMsg{Width: AgentPanelWidth, Height: m.height})
		return next, tea.Batch(browserCmd, agentCmd)

	case tui.OpenAgentMsg:
		if !m.compact {
			m.agentVisible = true
			m.focusedPanel = PanelAgent
		}
		return m, nil

	case model.MasterSelectedMsg:
		// kept so a rebuilt assistant starts with the current context
		m.pendingItem = msg.Item
		return m.updateAssistant(msg)

	case chat.AgentResponseMsg:
		// answers land in the sidebar whichever panel has focus
		return m.updateAssistant(msg)
	}

	// other messages go to the focused panel only, so spinner ticks
	// don't repaint both sides
	if m.agentActive() {
		return m.updateAssistant(msg)
	}
	return m.updateBrowser(msg)
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.compact || !m.agentVisible {
		return m.browser.View()
	}

	browserView := lipgloss.NewStyle().
		Width(m.width - AgentPanelWidth).
		Height(m.height).
		Render(m.browser.View())

	border := borderUnfocused
	if m.focusedPanel == PanelAgent {
		border = borderFocused
	}

	var content string
	switch {
	case m.assistant != nil:
		content = m.assistant.View()
	case m.agentError != "":
		content = m.renderError()
	case !m.assistantEnabled():
		content = m.renderSetupHelp()
	default:
		content = m.renderLoading()
	}

	agentView := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(border).
		Width(AgentPanelWidth - 1).
		Height(m.height).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, browserView, agentView)
}

// providerSetupHelp returns setup instructions for provider
func providerSetupHelp(provider string) string {
	switch provider {
	case llm.ProviderGemini, "":
		return "Set GEMINI_API_KEY\nto enable"
	case llm.ProviderVertex:
		return "Set VERTEX_PROJECT\nand VERTEX_LOCATION"
	case llm.ProviderOllama:
		return "Start Ollama:\n  ollama serve"
	default:
		return "Configure llm.provider\nand credentials"
	}
}

func (m AppModel) renderSetupHelp() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Render("Assistant")
	subtitle := lipgloss.NewStyle().Foreground(subtleColor).Render("Ask about mappings and gaps")
	instruction := lipgloss.NewStyle().Foreground(lipgloss.Color("#888")).Render(providerSetupHelp(m.provider))
	return lipgloss.JoinVertical(lipgloss.Center, "", title, subtitle, "", instruction)
}

func (m AppModel) renderError() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5F56")).
		Render(fmt.Sprintf("Error:\n%s", m.agentError))
}

func (m AppModel) renderLoading() string {
	return lipgloss.NewStyle().Foreground(subtleColor).Render("Loading assistant...")
}

func (c *cli) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the crosswalk with the assistant sidebar (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTUI(cmd.Context())
		},
	}
}

func (c *cli) runTUI(ctx context.Context) error {
	// the program owns the terminal, so nothing may log to stderr
	c.logger = logging.Nop()

	load := func() (grc.Result, error) {
		return c.reload(ctx)
	}
	exportDir := c.cfg.Export.Dir
	factory := func(ctx context.Context, result grc.Result) (chat.Asker, error) {
		a, err := agent.New(ctx, c.cfg.LLMConfig(), result, exportDir)
		if err != nil {
			return nil, err
		}
		return a, nil
	}

	p := tea.NewProgram(
		newAppModel(load, exportDir, c.cfg.LLMConfig(), factory),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
