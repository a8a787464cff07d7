// Package chat is the conversational panel for the crosswalk assistant.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/ethanolivertroy/crosswalk/internal/model"
)

// ErrNoAssistant is returned when a question is asked with no backend
var ErrNoAssistant = errors.New("assistant is not configured")

// Asker is the assistant behind the panel
type Asker interface {
	Chat(ctx context.Context, query string) (string, error)
	ClearSession()
}

// MessageRole tells who wrote a ChatMessage
type MessageRole int

const (
	RoleUser MessageRole = iota
	RoleAgent
	RoleSystem
)

type ChatMessage struct {
	Role      MessageRole
	Content   string
	Timestamp time.Time
	IsError   bool
}

// AgentResponseMsg carries the answer to the last question
type AgentResponseMsg struct {
	Content string
	Err     error
}

const (
	headerHeight = 3
	footerHeight = 5
	historyLimit = 50
)

const welcome = `Ask me about the crosswalk. For example:
  "How is ML-004 mapped?"
  "Which domains have the weakest NIST coverage?"
  "List critical gaps"
  "Export the coverage matrix as CSV"

Open a record in the browser and I will use it as context.

Commands: /help /context /clear /exit`

const helpText = `Commands:
  /help, /?         Show this help message
  /context          Show the attached record
  /context clear    Stop sending the attached record
  /clear            Clear conversation and start fresh
  /exit, /q         Exit the assistant

Try:
  "why is ML-002 only partially mapped?"
  "show the NIST AC-2 record"
  "what is the risk profile of Backup - Recovery?"
  "summarize framework coverage"

Keys:
  PgUp/PgDn    Scroll the conversation
  Up/Down      Recall earlier questions
  Esc          Clear the input
  Ctrl+C       Quit`

// Model is the chat panel
type Model struct {
	ctx   context.Context
	agent Asker

	textInput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	renderer  *glamour.TermRenderer
	styles    styles

	messages []ChatMessage
	thinking bool
	current  *model.MasterItem // record the browser is showing

	history []string // questions asked, oldest first
	recall  int      // index into history while browsing, len(history) otherwise
	draft   string   // input saved when browsing starts

	width, height int
}

// NewModel creates a chat panel talking to asker
func NewModel(ctx context.Context, asker Asker) Model {
	st := newStyles()

	ti := textinput.New()
	ti.Placeholder = "Ask about controls, coverage, gaps..."
	ti.Prompt = "> "
	ti.PromptStyle = st.prompt
	ti.TextStyle = st.input
	ti.CharLimit = 500
	ti.Width = 74
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = st.agentLabel.UnsetBold()

	m := Model{
		ctx:       ctx,
		agent:     asker,
		textInput: ti,
		spinner:   sp,
		styles:    st,
		width:     80,
		height:    24,
	}
	m.viewport = viewport.New(m.width-4, m.height-headerHeight-footerHeight)
	m.renderer = newRenderer(m.width)
	m.messages = []ChatMessage{system(welcome)}
	m.refresh(false)
	return m
}

// Current returns the Master record used as context, if any
func (m Model) Current() *model.MasterItem { return m.current }

// Messages returns the conversation so far
func (m Model) Messages() []ChatMessage { return m.messages }

func system(text string) ChatMessage {
	return ChatMessage{Role: RoleSystem, Content: text, Timestamp: time.Now()}
}

func systemError(text string) ChatMessage {
	msg := system(text)
	msg.IsError = true
	return msg
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if next, cmd, ok := m.handleKey(msg); ok {
			return next, cmd
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.thinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh(false)
		return m, cmd

	case AgentResponseMsg:
		m.thinking = false
		if msg.Err != nil {
			m.messages = append(m.messages, systemError("Error: "+msg.Err.Error()))
		} else {
			m.messages = append(m.messages, ChatMessage{Role: RoleAgent, Content: msg.Content, Timestamp: time.Now()})
		}
		m.refresh(true)
		return m, nil

	case model.MasterSelectedMsg:
		m.current = msg.Item
		return m, nil

	case tea.MouseMsg:
		if msg.Button != tea.MouseButtonWheelUp && msg.Button != tea.MouseButtonWheelDown {
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// handleKey reports ok=false for keys the text input should see
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "enter":
		next, cmd := m.submit()
		return next, cmd, true
	case "esc":
		m.textInput.Reset()
		m.recall = len(m.history)
		return m, nil, true
	case "up":
		m.browseHistory(-1)
		return m, nil, true
	case "down":
		m.browseHistory(1)
		return m, nil, true
	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.thinking {
		return m, nil
	}
	input := strings.TrimSpace(m.textInput.Value())
	if input == "" {
		return m, nil
	}
	m.textInput.Reset()
	m.remember(input)

	if strings.HasPrefix(input, "/") {
		return m.handleCommand(input)
	}

	m.messages = append(m.messages, ChatMessage{Role: RoleUser, Content: input, Timestamp: time.Now()})
	m.thinking = true
	m.refresh(true)
	return m, tea.Batch(m.spinner.Tick, m.ask(buildEnrichedQuery(m.current, input)))
}

// remember appends input to the history, skipping immediate repeats
func (m *Model) remember(input string) {
	if n := len(m.history); n == 0 || m.history[n-1] != input {
		m.history = append(m.history, input)
		if len(m.history) > historyLimit {
			m.history = m.history[len(m.history)-historyLimit:]
		}
	}
	m.recall = len(m.history)
	m.draft = ""
}

// browseHistory moves through earlier questions; stepping past the newest
// restores what was being typed
func (m *Model) browseHistory(step int) {
	if len(m.history) == 0 {
		return
	}
	if m.recall == len(m.history) && step < 0 {
		m.draft = m.textInput.Value()
	}
	m.recall = min(max(m.recall+step, 0), len(m.history))
	if m.recall == len(m.history) {
		m.textInput.SetValue(m.draft)
	} else {
		m.textInput.SetValue(m.history[m.recall])
	}
	m.textInput.CursorEnd()
}

func (m *Model) resize(width, height int) {
	if width != m.width {
		m.renderer = newRenderer(width)
	}
	m.width, m.height = width, height
	m.viewport.Width = width - 4
	m.viewport.Height = max(3, height-headerHeight-footerHeight)
	m.textInput.Width = width - 6
	m.refresh(false)
}

// refresh re-renders the transcript, optionally scrolling to the end
func (m *Model) refresh(bottom bool) {
	m.viewport.SetContent(m.transcript())
	if bottom {
		m.viewport.GotoBottom()
	}
}

func (m Model) ask(query string) tea.Cmd {
	asker, ctx := m.agent, m.ctx
	return func() tea.Msg {
		if asker == nil {
			return AgentResponseMsg{Err: ErrNoAssistant}
		}
		if ctx == nil {
			ctx = context.Background()
		}
		content, err := asker.Chat(ctx, query)
		return AgentResponseMsg{Content: content, Err: err}
	}
}

// sanitizeForPrompt flattens s onto one line and swaps brackets so record
// text can't close the context block
func sanitizeForPrompt(s string) string {
	s = strings.NewReplacer("\r", " ", "\n", " ", "[", "(", "]", ")").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// buildEnrichedQuery prefixes query with the record the user is viewing
func buildEnrichedQuery(current *model.MasterItem, query string) string {
	if current == nil {
		return query
	}

	best := "none"
	if b := current.Best; b != nil {
		best = fmt.Sprintf("%s %s %s %d%%",
			sanitizeForPrompt(string(b.TargetFramework)),
			sanitizeForPrompt(b.TargetID),
			b.MappingType, b.Confidence)
	}
	return fmt.Sprintf(
		"[Context: User is viewing Master record %s - %s (%s, %s). Best match: %s]\n\n%s",
		sanitizeForPrompt(current.ID),
		sanitizeForPrompt(current.Title()),
		sanitizeForPrompt(current.Domain),
		current.Class,
		best,
		query,
	)
}

func (m Model) handleCommand(input string) (Model, tea.Cmd) {
	fields := strings.Fields(strings.ToLower(input))
	switch fields[0] {
	case "/exit", "/quit", "/q":
		return m, tea.Quit

	case "/clear":
		if m.agent != nil {
			m.agent.ClearSession()
		}
		m.messages = []ChatMessage{system("Conversation cleared. Starting fresh.")}

	case "/help", "/?":
		m.messages = append(m.messages, system(helpText))

	case "/context":
		m.messages = append(m.messages, m.contextCommand(fields[1:]))

	default:
		m.messages = append(m.messages, systemError("Unknown command: "+input+". Type /help for available commands."))
	}
	m.refresh(true)
	return m, nil
}

func (m *Model) contextCommand(args []string) ChatMessage {
	if len(args) > 0 {
		if args[0] != "clear" {
			return systemError("Usage: /context [clear]")
		}
		m.current = nil
		return system("Context cleared. Questions are sent without a record.")
	}
	if m.current == nil {
		return system("No record attached. Open one in the browser.")
	}
	return system(fmt.Sprintf("Attached: %s %s (%s, %s)",
		m.current.ID, m.current.Title(), m.current.Domain, m.current.Class))
}
