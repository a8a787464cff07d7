package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	adkmodel "google.golang.org/adk/model"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/ethanolivertroy/crosswalk/internal/grc"
	"github.com/ethanolivertroy/crosswalk/internal/llm"
)

const appName = "crosswalk"

const (
	// SystemInstruction for the crosswalk assistant
	SystemInstruction = `You are a GRC analyst assistant for a security-control crosswalk.
A Master List of internal controls has been correlated against Tripwire Core, Alert,
NIST 800-53, CIS, PCI-DSS, HIPAA and SOX records. Every answer must come from your tools.

CRITICAL BEHAVIOR - Be action-oriented:
- When a user mentions a control id, domain or framework, call a tool immediately
- Do NOT ask clarifying questions if you can make a reasonable assumption
- If a lookup returns nothing, say so briefly and suggest a related query

Examples:
- "how is ML-004 mapped?" → correlate_control(master_id="ML-004")
- "what does NIST AC-2 say?" → get_record(framework="nist", id="AC-2")
- "where are we weakest?" → framework_summary() then get_coverage()
- "critical gaps?" → list_gaps(min_severity="critical")
- "how risky is Backup - Recovery?" → domain_risk_profile(domain="Backup - Recovery")
- "save the matrix as csv" → export_report(kind="matrix", format="csv")

Your tools:
- correlate_control: correlations and best match for one Master record
- get_record: any record by framework and id
- get_coverage: domain × framework coverage cells, optionally filtered
- list_gaps: Master records with no correlation, most severe first
- framework_summary: classification counts and per-framework coverage
- domain_risk_profile: coverage, gaps and a risk score for one domain
- export_report: write correlations or the coverage matrix to a file

When presenting results:
- Lead with the data, keep explanations brief
- Always state mapping type and confidence for a correlation
- Quote gap notes verbatim; they explain why a mapping is not Full
- Use markdown tables for coverage

Only redirect to compliance topics if the query is completely unrelated.`
)

// sessionRef names one ADK session
type sessionRef struct {
	userID, id string
}

// Agent wraps the ADK agent with tools bound to one correlation result
type Agent struct {
	agent    agent.Agent
	runner   *runner.Runner
	sessions session.Service

	mu   sync.Mutex
	chat *sessionRef // nil until the first Chat call
}

// New creates the assistant for result using the configured LLM provider.
// Exports requested through the assistant are written to exportDir.
func New(ctx context.Context, cfg llm.Config, result grc.Result, exportDir string) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m, err := llm.NewModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM model: %w", err)
	}
	return NewWithModel(m, result, exportDir)
}

// NewWithModel creates the assistant around an existing model
func NewWithModel(m adkmodel.LLM, result grc.Result, exportDir string) (*Agent, error) {
	tools, err := newToolset(result, exportDir).Tools()
	if err != nil {
		return nil, fmt.Errorf("failed to create tools: %w", err)
	}

	a, err := llmagent.New(llmagent.Config{
		Name:        "crosswalk_agent",
		Description: "GRC analyst assistant for querying control correlations and framework coverage",
		Model:       m,
		Instruction: SystemInstruction,
		Tools:       tools,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{AppName: appName, Agent: a, SessionService: sessions})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}
	return &Agent{agent: a, runner: r, sessions: sessions}, nil
}

// ADK returns the underlying ADK agent for use with launchers
func (a *Agent) ADK() agent.Agent {
	return a.agent
}

func (a *Agent) newSession(ctx context.Context, userID, prefix string) (*sessionRef, error) {
	resp, err := a.sessions.Create(ctx, &session.CreateRequest{
		AppName:   appName,
		UserID:    userID,
		SessionID: fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &sessionRef{userID: resp.Session.UserID(), id: resp.Session.ID()}, nil
}

// Query answers a single question in a fresh session
func (a *Agent) Query(ctx context.Context, query string) (string, error) {
	ref, err := a.newSession(ctx, "user", "query")
	if err != nil {
		return "", err
	}
	return a.run(ctx, ref, query)
}

// Chat answers query in a session that persists until ClearSession
func (a *Agent) Chat(ctx context.Context, query string) (string, error) {
	a.mu.Lock()
	if a.chat == nil {
		ref, err := a.newSession(ctx, "chat-user", "chat")
		if err != nil {
			a.mu.Unlock()
			return "", err
		}
		a.chat = ref
	}
	ref := a.chat
	a.mu.Unlock()

	return a.run(ctx, ref, query)
}

// ClearSession starts a fresh conversation on the next Chat call
func (a *Agent) ClearSession() {
	a.mu.Lock()
	a.chat = nil
	a.mu.Unlock()
}

// run collects the text parts of every event the runner yields
func (a *Agent) run(ctx context.Context, ref *sessionRef, query string) (string, error) {
	msg := genai.NewContentFromText(query, genai.RoleUser)

	var out strings.Builder
	for event, err := range a.runner.Run(ctx, ref.userID, ref.id, msg, agent.RunConfig{}) {
		if err != nil {
			return "", fmt.Errorf("agent error: %w", err)
		}
		if event.Content == nil {
			continue
		}
		for _, part := range event.Content.Parts {
			out.WriteString(part.Text)
		}
	}
	return out.String(), nil
}
