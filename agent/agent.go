// Package agent wraps the conversation runner with a fixed persona: a name,
// instruction text, a snapshot of tools resolved from the registry and a
// model identifier. On top of the runner's final message it extracts the
// handoff decision that drives multi-agent routing.
package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lumos-data/lumos/core"
	"github.com/lumos-data/lumos/logging"
	"github.com/lumos-data/lumos/provider"
	"github.com/lumos-data/lumos/runner"
	"github.com/lumos-data/lumos/tool"
)

// decisionContract is appended to every persona so the model knows to end
// with an explicit tag. The parser tolerates models that forget it.
const decisionContract = "You must end your final response with exactly one decision tag: " +
	TagComplete + " if the request is fully handled, or " + TagContinue +
	" if another specialist agent should take over."

// Options configure an Agent.
type Options struct {
	// Tools names the registry tools this agent may call. Unknown names are
	// silently dropped.
	Tools []string
	// Model overrides the provider's default model identifier.
	Model string
	// Temperature for generation. Zero means provider default; an exact
	// temperature of 0.0 cannot be requested through this field.
	Temperature float64
	// MaxTokens for generation. Zero means provider default.
	MaxTokens int
	// MaxTurns caps the runner loop. Zero means runner default.
	MaxTurns int
	// ToolTimeout bounds individual tool invocations.
	ToolTimeout time.Duration
	// Kind selects decision-parser fallback behavior; KindGuardrail also
	// enables output redaction.
	Kind Kind
	// Logger receives structured events. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Agent binds a persona to a conversation runner. The tool set is
// snapshotted at construction: registry mutations afterwards do not affect
// an already-built agent.
type Agent struct {
	name         string
	instructions string
	tools        []tool.Tool
	model        string
	kind         Kind
	runner       *runner.Runner
	logger       logging.Logger
}

// New constructs an agent. The tool names in Options are resolved against
// the registry once, here; missing names are dropped rather than failing so
// personas can reference optional tools.
func New(name, instructions string, p provider.Provider, registry *tool.Registry, optFns ...func(o *Options)) *Agent {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	logger := logging.OrNoOp(opts.Logger)

	var tools []tool.Tool
	if registry != nil {
		tools = registry.Resolve(opts.Tools...)
	}
	if dropped := len(opts.Tools) - len(tools); dropped > 0 {
		logger.Debug("agent.tools.dropped", "agent", name, "requested", len(opts.Tools), "resolved", len(tools))
	}

	run := runner.New(p, func(o *runner.Options) {
		o.Model = opts.Model
		o.Temperature = opts.Temperature
		o.MaxTokens = opts.MaxTokens
		o.ToolTimeout = opts.ToolTimeout
		if opts.MaxTurns > 0 {
			o.MaxTurns = opts.MaxTurns
		}
		o.Logger = logger
	})

	return &Agent{
		name:         name,
		instructions: instructions,
		tools:        tools,
		model:        opts.Model,
		kind:         opts.Kind,
		runner:       run,
		logger:       logger,
	}
}

// Name returns the agent's identifier.
func (a *Agent) Name() string { return a.name }

// Instructions returns the persona text.
func (a *Agent) Instructions() string { return a.instructions }

// ToolNames returns the names of the tools snapshotted at construction.
func (a *Agent) ToolNames() []string {
	names := make([]string, 0, len(a.tools))
	for _, t := range a.tools {
		names = append(names, t.Name())
	}
	return names
}

// Process runs one agent turn over the given conversation. It prepends the
// persona system message, drives the runner loop, parses the handoff
// decision from the final text and renders the response header.
//
// Process never returns an error for in-conversation failures; they arrive
// as "Error: …" content whose decision is parsed like any other text.
func (a *Agent) Process(ctx context.Context, messages []core.Message) core.AgentResponse {
	system := core.SystemMessage(fmt.Sprintf("You are %s. %s\n\n%s", a.name, a.instructions, decisionContract))

	conversation := make([]core.Message, 0, len(messages)+1)
	conversation = append(conversation, system)
	conversation = append(conversation, messages...)

	final, results := a.runner.Run(ctx, conversation, a.tools)

	decision := ParseDecision(final.Content, a.kind)
	if decision.Confidence < 1 {
		a.logger.Warn("agent.decision.fallback",
			"agent", a.name,
			"reason", decision.Reason,
			"confidence", decision.Confidence,
		)
	}

	content := StripDecisionTags(final.Content)
	if a.kind == KindGuardrail {
		content = ApplyGuardrail(content)
	}
	final.Content = renderHeader(a.name, results) + content

	a.logger.Info("agent.processed",
		"agent", a.name,
		"tools_invoked", len(results),
		"continue", decision.Continue,
	)

	return core.AgentResponse{
		Message:   final,
		Decision:  decision,
		AgentName: a.name,
	}
}

// renderHeader names the agent and the distinct tools invoked this turn.
// Tool names are deduplicated and sorted so the header is deterministic.
func renderHeader(name string, results []core.ToolResult) string {
	seen := map[string]bool{}
	var names []string
	for _, r := range results {
		if r.Name != "" && !seen[r.Name] {
			seen[r.Name] = true
			names = append(names, r.Name)
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("[%s]\n\n", name)
	}
	sort.Strings(names)
	return fmt.Sprintf("[%s | tools: %s]\n\n", name, strings.Join(names, ", "))
}
