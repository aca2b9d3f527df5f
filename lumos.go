// Package lumos provides a high-level façade over the agent, tool and
// orchestrator packages for building the standard data-team assistant. Most
// applications interact with this package by:
//  1. Creating a System via New() with a model provider
//  2. Optionally overriding tools, personas, or the handoff chain
//  3. Asking questions via Ask (default routing) or AskAgent (explicit)
//
// The façade wires the five stock personas (analyst, engineer, Tableau
// admin, data admin, data manager) over the builtin tool set. Applications
// with different personas compose the underlying packages directly.
package lumos

import (
	"context"
	"fmt"
	"time"

	"github.com/lumos-data/lumos/agent"
	"github.com/lumos-data/lumos/core"
	"github.com/lumos-data/lumos/logging"
	"github.com/lumos-data/lumos/orchestrator"
	"github.com/lumos-data/lumos/prompts"
	"github.com/lumos-data/lumos/provider"
	"github.com/lumos-data/lumos/tool"
	"github.com/lumos-data/lumos/tools/builtin"
)

// Options configures the assistant façade.
type Options struct {
	// Registry supplies the tools agents may use. Defaults to a fresh
	// registry populated with the builtin set.
	Registry *tool.Registry

	// ExportDir is where the builtin CSV tools operate. Only used when
	// Registry is nil. Defaults to "./exports".
	ExportDir string

	// PromptsDir optionally overrides embedded personas with per-agent
	// markdown files.
	PromptsDir string

	// Entry names the agent requests enter at. Defaults to the data manager.
	Entry string

	// Chain is the handoff order. Defaults to prompts.Chain().
	Chain []string

	// MaxTurns caps each agent's tool-calling loop. Zero means the runner
	// default.
	MaxTurns int

	// ToolTimeout bounds individual tool invocations. Defaults to 30s.
	ToolTimeout time.Duration

	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// System is the assembled assistant: the stock personas routed through an
// orchestrator over one model provider.
type System struct {
	system *orchestrator.System
}

// New assembles the standard five-persona assistant on top of p.
func New(p provider.Provider, optFns ...func(o *Options)) (*System, error) {
	opts := Options{
		ExportDir:   "./exports",
		Entry:       prompts.Coordinator,
		Chain:       prompts.Chain(),
		ToolTimeout: 30 * time.Second,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	logger := logging.OrNoOp(opts.Logger)

	registry := opts.Registry
	if registry == nil {
		registry = tool.NewRegistry(func(o *tool.RegistryOptions) { o.Logger = logger })
		builtin.RegisterAll(registry, opts.ExportDir)
	}

	toolNames := make([]string, 0, registry.Len())
	for _, t := range registry.List() {
		toolNames = append(toolNames, t.Name())
	}

	agents := make([]*agent.Agent, 0, len(prompts.Names()))
	for _, name := range prompts.Names() {
		instructions, err := prompts.Instructions(opts.PromptsDir, name)
		if err != nil {
			return nil, fmt.Errorf("lumos: %w", err)
		}
		agents = append(agents, agent.New(name, instructions, p, registry, func(o *agent.Options) {
			o.Tools = toolNames
			o.MaxTurns = opts.MaxTurns
			o.ToolTimeout = opts.ToolTimeout
			o.Logger = logger
			if name == "data_admin" {
				o.Kind = agent.KindGuardrail
			}
		}))
	}

	sys, err := orchestrator.New(agents, func(o *orchestrator.Options) {
		o.Entry = opts.Entry
		o.Chain = opts.Chain
		o.Logger = logger
	})
	if err != nil {
		return nil, err
	}
	return &System{system: sys}, nil
}

// Ask sends one question through default routing and returns the final
// response text.
func (s *System) Ask(ctx context.Context, question string) string {
	resp := s.system.Route(ctx, []core.Message{core.UserMessage(question)}, "")
	return resp.Message.Content
}

// AskAgent sends one question directly to the named agent, bypassing the
// handoff chain. Unknown names fall back to the entry agent.
func (s *System) AskAgent(ctx context.Context, agentName, question string) string {
	resp := s.system.Route(ctx, []core.Message{core.UserMessage(question)}, agentName)
	return resp.Message.Content
}

// Route exposes the underlying orchestrator routing for callers that need
// the full response, including the decision metadata.
func (s *System) Route(ctx context.Context, messages []core.Message, explicitAgent string) core.AgentResponse {
	return s.system.Route(ctx, messages, explicitAgent)
}

// Agents lists the registered agent names.
func (s *System) Agents() []string { return s.system.Agents() }
