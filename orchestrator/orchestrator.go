// Package orchestrator routes incoming requests across a named set of
// agents. A request either targets one agent explicitly or enters at the
// default agent and flows along a statically configured handoff chain for
// as long as decisions say continue.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/lumos-data/lumos/agent"
	"github.com/lumos-data/lumos/core"
	"github.com/lumos-data/lumos/logging"
)

// Options configure a System.
type Options struct {
	// Entry names the default agent a request enters at when no explicit
	// agent is given. Defaults to the first registered agent.
	Entry string
	// Chain is the static handoff order followed while decisions say
	// continue. Agents absent from the chain never receive handoffs.
	Chain []string
	// Logger receives structured routing events. Defaults to NoOpLogger.
	Logger logging.Logger
}

// System owns a fixed collection of agents plus the routing rules between
// them. Construction is the only mutation; Route is safe for concurrent use.
type System struct {
	agents map[string]*agent.Agent
	order  []string // registration order, for Agents() and the entry default
	entry  string
	chain  []string
	logger logging.Logger
}

// New builds a System over the given agents.
func New(agents []*agent.Agent, optFns ...func(o *Options)) (*System, error) {
	if len(agents) == 0 {
		return nil, fmt.Errorf("orchestrator: at least one agent is required")
	}

	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	byName := make(map[string]*agent.Agent, len(agents))
	order := make([]string, 0, len(agents))
	for _, a := range agents {
		if _, dup := byName[a.Name()]; dup {
			return nil, fmt.Errorf("orchestrator: duplicate agent name %q", a.Name())
		}
		byName[a.Name()] = a
		order = append(order, a.Name())
	}

	entry := opts.Entry
	if entry == "" {
		entry = order[0]
	}
	if _, ok := byName[entry]; !ok {
		return nil, fmt.Errorf("orchestrator: entry agent %q not registered", entry)
	}
	// A repeated chain entry would make nextInChain cycle without bound.
	onChain := make(map[string]bool, len(opts.Chain))
	for _, name := range opts.Chain {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("orchestrator: chain agent %q not registered", name)
		}
		if onChain[name] {
			return nil, fmt.Errorf("orchestrator: duplicate chain entry %q", name)
		}
		onChain[name] = true
	}

	return &System{
		agents: byName,
		order:  order,
		entry:  entry,
		chain:  opts.Chain,
		logger: logging.OrNoOp(opts.Logger),
	}, nil
}

// Agents returns the registered agent names in registration order.
func (s *System) Agents() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Entry returns the default entry agent's name.
func (s *System) Entry() string { return s.entry }

// Get returns the named agent, or false when unknown.
func (s *System) Get(name string) (*agent.Agent, bool) {
	a, ok := s.agents[name]
	return a, ok
}

// Route processes one request.
//
// When explicitAgent names a known agent it is invoked directly and its
// message returned with no further chaining. Otherwise the entry agent runs
// and, while its decision says continue, the same conversation is forwarded
// to the next agent in the configured chain. Exhausting the chain is not an
// error; the last agent's message is returned as-is.
func (s *System) Route(ctx context.Context, messages []core.Message, explicitAgent string) core.AgentResponse {
	if explicitAgent != "" {
		if a, ok := s.agents[explicitAgent]; ok {
			s.logger.Info("orchestrator.route.explicit", "agent", explicitAgent)
			return a.Process(ctx, messages)
		}
		s.logger.Warn("orchestrator.route.unknown_agent", "agent", explicitAgent, "fallback", s.entry)
	}

	current := s.entry
	resp := s.agents[current].Process(ctx, messages)

	for resp.Decision.Continue {
		next, ok := s.nextInChain(current)
		if !ok {
			s.logger.Info("orchestrator.chain.exhausted", "last_agent", current)
			break
		}
		s.logger.Info("orchestrator.handoff",
			"from", current,
			"to", next,
			"confidence", resp.Decision.Confidence,
		)
		current = next
		resp = s.agents[current].Process(ctx, messages)
	}

	return resp
}

// nextInChain returns the agent after current in the handoff chain. An agent
// not on the chain enters it at the head, so the entry agent need not be
// listed.
func (s *System) nextInChain(current string) (string, bool) {
	for i, name := range s.chain {
		if name == current {
			if i+1 < len(s.chain) {
				return s.chain[i+1], true
			}
			return "", false
		}
	}
	if len(s.chain) > 0 && s.chain[0] != current {
		return s.chain[0], true
	}
	return "", false
}
