package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumos-data/lumos/agent"
	"github.com/lumos-data/lumos/core"
	"github.com/lumos-data/lumos/provider"
)

func scriptedAgent(name string, texts ...string) (*agent.Agent, *provider.ScriptedProvider) {
	p := provider.NewScriptedProvider(name)
	for _, text := range texts {
		p.QueueText(text)
	}
	return agent.New(name, "You are a specialist.", p, nil), p
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	a, _ := scriptedAgent("alpha")
	dup, _ := scriptedAgent("alpha")
	_, err = New([]*agent.Agent{a, dup})
	assert.ErrorContains(t, err, "duplicate agent name")

	_, err = New([]*agent.Agent{a}, func(o *Options) { o.Entry = "ghost" })
	assert.ErrorContains(t, err, "entry agent")

	_, err = New([]*agent.Agent{a}, func(o *Options) { o.Chain = []string{"ghost"} })
	assert.ErrorContains(t, err, "chain agent")

	b, _ := scriptedAgent("beta")
	_, err = New([]*agent.Agent{a, b}, func(o *Options) { o.Chain = []string{"alpha", "beta", "alpha"} })
	assert.ErrorContains(t, err, "duplicate chain entry")
}

func TestRoute_EntryCompletes(t *testing.T) {
	a, _ := scriptedAgent("coordinator", "all set [DECISION: COMPLETE]")
	sys, err := New([]*agent.Agent{a})
	require.NoError(t, err)

	resp := sys.Route(context.Background(), []core.Message{core.UserMessage("hi")}, "")
	assert.Equal(t, "coordinator", resp.AgentName)
	assert.Equal(t, "[coordinator]\n\nall set", resp.Message.Content)
}

func TestRoute_HandoffAlongChain(t *testing.T) {
	first, _ := scriptedAgent("analyst", "needs engineering, handing off [DECISION: CONTINUE]")
	second, secondProvider := scriptedAgent("engineer", "pipeline fixed [DECISION: COMPLETE]")

	sys, err := New([]*agent.Agent{first, second}, func(o *Options) {
		o.Entry = "analyst"
		o.Chain = []string{"analyst", "engineer"}
	})
	require.NoError(t, err)

	messages := []core.Message{core.UserMessage("fix the pipeline")}
	resp := sys.Route(context.Background(), messages, "")
	assert.Equal(t, "engineer", resp.AgentName)
	assert.Equal(t, "[engineer]\n\npipeline fixed", resp.Message.Content)

	// The second agent saw the same user conversation
	require.Equal(t, 1, secondProvider.Calls())
	forwarded := secondProvider.Requests[0].Messages
	assert.Equal(t, "fix the pipeline", forwarded[len(forwarded)-1].Content)
}

func TestRoute_ChainExhausted(t *testing.T) {
	first, _ := scriptedAgent("analyst", "still more to do [DECISION: CONTINUE]")
	second, _ := scriptedAgent("engineer", "passing along again [DECISION: CONTINUE]")

	sys, err := New([]*agent.Agent{first, second}, func(o *Options) {
		o.Entry = "analyst"
		o.Chain = []string{"analyst", "engineer"}
	})
	require.NoError(t, err)

	// Last agent wants to continue but the chain is exhausted; its message
	// is returned as-is
	resp := sys.Route(context.Background(), []core.Message{core.UserMessage("go")}, "")
	assert.Equal(t, "engineer", resp.AgentName)
	assert.True(t, resp.Decision.Continue)
}

func TestRoute_EntryNotOnChainEntersAtHead(t *testing.T) {
	coordinator, _ := scriptedAgent("coordinator", "delegating [DECISION: CONTINUE]")
	analyst, _ := scriptedAgent("analyst", "done [DECISION: COMPLETE]")

	sys, err := New([]*agent.Agent{coordinator, analyst}, func(o *Options) {
		o.Entry = "coordinator"
		o.Chain = []string{"analyst"}
	})
	require.NoError(t, err)

	resp := sys.Route(context.Background(), []core.Message{core.UserMessage("hi")}, "")
	assert.Equal(t, "analyst", resp.AgentName)
}

func TestRoute_ExplicitAgentShortCircuits(t *testing.T) {
	first, firstProvider := scriptedAgent("analyst", "unused")
	second, _ := scriptedAgent("engineer", "direct answer [DECISION: CONTINUE]")

	sys, err := New([]*agent.Agent{first, second}, func(o *Options) {
		o.Entry = "analyst"
		o.Chain = []string{"analyst", "engineer"}
	})
	require.NoError(t, err)

	// Explicit targeting never chains, even on a continue decision
	resp := sys.Route(context.Background(), []core.Message{core.UserMessage("hi")}, "engineer")
	assert.Equal(t, "engineer", resp.AgentName)
	assert.Equal(t, 0, firstProvider.Calls())
}

func TestRoute_UnknownExplicitAgentFallsBackToEntry(t *testing.T) {
	a, _ := scriptedAgent("coordinator", "handled [DECISION: COMPLETE]")
	sys, err := New([]*agent.Agent{a})
	require.NoError(t, err)

	resp := sys.Route(context.Background(), []core.Message{core.UserMessage("hi")}, "ghost")
	assert.Equal(t, "coordinator", resp.AgentName)
}

func TestAccessors(t *testing.T) {
	a, _ := scriptedAgent("alpha")
	b, _ := scriptedAgent("beta")
	sys, err := New([]*agent.Agent{a, b})
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta"}, sys.Agents())
	assert.Equal(t, "alpha", sys.Entry())

	got, ok := sys.Get("beta")
	assert.True(t, ok)
	assert.Equal(t, "beta", got.Name())
	_, ok = sys.Get("ghost")
	assert.False(t, ok)
}
