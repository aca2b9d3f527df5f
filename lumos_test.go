package lumos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumos-data/lumos/provider"
)

func TestNew_DefaultWiring(t *testing.T) {
	p := provider.NewScriptedProvider("test")
	sys, err := New(p, func(o *Options) { o.ExportDir = t.TempDir() })
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{"data_admin", "data_analyst", "data_engineer", "data_manager", "tableau_admin"},
		sys.Agents(),
	)
}

func TestAsk_UsesCoordinatorEntry(t *testing.T) {
	p := provider.NewScriptedProvider("test").QueueText("all handled [DECISION: COMPLETE]")
	sys, err := New(p, func(o *Options) { o.ExportDir = t.TempDir() })
	require.NoError(t, err)

	answer := sys.Ask(context.Background(), "what happened last quarter")
	assert.Equal(t, "[data_manager]\n\nall handled", answer)
}

func TestAsk_CoordinatorContinueReachesSpecialist(t *testing.T) {
	p := provider.NewScriptedProvider("test").
		QueueText("delegating to the analyst [DECISION: CONTINUE]").
		QueueText("revenue was up 4% [DECISION: COMPLETE]")
	sys, err := New(p, func(o *Options) { o.ExportDir = t.TempDir() })
	require.NoError(t, err)

	// The coordinator's continue decision must hand off to the head of the
	// specialist chain, not terminate at the entry agent
	answer := sys.Ask(context.Background(), "how did we do last quarter")
	assert.Equal(t, "[data_analyst]\n\nrevenue was up 4%", answer)
	assert.Equal(t, 2, p.Calls())
}

func TestAskAgent_Explicit(t *testing.T) {
	p := provider.NewScriptedProvider("test").QueueText("numbers attached [DECISION: COMPLETE]")
	sys, err := New(p, func(o *Options) { o.ExportDir = t.TempDir() })
	require.NoError(t, err)

	answer := sys.AskAgent(context.Background(), "data_analyst", "revenue by month")
	assert.Equal(t, "[data_analyst]\n\nnumbers attached", answer)
}
