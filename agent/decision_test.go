package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecision_ExplicitTags(t *testing.T) {
	d := ParseDecision("All done. [DECISION: COMPLETE]", KindStandard)
	assert.False(t, d.Continue)
	assert.Equal(t, 1.0, d.Confidence)

	d = ParseDecision("Passing along. [DECISION: CONTINUE]", KindStandard)
	assert.True(t, d.Continue)
	assert.Equal(t, 1.0, d.Confidence)
}

func TestParseDecision_TagCaseAndSpacingInsensitive(t *testing.T) {
	for _, text := range []string{
		"[decision: complete]",
		"[Decision:Complete]",
		"[ DECISION : COMPLETE ]",
	} {
		d := ParseDecision(text, KindStandard)
		assert.False(t, d.Continue, text)
		assert.Equal(t, 1.0, d.Confidence, text)
	}
}

func TestParseDecision_TagBeatsKeywords(t *testing.T) {
	// Continuation keywords present, but the explicit tag wins
	d := ParseDecision("I will now stop. [DECISION: COMPLETE]", KindStandard)
	assert.False(t, d.Continue)
	assert.Equal(t, 1.0, d.Confidence)

	d = ParseDecision("Task complete on my side. [DECISION: CONTINUE]", KindStandard)
	assert.True(t, d.Continue)
	assert.Equal(t, 1.0, d.Confidence)
}

func TestParseDecision_KeywordHeuristic(t *testing.T) {
	d := ParseDecision("The task is finished.", KindStandard)
	assert.False(t, d.Continue)
	assert.Equal(t, 0.7, d.Confidence)

	d = ParseDecision("Let me check the warehouse next.", KindStandard)
	assert.True(t, d.Continue)
	assert.Equal(t, 0.7, d.Confidence)
}

func TestParseDecision_ConflictingKeywordsFallThrough(t *testing.T) {
	// Both completion and continuation phrases present; heuristic abstains
	d := ParseDecision("Final answer ready, but I will now double-check.", KindStandard)
	assert.Equal(t, 0.5, d.Confidence)
	assert.True(t, d.Continue)
}

func TestParseDecision_StandardDefault(t *testing.T) {
	d := ParseDecision("Here are the quarterly numbers.", KindStandard)
	assert.True(t, d.Continue)
	assert.Equal(t, 0.5, d.Confidence)

	d = ParseDecision("Error: connection refused", KindStandard)
	assert.False(t, d.Continue)
	assert.Equal(t, 0.5, d.Confidence)
}

func TestParseDecision_GuardrailDefault(t *testing.T) {
	d := ParseDecision("Content looks fine.", KindGuardrail)
	assert.True(t, d.Continue)
	assert.Equal(t, 0.8, d.Confidence)

	d = ParseDecision("Request denied: PII detected in payload.", KindGuardrail)
	assert.False(t, d.Continue)
	assert.Equal(t, 0.8, d.Confidence)
}

func TestStripDecisionTags(t *testing.T) {
	assert.Equal(t, "hi", StripDecisionTags("hi [DECISION: COMPLETE]"))
	assert.Equal(t, "hi", StripDecisionTags("[decision: continue] hi"))
	assert.Equal(t, "hi", StripDecisionTags("hi"))
	// Idempotent
	assert.Equal(t, "hi", StripDecisionTags(StripDecisionTags("hi [DECISION: COMPLETE]")))
}
