package agent

import (
	"regexp"
	"strings"

	"github.com/lumos-data/lumos/core"
)

// Kind selects the fallback behavior of the decision parser for agents whose
// model forgot to emit an explicit tag.
type Kind int

const (
	// KindStandard defaults to continuing unless the text looks like an error.
	KindStandard Kind = iota
	// KindGuardrail defaults to continuing unless the text matches a block
	// indicator (content filtering denied the request, PII was found, etc.).
	KindGuardrail
)

// Decision tags agents are instructed to end their final response with.
const (
	TagComplete = "[DECISION: COMPLETE]"
	TagContinue = "[DECISION: CONTINUE]"
)

var (
	completeTagRe = regexp.MustCompile(`(?i)\[\s*decision\s*:\s*complete\s*\]`)
	continueTagRe = regexp.MustCompile(`(?i)\[\s*decision\s*:\s*continue\s*\]`)
)

// Keyword lists for the heuristic tier. Deliberately short: the explicit tag
// is authoritative and every heuristic parse is logged as such.
var (
	completionPhrases = []string{
		"task complete",
		"task completed",
		"finished",
		"final answer",
		"completed successfully",
	}
	continuationPhrases = []string{
		"will now",
		"next step",
		"let me check",
		"handing off",
		"proceeding to",
	}
	blockIndicators = []string{
		"blocked",
		"denied",
		"pii detected",
		"redacted",
	}
	errorIndicators = []string{
		"error:",
		"failed to",
		"exception",
		"unable to",
	}
)

// ParseDecision classifies the final assistant text into a handoff decision.
//
// Ordered rules, case-insensitive:
//  1. Explicit [DECISION: COMPLETE] tag  -> stop, confidence 1.0
//  2. Explicit [DECISION: CONTINUE] tag  -> continue, confidence 1.0
//  3. Keyword heuristic: only completion phrases -> stop, 0.7; only
//     continuation phrases -> continue, 0.7; both or neither fall through
//  4. Kind-specific default: guardrail agents continue unless a block
//     indicator matches (0.8); all others continue unless an error
//     indicator matches (0.5)
//
// The function is pure; callers that care about heuristic misclassification
// should log whenever Confidence < 1.
func ParseDecision(text string, kind Kind) core.AgentDecision {
	if completeTagRe.MatchString(text) {
		return core.AgentDecision{Continue: false, Reason: "explicit completion tag", Confidence: 1.0}
	}
	if continueTagRe.MatchString(text) {
		return core.AgentDecision{Continue: true, Reason: "explicit continuation tag", Confidence: 1.0}
	}

	lower := strings.ToLower(text)
	completion := containsAny(lower, completionPhrases)
	continuation := containsAny(lower, continuationPhrases)
	if completion != continuation {
		if completion {
			return core.AgentDecision{Continue: false, Reason: "completion keywords matched", Confidence: 0.7}
		}
		return core.AgentDecision{Continue: true, Reason: "continuation keywords matched", Confidence: 0.7}
	}

	if kind == KindGuardrail {
		if containsAny(lower, blockIndicators) {
			return core.AgentDecision{Continue: false, Reason: "guardrail block indicator matched", Confidence: 0.8}
		}
		return core.AgentDecision{Continue: true, Reason: "guardrail default", Confidence: 0.8}
	}

	if containsAny(lower, errorIndicators) {
		return core.AgentDecision{Continue: false, Reason: "error indicator matched", Confidence: 0.5}
	}
	return core.AgentDecision{Continue: true, Reason: "default", Confidence: 0.5}
}

// StripDecisionTags removes any decision tags from text so they never reach
// the user-facing rendering.
func StripDecisionTags(text string) string {
	text = completeTagRe.ReplaceAllString(text, "")
	text = continueTagRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func containsAny(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
