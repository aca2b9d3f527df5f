package core

// AgentDecision captures whether the multi-agent chain should continue past
// the agent that produced a response. It is derived from the final assistant
// text of a turn and never persisted beyond the response object.
type AgentDecision struct {
	Continue   bool    `json:"continue"`   // true = hand off to the next agent
	Reason     string  `json:"reason"`     // How the decision was reached
	Confidence float64 `json:"confidence"` // 0-1 confidence in the decision
}

// AgentResponse is the unit an agent returns to the orchestrator: the final
// message, the parsed handoff decision and the name of the producing agent.
type AgentResponse struct {
	Message   Message       `json:"message"`
	Decision  AgentDecision `json:"decision"`
	AgentName string        `json:"agent_name"`
}
