package core

import "github.com/google/uuid"

// Conversation roles. Providers that do not support a given role are
// responsible for normalizing it at their boundary.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a tool invocation request surfaced by a model provider.
// Unified across vendors so downstream logic does not need per-provider
// branching.
type ToolCall struct {
	ID        string `json:"id"`        // Correlation id issued by the provider
	Name      string `json:"name"`      // Tool name
	Arguments string `json:"arguments"` // JSON-encoded argument payload
}

// ToolResult is the uniform envelope every tool invocation yields.
//
// Invariants: Success=false implies Error is non-empty; Success=true allows
// Result to be nil (void tools). ID round-trips the correlation id of the
// originating ToolCall unmodified.
type ToolResult struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"` // Tool that produced this result
}

// Message is a single entry in a conversation. Messages are treated as
// immutable once appended; a conversation is an append-only ordered slice.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // Assistant messages only
	ToolCallID string     `json:"tool_call_id,omitempty"` // Tool messages only
}

// SystemMessage constructs a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage constructs a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage constructs an assistant-role message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// ToolMessage constructs a tool-role message carrying the serialized result
// of the tool call identified by callID.
func ToolMessage(content, callID string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: callID}
}

// NewID returns a globally unique identifier for correlation purposes.
func NewID() string { return uuid.NewString() }
