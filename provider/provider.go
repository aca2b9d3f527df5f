// Package provider defines the generative-model boundary the conversation
// runner drives. A Provider receives the full message list plus the tool
// schemas exposed for this turn and answers with either final assistant text
// or a set of tool call requests. Concrete adapters live in the openai,
// anthropic and bedrock subpackages; ScriptedProvider is an in-memory
// implementation for tests and examples.
package provider

import (
	"context"
	"errors"

	"github.com/lumos-data/lumos/core"
)

// ToolDefinition declaratively exposes a callable tool to the model.
// Parameters is a JSON Schema object (draft agnostic, minimal subset).
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures the normalized model input produced by the runner.
// Model, Temperature and MaxTokens are configuration inputs, never computed.
// A zero Temperature or MaxTokens means "use the adapter's configured
// default", so an exact temperature of 0.0 cannot be requested per-call.
type Request struct {
	Messages    []core.Message   `json:"messages"`
	Tools       []ToolDefinition `json:"tools,omitempty"`
	Model       string           `json:"model,omitempty"`
	Temperature float64          `json:"temperature"`
	MaxTokens   int              `json:"max_tokens"`
}

// Response is the provider's answer for one turn. When the model requests
// tool calls they appear on Message.ToolCalls; otherwise Message.Content
// holds the final text.
type Response struct {
	Message core.Message `json:"message"`
}

// Provider is the minimal interface the runner needs from a model backend.
type Provider interface {
	// Generate sends one turn to the model. Implementations must honor ctx
	// cancellation and serialize ToolDefinitions into whatever schema shape
	// the backend expects.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name identifies the backend ("openai", "bedrock", ...).
	Name() string
}

// ScriptedProvider replays a fixed sequence of responses (or errors),
// recording every request it receives. It is the standard test double for
// the runner and orchestrator.
type ScriptedProvider struct {
	name     string
	script   []scriptStep
	pos      int
	Requests []Request // every request seen, in order
}

type scriptStep struct {
	msg core.Message
	err error
}

// NewScriptedProvider constructs a provider that answers with the queued
// responses in order. Once the script is exhausted it returns an error.
func NewScriptedProvider(name string) *ScriptedProvider {
	if name == "" {
		name = "scripted"
	}
	return &ScriptedProvider{name: name}
}

// QueueText queues a final-text assistant response.
func (p *ScriptedProvider) QueueText(text string) *ScriptedProvider {
	p.script = append(p.script, scriptStep{msg: core.AssistantMessage(text)})
	return p
}

// QueueToolCalls queues an assistant response that requests the given tool
// calls.
func (p *ScriptedProvider) QueueToolCalls(calls ...core.ToolCall) *ScriptedProvider {
	p.script = append(p.script, scriptStep{msg: core.Message{
		Role:      core.RoleAssistant,
		ToolCalls: calls,
	}})
	return p
}

// QueueError queues a provider-level failure.
func (p *ScriptedProvider) QueueError(err error) *ScriptedProvider {
	p.script = append(p.script, scriptStep{err: err})
	return p
}

// Generate implements Provider by replaying the script.
func (p *ScriptedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.Requests = append(p.Requests, req)
	if p.pos >= len(p.script) {
		return nil, errors.New("scripted provider: no responses left")
	}
	step := p.script[p.pos]
	p.pos++
	if step.err != nil {
		return nil, step.err
	}
	return &Response{Message: step.msg}, nil
}

// Name implements Provider.
func (p *ScriptedProvider) Name() string { return p.name }

// Calls returns how many requests the provider has served.
func (p *ScriptedProvider) Calls() int { return len(p.Requests) }
