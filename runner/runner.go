// Package runner drives the bounded multi-turn tool-calling loop between a
// generative model provider and the tool subsystem.
//
// One invocation walks a fixed state machine: await the model, execute any
// tool calls it requested, feed the results back, repeat. The loop ends when
// the model answers without tool calls or the turn cap is reached. Failures
// inside the loop never escape as Go errors: provider failures become a
// final "Error: …" assistant message and tool failures become failed tool
// results the model can react to.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/lumos-data/lumos/core"
	"github.com/lumos-data/lumos/logging"
	"github.com/lumos-data/lumos/provider"
	"github.com/lumos-data/lumos/tool"
)

// MaxTurnsMessage is the synthetic final answer produced when the turn cap
// is reached.
const MaxTurnsMessage = "I've reached the maximum number of steps for this conversation. Please ask your question again for a fresh start."

// DefaultMaxTurns bounds the tool-calling loop when no override is given.
const DefaultMaxTurns = 10

// Options configure a Runner.
type Options struct {
	// MaxTurns caps the number of model calls per invocation.
	MaxTurns int
	// Model overrides the provider's default model identifier.
	Model string
	// Temperature for generation. Zero means provider default; an exact
	// temperature of 0.0 cannot be requested through this field.
	Temperature float64
	// MaxTokens for generation. Zero means provider default.
	MaxTokens int
	// ToolTimeout bounds each individual tool invocation. Zero disables the
	// per-call deadline.
	ToolTimeout time.Duration
	// OnToolInvoked, when set, observes every tool result as it happens.
	OnToolInvoked func(name string, result core.ToolResult)
	// Logger receives structured loop events. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Runner executes conversations against one provider. It holds no
// per-conversation state; a single Runner may serve many concurrent
// conversations, each with its own message list.
type Runner struct {
	provider      provider.Provider
	maxTurns      int
	model         string
	temperature   float64
	maxTokens     int
	toolTimeout   time.Duration
	onToolInvoked func(name string, result core.ToolResult)
	logger        logging.Logger
}

// New constructs a Runner with optional overrides.
func New(p provider.Provider, optFns ...func(o *Options)) *Runner {
	opts := Options{
		MaxTurns:    DefaultMaxTurns,
		ToolTimeout: 30 * time.Second,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = DefaultMaxTurns
	}

	return &Runner{
		provider:      p,
		maxTurns:      opts.MaxTurns,
		model:         opts.Model,
		temperature:   opts.Temperature,
		maxTokens:     opts.MaxTokens,
		toolTimeout:   opts.ToolTimeout,
		onToolInvoked: opts.OnToolInvoked,
		logger:        logging.OrNoOp(opts.Logger),
	}
}

// Run executes one conversation: messages is the full history including the
// system persona, tools is the subset exposed to the model this invocation.
//
// It returns the final assistant message plus every tool result produced
// along the way, in invocation order. The second return value lets callers
// aggregate tool usage without hooking runner internals.
func (r *Runner) Run(ctx context.Context, messages []core.Message, tools []tool.Tool) (core.Message, []core.ToolResult) {
	conversation := make([]core.Message, len(messages))
	copy(conversation, messages)

	defs := toolDefinitions(tools)
	var invoked []core.ToolResult

	for turn := 0; turn < r.maxTurns; turn++ {
		r.logger.Debug("runner.turn.start",
			"provider", r.provider.Name(),
			"turn", turn+1,
			"messages", len(conversation),
		)

		resp, err := r.provider.Generate(ctx, provider.Request{
			Messages:    conversation,
			Tools:       defs,
			Model:       r.model,
			Temperature: r.temperature,
			MaxTokens:   r.maxTokens,
		})
		if err != nil {
			r.logger.Error("runner.provider.error",
				"provider", r.provider.Name(),
				"turn", turn+1,
				"error", err.Error(),
			)
			return core.AssistantMessage(fmt.Sprintf("Error: %v", err)), invoked
		}

		if len(resp.Message.ToolCalls) == 0 {
			r.logger.Debug("runner.turn.final", "turn", turn+1)
			return resp.Message, invoked
		}

		conversation = append(conversation, resp.Message)

		// Execute requested tool calls sequentially; each result keeps its
		// correlation id so the model can match them regardless of order.
		for _, call := range resp.Message.ToolCalls {
			result := r.invokeTool(ctx, call, tools)
			invoked = append(invoked, result)
			if r.onToolInvoked != nil {
				r.onToolInvoked(call.Name, result)
			}
			conversation = append(conversation, core.ToolMessage(tool.ResultContent(result), result.ID))
		}
	}

	r.logger.Warn("runner.turn_cap", "max_turns", r.maxTurns)
	return core.AssistantMessage(MaxTurnsMessage), invoked
}

func (r *Runner) invokeTool(ctx context.Context, call core.ToolCall, tools []tool.Tool) core.ToolResult {
	callCtx := ctx
	if r.toolTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.toolTimeout)
		defer cancel()
	}

	start := time.Now()
	result := tool.Invoke(callCtx, call, tools)

	r.logger.Info("runner.tool.executed",
		"tool", call.Name,
		"call_id", call.ID,
		"success", result.Success,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if !result.Success {
		r.logger.Warn("runner.tool.failed", "tool", call.Name, "error", result.Error)
	}
	return result
}

func toolDefinitions(tools []tool.Tool) []provider.ToolDefinition {
	if len(tools) == 0 {
		return nil
	}
	defs := make([]provider.ToolDefinition, 0, len(tools))
	for _, t := range tools {
		params := t.Parameters()
		if params == nil {
			params = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		defs = append(defs, provider.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  params,
		})
	}
	return defs
}
