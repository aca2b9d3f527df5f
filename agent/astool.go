package agent

import (
	"context"
	"fmt"

	"github.com/lumos-data/lumos/core"
	"github.com/lumos-data/lumos/tool"
)

// AsTool wraps the agent as a Tool so a coordinating agent can invoke it as
// a specialist. The tool takes a single `input` string and returns the
// specialist's final message text; a header-free relay of the specialist's
// decision is not included, so the coordinator stays in control of handoff.
func (a *Agent) AsTool(name, description string) tool.Tool {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"input": map[string]any{
				"type":        "string",
				"description": "The input message for the agent",
			},
		},
		"required": []string{"input"},
	}

	return tool.NewFunctionTool(name, description, schema, func(ctx context.Context, args map[string]any) (any, error) {
		input, ok := args["input"].(string)
		if !ok {
			return nil, fmt.Errorf("input must be a string")
		}
		resp := a.Process(ctx, []core.Message{core.UserMessage(input)})
		return resp.Message.Content, nil
	})
}
