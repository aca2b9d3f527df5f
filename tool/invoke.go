package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lumos-data/lumos/core"
)

// Invoke executes a single tool call against the provided tool set and
// always returns a well-formed result envelope: a failure to find the tool,
// to decode arguments, or inside the tool itself yields Success=false with a
// populated Error, never a Go error. The correlation id of the call is
// round-tripped unmodified.
//
// Panics inside a tool are recovered and reported as execution failures.
func Invoke(ctx context.Context, call core.ToolCall, tools []Tool) (result core.ToolResult) {
	defer func() {
		if r := recover(); r != nil {
			result = core.ToolResult{
				ID:      call.ID,
				Name:    call.Name,
				Success: false,
				Error:   fmt.Sprintf("tool panic: %v", r),
			}
		}
	}()

	var target Tool
	for _, t := range tools {
		if t.Name() == call.Name {
			target = t
			break
		}
	}
	if target == nil {
		return core.ToolResult{
			ID:      call.ID,
			Name:    call.Name,
			Success: false,
			Error:   fmt.Sprintf("Tool not found: %s", call.Name),
		}
	}

	args := map[string]any{}
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return core.ToolResult{
				ID:      call.ID,
				Name:    call.Name,
				Success: false,
				Error:   fmt.Sprintf("Invalid arguments JSON: %v", err),
			}
		}
	}

	value, err := target.Call(ctx, args)
	if err != nil {
		return core.ToolResult{ID: call.ID, Name: call.Name, Success: false, Error: err.Error()}
	}
	return core.ToolResult{ID: call.ID, Name: call.Name, Success: true, Result: value}
}

// ResultContent renders a tool result the way it is fed back to the model as
// a tool-role message: the JSON-encoded result on success, the error text on
// failure.
func ResultContent(r core.ToolResult) string {
	if !r.Success {
		if r.Error != "" {
			return r.Error
		}
		return "Tool execution failed"
	}
	if r.Result == nil {
		return ""
	}
	if s, ok := r.Result.(string); ok {
		return s
	}
	b, err := json.Marshal(r.Result)
	if err != nil {
		return fmt.Sprintf("%v", r.Result)
	}
	return string(b)
}
