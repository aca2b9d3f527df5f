// Package builtin provides the stock tool set. Tools are registered
// explicitly; there is no scanning or discovery, so the set available to
// agents is exactly what RegisterAll was given.
package builtin

import (
	"context"
	"fmt"
	"time"

	"github.com/lumos-data/lumos/tool"
)

type echoArgs struct {
	Text string `json:"text" description:"Text to echo back"`
}

type selfIntroArgs struct {
	Name string `json:"name,omitempty" description:"Optional name to address"`
}

// Echo returns a tool that repeats its input. Useful for wiring checks and
// as the smallest possible tool example.
func Echo() tool.Tool {
	return tool.NewFunctionToolFromStruct(
		"echo",
		"Echo the provided text back unchanged.",
		echoArgs{},
		func(_ context.Context, args map[string]any) (any, error) {
			text, _ := args["text"].(string)
			return text, nil
		},
	)
}

// CurrentTime returns a tool reporting the current time in RFC 3339 form.
func CurrentTime() tool.Tool {
	return tool.NewFunctionTool(
		"current_time",
		"Get the current date and time.",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(_ context.Context, _ map[string]any) (any, error) {
			return time.Now().Format(time.RFC3339), nil
		},
	)
}

// SelfIntro returns a tool that produces a short greeting, optionally
// addressed to a name.
func SelfIntro() tool.Tool {
	return tool.NewFunctionToolFromStruct(
		"self_intro",
		"Introduce the assistant, optionally addressing someone by name.",
		selfIntroArgs{},
		func(_ context.Context, args map[string]any) (any, error) {
			if name, ok := args["name"].(string); ok && name != "" {
				return fmt.Sprintf("Hello %s, I am the Lumos data assistant.", name), nil
			}
			return "Hello, I am the Lumos data assistant.", nil
		},
	)
}

// Tools returns the full builtin tool set. exportDir is where CSV export
// tools read and write files.
func Tools(exportDir string) []tool.Tool {
	return []tool.Tool{
		Echo(),
		CurrentTime(),
		SelfIntro(),
		ExportCSV(exportDir),
		ListExports(exportDir),
		DeleteExport(exportDir),
	}
}

// RegisterAll registers the full builtin set on reg.
func RegisterAll(reg *tool.Registry, exportDir string) {
	for _, t := range Tools(exportDir) {
		reg.Register(t)
	}
}
