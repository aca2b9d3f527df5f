// Package bedrock adapts Anthropic models hosted on AWS Bedrock to the
// provider.Provider interface using the bedrock-runtime InvokeModel API with
// the anthropic messages request shape.
package bedrock

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/lumos-data/lumos/core"
	"github.com/lumos-data/lumos/provider"
)

const anthropicVersion = "bedrock-2023-05-31"

// InvokeModelAPI is the slice of the bedrock-runtime client the provider
// uses. Satisfied by *bedrockruntime.Client; tests supply a fake.
type InvokeModelAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Options configure the Bedrock provider.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Region      string
}

// Provider wraps the Bedrock runtime InvokeModel API.
type Provider struct {
	client InvokeModelAPI
	opts   Options
}

// New loads the default AWS configuration (environment, shared config,
// instance role) and constructs a provider. Credential resolution failures
// surface here, before any conversation starts.
func New(ctx context.Context, optFns ...func(o *Options)) (*Provider, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("bedrock: failed to load AWS config: %w", err)
	}
	if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
		return nil, fmt.Errorf("bedrock: AWS credentials not found: %w", err)
	}

	return &Provider{client: bedrockruntime.NewFromConfig(cfg), opts: opts}, nil
}

// NewFromClient constructs a provider from an existing client.
func NewFromClient(client InvokeModelAPI, optFns ...func(o *Options)) *Provider {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Provider{client: client, opts: opts}
}

func defaultOptions() Options {
	return Options{
		Model:       "anthropic.claude-3-5-sonnet-20241022-v2:0",
		Temperature: 0.1,
		MaxTokens:   4096,
	}
}

// Name implements provider.Provider.
func (p *Provider) Name() string { return "bedrock" }

// request/response shapes for the anthropic messages body.

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float64            `json:"temperature"`
	Messages         []anthropicMessage `json:"messages"`
	Tools            []anthropicTool    `json:"tools,omitempty"`
	ToolChoice       *toolChoice        `json:"tool_choice,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string or []contentBlock
}

type anthropicTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

type toolChoice struct {
	Type string `json:"type"`
}

type contentBlock struct {
	Type      string         `json:"type"`
	Text      string         `json:"text,omitempty"`
	ID        string         `json:"id,omitempty"`
	Name      string         `json:"name,omitempty"`
	Input     map[string]any `json:"input,omitempty"`
	ToolUseID string         `json:"tool_use_id,omitempty"`
	Content   string         `json:"content,omitempty"`
}

type anthropicResponse struct {
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
}

// Generate implements provider.Provider for one non-streaming turn.
func (p *Provider) Generate(ctx context.Context, req provider.Request) (*provider.Response, error) {
	model := req.Model
	if model == "" {
		model = p.opts.Model
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = p.opts.Temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.opts.MaxTokens
	}

	body := anthropicRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        maxTokens,
		Temperature:      temperature,
		Messages:         buildMessages(req.Messages),
	}
	if len(req.Tools) > 0 {
		for _, def := range req.Tools {
			schema := def.Parameters
			if schema == nil {
				schema = map[string]any{"type": "object", "properties": map[string]any{}}
			}
			body.Tools = append(body.Tools, anthropicTool{
				Name:        def.Name,
				Description: def.Description,
				InputSchema: schema,
			})
		}
		body.ToolChoice = &toolChoice{Type: "auto"}
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("bedrock: failed to encode request: %w", err)
	}

	out, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(model),
		Body:        raw,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("bedrock api error: %w", err)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return nil, fmt.Errorf("bedrock: failed to decode response: %w", err)
	}

	msg := core.Message{Role: core.RoleAssistant}
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			msg.Content += block.Text
		case "tool_use":
			args := "{}"
			if block.Input != nil {
				if b, err := json.Marshal(block.Input); err == nil {
					args = string(b)
				}
			}
			msg.ToolCalls = append(msg.ToolCalls, core.ToolCall{
				ID:        block.ID,
				Name:      block.Name,
				Arguments: args,
			})
		}
	}
	return &provider.Response{Message: msg}, nil
}

// buildMessages converts normalized messages into the anthropic messages
// shape. Bedrock only supports user and assistant roles: system messages are
// re-tagged as user with a "System: " prefix, and tool results travel as
// user messages carrying tool_result blocks keyed by correlation id.
func buildMessages(messages []core.Message) []anthropicMessage {
	out := make([]anthropicMessage, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case core.RoleSystem:
			out = append(out, anthropicMessage{
				Role:    "user",
				Content: "System: " + m.Content,
			})
		case core.RoleAssistant:
			if len(m.ToolCalls) == 0 {
				out = append(out, anthropicMessage{Role: "assistant", Content: m.Content})
				continue
			}
			blocks := make([]contentBlock, 0, len(m.ToolCalls)+1)
			if m.Content != "" {
				blocks = append(blocks, contentBlock{Type: "text", Text: m.Content})
			}
			for _, tc := range m.ToolCalls {
				input := map[string]any{}
				_ = json.Unmarshal([]byte(tc.Arguments), &input)
				blocks = append(blocks, contentBlock{
					Type:  "tool_use",
					ID:    tc.ID,
					Name:  tc.Name,
					Input: input,
				})
			}
			out = append(out, anthropicMessage{Role: "assistant", Content: blocks})
		case core.RoleTool:
			out = append(out, anthropicMessage{
				Role: "user",
				Content: []contentBlock{{
					Type:      "tool_result",
					ToolUseID: m.ToolCallID,
					Content:   m.Content,
				}},
			})
		default:
			out = append(out, anthropicMessage{Role: "user", Content: m.Content})
		}
	}
	return out
}
