// Command lumos runs the multi-agent data assistant from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/lumos-data/lumos/agent"
	"github.com/lumos-data/lumos/config"
	"github.com/lumos-data/lumos/core"
	"github.com/lumos-data/lumos/logging"
	"github.com/lumos-data/lumos/orchestrator"
	"github.com/lumos-data/lumos/prompts"
	"github.com/lumos-data/lumos/provider"
	"github.com/lumos-data/lumos/provider/anthropic"
	"github.com/lumos-data/lumos/provider/bedrock"
	"github.com/lumos-data/lumos/provider/openai"
	"github.com/lumos-data/lumos/tool"
	"github.com/lumos-data/lumos/tools/builtin"
)

var (
	flagConfigDir  = "config"
	flagPromptsDir = ""
	flagProvider   = ""
	flagAgent      = ""
)

func main() {
	root := &cobra.Command{
		Use:           "lumos",
		Short:         "Multi-agent data assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "config", "directory holding base.yaml and environment overlays")
	root.PersistentFlags().StringVar(&flagPromptsDir, "prompts-dir", "", "optional directory of per-agent prompt files")
	root.PersistentFlags().StringVar(&flagProvider, "provider", "", "model provider: openai, anthropic or bedrock")

	root.AddCommand(newAskCmd(), newAgentsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the agent team a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			sys, err := buildSystem(ctx)
			if err != nil {
				return err
			}

			question := strings.Join(args, " ")
			resp := sys.Route(ctx, []core.Message{core.UserMessage(question)}, flagAgent)
			fmt.Fprintln(cmd.OutOrStdout(), resp.Message.Content)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagAgent, "agent", "", "send the question to a specific agent")
	return cmd
}

func newAgentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List available agents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load(flagConfigDir)
			if err != nil {
				return err
			}
			entry := settings.Orchestrator.Entry
			if entry == "" {
				entry = prompts.Coordinator
			}
			for _, name := range prompts.Names() {
				marker := "  "
				if name == entry {
					marker = "* "
				}
				fmt.Fprintln(cmd.OutOrStdout(), marker+name)
			}
			return nil
		},
	}
}

// buildSystem wires settings, provider, tools and agents into a routed
// system. Errors here are startup failures and the only path to a non-zero
// exit; once the system is built, model and tool errors surface as chat
// content instead.
func buildSystem(ctx context.Context) (*orchestrator.System, error) {
	settings, err := config.Load(flagConfigDir)
	if err != nil {
		return nil, err
	}

	providerName, modelCfg, err := settings.ProviderModel(flagProvider)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(providerName); err != nil {
		return nil, err
	}

	logger := logging.NewLogger(&logging.Config{
		Level:  logging.ParseLevel(settings.Logging.Level),
		Format: settings.Logging.Format,
		Output: os.Stderr,
	})

	p, err := buildProvider(ctx, providerName, modelCfg, settings)
	if err != nil {
		return nil, err
	}

	registry := tool.NewRegistry(func(o *tool.RegistryOptions) {
		o.Logger = logger
	})
	builtin.RegisterAll(registry, settings.Tools.ExportDir)

	agents := make([]*agent.Agent, 0, len(prompts.Names()))
	for _, name := range prompts.Names() {
		instructions, err := prompts.Instructions(flagPromptsDir, name)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent.New(name, instructions, p, registry, func(o *agent.Options) {
			o.Tools = agentTools(name)
			o.Model = modelCfg.Model
			o.Temperature = modelCfg.Temperature
			o.MaxTokens = modelCfg.MaxTokens
			o.ToolTimeout = 30 * time.Second
			o.Logger = logger
			if name == "data_admin" {
				o.Kind = agent.KindGuardrail
			}
		}))
	}

	entry := settings.Orchestrator.Entry
	if entry == "" {
		entry = prompts.Coordinator
	}
	chain := settings.Orchestrator.Chain
	if len(chain) == 0 {
		chain = prompts.Chain()
	}

	return orchestrator.New(agents, func(o *orchestrator.Options) {
		o.Entry = entry
		o.Chain = chain
		o.Logger = logger
	})
}

func buildProvider(ctx context.Context, name string, cfg config.ModelConfig, settings *config.Settings) (provider.Provider, error) {
	switch name {
	case "openai":
		return openai.New(func(o *openai.Options) {
			o.Model = cfg.Model
			o.Temperature = cfg.Temperature
			o.MaxTokens = cfg.MaxTokens
			o.APIKey = settings.OpenAIAPIKey
		}), nil
	case "anthropic":
		return anthropic.New(func(o *anthropic.Options) {
			o.Model = anthropicsdk.Model(cfg.Model)
			o.Temperature = cfg.Temperature
			o.MaxTokens = cfg.MaxTokens
			o.APIKey = settings.AnthropicAPIKey
		}), nil
	case "bedrock":
		return bedrock.New(ctx, func(o *bedrock.Options) {
			o.Model = cfg.Model
			o.Temperature = cfg.Temperature
			o.MaxTokens = cfg.MaxTokens
			o.Region = settings.AWSRegion
		})
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}

// agentTools assigns tool subsets per persona. The engineer owns the export
// tools; everyone gets the basics.
func agentTools(name string) []string {
	base := []string{"echo", "current_time", "self_intro"}
	switch name {
	case "data_engineer":
		return append(base, "export_csv", "list_exports", "delete_export")
	case "data_analyst":
		return append(base, "list_exports")
	default:
		return base
	}
}
