// Package config loads application settings from YAML files with
// environment overlays plus a local .env file for credentials. Settings are
// opaque inputs to the core packages; only construction-time validation can
// fail, and that failure is fatal by design.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingCredentials is returned when the selected provider has no usable
// credentials. It is the one configuration error treated as fatal.
var ErrMissingCredentials = errors.New("missing required credentials")

// ModelConfig holds per-provider generation parameters.
type ModelConfig struct {
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// ModelsConfig selects the default provider and its parameters.
type ModelsConfig struct {
	DefaultProvider string      `yaml:"default_provider"`
	OpenAI          ModelConfig `yaml:"openai"`
	Anthropic       ModelConfig `yaml:"anthropic"`
	Bedrock         ModelConfig `yaml:"bedrock"`
}

// ToolsConfig configures the builtin tool set.
type ToolsConfig struct {
	ExportDir string `yaml:"export_dir"`
}

// OrchestratorConfig configures routing.
type OrchestratorConfig struct {
	Entry string   `yaml:"entry"`
	Chain []string `yaml:"chain"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Settings is the root configuration object.
type Settings struct {
	Environment  string             `yaml:"environment"`
	Models       ModelsConfig       `yaml:"models"`
	Tools        ToolsConfig        `yaml:"tools"`
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`
	Logging      LoggingConfig      `yaml:"logging"`

	// Credentials come from the environment, never from YAML.
	OpenAIAPIKey    string `yaml:"-"`
	AnthropicAPIKey string `yaml:"-"`
	AWSRegion       string `yaml:"-"`
}

// Default returns the baseline settings used when no YAML files exist.
func Default() *Settings {
	return &Settings{
		Environment: "dev",
		Models: ModelsConfig{
			DefaultProvider: "openai",
			OpenAI:          ModelConfig{Model: "gpt-4o-mini", Temperature: 0.1, MaxTokens: 4096},
			Anthropic:       ModelConfig{Model: "claude-3-5-sonnet-20241022", Temperature: 0.1, MaxTokens: 4096},
			Bedrock:         ModelConfig{Model: "anthropic.claude-3-5-sonnet-20241022-v2:0", Temperature: 0.1, MaxTokens: 4096},
		},
		Tools:   ToolsConfig{ExportDir: "./exports"},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}

// Load reads settings from configDir: base.yaml first, then an optional
// <environment>.yaml overlay, then environment variables for credentials.
// A missing directory or missing files fall back to defaults; a present but
// malformed file is an error.
func Load(configDir string) (*Settings, error) {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	s := Default()
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		s.Environment = env
	}

	if configDir != "" {
		if err := mergeYAML(s, filepath.Join(configDir, "base.yaml")); err != nil {
			return nil, err
		}
		if err := mergeYAML(s, filepath.Join(configDir, s.Environment+".yaml")); err != nil {
			return nil, err
		}
	}

	s.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	s.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	s.AWSRegion = os.Getenv("AWS_REGION")

	return s, nil
}

func mergeYAML(s *Settings, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return nil
}

// ProviderModel returns the model parameters for the named provider,
// defaulting to the configured default provider when name is empty.
func (s *Settings) ProviderModel(name string) (string, ModelConfig, error) {
	if name == "" {
		name = s.Models.DefaultProvider
	}
	switch strings.ToLower(name) {
	case "openai":
		return "openai", s.Models.OpenAI, nil
	case "anthropic":
		return "anthropic", s.Models.Anthropic, nil
	case "bedrock":
		return "bedrock", s.Models.Bedrock, nil
	default:
		return "", ModelConfig{}, fmt.Errorf("config: unknown provider %q", name)
	}
}

// Validate checks that the named provider has the credentials it needs.
// Bedrock credentials are resolved by the AWS SDK chain and validated at
// provider construction instead.
func (s *Settings) Validate(providerName string) error {
	switch strings.ToLower(providerName) {
	case "openai":
		if s.OpenAIAPIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrMissingCredentials)
		}
	case "anthropic":
		if s.AnthropicAPIKey == "" {
			return fmt.Errorf("%w: ANTHROPIC_API_KEY is not set", ErrMissingCredentials)
		}
	case "bedrock":
		// AWS SDK default chain; nothing to check here.
	default:
		return fmt.Errorf("config: unknown provider %q", providerName)
	}
	return nil
}
