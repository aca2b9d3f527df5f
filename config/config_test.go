package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad_DefaultsWhenNoFiles(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("AWS_REGION", "")

	s, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "dev", s.Environment)
	assert.Equal(t, "openai", s.Models.DefaultProvider)
	assert.Equal(t, "gpt-4o-mini", s.Models.OpenAI.Model)
}

func TestLoad_BaseAndEnvironmentOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", `
models:
  default_provider: bedrock
  bedrock:
    model: base-model
    temperature: 0.2
    max_tokens: 1024
logging:
  level: debug
`)
	writeConfig(t, dir, "prod.yaml", `
models:
  bedrock:
    model: prod-model
    temperature: 0.2
    max_tokens: 1024
`)
	t.Setenv("ENVIRONMENT", "prod")

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "bedrock", s.Models.DefaultProvider)
	assert.Equal(t, "prod-model", s.Models.Bedrock.Model)
	assert.Equal(t, "debug", s.Logging.Level)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", "models: [not a mapping")

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_CredentialsFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ANTHROPIC_API_KEY", "ak-test")
	t.Setenv("AWS_REGION", "eu-central-1")

	s, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "sk-test", s.OpenAIAPIKey)
	assert.Equal(t, "ak-test", s.AnthropicAPIKey)
	assert.Equal(t, "eu-central-1", s.AWSRegion)
}

func TestProviderModel(t *testing.T) {
	s := Default()

	name, cfg, err := s.ProviderModel("")
	require.NoError(t, err)
	assert.Equal(t, "openai", name)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)

	name, cfg, err = s.ProviderModel("Bedrock")
	require.NoError(t, err)
	assert.Equal(t, "bedrock", name)
	assert.Contains(t, cfg.Model, "anthropic.")

	_, _, err = s.ProviderModel("ollama")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	s := Default()

	err := s.Validate("openai")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	s.OpenAIAPIKey = "sk-test"
	assert.NoError(t, s.Validate("openai"))

	err = s.Validate("anthropic")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	// Bedrock defers to the AWS SDK credential chain
	assert.NoError(t, s.Validate("bedrock"))

	assert.Error(t, s.Validate("ollama"))
}
