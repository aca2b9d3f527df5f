package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func namedTool(name string) Tool {
	return NewFunctionTool(name, "test tool "+name, map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}, func(_ context.Context, _ map[string]any) (any, error) {
		return name, nil
	})
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	reg.Register(namedTool("alpha"))

	got, ok := reg.Get("alpha")
	assert.True(t, ok)
	assert.Equal(t, "alpha", got.Name())

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_RegisterOverwrites(t *testing.T) {
	reg := NewRegistry()
	reg.Register(namedTool("alpha"))

	replacement := NewFunctionTool("alpha", "replacement", map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}, func(_ context.Context, _ map[string]any) (any, error) {
		return "new", nil
	})
	reg.Register(replacement)

	got, ok := reg.Get("alpha")
	assert.True(t, ok)
	assert.Equal(t, "replacement", got.Description())
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_Resolve(t *testing.T) {
	reg := NewRegistry()
	reg.Register(namedTool("alpha"))
	reg.Register(namedTool("beta"))

	// Unknown names are dropped, not errors
	tools := reg.Resolve("alpha", "ghost", "beta")
	names := make([]string, 0, len(tools))
	for _, tt := range tools {
		names = append(names, tt.Name())
	}
	assert.ElementsMatch(t, []string{"alpha", "beta"}, names)
}

func TestRegistry_UnregisterAndClear(t *testing.T) {
	reg := NewRegistry()
	reg.Register(namedTool("alpha"))
	reg.Register(namedTool("beta"))

	reg.Unregister("alpha")
	_, ok := reg.Get("alpha")
	assert.False(t, ok)
	assert.Equal(t, 1, reg.Len())

	reg.Clear()
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.List())
}

func TestDefaultRegistry(t *testing.T) {
	assert.NotNil(t, Default())
	assert.Same(t, Default(), Default())
}
