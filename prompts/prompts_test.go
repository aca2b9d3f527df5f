package prompts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	names := Names()
	assert.Equal(t, []string{"data_admin", "data_analyst", "data_engineer", "data_manager", "tableau_admin"}, names)
}

func TestChain_SpecialistsOnly(t *testing.T) {
	chain := Chain()
	require.NotEmpty(t, chain)
	// The coordinator enters the chain at the head, so it must not appear
	// on the chain itself
	assert.NotContains(t, chain, Coordinator)
	for _, name := range chain {
		assert.Contains(t, Names(), name)
	}
}

func TestInstructions_EmbeddedFallback(t *testing.T) {
	text, err := Instructions("", "data_analyst")
	require.NoError(t, err)
	assert.Contains(t, text, "data analyst")

	_, err = Instructions("", "ghost")
	assert.Error(t, err)
}

func TestInstructions_FileOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data_analyst.md"), []byte("Custom analyst persona.\n"), 0o644))

	text, err := Instructions(dir, "data_analyst")
	require.NoError(t, err)
	assert.Equal(t, "Custom analyst persona.", text)

	// Missing file falls back to the embedded default
	text, err = Instructions(dir, "data_engineer")
	require.NoError(t, err)
	assert.Contains(t, text, "data engineer")
}

func TestInstructions_EmptyFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data_admin.md"), []byte("  \n"), 0o644))

	text, err := Instructions(dir, "data_admin")
	require.NoError(t, err)
	assert.Contains(t, text, "governance")
}
