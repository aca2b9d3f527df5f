package builtin

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()

	result, err := ExportCSV(dir).Call(context.Background(), map[string]any{
		"filename": "report",
		"header":   []any{"name", "count"},
		"rows": []any{
			[]any{"alpha", 1},
			[]any{"beta", 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Exported 2 rows to report.csv", result)

	data, err := os.ReadFile(filepath.Join(dir, "report.csv"))
	require.NoError(t, err)
	assert.Equal(t, "name,count\nalpha,1\nbeta,2\n", string(data))
}

func TestExportCSV_RejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()

	_, err := ExportCSV(dir).Call(context.Background(), map[string]any{
		"filename": "../escape.csv",
		"rows":     []any{},
	})
	assert.Error(t, err)
}

func TestExportCSV_BadRowShape(t *testing.T) {
	dir := t.TempDir()

	_, err := ExportCSV(dir).Call(context.Background(), map[string]any{
		"filename": "bad",
		"rows":     []any{"not-a-row"},
	})
	assert.Error(t, err)
}

func TestListExports(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte("x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x\n"), 0o644))

	result, err := ListExports(dir).Call(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "b.csv"}, result)
}

func TestListExports_MissingDir(t *testing.T) {
	result, err := ListExports(filepath.Join(t.TempDir(), "nope")).Call(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestDeleteExport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.csv"), []byte("x\n"), 0o644))

	result, err := DeleteExport(dir).Call(context.Background(), map[string]any{"filename": "old.csv"})
	require.NoError(t, err)
	assert.Equal(t, "Deleted old.csv", result)

	_, err = DeleteExport(dir).Call(context.Background(), map[string]any{"filename": "old.csv"})
	assert.ErrorContains(t, err, "does not exist")
}
