package builtin

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lumos-data/lumos/tool"
)

// safeExportPath rejects names that would escape or collide outside the
// export directory. Only plain file names ending in .csv are accepted.
func safeExportPath(dir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	if name != filepath.Base(name) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid filename %q", name)
	}
	if !strings.HasSuffix(name, ".csv") {
		name += ".csv"
	}
	return filepath.Join(dir, name), nil
}

// ExportCSV returns a tool that writes tabular rows to a CSV file under dir.
func ExportCSV(dir string) tool.Tool {
	return tool.NewFunctionTool(
		"export_csv",
		"Export tabular data to a CSV file in the export directory.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"filename": map[string]any{
					"type":        "string",
					"description": "Name of the CSV file to create",
				},
				"header": map[string]any{
					"type":        "array",
					"description": "Optional column names written as the first row",
				},
				"rows": map[string]any{
					"type":        "array",
					"description": "Rows to write, each an array of cell values",
				},
			},
			"required": []string{"filename", "rows"},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			name, _ := args["filename"].(string)
			path, err := safeExportPath(dir, name)
			if err != nil {
				return nil, err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create export directory: %w", err)
			}

			f, err := os.Create(path)
			if err != nil {
				return nil, fmt.Errorf("failed to create %s: %w", name, err)
			}
			defer f.Close()

			w := csv.NewWriter(f)
			count := 0
			if header, ok := args["header"].([]any); ok && len(header) > 0 {
				if err := w.Write(toRecord(header)); err != nil {
					return nil, err
				}
			}
			rows, _ := args["rows"].([]any)
			for _, row := range rows {
				cells, ok := row.([]any)
				if !ok {
					return nil, fmt.Errorf("each row must be an array of values")
				}
				if err := w.Write(toRecord(cells)); err != nil {
					return nil, err
				}
				count++
			}
			w.Flush()
			if err := w.Error(); err != nil {
				return nil, err
			}
			return fmt.Sprintf("Exported %d rows to %s", count, filepath.Base(path)), nil
		},
	)
}

// ListExports returns a tool listing CSV files in the export directory.
func ListExports(dir string) tool.Tool {
	return tool.NewFunctionTool(
		"list_exports",
		"List CSV files in the export directory.",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(_ context.Context, _ map[string]any) (any, error) {
			entries, err := os.ReadDir(dir)
			if err != nil {
				if os.IsNotExist(err) {
					return []string{}, nil
				}
				return nil, err
			}
			var names []string
			for _, e := range entries {
				if !e.IsDir() && strings.HasSuffix(e.Name(), ".csv") {
					names = append(names, e.Name())
				}
			}
			sort.Strings(names)
			return names, nil
		},
	)
}

// DeleteExport returns a tool removing a single CSV file from the export
// directory.
func DeleteExport(dir string) tool.Tool {
	return tool.NewFunctionTool(
		"delete_export",
		"Delete a CSV file from the export directory.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"filename": map[string]any{
					"type":        "string",
					"description": "Name of the CSV file to delete",
				},
			},
			"required": []string{"filename"},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			name, _ := args["filename"].(string)
			path, err := safeExportPath(dir, name)
			if err != nil {
				return nil, err
			}
			if err := os.Remove(path); err != nil {
				if os.IsNotExist(err) {
					return nil, fmt.Errorf("export %s does not exist", filepath.Base(path))
				}
				return nil, err
			}
			return fmt.Sprintf("Deleted %s", filepath.Base(path)), nil
		},
	)
}

func toRecord(cells []any) []string {
	record := make([]string, len(cells))
	for i, c := range cells {
		record[i] = fmt.Sprint(c)
	}
	return record
}
