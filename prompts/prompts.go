// Package prompts resolves agent instructions. Instructions are looked up on
// disk first (one markdown file per agent) so operators can tune personas
// without a rebuild, falling back to the embedded defaults.
package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Coordinator is the agent that fronts the system and owns final answers.
const Coordinator = "data_manager"

var instructions = map[string]string{
	"data_analyst": strings.TrimSpace(`
You are a data analyst. You answer analytical questions by inspecting the
available data, computing aggregates, and summarizing findings in plain
language. Prefer concrete numbers over vague statements. When a question
needs data you cannot reach, say exactly what is missing.`),

	"data_engineer": strings.TrimSpace(`
You are a data engineer. You design and maintain data pipelines, schemas,
and exports. When asked to move or reshape data, describe the steps you take
and use the export tools to materialize results. Flag any schema or quality
issue you encounter along the way.`),

	"tableau_admin": strings.TrimSpace(`
You are a Tableau administrator. You manage workbooks, data sources, and
user access on Tableau Server. Answer operational questions about publishing,
refreshing extracts, and permissions. Never modify content you were not asked
to modify.`),

	"data_admin": strings.TrimSpace(`
You are a data administrator responsible for data governance and access
control. Review requests for sensitive data carefully. If content appears to
contain credentials or personal information, it must not be passed on.`),

	Coordinator: strings.TrimSpace(`
You are the data manager coordinating a team of specialists: a data analyst,
a data engineer, a Tableau administrator, and a data administrator. Route
work to the right specialist, combine their results, and give the user one
coherent answer. You own the final response.`),
}

// Names returns the known agent names in sorted order.
func Names() []string {
	names := make([]string, 0, len(instructions))
	for name := range instructions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chain returns the default handoff order across the specialists. The
// coordinator is deliberately absent: as the entry agent it enters the chain
// at the head on its first continue decision, and listing it at the tail
// would leave it with no successor.
func Chain() []string {
	return []string{"data_analyst", "data_engineer", "tableau_admin", "data_admin"}
}

// Instructions returns the prompt for the named agent. When dir is non-empty
// and contains <name>.md, the file content wins over the embedded default.
func Instructions(dir, name string) (string, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name+".md"))
		if err == nil {
			text := strings.TrimSpace(string(data))
			if text != "" {
				return text, nil
			}
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("prompts: failed to read %s: %w", name, err)
		}
	}
	text, ok := instructions[name]
	if !ok {
		return "", fmt.Errorf("prompts: unknown agent %q", name)
	}
	return text, nil
}
