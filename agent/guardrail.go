package agent

import "strings"

// leakIndicators flag assistant output that may expose sensitive material.
var leakIndicators = []string{"password", "secret", "confidential", "private"}

// RedactedNotice replaces output that tripped the leak check.
const RedactedNotice = "Content has been redacted due to potential PII information."

// ContainsLeak reports whether content matches any leak indicator.
func ContainsLeak(content string) bool {
	lower := strings.ToLower(content)
	for _, indicator := range leakIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// ApplyGuardrail returns the content unchanged unless it trips the leak
// check, in which case a fixed redaction notice is returned instead.
func ApplyGuardrail(content string) string {
	if ContainsLeak(content) {
		return RedactedNotice
	}
	return content
}
