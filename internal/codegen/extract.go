package codegen

import "strings"

// extractGoSource strips a surrounding ```go fenced block from an LLM
// response, if present, returning the raw response otherwise.
func extractGoSource(raw string) string {
	content := strings.TrimSpace(raw)
	if !strings.HasPrefix(content, "```") {
		return raw
	}

	lines := strings.Split(content, "\n")
	start := 1
	end := len(lines)
	for i := len(lines) - 1; i > 0; i-- {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
			end = i
			break
		}
	}
	if start >= end {
		return content
	}
	return strings.Join(lines[start:end], "\n")
}
