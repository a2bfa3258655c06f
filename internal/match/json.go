package match

import "strings"

// extractJSONObject isolates a JSON object from an LLM reply. Models often
// wrap JSON in ```json fences even when instructed not to, and sometimes
// surround it with prose; the fences are stripped and the text is sliced
// from the first '{' to the last '}'.
func extractJSONObject(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return text
}
