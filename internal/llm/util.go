package llm

import (
	"regexp"
	"strings"
)

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		return text
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			// If first line looks like a language identifier (no spaces, short), skip it
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		return text
	}

	return text
}

var leadingMarker = regexp.MustCompile(`^\s*(?:[-*•–]|\d+[.)])\s*`)

// ParseBullets splits a model response into bullet lines. List markers and
// numbering are removed, blank lines and preamble lines ending in ":" are
// dropped, and at most max bullets are returned when max > 0.
func ParseBullets(text string, max int) []string {
	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(leadingMarker.ReplaceAllString(line, ""))
		line = strings.Trim(line, `"`)
		if line == "" || strings.HasSuffix(line, ":") {
			continue
		}
		bullets = append(bullets, line)
		if max > 0 && len(bullets) == max {
			break
		}
	}
	return bullets
}

// CleanSummary trims a model response and drops a leading preamble such as
// "Here is the summary:".
func CleanSummary(text string) string {
	text = strings.TrimSpace(text)
	if first, rest, ok := strings.Cut(text, "\n"); ok && strings.HasSuffix(strings.TrimSpace(first), ":") {
		text = strings.TrimSpace(rest)
	}
	return strings.Trim(text, `"`)
}
