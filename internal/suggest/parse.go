package suggest

import "strings"

// ParseSuggestions extracts structured suggestions from provider text in the
// "Title: ... / Description: ..." format. When no structured pairs are found
// but the text is non-empty, the whole text becomes a single generic
// suggestion, truncated to a sane length.
func ParseSuggestions(text string) []Suggestion {
	var suggestions []Suggestion
	var current Suggestion

	flush := func() {
		if current.Title != "" && current.Description != "" {
			if current.Category == "" {
				current.Category = "general"
			}
			suggestions = append(suggestions, current)
		}
		current = Suggestion{}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Title:"):
			flush()
			current.Title = strings.TrimSpace(strings.TrimPrefix(line, "Title:"))
		case strings.HasPrefix(line, "Description:") && current.Title != "":
			current.Description = strings.TrimSpace(strings.TrimPrefix(line, "Description:"))
		}
	}
	flush()

	if len(suggestions) == 0 {
		trimmed := strings.TrimSpace(text)
		if trimmed != "" {
			if len(trimmed) > 500 {
				trimmed = trimmed[:500]
			}
			suggestions = append(suggestions, Suggestion{
				Title:       "Trading Insight",
				Description: trimmed,
				Category:    "general",
			})
		}
	}

	return suggestions
}
