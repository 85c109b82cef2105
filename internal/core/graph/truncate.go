package graph

import (
	"fmt"
	"strings"
)

// Truncate shortens text to at most max visible runes plus an ellipsis.
// Texts at or under the limit pass through untouched. Longer texts are cut at
// max, then backed up to the nearest preceding space when one exists past the
// midpoint, so words are not split when a decent break is available.
func Truncate(text string, max int) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "No text"
	}

	runes := []rune(trimmed)
	if len(runes) <= max {
		return trimmed
	}

	cut := max
	if space := lastSpaceBefore(runes, max); space > max/2 {
		cut = space
	}
	return string(runes[:cut]) + "…"
}

func lastSpaceBefore(runes []rune, limit int) int {
	for i := limit - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}

// feedbackLabel derives the display label for a feedback node: truncated
// text, or a placeholder naming the record when the text is blank.
func feedbackLabel(id, text string) string {
	if strings.TrimSpace(text) == "" {
		short := id
		if len(short) > 8 {
			short = short[:8]
		}
		return fmt.Sprintf("Feedback %s", short)
	}
	return Truncate(text, labelRunes)
}
