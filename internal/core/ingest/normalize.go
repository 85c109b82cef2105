package ingest

import (
	"sort"
	"strings"
)

// FallbackText is used when no extraction strategy yields anything.
const FallbackText = "No feedback text available"

// A textStrategy tries to pull a usable text string out of one raw record.
// Empty return means the strategy does not apply.
type textStrategy func(record any) string

// The strategies run in order and the first hit wins. Later entries are
// strictly weaker guesses, so this list is the single place the priority
// lives; do not reorder.
var textStrategies = []textStrategy{
	fieldString("text"),
	fieldString("content"),
	fieldString("message"),
	fieldString("feedback"),
	recordIsString,
	fieldString("description"),
	fieldString("comment"),
	nestedBodyText,
	anyStringField,
}

// ExtractText returns a best-effort, trimmed, non-empty text for a record of
// arbitrary shape, or FallbackText when nothing usable is found.
func ExtractText(record any) string {
	for _, strategy := range textStrategies {
		if s := strategy(record); s != "" {
			return s
		}
	}
	return FallbackText
}

func fieldString(key string) textStrategy {
	return func(record any) string {
		obj, ok := record.(map[string]any)
		if !ok {
			return ""
		}
		if s, ok := obj[key].(string); ok {
			return strings.TrimSpace(s)
		}
		return ""
	}
}

func recordIsString(record any) string {
	if s, ok := record.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func nestedBodyText(record any) string {
	obj, ok := record.(map[string]any)
	if !ok {
		return ""
	}
	body, ok := obj["body"].(map[string]any)
	if !ok {
		return ""
	}
	if s, ok := body["text"].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// anyStringField is the last resort: the first non-empty string-valued
// property. Keys are sorted so the pick is stable across runs, since Go map
// iteration order is randomized.
func anyStringField(record any) string {
	obj, ok := record.(map[string]any)
	if !ok {
		return ""
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if s, ok := obj[k].(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
