package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/echomap/echomap/internal/core/model"
)

var roleAliases = []string{"user_role", "role", "userRole"}
var timestampAliases = []string{"timestamp", "date", "created_at"}

// Canonicalize maps raw records to canonical feedback one-to-one, preserving
// order; no record is ever dropped. Missing fields are filled: ids as
// "feedback-<index>", timestamps as the ingestion time.
func Canonicalize(records []any) []model.CanonicalFeedback {
	now := time.Now().UTC().Format(time.RFC3339)

	out := make([]model.CanonicalFeedback, 0, len(records))
	for i, record := range records {
		fb := model.CanonicalFeedback{
			ID:        stringAlias(record, []string{"id"}),
			Text:      ExtractText(record),
			UserRole:  stringAlias(record, roleAliases),
			Timestamp: stringAlias(record, timestampAliases),
		}
		if fb.ID == "" {
			fb.ID = fmt.Sprintf("feedback-%d", i)
		}
		if fb.Timestamp == "" {
			fb.Timestamp = now
		}
		out = append(out, fb)
	}
	return out
}

// stringAlias returns the first alias present as a non-blank string.
func stringAlias(record any, aliases []string) string {
	obj, ok := record.(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range aliases {
		if s, ok := obj[key].(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
