package classify

import "strings"

// keywordRule maps a keyword set to a theme. Rules run in order and the
// first rule with any matching keyword wins, so the order below is part of
// the classifier's contract; do not reorder.
type keywordRule struct {
	keywords []string
	theme    string
}

var keywordRules = []keywordRule{
	{[]string{"crash", "error", "bug"}, "Error Handling"},
	{[]string{"slow", "performance", "timeout", "load"}, "Performance"},
	{[]string{"mobile", "app", "phone"}, "Mobile Experience"},
	{[]string{"ui", "interface", "design", "layout", "look"}, "Design"},
	{[]string{"report", "dashboard"}, "Data Visualization"},
	{[]string{"export", "excel", "pdf"}, "Data Export"},
	{[]string{"search", "filter", "find"}, "Navigation"},
	{[]string{"easy", "difficult", "confusing", "intuitive", "user-friendly"}, "Usability"},
	{[]string{"feature", "function", "capability"}, "Functionality"},
}

// DefaultTheme is assigned when no keyword rule matches.
const DefaultTheme = "General Feedback"

// ClassifyKeywords is the deterministic local classifier used whenever the
// remote service is unavailable or fails. Matching is case-insensitive
// substring matching.
func ClassifyKeywords(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.theme
			}
		}
	}
	return DefaultTheme
}
