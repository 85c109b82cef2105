package feature

import (
	"fmt"
	"strings"

	"github.com/echomap/echomap/internal/core/model"
)

// fallbackIdeas is the fixed per-theme idea table used when the remote
// generator is unavailable or fails.
var fallbackIdeas = map[string][]model.FeatureIdea{
	"Error Handling": {
		{
			Name:        "Intelligent Error Recovery",
			Description: "Automatically recover from common errors without user intervention",
			Priority:    model.PriorityHigh,
		},
		{
			Name:        "User-Friendly Error Messages",
			Description: "Replace technical error messages with clear action items for users",
			Priority:    model.PriorityMedium,
		},
	},
	"Performance": {
		{
			Name:        "Optimized Data Loading",
			Description: "Implement progressive loading and caching for faster dashboard performance",
			Priority:    model.PriorityHigh,
		},
		{
			Name:        "Background Processing",
			Description: "Move heavy calculations to background threads to keep UI responsive",
			Priority:    model.PriorityMedium,
		},
	},
	"Design": {
		{
			Name:        "Redesigned Interface",
			Description: "Streamline UI with modern design principles and improved visual hierarchy",
			Priority:    model.PriorityMedium,
		},
		{
			Name:        "Customizable Themes",
			Description: "Allow users to personalize the interface with color themes and layouts",
			Priority:    model.PriorityLow,
		},
	},
}

// FallbackIdeas returns the fixed ideas for a theme, or the generic pair for
// themes outside the table.
func FallbackIdeas(theme string) []model.FeatureIdea {
	if ideas, ok := fallbackIdeas[theme]; ok {
		return ideas
	}
	return []model.FeatureIdea{
		{
			Name:        fmt.Sprintf("%s Improvements", theme),
			Description: fmt.Sprintf("Address user feedback related to %s", strings.ToLower(theme)),
			Priority:    model.PriorityMedium,
		},
		{
			Name:        "User Experience Enhancement",
			Description: "General improvements based on feedback analysis",
			Priority:    model.PriorityMedium,
		},
	}
}
