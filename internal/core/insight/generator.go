package insight

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/echomap/echomap/internal/core/graph"
	"github.com/echomap/echomap/internal/core/model"
)

const (
	topThemeCount = 5
	exampleRunes  = 60
)

// Generator produces the ranked natural-language insight list: one overview,
// one insight per top theme by feedback volume, and at most one persona
// call-out. The order is part of the contract.
type Generator struct {
	// NewID generates insight ids; replaceable for deterministic tests.
	NewID func() string
}

func NewGenerator() *Generator {
	return &Generator{NewID: uuid.NewString}
}

type themeFeedback struct {
	text      string
	sentiment model.Sentiment
}

func (g *Generator) Generate(records []model.CanonicalFeedback, themeMap map[string]string, sentimentMap map[string]model.Sentiment) []model.Insight {
	var insights []model.Insight

	// Group feedback under themes, remembering first-encountered theme order
	// so volume ties break deterministically.
	themeOrder := []string{}
	byTheme := map[string][]themeFeedback{}
	for _, r := range records {
		theme := themeMap[r.ID]
		if theme == "" {
			continue
		}
		if _, seen := byTheme[theme]; !seen {
			themeOrder = append(themeOrder, theme)
		}
		s := sentimentMap[r.ID]
		if s == "" {
			s = model.SentimentNeutral
		}
		byTheme[theme] = append(byTheme[theme], themeFeedback{text: r.Text, sentiment: s})
	}

	var overall model.SentimentCounts
	for _, r := range records {
		s := sentimentMap[r.ID]
		if s == "" {
			s = model.SentimentNeutral
		}
		overall.Add(s)
	}

	insights = append(insights, model.Insight{
		ID:    g.NewID(),
		Title: "Feedback Overview",
		Description: fmt.Sprintf(
			"Analyzed %d pieces of feedback across %d key themes. Overall sentiment: %d positive, %d negative, and %d neutral feedback items.",
			len(records), len(themeOrder), overall.Positive, overall.Negative, overall.Neutral),
	})

	// Top themes by volume descending; sort is stable over the
	// first-encountered order established above.
	top := append([]string(nil), themeOrder...)
	sort.SliceStable(top, func(i, j int) bool {
		return len(byTheme[top[i]]) > len(byTheme[top[j]])
	})
	if len(top) > topThemeCount {
		top = top[:topThemeCount]
	}

	for _, theme := range top {
		items := byTheme[theme]

		var counts model.SentimentCounts
		for _, item := range items {
			counts.Add(item.sentiment)
		}

		var examples []string
		if text := firstWithSentiment(items, model.SentimentPositive); text != "" {
			examples = append(examples, fmt.Sprintf("Positive: %q", graph.Truncate(text, exampleRunes)))
		}
		if text := firstWithSentiment(items, model.SentimentNegative); text != "" {
			examples = append(examples, fmt.Sprintf("Negative: %q", graph.Truncate(text, exampleRunes)))
		}

		description := fmt.Sprintf("%d feedback items were identified in this theme. Sentiment: %d positive, %d negative, %d neutral.",
			len(items), counts.Positive, counts.Negative, counts.Neutral)
		if len(examples) > 0 {
			description += " Examples include: " + strings.Join(examples, "; ")
		}

		insights = append(insights, model.Insight{
			ID:            g.NewID(),
			Title:         theme,
			Description:   description,
			Sentiment:     &counts,
			FeedbackCount: len(items),
		})
	}

	if personaInsight, ok := g.personaInsight(records, sentimentMap); ok {
		insights = append(insights, personaInsight)
	}

	return insights
}

// personaInsight names the persona with the highest negative-sentiment ratio.
// Emitted whenever at least one role exists; the call-out sentence is only
// included when some persona actually has negative feedback.
func (g *Generator) personaInsight(records []model.CanonicalFeedback, sentimentMap map[string]model.Sentiment) (model.Insight, bool) {
	roleOrder := []string{}
	byRole := map[string]*model.SentimentCounts{}
	for _, r := range records {
		if r.UserRole == "" {
			continue
		}
		counts, ok := byRole[r.UserRole]
		if !ok {
			counts = &model.SentimentCounts{}
			byRole[r.UserRole] = counts
			roleOrder = append(roleOrder, r.UserRole)
		}
		s := sentimentMap[r.ID]
		if s == "" {
			s = model.SentimentNeutral
		}
		counts.Add(s)
	}

	if len(roleOrder) == 0 {
		return model.Insight{}, false
	}

	worstRole := ""
	worstRatio := 0.0
	for _, role := range roleOrder {
		counts := byRole[role]
		ratio := float64(counts.Negative) / float64(counts.Total())
		if ratio > worstRatio {
			worstRatio = ratio
			worstRole = role
		}
	}

	description := fmt.Sprintf("Feedback came from %d different user roles.", len(roleOrder))
	if worstRole != "" {
		description += fmt.Sprintf(" %s users expressed the most concerns, with %d%% negative feedback.",
			worstRole, int(math.Round(worstRatio*100)))
	}

	return model.Insight{
		ID:          g.NewID(),
		Title:       "User Role Analysis",
		Description: description,
	}, true
}

func firstWithSentiment(items []themeFeedback, s model.Sentiment) string {
	for _, item := range items {
		if item.sentiment == s {
			return item.text
		}
	}
	return ""
}
