package feature

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/echomap/echomap/internal/config"
	"github.com/echomap/echomap/internal/core/common"
	"github.com/echomap/echomap/internal/core/model"
	"github.com/echomap/echomap/internal/llm"
)

const defaultFeaturesPrompt = `You are a product manager who generates practical feature ideas based on user feedback themes.

Generate 2-3 feature ideas to address the "%s" theme in our application. %s

Respond with a JSON array of features with the format [{"name": "Feature Name", "description": "Brief description", "priority": "High/Medium/Low"}]`

const (
	maxContextQuotes     = 5
	fallbackThemeCount   = 3
	highPriorityFeedback = 5
)

// Engine turns high-volume themes into candidate feature nodes appended to
// an existing graph. Remote calls run sequentially per theme so generated
// ids stay deterministic and remote rate limits are respected.
type Engine struct {
	LLM     llm.LLMClient
	Prompts config.PromptOverrides

	// Eligibility knobs, normally copied from config.PipelineConfig.
	Threshold int // minimum feedbackCount for a theme
	TopThemes int // how many eligible themes to process

	// NewID generates feature node and edge ids; replaceable in tests.
	NewID func() string
}

func NewEngine(client llm.LLMClient, prompts config.PromptOverrides, pipeline config.PipelineConfig) *Engine {
	return &Engine{
		LLM:       client,
		Prompts:   prompts,
		Threshold: pipeline.FeatureThreshold,
		TopThemes: pipeline.FeatureTopThemes,
		NewID:     uuid.NewString,
	}
}

// Suggest generates feature nodes for the graph's significant themes and
// links each to its origin theme plus every persona already attached to that
// theme. Per-theme failures degrade to the fallback table; nothing here can
// fail the pipeline.
func (e *Engine) Suggest(ctx context.Context, g *model.Graph, records []model.CanonicalFeedback) {
	significant := e.significantThemes(g)
	if len(significant) == 0 {
		return
	}

	created := 0
	for _, theme := range significant {
		ideas, err := e.generateRemote(ctx, theme.Name, relatedFeedback(records, theme.Name))
		if err != nil {
			log.Printf("feature generation for %q degraded to fallback table: %v", theme.Name, err)
			ideas = FallbackIdeas(theme.Name)
		}

		for _, idea := range ideas {
			if idea.Name == "" {
				continue
			}
			priority := idea.Priority
			if priority == "" {
				priority = model.PriorityMedium
			}
			e.attach(g, theme, &model.Node{
				ID:          "feature-" + e.NewID(),
				Type:        model.NodeFeature,
				Name:        idea.Name,
				Label:       idea.Name,
				Description: idea.Description,
				Priority:    priority,
				OriginTheme: theme.ID,
			})
			created++
		}
	}

	// Guarantee at least some features exist when every theme produced none.
	if created == 0 {
		limit := fallbackThemeCount
		if len(significant) < limit {
			limit = len(significant)
		}
		for _, theme := range significant[:limit] {
			priority := model.PriorityMedium
			if theme.FeedbackCount >= highPriorityFeedback {
				priority = model.PriorityHigh
			}
			e.attach(g, theme, &model.Node{
				ID:          "feature-" + e.NewID(),
				Type:        model.NodeFeature,
				Name:        fmt.Sprintf("%s Improvement", theme.Name),
				Label:       fmt.Sprintf("%s Improvement", theme.Name),
				Priority:    priority,
				OriginTheme: theme.ID,
				Fallback:    true,
			})
		}
	}
}

// significantThemes returns themes meeting the volume threshold, by
// descending feedback count, capped at TopThemes. The sort is stable over
// graph insertion order so equal counts keep their build order.
func (e *Engine) significantThemes(g *model.Graph) []*model.Node {
	themes := g.NodesOfType(model.NodeTheme)
	var eligible []*model.Node
	for _, t := range themes {
		if t.FeedbackCount >= e.Threshold {
			eligible = append(eligible, t)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].FeedbackCount > eligible[j].FeedbackCount
	})
	if len(eligible) > e.TopThemes {
		eligible = eligible[:e.TopThemes]
	}
	return eligible
}

// attach adds the feature node plus its edges: origin theme, then every
// persona already linked to that theme, deduplicated.
func (e *Engine) attach(g *model.Graph, theme *model.Node, feature *model.Node) {
	g.Nodes = append(g.Nodes, feature)
	e.addEdge(g, theme.ID, feature.ID, model.StrengthFeatureTheme)

	for _, edge := range g.Edges {
		var personaID string
		switch {
		case edge.Source == theme.ID:
			personaID = edge.Target
		case edge.Target == theme.ID:
			personaID = edge.Source
		default:
			continue
		}
		persona := g.NodeByID(personaID)
		if persona == nil || persona.Type != model.NodePersona {
			continue
		}
		e.addEdge(g, persona.ID, feature.ID, model.StrengthFeaturePersona)
	}
}

func (e *Engine) addEdge(g *model.Graph, source, target string, strength float64) {
	if g.HasEdge(source, target) {
		return
	}
	g.Edges = append(g.Edges, &model.Edge{
		ID:       e.NewID(),
		Source:   source,
		Target:   target,
		Strength: strength,
	})
}

// relatedFeedback gathers context quotes: feedback whose text contains the
// theme name as a case-insensitive substring. A crude heuristic, kept for
// behavioral parity with the classifier-independent original.
func relatedFeedback(records []model.CanonicalFeedback, themeName string) []string {
	needle := strings.ToLower(themeName)
	var quotes []string
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Text), needle) {
			quotes = append(quotes, r.Text)
			if len(quotes) == maxContextQuotes {
				break
			}
		}
	}
	return quotes
}

func (e *Engine) generateRemote(ctx context.Context, themeName string, quotes []string) ([]model.FeatureIdea, error) {
	if e.LLM == nil {
		return nil, llm.ErrNoCredentials
	}

	tpl := e.Prompts.Features
	if tpl == "" {
		tpl = defaultFeaturesPrompt
	}

	quoted := ""
	if len(quotes) > 0 {
		quoted = "Here are some examples of user feedback related to this theme:\n\n" + strings.Join(quotes, "\n\n")
	}

	response, err := e.LLM.Generate(ctx, fmt.Sprintf(tpl, themeName, quoted))
	if err != nil {
		return nil, fmt.Errorf("feature generation request failed: %w", err)
	}

	ideas, err := common.ParseJSONList[model.FeatureIdea](response)
	if err != nil {
		return nil, fmt.Errorf("could not parse feature ideas from response: %w", err)
	}
	if len(ideas) == 0 {
		return nil, fmt.Errorf("response carried no feature ideas")
	}
	return ideas, nil
}
