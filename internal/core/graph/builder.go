package graph

import (
	"strings"

	"github.com/google/uuid"

	"github.com/echomap/echomap/internal/core/model"
)

const (
	labelRunes = 20

	themeBaseValue    = 25
	themeCountWeight  = 2
	personaNodeValue  = 20
	feedbackNodeValue = 15
)

// UnclassifiedTheme marks feedback nodes with no theme assignment.
const UnclassifiedTheme = "Unclassified"

// Builder assembles one graph from canonical records plus the theme and
// sentiment maps. The de-dup maps are scoped to a single Build call; a
// Builder is not reused across imports and there is no process-wide state.
type Builder struct {
	// EdgeID generates edge ids; replaceable for deterministic tests.
	EdgeID func() string

	graph    *model.Graph
	themes   map[string]*model.Node // slug -> node
	personas map[string]*model.Node // slug -> node
}

func NewBuilder() *Builder {
	return &Builder{
		EdgeID: uuid.NewString,
	}
}

// Slug derives the deterministic node id suffix from a display name:
// lowercased, whitespace runs collapsed to hyphens. Two records whose names
// differ only in case or spacing resolve to the same node.
func Slug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

// Build produces the full node/edge graph. Construction order matters: theme
// and persona counts are folded sequentially before feedback nodes and edges
// reference them.
func (b *Builder) Build(records []model.CanonicalFeedback, themeMap map[string]string, sentimentMap map[string]model.Sentiment) *model.Graph {
	b.graph = model.NewGraph()
	b.themes = make(map[string]*model.Node)
	b.personas = make(map[string]*model.Node)

	// Theme nodes, counts folded in record order.
	for _, r := range records {
		if theme := themeMap[r.ID]; theme != "" {
			b.getOrCreateTheme(theme).FeedbackCount++
		}
	}
	for _, n := range b.themes {
		n.Value = themeBaseValue + themeCountWeight*n.FeedbackCount
	}

	// Persona nodes with folded sentiment stats.
	for _, r := range records {
		if r.UserRole == "" {
			continue
		}
		p := b.getOrCreatePersona(r.UserRole)
		p.FeedbackCount++
		s := sentimentMap[r.ID]
		if s == "" {
			s = model.SentimentNeutral
		}
		p.SentimentStats.Add(s)
	}

	// One feedback node per record, no drops.
	for _, r := range records {
		theme := themeMap[r.ID]
		if theme == "" {
			theme = UnclassifiedTheme
		}
		s := sentimentMap[r.ID]
		if s == "" {
			s = model.SentimentNeutral
		}
		label := feedbackLabel(r.ID, r.Text)
		b.graph.Nodes = append(b.graph.Nodes, &model.Node{
			ID:        r.ID,
			Type:      model.NodeFeedback,
			Name:      label,
			Label:     label,
			Value:     feedbackNodeValue,
			FullText:  r.Text,
			Theme:     theme,
			Sentiment: s,
			UserRole:  r.UserRole,
			Timestamp: r.Timestamp,
		})
	}

	// Edges: feedback->theme, feedback->persona, then persona->theme for
	// every co-occurring pair, all deduplicated by unordered endpoints.
	for _, r := range records {
		if theme := themeMap[r.ID]; theme != "" {
			b.addEdge(r.ID, b.themes[Slug(theme)].ID, model.StrengthFeedbackTheme)
		}
		if r.UserRole != "" {
			b.addEdge(r.ID, b.personas[Slug(r.UserRole)].ID, model.StrengthFeedbackPersona)
		}
	}
	for _, r := range records {
		theme := themeMap[r.ID]
		if theme == "" || r.UserRole == "" {
			continue
		}
		b.addEdge(b.personas[Slug(r.UserRole)].ID, b.themes[Slug(theme)].ID, model.StrengthPersonaTheme)
	}

	return b.graph
}

func (b *Builder) getOrCreateTheme(name string) *model.Node {
	slug := Slug(name)
	if n, ok := b.themes[slug]; ok {
		return n
	}
	n := &model.Node{
		ID:    "theme-" + slug,
		Type:  model.NodeTheme,
		Name:  name,
		Label: name,
	}
	b.themes[slug] = n
	b.graph.Nodes = append(b.graph.Nodes, n)
	return n
}

func (b *Builder) getOrCreatePersona(role string) *model.Node {
	slug := Slug(role)
	if n, ok := b.personas[slug]; ok {
		return n
	}
	n := &model.Node{
		ID:             "persona-" + slug,
		Type:           model.NodePersona,
		Name:           role,
		Label:          role,
		Value:          personaNodeValue,
		SentimentStats: &model.SentimentCounts{},
	}
	b.personas[slug] = n
	b.graph.Nodes = append(b.graph.Nodes, n)
	return n
}

func (b *Builder) addEdge(source, target string, strength float64) {
	if b.graph.HasEdge(source, target) {
		return
	}
	b.graph.Edges = append(b.graph.Edges, &model.Edge{
		ID:       b.EdgeID(),
		Source:   source,
		Target:   target,
		Strength: strength,
	})
}
