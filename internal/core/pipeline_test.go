package core

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/echomap/echomap/internal/config"
	"github.com/echomap/echomap/internal/core/ingest"
	"github.com/echomap/echomap/internal/core/model"
)

const sampleImport = `[
	{"id": "f1", "text": "The dashboard is too slow", "role": "Data Analyst", "date": "2024-01-15T10:00:00Z"},
	{"id": "f2", "text": "I love the new design", "userRole": "data analyst", "created_at": "2024-01-16T11:00:00Z"}
]`

func TestProcessDocument_DegradedEndToEnd(t *testing.T) {
	// A failing remote client exercises every deterministic fallback at once.
	client := &MockLLMClient{Err: fmt.Errorf("connection refused")}
	p := NewPipeline(client, config.Default())

	result, err := p.ProcessDocument(context.Background(), []byte(sampleImport))
	assert.NoError(t, err)

	g := result.Graph
	// Two themes, one persona (case-insensitive role merge), two feedback
	// nodes. No theme reaches the feature threshold of two.
	assert.Len(t, g.Nodes, 5)
	assert.Empty(t, g.NodesOfType(model.NodeFeature))
	assert.Len(t, g.Edges, 6)

	f1 := g.NodeByID("f1")
	if assert.NotNil(t, f1) {
		assert.Equal(t, "Performance", f1.Theme)
		assert.Equal(t, model.SentimentNegative, f1.Sentiment)
	}
	f2 := g.NodeByID("f2")
	if assert.NotNil(t, f2) {
		assert.Equal(t, "Design", f2.Theme)
		assert.Equal(t, model.SentimentPositive, f2.Sentiment)
	}

	persona := g.NodeByID("persona-data-analyst")
	if assert.NotNil(t, persona) {
		assert.Equal(t, 2, persona.FeedbackCount)
		assert.Equal(t, &model.SentimentCounts{Positive: 1, Negative: 1}, persona.SentimentStats)
	}

	assert.Equal(t, 2, result.Analytics.TotalFeedback)
	assert.Equal(t, map[string]int{"Performance": 1, "Design": 1}, result.Analytics.ThemeDistribution)
	assert.Equal(t, map[string]int{"2024-01-15": 1, "2024-01-16": 1}, result.Analytics.FeedbackByDate)

	// Overview, two theme insights, one persona insight.
	assert.Len(t, result.Insights, 4)
	assert.Equal(t, "Feedback Overview", result.Insights[0].Title)

	assert.Len(t, result.Feedback, 2)
	assert.Equal(t, "Data Analyst", result.Feedback[0].UserRole)
}

func TestProcessDocument_WithWorkingClient(t *testing.T) {
	client := &MockLLMClient{ResponseQueue: []string{
		`[{"feedbackIndex": 1, "theme": "Performance"}, {"feedbackIndex": 2, "theme": "Performance"}]`,
		`[{"feedbackIndex": 1, "sentiment": "Negative"}, {"feedbackIndex": 2, "sentiment": "Negative"}]`,
		`[{"name": "Query Cache", "description": "Cache hot queries", "priority": "High"}]`,
	}}
	p := NewPipeline(client, config.Default())

	result, err := p.ProcessDocument(context.Background(), []byte(sampleImport))
	assert.NoError(t, err)

	// Both records share one theme, which now clears the feature threshold.
	features := result.Graph.NodesOfType(model.NodeFeature)
	if assert.Len(t, features, 1) {
		assert.Equal(t, "Query Cache", features[0].Name)
	}
	// Classify, sentiment and one feature call.
	assert.Len(t, client.Prompts, 3)
}

func TestProcessDocument_InvalidInput(t *testing.T) {
	p := NewPipeline(nil, config.Default())

	_, err := p.ProcessDocument(context.Background(), []byte(`{"a": [], "b": []}`))
	assert.Error(t, err)
}

func TestExportAt(t *testing.T) {
	p := NewPipeline(&MockLLMClient{Err: fmt.Errorf("offline")}, config.Default())
	result, err := p.ProcessDocument(context.Background(), []byte(sampleImport))
	assert.NoError(t, err)

	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	doc := ExportAt(result, now)

	assert.Equal(t, "2024-02-01T12:00:00Z", doc.Analytics.ExportDate)
	assert.Equal(t, "1.0", doc.Analytics.ExportVersion)
	assert.Equal(t, result.Graph.Nodes, doc.Nodes)
	assert.Equal(t, result.Graph.Edges, doc.Links)
	assert.Equal(t, result.Feedback, doc.FeedbackItems)
}

func TestExportAt_EmptyResultHasNoNullArrays(t *testing.T) {
	p := NewPipeline(nil, config.Default())
	result := p.Process(context.Background(), nil)

	data, err := json.Marshal(ExportAt(result, time.Now()))
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "null")
}

func TestExport_FeedbackRoundTrip(t *testing.T) {
	p := NewPipeline(&MockLLMClient{Err: fmt.Errorf("offline")}, config.Default())
	first, err := p.ProcessDocument(context.Background(), []byte(sampleImport))
	assert.NoError(t, err)

	doc := ExportAt(first, time.Now())

	// Re-importing the exported feedback reproduces the same canonical
	// records, so a second pipeline run is equivalent to the first.
	data, err := json.Marshal(doc.FeedbackItems)
	assert.NoError(t, err)

	raw, err := ingest.ParseDocument(data)
	assert.NoError(t, err)
	assert.Equal(t, first.Feedback, ingest.Canonicalize(raw))

	second := p.Process(context.Background(), raw)
	assert.Equal(t, first.Analytics, second.Analytics)
	assert.Len(t, second.Graph.Nodes, len(first.Graph.Nodes))
}
