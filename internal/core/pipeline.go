package core

import (
	"context"

	"github.com/echomap/echomap/internal/config"
	"github.com/echomap/echomap/internal/core/analytics"
	"github.com/echomap/echomap/internal/core/classify"
	"github.com/echomap/echomap/internal/core/feature"
	"github.com/echomap/echomap/internal/core/graph"
	"github.com/echomap/echomap/internal/core/ingest"
	"github.com/echomap/echomap/internal/core/insight"
	"github.com/echomap/echomap/internal/core/model"
	"github.com/echomap/echomap/internal/core/sentiment"
	"github.com/echomap/echomap/internal/llm"
)

// Pipeline is the feedback-to-graph transformation: canonicalize, classify,
// analyze sentiment, build the graph, derive analytics and insights, then
// append feature suggestions. One invocation per import event; the Result
// fully replaces any prior snapshot.
type Pipeline struct {
	Classifier *classify.Classifier
	Sentiment  *sentiment.Analyzer
	Insights   *insight.Generator
	Features   *feature.Engine
}

// Result is the complete output of one import. Once returned it is a frozen
// snapshot: the renderer and panels read it, nothing mutates it.
type Result struct {
	Graph     *model.Graph              `json:"graph"`
	Insights  []model.Insight           `json:"insights"`
	Analytics model.AnalyticsSnapshot   `json:"analytics"`
	Feedback  []model.CanonicalFeedback `json:"feedbackItems"`
}

func NewPipeline(client llm.LLMClient, cfg *config.Config) *Pipeline {
	return &Pipeline{
		Classifier: classify.NewClassifier(client, cfg.Prompts),
		Sentiment:  sentiment.NewAnalyzer(client, cfg.Prompts),
		Insights:   insight.NewGenerator(),
		Features:   feature.NewEngine(client, cfg.Prompts, cfg.Pipeline),
	}
}

// ProcessDocument parses a raw JSON import and runs the full pipeline. Only
// input-format errors are returned; once parsing succeeds a complete graph is
// always produced.
func (p *Pipeline) ProcessDocument(ctx context.Context, data []byte) (*Result, error) {
	records, err := ingest.ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return p.Process(ctx, records), nil
}

// Process runs the pipeline over already-decoded raw records. Remote-service
// failures degrade to the deterministic local algorithms per batch, so this
// never fails.
func (p *Pipeline) Process(ctx context.Context, rawRecords []any) *Result {
	records := ingest.Canonicalize(rawRecords)

	themeMap := p.Classifier.ClassifyBatch(ctx, records)
	sentimentMap := p.Sentiment.AnalyzeBatch(ctx, records)

	g := graph.NewBuilder().Build(records, themeMap, sentimentMap)

	result := &Result{
		Graph:     g,
		Insights:  p.Insights.Generate(records, themeMap, sentimentMap),
		Analytics: analytics.Aggregate(records, themeMap, sentimentMap),
		Feedback:  records,
	}

	p.Features.Suggest(ctx, g, records)

	return result
}
