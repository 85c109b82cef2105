package core

import (
	"time"

	"github.com/echomap/echomap/internal/core/model"
)

const exportVersion = "1.0"

// Export serializes a processed result into the interchange document. Edge
// endpoints are already plain id strings and nodes never carry layout state,
// so the document can be handed straight back to the importer.
func Export(result *Result) model.ExportDocument {
	return ExportAt(result, time.Now().UTC())
}

// ExportAt is Export with an explicit clock, for deterministic tests.
func ExportAt(result *Result, now time.Time) model.ExportDocument {
	doc := model.ExportDocument{
		Nodes:    result.Graph.Nodes,
		Links:    result.Graph.Edges,
		Insights: result.Insights,
		Analytics: model.ExportAnalytics{
			AnalyticsSnapshot: result.Analytics,
			ExportDate:        now.Format(time.RFC3339),
			ExportVersion:     exportVersion,
		},
		FeedbackItems: result.Feedback,
	}
	if doc.Nodes == nil {
		doc.Nodes = []*model.Node{}
	}
	if doc.Links == nil {
		doc.Links = []*model.Edge{}
	}
	if doc.Insights == nil {
		doc.Insights = []model.Insight{}
	}
	if doc.FeedbackItems == nil {
		doc.FeedbackItems = []model.CanonicalFeedback{}
	}
	return doc
}
