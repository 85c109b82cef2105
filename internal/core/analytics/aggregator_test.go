package analytics

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/echomap/echomap/internal/core/model"
)

func sampleInputs() ([]model.CanonicalFeedback, map[string]string, map[string]model.Sentiment) {
	records := []model.CanonicalFeedback{
		{ID: "f1", Text: "slow", UserRole: "Analyst", Timestamp: "2024-01-15T10:00:00Z"},
		{ID: "f2", Text: "nice", UserRole: "Analyst", Timestamp: "2024-01-15T18:30:00"},
		{ID: "f3", Text: "meh", UserRole: "Admin", Timestamp: "2024-01-16"},
	}
	themeMap := map[string]string{
		"f1": "Performance",
		"f2": "Design",
		"f3": "Design",
	}
	sentimentMap := map[string]model.Sentiment{
		"f1": model.SentimentNegative,
		"f2": model.SentimentPositive,
		"f3": model.SentimentNeutral,
	}
	return records, themeMap, sentimentMap
}

func TestAggregate(t *testing.T) {
	records, themeMap, sentimentMap := sampleInputs()

	snap := Aggregate(records, themeMap, sentimentMap)

	assert.Equal(t, 3, snap.TotalFeedback)
	assert.Equal(t, model.SentimentCounts{Positive: 1, Negative: 1, Neutral: 1}, snap.SentimentDistribution)
	assert.Equal(t, map[string]int{"Performance": 1, "Design": 2}, snap.ThemeDistribution)
	assert.Equal(t, model.SentimentCounts{Positive: 1, Neutral: 1}, snap.SentimentByTheme["Design"])
	assert.Equal(t, map[string]int{"Analyst": 2, "Admin": 1}, snap.RoleDistribution)
	assert.Equal(t, model.SentimentCounts{Positive: 1, Negative: 1}, snap.SentimentByRole["Analyst"])
	// All three accepted timestamp layouts bucket to their calendar day.
	assert.Equal(t, map[string]int{"2024-01-15": 2, "2024-01-16": 1}, snap.FeedbackByDate)
}

func TestAggregate_DistributionsSumToTotal(t *testing.T) {
	records, themeMap, sentimentMap := sampleInputs()

	snap := Aggregate(records, themeMap, sentimentMap)

	assert.Equal(t, snap.TotalFeedback, snap.SentimentDistribution.Total())

	themeSum := 0
	for _, n := range snap.ThemeDistribution {
		themeSum += n
	}
	assert.Equal(t, snap.TotalFeedback, themeSum)

	roleSum := 0
	for _, n := range snap.RoleDistribution {
		roleSum += n
	}
	assert.Equal(t, snap.TotalFeedback, roleSum)
}

func TestAggregate_Idempotent(t *testing.T) {
	records, themeMap, sentimentMap := sampleInputs()

	first := Aggregate(records, themeMap, sentimentMap)
	second := Aggregate(records, themeMap, sentimentMap)

	assert.True(t, reflect.DeepEqual(first, second))
}

func TestAggregate_UnparseableTimestampExcludedFromDatesOnly(t *testing.T) {
	records := []model.CanonicalFeedback{
		{ID: "f1", Text: "x", Timestamp: "yesterday-ish"},
	}

	snap := Aggregate(records, nil, nil)

	assert.Equal(t, 1, snap.TotalFeedback)
	assert.Equal(t, 1, snap.SentimentDistribution.Neutral)
	assert.Empty(t, snap.FeedbackByDate)
}

func TestAggregate_MissingAssignmentsDefault(t *testing.T) {
	records := []model.CanonicalFeedback{
		{ID: "f1", Text: "x", Timestamp: "2024-02-01T00:00:00Z"},
	}

	snap := Aggregate(records, nil, nil)

	// No theme means no theme bucket; missing sentiment counts as Neutral.
	assert.Empty(t, snap.ThemeDistribution)
	assert.Equal(t, model.SentimentCounts{Neutral: 1}, snap.SentimentDistribution)
}

func TestAggregate_EmptyInput(t *testing.T) {
	snap := Aggregate(nil, nil, nil)

	assert.Equal(t, 0, snap.TotalFeedback)
	assert.NotNil(t, snap.ThemeDistribution)
	assert.NotNil(t, snap.FeedbackByDate)
}
