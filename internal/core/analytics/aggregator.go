package analytics

import (
	"time"

	"github.com/echomap/echomap/internal/core/model"
)

// Timestamp layouts accepted for date bucketing, tried in order. Records
// matching none are excluded from FeedbackByDate only, never from totals.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Aggregate is a pure fold over (records, themeMap, sentimentMap). Running it
// twice over the same inputs yields identical output.
func Aggregate(records []model.CanonicalFeedback, themeMap map[string]string, sentimentMap map[string]model.Sentiment) model.AnalyticsSnapshot {
	snap := model.AnalyticsSnapshot{
		TotalFeedback:     len(records),
		ThemeDistribution: map[string]int{},
		SentimentByTheme:  map[string]model.SentimentCounts{},
		RoleDistribution:  map[string]int{},
		SentimentByRole:   map[string]model.SentimentCounts{},
		FeedbackByDate:    map[string]int{},
	}

	for _, r := range records {
		theme := themeMap[r.ID]
		s := sentimentMap[r.ID]
		if s == "" {
			s = model.SentimentNeutral
		}

		snap.SentimentDistribution.Add(s)

		if theme != "" {
			snap.ThemeDistribution[theme]++
			counts := snap.SentimentByTheme[theme]
			counts.Add(s)
			snap.SentimentByTheme[theme] = counts
		}

		if r.UserRole != "" {
			snap.RoleDistribution[r.UserRole]++
			counts := snap.SentimentByRole[r.UserRole]
			counts.Add(s)
			snap.SentimentByRole[r.UserRole] = counts
		}

		if day, ok := dateBucket(r.Timestamp); ok {
			snap.FeedbackByDate[day]++
		}
	}

	return snap
}

func dateBucket(timestamp string) (string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, timestamp); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
