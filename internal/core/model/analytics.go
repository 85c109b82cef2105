package model

// AnalyticsSnapshot is pure derived data, recomputed wholesale on every
// import. All distributions sum to TotalFeedback except FeedbackByDate, which
// drops records whose timestamps cannot be parsed.
type AnalyticsSnapshot struct {
	TotalFeedback         int                        `json:"totalFeedback"`
	SentimentDistribution SentimentCounts            `json:"sentimentDistribution"`
	ThemeDistribution     map[string]int             `json:"themeDistribution"`
	SentimentByTheme      map[string]SentimentCounts `json:"sentimentByTheme"`
	RoleDistribution      map[string]int             `json:"roleDistribution"`
	SentimentByRole       map[string]SentimentCounts `json:"sentimentByRole"`
	FeedbackByDate        map[string]int             `json:"feedbackByDate"` // YYYY-MM-DD -> count
}

// Insight is one natural-language summary entry. Order within a slice of
// insights is significant: overview first, themes by volume, persona last.
type Insight struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Sentiment     *SentimentCounts `json:"sentiment,omitempty"`
	FeedbackCount int              `json:"feedbackCount,omitempty"`
}

// FeatureIdea is one candidate product feature as returned by the remote
// generator or the fallback table, before it becomes a feature node.
type FeatureIdea struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}
