package model

// ExportAnalytics wraps the analytics snapshot with export metadata.
type ExportAnalytics struct {
	AnalyticsSnapshot
	ExportDate    string `json:"exportDate"`
	ExportVersion string `json:"exportVersion"`
}

// ExportDocument is the full serialized state of one processed import. Edge
// endpoints are plain id strings and nodes carry no layout-transient fields,
// so the document round-trips through the pipeline.
type ExportDocument struct {
	Nodes         []*Node             `json:"nodes"`
	Links         []*Edge             `json:"links"`
	Insights      []Insight           `json:"insights"`
	Analytics     ExportAnalytics     `json:"analytics"`
	FeedbackItems []CanonicalFeedback `json:"feedbackItems"`
}
