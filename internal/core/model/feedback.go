package model

// CanonicalFeedback is one raw feedback record normalized to the canonical
// shape. Instances are immutable once created; one per input record.
type CanonicalFeedback struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	UserRole  string `json:"user_role"`
	Timestamp string `json:"timestamp"` // RFC 3339
}

type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Valid reports whether s is one of the three recognized labels. Anything
// else coming back from a remote analyzer is treated as an analyzer error.
func (s Sentiment) Valid() bool {
	return s == SentimentPositive || s == SentimentNegative || s == SentimentNeutral
}

// SentimentCounts holds per-label totals. Keys are capitalized to match the
// export format consumed by the renderer.
type SentimentCounts struct {
	Positive int `json:"Positive"`
	Negative int `json:"Negative"`
	Neutral  int `json:"Neutral"`
}

func (c *SentimentCounts) Add(s Sentiment) {
	switch s {
	case SentimentPositive:
		c.Positive++
	case SentimentNegative:
		c.Negative++
	default:
		c.Neutral++
	}
}

func (c SentimentCounts) Total() int {
	return c.Positive + c.Negative + c.Neutral
}
