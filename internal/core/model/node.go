package model

type NodeType string

const (
	NodeTheme    NodeType = "theme"
	NodePersona  NodeType = "persona"
	NodeFeedback NodeType = "feedback"
	NodeFeature  NodeType = "feature"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Node is the tagged union consumed by the force-directed renderer. Type
// selects which of the optional fields are meaningful; the renderer may attach
// transient layout coordinates but must never touch identity fields.
type Node struct {
	ID   string   `json:"id"`
	Type NodeType `json:"type"`
	Name string   `json:"name"`

	// Display label. For feedback nodes this is the truncated text.
	Label string `json:"label,omitempty"`

	// Sizing hint for the layout engine.
	Value int `json:"value,omitempty"`

	// theme / persona
	FeedbackCount  int              `json:"feedbackCount,omitempty"`
	SentimentStats *SentimentCounts `json:"sentimentStats,omitempty"`

	// feedback
	FullText  string    `json:"fullText,omitempty"`
	Theme     string    `json:"theme,omitempty"`
	Sentiment Sentiment `json:"sentiment,omitempty"`
	UserRole  string    `json:"user_role,omitempty"`
	Timestamp string    `json:"timestamp,omitempty"`

	// feature
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	OriginTheme string   `json:"originTheme,omitempty"`
	Fallback    bool     `json:"fallback,omitempty"`
}
