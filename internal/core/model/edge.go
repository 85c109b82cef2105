package model

// Edge connects two nodes by id. Source and Target are always plain node ids,
// never embedded node objects; consumers needing the full node go through
// Graph.NodeByID.
type Edge struct {
	ID       string  `json:"id"`
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Strength float64 `json:"strength"`
}

// Edge strengths for the three relationship kinds plus feature links. The
// renderer maps strength onto link distance.
const (
	StrengthFeedbackTheme   = 0.8
	StrengthFeedbackPersona = 0.7
	StrengthPersonaTheme    = 0.6
	StrengthFeatureTheme    = 0.8
	StrengthFeaturePersona  = 0.6
)
