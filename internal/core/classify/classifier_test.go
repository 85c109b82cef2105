package classify

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/echomap/echomap/internal/config"
	"github.com/echomap/echomap/internal/core/model"
)

func TestClassifyKeywords(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"The app crashed again", "Error Handling"},
		{"Dashboard is too slow", "Performance"},
		{"Love the mobile app", "Mobile Experience"},
		{"The interface looks dated", "Design"},
		{"The dashboard needs work", "Data Visualization"},
		{"Need PDF export", "Data Export"},
		{"Can't find the search bar", "Navigation"},
		{"Very confusing workflow", "Usability"},
		{"Missing a key capability", "Functionality"},
		{"It is what it is", "General Feedback"},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyKeywords(tc.text))
		})
	}
}

func TestClassifyKeywords_RuleOrder(t *testing.T) {
	// "app crashed" matches both the error rule and the mobile rule; the
	// error rule comes first and must win.
	assert.Equal(t, "Error Handling", ClassifyKeywords("the app crashed"))
	// "slow dashboard" matches performance before data visualization.
	assert.Equal(t, "Performance", ClassifyKeywords("slow dashboard"))
}

func TestClassify_RemoteSuccess(t *testing.T) {
	mock := &MockLLMClient{Response: `{"theme": "Performance", "confidence": 0.9}`}
	c := NewClassifier(mock, config.PromptOverrides{})

	res := c.Classify(context.Background(), "everything is fine")

	assert.Equal(t, "Performance", res.Theme)
	assert.Equal(t, 0.9, res.Confidence)
	assert.Len(t, mock.Prompts, 1)
}

func TestClassify_RemoteFailureFallsBack(t *testing.T) {
	mock := &MockLLMClient{Err: fmt.Errorf("connection refused")}
	c := NewClassifier(mock, config.PromptOverrides{})

	res := c.Classify(context.Background(), "The app crashed again")

	assert.Equal(t, "Error Handling", res.Theme)
}

func TestClassify_NoClientFallsBack(t *testing.T) {
	c := NewClassifier(nil, config.PromptOverrides{})
	res := c.Classify(context.Background(), "The app crashed again")
	assert.Equal(t, "Error Handling", res.Theme)
}

func TestClassifyBatch_RemoteSuccess(t *testing.T) {
	mock := &MockLLMClient{Response: `Here you go:
[{"feedbackIndex": 1, "theme": "Performance"}, {"feedbackIndex": 2, "theme": "Design"}]`}
	c := NewClassifier(mock, config.PromptOverrides{})

	records := []model.CanonicalFeedback{
		{ID: "f1", Text: "slow"},
		{ID: "f2", Text: "pretty"},
	}
	themeMap := c.ClassifyBatch(context.Background(), records)

	assert.Equal(t, "Performance", themeMap["f1"])
	assert.Equal(t, "Design", themeMap["f2"])
	// One batched call, not one per record.
	assert.Len(t, mock.Prompts, 1)
}

func TestClassifyBatch_OutOfRangeIndexSkipped(t *testing.T) {
	mock := &MockLLMClient{Response: `[{"feedbackIndex": 1, "theme": "Design"}, {"feedbackIndex": 9, "theme": "Ghost"}]`}
	c := NewClassifier(mock, config.PromptOverrides{})

	records := []model.CanonicalFeedback{{ID: "f1", Text: "x"}}
	themeMap := c.ClassifyBatch(context.Background(), records)

	assert.Equal(t, map[string]string{"f1": "Design"}, themeMap)
}

func TestClassifyBatch_MalformedResponseFallsBack(t *testing.T) {
	mock := &MockLLMClient{Response: `sorry, I can't do that`}
	c := NewClassifier(mock, config.PromptOverrides{})

	records := []model.CanonicalFeedback{
		{ID: "f1", Text: "The dashboard is too slow"},
		{ID: "f2", Text: "I love the new design"},
	}
	themeMap := c.ClassifyBatch(context.Background(), records)

	assert.Equal(t, "Performance", themeMap["f1"])
	assert.Equal(t, "Design", themeMap["f2"])
}
