package classify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/echomap/echomap/internal/config"
	"github.com/echomap/echomap/internal/core/common"
	"github.com/echomap/echomap/internal/core/model"
	"github.com/echomap/echomap/internal/llm"
)

const defaultClassifyPrompt = `You are an assistant that categorizes user feedback into a single theme. Choose the most appropriate theme from: Performance, Usability, Design, Functionality, Data Visualization, Mobile Experience, Error Handling, or create a new appropriate theme if none of these fit well.

Categorize this feedback into a single theme: "%s". Respond with a JSON object with the format {"theme": "ThemeName", "confidence": 0.X} where confidence is a number between 0 and 1.`

const defaultClassifyBatchPrompt = `You are an assistant that categorizes multiple pieces of user feedback into themes. Choose appropriate themes from: Performance, Usability, Design, Functionality, Data Visualization, Mobile Experience, Error Handling, or create new themes if needed.

Categorize each of these feedback items into a single theme:

%s

Respond with a JSON array with the format [{"feedbackIndex": 1, "theme": "ThemeName"}, {"feedbackIndex": 2, "theme": "ThemeName"}, ...] for each feedback item.`

// Result is the remote classification reply for a single feedback text.
type Result struct {
	Theme      string  `json:"theme"`
	Confidence float64 `json:"confidence"`
}

type batchRow struct {
	FeedbackIndex int    `json:"feedbackIndex"` // 1-based
	Theme         string `json:"theme"`
}

// Classifier assigns a theme to feedback records: one batched remote call,
// degrading to the keyword classifier on any failure. No retries.
type Classifier struct {
	LLM     llm.LLMClient
	Prompts config.PromptOverrides
}

func NewClassifier(client llm.LLMClient, prompts config.PromptOverrides) *Classifier {
	return &Classifier{LLM: client, Prompts: prompts}
}

// Classify labels a single feedback text. Never fails: remote errors fall
// back to the keyword classifier.
func (c *Classifier) Classify(ctx context.Context, text string) Result {
	res, err := c.classifyRemote(ctx, text)
	if err != nil {
		log.Printf("classification degraded to keyword fallback: %v", err)
		return Result{Theme: ClassifyKeywords(text)}
	}
	return res
}

// ClassifyBatch labels a batch of records with a single remote call, matching
// response rows back to record ids by 1-based position. Any failure switches
// the whole batch to the keyword classifier.
func (c *Classifier) ClassifyBatch(ctx context.Context, records []model.CanonicalFeedback) map[string]string {
	themeMap, err := c.classifyBatchRemote(ctx, records)
	if err != nil {
		log.Printf("batch classification degraded to keyword fallback: %v", err)
		themeMap = make(map[string]string, len(records))
		for _, r := range records {
			themeMap[r.ID] = ClassifyKeywords(r.Text)
		}
	}
	return themeMap
}

func (c *Classifier) classifyRemote(ctx context.Context, text string) (Result, error) {
	if c.LLM == nil {
		return Result{}, llm.ErrNoCredentials
	}

	tpl := c.Prompts.Classify
	if tpl == "" {
		tpl = defaultClassifyPrompt
	}

	response, err := c.LLM.Generate(ctx, fmt.Sprintf(tpl, text))
	if err != nil {
		return Result{}, fmt.Errorf("classification request failed: %w", err)
	}

	res, err := common.ParseJSON[Result](response)
	if err != nil {
		return Result{}, fmt.Errorf("could not parse theme from response: %w", err)
	}
	if res.Theme == "" {
		return Result{}, fmt.Errorf("response carried no theme")
	}
	return res, nil
}

func (c *Classifier) classifyBatchRemote(ctx context.Context, records []model.CanonicalFeedback) (map[string]string, error) {
	if c.LLM == nil {
		return nil, llm.ErrNoCredentials
	}
	if len(records) == 0 {
		return map[string]string{}, nil
	}

	tpl := c.Prompts.ClassifyBatch
	if tpl == "" {
		tpl = defaultClassifyBatchPrompt
	}

	response, err := c.LLM.Generate(ctx, fmt.Sprintf(tpl, formatBatch(records)))
	if err != nil {
		return nil, fmt.Errorf("batch classification request failed: %w", err)
	}

	rows, err := common.ParseJSONList[batchRow](response)
	if err != nil {
		return nil, fmt.Errorf("could not parse themes from response: %w", err)
	}

	themeMap := make(map[string]string, len(rows))
	for _, row := range rows {
		i := row.FeedbackIndex - 1
		if i < 0 || i >= len(records) || row.Theme == "" {
			continue
		}
		themeMap[records[i].ID] = row.Theme
	}
	return themeMap, nil
}

func formatBatch(records []model.CanonicalFeedback) string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = fmt.Sprintf("Feedback %d: %q", i+1, r.Text)
	}
	return strings.Join(lines, "\n\n")
}
