package sentiment

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

const defaultSentimentPrompt = `Analyze the sentiment of this user feedback, paying special attention to:
- Mentions of problems, issues, or failures
- Words indicating frustration or dissatisfaction
- Technical issues or errors
- Performance complaints
- Accessibility concerns
- Feature requests (which imply current functionality is insufficient)
- Negative comparisons or expectations not met

Feedback: "%s"

Examples of NEGATIVE feedback:
- "The dashboard takes too long to load" (performance issue)
- "I can't find what I need" (usability problem)
- "Sometimes it works" (inconsistency issue)
- "The text is too small" (accessibility issue)
- "It would be better if..." (suggestion implying current state is inadequate)
- "The app doesn't respect my settings" (functionality issue)
- "I need to be able to..." (missing feature)

Examples of NEUTRAL feedback:
- "I use this feature daily" (statement of fact)
- "The system has many features" (objective description)
- "I noticed the new update" (observation without judgment)

Examples of POSITIVE feedback:
- "I love how fast it is" (explicit praise)
- "Great improvement from before" (positive comparison)
- "The interface is intuitive and helpful" (positive evaluation)

Classification rules:
- Classify as NEGATIVE if there are ANY complaints, issues, or negative experiences, even if mildly stated
- Classify as POSITIVE only if EXPLICITLY praising or expressing satisfaction
- Classify as NEUTRAL only if TRULY ambiguous or purely descriptive without any implied issues

When in doubt, classify as NEGATIVE.

Respond with a JSON object: {"sentiment": "Positive"} using exactly one of "Positive", "Negative", or "Neutral".`

const defaultSentimentBatchPrompt = `You are an assistant that analyzes the sentiment of multiple pieces of user feedback. Classify each as Positive, Negative, or Neutral.

Analyze the sentiment of each of these feedback items:

%s

Respond with a JSON array with the format [{"feedbackIndex": 1, "sentiment": "Positive/Negative/Neutral"}, {"feedbackIndex": 2, "sentiment": "Positive/Negative/Neutral"}, ...] for each feedback item.`

type singleReply struct {
	Sentiment model.Sentiment `json:"sentiment"`
}

type batchRow struct {
	FeedbackIndex int             `json:"feedbackIndex"` // 1-based
	Sentiment     model.Sentiment `json:"sentiment"`
}

// Analyzer assigns sentiment labels, remote-first with deterministic local
// degradation. The two code paths deliberately disagree on their defaults:
// the single-item path classifies any failure as Negative so dissatisfaction
// is never under-counted, while the batch fallback scores keywords and ties
// to Neutral. Both behaviors are long-standing contract; do not unify them.
type Analyzer struct {
	LLM     llm.LLMClient
	Prompts config.PromptOverrides
}

func NewAnalyzer(client llm.LLMClient, prompts config.PromptOverrides) *Analyzer {
	return &Analyzer{LLM: client, Prompts: prompts}
}

// Analyze labels one feedback text. Any adapter error, including an
// out-of-domain label in the reply, yields Negative.
func (a *Analyzer) Analyze(ctx context.Context, text string) model.Sentiment {
	s, err := a.analyzeRemote(ctx, text)
	if err != nil {
		log.Printf("sentiment analysis failed, defaulting to Negative: %v", err)
		return model.SentimentNegative
	}
	return s
}

// AnalyzeBatch labels a batch of records with one remote call; any failure
// switches the whole batch to keyword scoring.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, records []model.CanonicalFeedback) map[string]model.Sentiment {
	sentimentMap, err := a.analyzeBatchRemote(ctx, records)
	if err != nil {
		log.Printf("batch sentiment analysis degraded to keyword fallback: %v", err)
		sentimentMap = make(map[string]model.Sentiment, len(records))
		for _, r := range records {
			sentimentMap[r.ID] = ScoreKeywords(r.Text)
		}
	}
	return sentimentMap
}

func (a *Analyzer) analyzeRemote(ctx context.Context, text string) (model.Sentiment, error) {
	if a.LLM == nil {
		return "", llm.ErrNoCredentials
	}

	tpl := a.Prompts.Sentiment
	if tpl == "" {
		tpl = defaultSentimentPrompt
	}

	response, err := a.LLM.Generate(ctx, fmt.Sprintf(tpl, text))
	if err != nil {
		return "", fmt.Errorf("sentiment request failed: %w", err)
	}

	reply, err := common.ParseJSON[singleReply](response)
	if err != nil {
		return "", fmt.Errorf("could not parse sentiment from response: %w", err)
	}
	if !reply.Sentiment.Valid() {
		return "", fmt.Errorf("invalid sentiment label %q", reply.Sentiment)
	}
	return reply.Sentiment, nil
}

func (a *Analyzer) analyzeBatchRemote(ctx context.Context, records []model.CanonicalFeedback) (map[string]model.Sentiment, error) {
	if a.LLM == nil {
		return nil, llm.ErrNoCredentials
	}
	if len(records) == 0 {
		return map[string]model.Sentiment{}, nil
	}

	tpl := a.Prompts.SentimentBatch
	if tpl == "" {
		tpl = defaultSentimentBatchPrompt
	}

	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = fmt.Sprintf("Feedback %d: %q", i+1, r.Text)
	}

	response, err := a.LLM.Generate(ctx, fmt.Sprintf(tpl, strings.Join(lines, "\n\n")))
	if err != nil {
		return nil, fmt.Errorf("batch sentiment request failed: %w", err)
	}

	rows, err := common.ParseJSONList[batchRow](response)
	if err != nil {
		return nil, fmt.Errorf("could not parse sentiments from response: %w", err)
	}

	sentimentMap := make(map[string]model.Sentiment, len(rows))
	for _, row := range rows {
		i := row.FeedbackIndex - 1
		if i < 0 || i >= len(records) || !row.Sentiment.Valid() {
			continue
		}
		sentimentMap[records[i].ID] = row.Sentiment
	}
	return sentimentMap, nil
}
