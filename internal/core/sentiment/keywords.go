package sentiment

import (
	"strings"

	"github.com/echomap/echomap/internal/core/model"
)

var positiveWords = []string{
	"love", "great", "good", "amazing", "excellent", "awesome", "fantastic",
	"helpful", "best", "easy", "like", "impressed",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "poor", "difficult", "annoying", "frustrating",
	"hate", "slow", "worst", "broken", "issue", "problem", "error", "bug",
}

// ScoreKeywords is the deterministic local sentiment scorer: count hits from
// the positive and negative word lists (case-insensitive substring match),
// higher count wins, tie is Neutral. Used as the batch fallback; note the
// single-item adapter path defaults to Negative instead (see Analyzer).
func ScoreKeywords(text string) model.Sentiment {
	if text == "" {
		return model.SentimentNeutral
	}
	lower := strings.ToLower(text)

	positive, negative := 0, 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			positive++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return model.SentimentPositive
	case negative > positive:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}
