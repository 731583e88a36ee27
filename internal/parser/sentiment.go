package parser

import (
	"math"
	"strings"

	"github.com/ido-cryptoson/geo-platform/internal/models"
)

// AnalyzeSentiment scores the sentiment of a mention's text window against the
// fixed cue-word lexicon. This is keyword matching, not NLP: it is best-effort
// signal, not ground truth. When no cue word matches at all the result is
// neutral with score exactly 0.5.
func AnalyzeSentiment(text string) models.SentimentFinding {
	normalized := strings.ToLower(text)

	positiveCount := countCueHits(normalized, positiveWords)
	negativeCount := countCueHits(normalized, negativeWords)
	neutralCount := countCueHits(normalized, neutralWords)

	total := positiveCount + negativeCount + neutralCount
	if total == 0 {
		return models.SentimentFinding{Label: models.SentimentNeutral, Score: 0.5}
	}

	// Raw score lands in [-1,1]; remap to [0,1]
	raw := float64(positiveCount-negativeCount) / math.Max(1, float64(total))
	score := (raw + 1) / 2

	label := models.SentimentNeutral
	if score >= 0.6 {
		label = models.SentimentPositive
	} else if score <= 0.4 {
		label = models.SentimentNegative
	}

	return models.SentimentFinding{
		Label: label,
		Score: math.Round(score*100) / 100,
	}
}

func countCueHits(normalizedText string, cues []string) int {
	count := 0
	for _, cue := range cues {
		if strings.Contains(normalizedText, cue) {
			count++
		}
	}
	return count
}
