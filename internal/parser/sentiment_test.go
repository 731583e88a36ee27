package parser_test

import (
	"math"
	"testing"

	"github.com/ido-cryptoson/geo-platform/internal/models"
	"github.com/ido-cryptoson/geo-platform/internal/parser"
)

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLabel models.Sentiment
		wantScore float64
	}{
		{
			name:      "all positive cues",
			text:      "The pasta was excellent and the service amazing",
			wantLabel: models.SentimentPositive,
			wantScore: 1.0,
		},
		{
			name:      "all negative cues",
			text:      "terrible service and bland food",
			wantLabel: models.SentimentNegative,
			wantScore: 0.0,
		},
		{
			name:      "balanced cues are neutral",
			text:      "great food but slow service",
			wantLabel: models.SentimentNeutral,
			wantScore: 0.5,
		},
		{
			name:      "no cue hits defaults to neutral 0.5 exactly",
			text:      "This restaurant serves dinner on weekdays.",
			wantLabel: models.SentimentNeutral,
			wantScore: 0.5,
		},
		{
			name:      "empty text defaults to neutral 0.5 exactly",
			text:      "",
			wantLabel: models.SentimentNeutral,
			wantScore: 0.5,
		},
		{
			name:      "score exactly 0.6 is positive",
			text:      "great amazing perfect but slow and rude",
			wantLabel: models.SentimentPositive,
			wantScore: 0.6,
		},
		{
			name:      "score exactly 0.4 is negative",
			text:      "great amazing slow rude dirty",
			wantLabel: models.SentimentNegative,
			wantScore: 0.4,
		},
		{
			name:      "neutral cues keep score centered",
			text:      "a decent and typical spot",
			wantLabel: models.SentimentNeutral,
			wantScore: 0.5,
		},
		{
			name:      "case insensitive matching",
			text:      "EXCELLENT food, LOVED it",
			wantLabel: models.SentimentPositive,
			wantScore: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.AnalyzeSentiment(tt.text)
			if got.Label != tt.wantLabel {
				t.Errorf("AnalyzeSentiment() Label = %s, want %s", got.Label, tt.wantLabel)
			}
			if math.Abs(got.Score-tt.wantScore) > 1e-9 {
				t.Errorf("AnalyzeSentiment() Score = %v, want %v", got.Score, tt.wantScore)
			}
		})
	}
}

func TestAnalyzeSentimentSubstringContainment(t *testing.T) {
	// Cue matching is containment, so a cue inside a longer word still counts
	got := parser.AnalyzeSentiment("an overpricedish menu")
	if got.Label != models.SentimentNegative {
		t.Errorf("AnalyzeSentiment() Label = %s, want %s", got.Label, models.SentimentNegative)
	}
}
