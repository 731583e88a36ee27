package testutil

import (
	"time"

	"github.com/ido-cryptoson/geo-platform/internal/config"
	"github.com/ido-cryptoson/geo-platform/internal/models"
)

// SampleConfig returns a test configuration with mock responses disabled so
// factory dispatch can be exercised against real provider constructors.
func SampleConfig() *config.Config {
	return &config.Config{
		OpenAIAPIKey:      "test-openai-key",
		AnthropicAPIKey:   "test-anthropic-key",
		PerplexityAPIKey:  "test-perplexity-key",
		PerplexityBaseURL: "https://api.perplexity.ai",
		UseMockResponses:  false,
		Tracking:          config.DefaultTrackingConfig(),
	}
}

// SampleBusiness returns a test business
func SampleBusiness() *models.Business {
	return &models.Business{
		Name:        "Mario's Italian Kitchen",
		Aliases:     []string{"Mario's"},
		CuisineType: "Italian",
		City:        "San Francisco",
		WebsiteURL:  "https://mariositalian.com",
	}
}

// SampleCompetitors returns test competitors
func SampleCompetitors() []models.Competitor {
	return []models.Competitor{
		{Name: "Tony's Pizza Napoletana"},
		{Name: "Flour + Water"},
	}
}

// SampleQueries returns a small test query batch
func SampleQueries() []models.Query {
	return []models.Query{
		{Text: "best italian restaurant in San Francisco", Type: models.QueryTypeBestInCity, Priority: 5},
		{Text: "top rated italian in San Francisco", Type: models.QueryTypeTopRated, Priority: 4},
		{Text: "Mario's Italian Kitchen reviews", Type: models.QueryTypeReviews, Priority: 3},
	}
}

// NumberedListResponse is a chat-style answer that mentions the sample
// business at position 2 with a citation link.
func NumberedListResponse() string {
	return `Here are the best Italian restaurants in San Francisco:

1. **Tony's Pizza Napoletana** - Award-winning pizza
2. **Mario's Italian Kitchen** - Excellent handmade pasta, see [their menu](https://mariositalian.com/menu)
3. **Flour + Water** - Modern Italian tasting menus`
}

// ProseResponse is a Perplexity-style answer with bold names and a bare URL
func ProseResponse() string {
	return `For authentic Italian food, **Mario's Italian Kitchen** is a standout gem known for amazing pasta.

More options are listed at https://sf-eats.example.com/italian`
}

// NoMentionResponse is an answer that never names the sample business
func NoMentionResponse() string {
	return `Top picks:

1. **Tony's Pizza Napoletana** - Great pies
2. **Delfina** - Refined classics`
}

// SampleResponse wraps raw text as a successful platform response
func SampleResponse(platform models.Platform, query, rawText string) *models.PlatformResponse {
	return &models.PlatformResponse{
		Platform:  platform,
		Query:     query,
		RawText:   rawText,
		ElapsedMs: 42,
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}
