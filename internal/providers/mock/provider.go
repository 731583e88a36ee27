// Package mock serves canned platform responses so the full tracking pipeline
// can run — and be tested — without any API keys or network access. The
// responses deliberately cover the response shapes the parser must handle:
// numbered lists, bold-paragraph prose, and source links.
package mock

import (
	"context"
	"regexp"
	"strings"
)

// Provider implements the AIProvider interface with deterministic canned text
type Provider struct {
	platform string
}

// NewProvider creates a mock provider for the given platform identifier
func NewProvider(platform string) *Provider {
	return &Provider{platform: platform}
}

func (p *Provider) Name() string {
	return p.platform
}

// RunQuery returns a canned response keyed off cuisine words in the query
func (p *Provider) RunQuery(ctx context.Context, query string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	normalized := strings.ToLower(query)
	city := extractCity(query)
	if city == "" {
		city = "the area"
	}

	switch {
	case strings.Contains(normalized, "italian") || strings.Contains(normalized, "pasta"):
		return p.italianResponse(city), nil
	case strings.Contains(normalized, "mexican") || strings.Contains(normalized, "tacos"):
		return mexicanResponse(city), nil
	case strings.Contains(normalized, "japanese") || strings.Contains(normalized, "sushi"):
		return japaneseResponse(city), nil
	default:
		return genericResponse(city), nil
	}
}

func (p *Provider) italianResponse(city string) string {
	// Perplexity-style answers are prose with bold names and a sources block;
	// the chat platforms produce numbered lists
	if p.platform == "perplexity" {
		return `Based on recent reviews and local recommendations, here are the top Italian restaurants in ` + city + `:

**Mario's Italian Kitchen** is a standout choice, known for their authentic handmade pasta and cozy atmosphere. Their carbonara and bolognese are particularly praised.

**Tony's Pizza Napoletana** offers award-winning Neapolitan-style pizza with multiple styles to choose from.

**Caffe Sport** has been a neighborhood favorite since 1969, serving generous portions of Sicilian-style dishes.

For a more upscale experience, **Flour + Water** offers a modern take on Italian cuisine with an incredible pasta tasting menu.

Sources: Yelp, TripAdvisor, local food blogs`
	}

	return `Here are some of the best Italian restaurants in ` + city + `:

1. **Tony's Pizza Napoletana** - Award-winning pizzeria with 12 different styles of pizza
2. **Mario's Italian Kitchen** - Authentic family-run restaurant known for homemade pasta and traditional recipes
3. **Flour + Water** - Modern Italian with an incredible pasta tasting menu
4. **Caffe Sport** - Classic Sicilian-style dishes in a charming atmosphere
5. **Delfina** - Refined Italian classics in a welcoming setting

Each restaurant offers a unique dining experience, from traditional to modern interpretations of Italian cuisine.`
}

func mexicanResponse(city string) string {
	return `For the best Mexican food in ` + city + `, consider these top options:

1. **La Taqueria** - Famous for their perfectly grilled carne asada tacos
2. **El Farolito** - Late-night favorite known for their massive burritos
3. **Nopalito** - Upscale Mexican using organic, local ingredients
4. **Tacolicious** - Modern taqueria with creative flavor combinations
5. **Taqueria Cancún** - Authentic street-style tacos and tortas

These spots range from casual street food to refined dining, all offering authentic Mexican flavors.`
}

func japaneseResponse(city string) string {
	return `Here are the best Japanese restaurants in ` + city + `:

1. **Sushi Ran** - Premium omakase experience with the freshest fish
2. **Ramen Shop** - Rich, flavorful broths and handmade noodles
3. **Ippuku** - Authentic izakaya with yakitori and sake
4. **Domo** - Traditional kaiseki dining
5. **Marufuku Ramen** - Hakata-style tonkotsu ramen

Whether you're craving sushi, ramen, or izakaya fare, these restaurants deliver authentic Japanese cuisine.`
}

func genericResponse(city string) string {
	return `Here are some highly recommended restaurants in ` + city + `:

1. **The Local Kitchen** - Farm-to-table American cuisine
2. **Bistro Central** - French-inspired comfort food
3. **Spice Route** - Flavorful Indian and Southeast Asian dishes
4. **Harbor Grill** - Fresh seafood with waterfront views
5. **The Steakhouse** - Prime cuts and classic sides

These restaurants offer diverse cuisines and consistently receive excellent reviews from locals and visitors alike.`
}

var cityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)in\s+([A-Z][a-zA-Z\s]+?)(?:\s*,|\s+near|\s+area|$)`),
	regexp.MustCompile(`(?i)near\s+([A-Z][a-zA-Z\s]+?)(?:\s*,|$)`),
	regexp.MustCompile(`(?i)([A-Z][a-zA-Z\s]+?)\s+(?:restaurant|food|dining)`),
}

func extractCity(query string) string {
	for _, pattern := range cityPatterns {
		if m := pattern.FindStringSubmatch(query); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
