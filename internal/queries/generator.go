// Package queries generates the search queries a tracking job runs. Templates
// mimic what real users ask AI assistants about local restaurants. The catalog
// tables are process-wide constants: initialized once, never mutated.
package queries

import (
	"fmt"
	"strings"

	"github.com/ido-cryptoson/geo-platform/internal/models"
)

var queryTemplates = map[models.QueryType][]string{
	models.QueryTypeBestInCity: {
		"best {cuisine} restaurant in {city}",
		"best {cuisine} food in {city}",
		"top {cuisine} restaurants in {city}",
		"where to get the best {cuisine} in {city}",
		"best places for {cuisine} in {city}",
	},
	models.QueryTypeTopRated: {
		"top rated {cuisine} restaurant in {city}",
		"highest rated {cuisine} in {city}",
		"most popular {cuisine} restaurant in {city}",
		"best reviewed {cuisine} in {city}",
	},
	models.QueryTypeWhereToEat: {
		"where to eat {cuisine} in {city}",
		"where to eat {cuisine} in {neighborhood}",
		"good {cuisine} places in {city}",
		"{cuisine} restaurant recommendations in {city}",
		"recommend a {cuisine} restaurant in {city}",
	},
	models.QueryTypeReviews: {
		"{business_name} reviews",
		"{business_name} {city} reviews",
		"is {business_name} good",
		"what do people say about {business_name}",
	},
	models.QueryTypeDietary: {
		"{cuisine} restaurant with vegetarian options in {city}",
		"{cuisine} restaurant with vegan options in {city}",
		"gluten free {cuisine} in {city}",
		"{cuisine} restaurant with healthy options in {city}",
	},
	models.QueryTypeOccasion: {
		"{cuisine} restaurant for date night in {city}",
		"{cuisine} restaurant for family dinner in {city}",
		"{cuisine} restaurant for business lunch in {city}",
		"romantic {cuisine} restaurant in {city}",
		"{cuisine} restaurant with private dining in {city}",
	},
}

// Template iteration order (map iteration is randomized; batch order must be
// reproducible for a fixed input)
var queryTypeOrder = []models.QueryType{
	models.QueryTypeBestInCity,
	models.QueryTypeTopRated,
	models.QueryTypeWhereToEat,
	models.QueryTypeReviews,
	models.QueryTypeDietary,
	models.QueryTypeOccasion,
}

var cuisineDishes = map[string][]string{
	"Italian":       {"pasta", "pizza", "risotto", "tiramisu", "lasagna", "carbonara"},
	"Mexican":       {"tacos", "burritos", "enchiladas", "guacamole", "quesadillas"},
	"Japanese":      {"sushi", "ramen", "tempura", "udon", "yakitori"},
	"Chinese":       {"dim sum", "dumplings", "noodles", "kung pao chicken", "fried rice"},
	"Indian":        {"curry", "biryani", "naan", "tikka masala", "samosas"},
	"Thai":          {"pad thai", "curry", "tom yum", "spring rolls", "satay"},
	"American":      {"burgers", "steaks", "ribs", "mac and cheese", "wings"},
	"French":        {"croissants", "escargot", "coq au vin", "crêpes", "soufflé"},
	"Mediterranean": {"hummus", "falafel", "shawarma", "kebabs", "tabbouleh"},
	"Korean":        {"korean bbq", "bibimbap", "kimchi", "bulgogi", "fried chicken"},
	"Vietnamese":    {"pho", "banh mi", "spring rolls", "bun", "com tam"},
	"Greek":         {"gyros", "souvlaki", "moussaka", "tzatziki", "baklava"},
}

var typePriorities = map[models.QueryType]int{
	models.QueryTypeBestInCity: 5,
	models.QueryTypeTopRated:   4,
	models.QueryTypeWhereToEat: 4,
	models.QueryTypeReviews:    3,
	models.QueryTypeDietary:    2,
	models.QueryTypeOccasion:   2,
	models.QueryTypeDishType:   2,
	models.QueryTypeCustom:     1,
}

// Options control query generation for one business
type Options struct {
	MaxQueries               int
	IncludeCompetitorQueries bool
	CompetitorNames          []string
}

// GenerateForBusiness produces an ordered, de-duplicated query batch for a
// business, capped at MaxQueries (default 50).
func GenerateForBusiness(business *models.Business, opts Options) []models.Query {
	maxQueries := opts.MaxQueries
	if maxQueries <= 0 {
		maxQueries = 50
	}

	cuisine := business.CuisineType
	if cuisine == "" {
		cuisine = "restaurant"
	}
	neighborhood := business.Neighborhood
	if neighborhood == "" {
		neighborhood = business.City
	}

	variables := map[string]string{
		"cuisine":       strings.ToLower(cuisine),
		"city":          business.City,
		"neighborhood":  neighborhood,
		"business_name": business.Name,
	}

	var out []models.Query
	seen := make(map[string]bool)
	add := func(text string, queryType models.QueryType, priority int) bool {
		if seen[text] {
			return len(out) < maxQueries
		}
		seen[text] = true
		out = append(out, models.Query{Text: text, Type: queryType, Priority: priority})
		return len(out) < maxQueries
	}

	for _, queryType := range queryTypeOrder {
		for _, template := range queryTemplates[queryType] {
			if !add(fillTemplate(template, variables), queryType, typePriorities[queryType]) {
				return out
			}
		}
	}

	dishes, ok := cuisineDishes[cuisine]
	if !ok {
		dishes = cuisineDishes["American"]
	}
	for _, dish := range dishes[:min(3, len(dishes))] {
		if !add(fmt.Sprintf("best %s in %s", dish, business.City), models.QueryTypeDishType, typePriorities[models.QueryTypeDishType]) {
			return out
		}
	}

	if opts.IncludeCompetitorQueries {
		names := opts.CompetitorNames
		for _, competitor := range names[:min(3, len(names))] {
			if !add(fmt.Sprintf("%s vs %s", business.Name, competitor), models.QueryTypeCustom, typePriorities[models.QueryTypeCustom]) {
				return out
			}
		}
	}

	return out
}

// fillTemplate substitutes every {key} placeholder with its variable value.
// Unknown placeholders are left as-is rather than dropped.
func fillTemplate(template string, variables map[string]string) string {
	out := template
	for key, value := range variables {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}

// FanOut expands a seed query into the follow-up variants users actually type
func FanOut(seedQuery string, business *models.Business) []string {
	neighborhood := business.Neighborhood
	if neighborhood == "" {
		neighborhood = business.City
	}

	variants := []string{
		seedQuery,
		seedQuery + " near me",
		seedQuery + " open now",
		seedQuery + " with good reviews",
	}

	if neighborhood != business.City && business.City != "" {
		variants = append(variants, strings.ReplaceAll(seedQuery, business.City, neighborhood))
	}
	if !strings.Contains(seedQuery, "best") {
		variants = append(variants, "best "+seedQuery)
	}
	if !strings.Contains(seedQuery, "top") {
		variants = append(variants, "top "+seedQuery)
	}

	seen := make(map[string]bool, len(variants))
	var out []string
	for _, v := range variants {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Sample returns a small fixed query set for smoke tests and demos
func Sample(business *models.Business) []models.Query {
	cuisine := strings.ToLower(business.CuisineType)
	if cuisine == "" {
		cuisine = "restaurant"
	}
	neighborhood := business.Neighborhood
	if neighborhood == "" {
		neighborhood = business.City
	}

	texts := []string{
		fmt.Sprintf("best %s restaurant in %s", cuisine, business.City),
		fmt.Sprintf("top rated %s in %s", cuisine, business.City),
		fmt.Sprintf("where to eat %s in %s", cuisine, neighborhood),
		fmt.Sprintf("%s restaurant recommendations in %s", cuisine, business.City),
		fmt.Sprintf("%s reviews", business.Name),
	}

	out := make([]models.Query, len(texts))
	for i, text := range texts {
		out[i] = models.Query{Text: text, Type: models.QueryTypeCustom, Priority: 1}
	}
	return out
}
