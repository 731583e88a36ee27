// Package parser extracts business mentions, citations and sentiment from raw
// AI platform responses. Everything in this package is a pure function of its
// inputs: no shared mutable state, safe for concurrent use without locking.
// Extraction is heuristic by design — numbered lists, bullet lists, bold
// markdown and plain prose are all handled best-effort, not guaranteed.
package parser

import (
	"github.com/ido-cryptoson/geo-platform/internal/models"
)

// Options configure one parse pass
type Options struct {
	BusinessName    string
	BusinessAliases []string
	WebsiteURL      string
	CompetitorNames []string
}

// Result is the extraction output for one response
type Result struct {
	Mention     models.MentionFinding
	Citation    models.CitationFinding
	Sentiment   *models.SentimentFinding
	Competitors []models.CompetitorFinding
}

// Parse runs mention, citation and sentiment extraction for the tracked
// business, then mention+sentiment for every competitor name. Competitors that
// do not produce a defined position are omitted from the output entirely.
func Parse(response string, opts Options) Result {
	names := make([]string, 0, 1+len(opts.BusinessAliases))
	names = append(names, opts.BusinessName)
	names = append(names, opts.BusinessAliases...)

	mention := FindMention(response, names)
	citation := FindCitation(response, opts.WebsiteURL)

	var sentiment *models.SentimentFinding
	if mention.IsMentioned {
		window := mention.ContextText
		if window == "" {
			window = response
		}
		s := AnalyzeSentiment(window)
		sentiment = &s
	}

	var competitors []models.CompetitorFinding
	for _, name := range opts.CompetitorNames {
		compMention := FindMention(response, []string{name})
		if !compMention.IsMentioned || compMention.Position == nil {
			continue
		}

		finding := models.CompetitorFinding{
			Name:        name,
			Position:    *compMention.Position,
			ContextText: compMention.ContextText,
		}
		compSentiment := AnalyzeSentiment(compMention.ContextText)
		finding.Sentiment = &compSentiment

		competitors = append(competitors, finding)
	}

	return Result{
		Mention:     mention,
		Citation:    citation,
		Sentiment:   sentiment,
		Competitors: competitors,
	}
}
