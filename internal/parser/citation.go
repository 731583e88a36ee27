package parser

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ido-cryptoson/geo-platform/internal/models"
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	bareURLPattern      = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)
)

// FindCitation scans a response for outbound links. Markdown-style
// [label](url) links are checked first, then bare http(s) URLs. The first link
// whose host matches the business website wins; failing that, the first URL of
// any kind is still reported as a citation — any outbound link is signal even
// when it is not provably the business's own site. Only a response with zero
// URLs yields no citation. Malformed URLs are skipped, never an error.
func FindCitation(response, websiteURL string) models.CitationFinding {
	businessHost := hostOf(websiteURL)

	var markdownURLs []string
	for _, m := range markdownLinkPattern.FindAllStringSubmatch(response, -1) {
		markdownURLs = append(markdownURLs, m[2])
	}
	bareURLs := bareURLPattern.FindAllString(response, -1)

	if businessHost != "" {
		for _, u := range markdownURLs {
			if strings.Contains(u, businessHost) {
				return models.CitationFinding{HasCitation: true, URL: u}
			}
		}
		for _, u := range bareURLs {
			if strings.Contains(u, businessHost) {
				return models.CitationFinding{HasCitation: true, URL: u}
			}
		}
	}

	// The fallback prefers the first markdown link over any bare URL even when
	// a bare URL appears earlier in the text. A labeled link is the stronger
	// citation signal, so link kind outranks text order here.
	if len(markdownURLs) > 0 {
		return models.CitationFinding{HasCitation: true, URL: markdownURLs[0]}
	}
	if len(bareURLs) > 0 {
		return models.CitationFinding{HasCitation: true, URL: bareURLs[0]}
	}

	return models.CitationFinding{HasCitation: false}
}

// hostOf extracts the host component of a website URL, tolerating a missing
// scheme. An unparseable URL yields "" and simply disables business matching.
func hostOf(websiteURL string) string {
	if websiteURL == "" {
		return ""
	}

	parsed, err := url.Parse(websiteURL)
	if err != nil || parsed.Host == "" {
		parsed, err = url.Parse("https://" + websiteURL)
		if err != nil {
			return ""
		}
	}
	return parsed.Host
}
