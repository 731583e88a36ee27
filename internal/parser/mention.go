package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ido-cryptoson/geo-platform/internal/models"
)

// Ordinal markers at line start: "1.", "1)", "**1.**", "#1"
var numberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d+)\.\s*`),
	regexp.MustCompile(`^\*\*(\d+)\.\*\*\s*`),
	regexp.MustCompile(`^#(\d+)\s*`),
	regexp.MustCompile(`^(\d+)\)\s*`),
}

// Bullet markers, optionally bold-wrapped
var bulletPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[-*•]\s*`),
	regexp.MustCompile(`^\*\*[-*•]\*\*\s*`),
}

var (
	boldSpanPattern   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	listMarkerPattern = regexp.MustCompile(`^[\d.\-*•#\s]+`)
	apostropheRunes   = "'’‘\""
)

// FindMention searches raw response text for the first of the candidate names
// (exact name first, aliases after). The first candidate that produces a hit
// wins; later candidates are not tried. Matching is case-insensitive substring
// first, then a fuzzy pass tolerant of apostrophe variants and whitespace runs.
func FindMention(response string, names []string) models.MentionFinding {
	normalizedResponse := strings.ToLower(response)

	for _, name := range names {
		if name == "" {
			continue
		}

		if strings.Contains(normalizedResponse, strings.ToLower(name)) {
			return buildFinding(response, name)
		}

		if matched := fuzzyMatchName(response, name); matched != "" {
			return buildFinding(response, matched)
		}
	}

	return models.MentionFinding{IsMentioned: false}
}

func buildFinding(response, name string) models.MentionFinding {
	position := findPositionInList(response, name)
	return models.MentionFinding{
		IsMentioned: true,
		Position:    &position,
		ContextText: extractMentionContext(response, name),
	}
}

// positionDetector returns a definite 1-based position or nil when its rule
// does not apply. Detectors are tried in order; the first definite answer wins.
type positionDetector func(lines []string, nameLower string) *int

var positionDetectors = []positionDetector{
	detectNumberedPosition,
	detectBulletPosition,
	detectBoldLinePosition,
}

// findPositionInList estimates the 1-based rank of a mentioned name. Rules are
// line-oriented and best-effort: two names sharing a numbered line are not
// disambiguated, and the bold-line rule can misfire on bold text unrelated to
// ranking. A name present outside any list structure gets position 1.
func findPositionInList(response, name string) int {
	lines := strings.Split(response, "\n")
	nameLower := strings.ToLower(name)

	for _, detect := range positionDetectors {
		if pos := detect(lines, nameLower); pos != nil {
			return *pos
		}
	}

	return 1
}

// detectNumberedPosition reads the explicit ordinal off the matching line
func detectNumberedPosition(lines []string, nameLower string) *int {
	for _, line := range lines {
		if !strings.Contains(strings.ToLower(line), nameLower) {
			continue
		}
		for _, pattern := range numberPatterns {
			if m := pattern.FindStringSubmatch(line); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil {
					return &n
				}
			}
		}
	}
	return nil
}

// detectBulletPosition counts bullet lines up to and including the first one
// containing the name
func detectBulletPosition(lines []string, nameLower string) *int {
	bulletCount := 0
	for _, line := range lines {
		if !isBulletLine(line) {
			continue
		}
		bulletCount++
		if strings.Contains(strings.ToLower(line), nameLower) {
			count := bulletCount
			return &count
		}
	}
	return nil
}

// detectBoldLinePosition approximates rank with the matching line's index when
// the line carries a bold span but no explicit marker
func detectBoldLinePosition(lines []string, nameLower string) *int {
	for i, line := range lines {
		if boldSpanPattern.MatchString(line) && strings.Contains(strings.ToLower(line), nameLower) {
			pos := i + 1
			return &pos
		}
	}
	return nil
}

func isBulletLine(line string) bool {
	for _, pattern := range bulletPatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// extractMentionContext returns the line containing the mention with list and
// bold markers stripped. Degenerate input with no single matching line falls
// back to a character window around the match.
func extractMentionContext(response, name string) string {
	nameLower := strings.ToLower(name)

	for _, line := range strings.Split(response, "\n") {
		if strings.Contains(strings.ToLower(line), nameLower) {
			cleaned := listMarkerPattern.ReplaceAllString(line, "")
			cleaned = strings.ReplaceAll(cleaned, "**", "")
			return strings.TrimSpace(cleaned)
		}
	}

	index := strings.Index(strings.ToLower(response), nameLower)
	if index == -1 {
		return ""
	}
	start := index - 50
	if start < 0 {
		start = 0
	}
	end := index + len(name) + 100
	if end > len(response) {
		end = len(response)
	}
	return strings.TrimSpace(response[start:end])
}

// fuzzyMatchName matches a name against text ignoring apostrophe variants and
// collapsing whitespace runs, e.g. "Mario's" == "Marios" == "Mario’s".
// It returns the form actually present in the text, or "" when there is no
// match.
func fuzzyMatchName(text, name string) string {
	if normalizeForFuzzy(text) == "" || normalizeForFuzzy(name) == "" {
		return ""
	}
	if !strings.Contains(normalizeForFuzzy(text), normalizeForFuzzy(name)) {
		return ""
	}

	// Recover the original surface form so position and context extraction
	// operate on what the response actually says
	var pattern strings.Builder
	pattern.WriteString("(?i)")
	for _, r := range name {
		switch {
		case strings.ContainsRune(apostropheRunes, r):
			pattern.WriteString("['’‘]?")
		case r == ' ':
			pattern.WriteString(`\s+`)
		default:
			pattern.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return name
	}
	if match := re.FindString(text); match != "" {
		return match
	}
	return name
}

func normalizeForFuzzy(s string) string {
	s = strings.ToLower(s)
	for _, r := range apostropheRunes {
		s = strings.ReplaceAll(s, string(r), "")
	}
	return strings.Join(strings.Fields(s), " ")
}
