// Package normalize cleans raw document text and segments it into titled
// sections by heading recognition.
package normalize

import (
	"regexp"
	"strings"

	"github.com/rehabflow/rehabflow/internal/models"
)

var (
	// Runs of spaces and tabs collapse to one space; newlines are preserved
	// so paragraph and heading structure survives for downstream extraction.
	horizontalWS = regexp.MustCompile(`[ \t]+`)
	blankLines   = regexp.MustCompile(`\n{3,}`)
)

// Clean normalizes raw extracted text: CRLF to LF, form-feed page breaks to
// newlines, runs of horizontal whitespace to single spaces, trimmed lines and
// at most one blank line between paragraphs. Pure function, no failure modes.
func Clean(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\f", "\n")
	text = horizontalWS.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Heading patterns tried in order: known section-name vocabulary, numbered
// headings ("2. Exercises"), and all-caps headings with an optional
// "- subtitle" suffix.
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(treatment\s+plan|home\s+rehabilitation\s+program|exercises|goals|instructions|appointment\s+schedule|do'?s?\s+and\s+don'?t?s?|patient\s+goals)\b`),
	regexp.MustCompile(`^\d+\.\s+[A-Z][^\n]+`),
	regexp.MustCompile(`^[A-Z][A-Z\s]+(?:\s*-\s*[A-Z][^\n]+)?$`),
}

// Sections scans lines and splits the text at recognized headings, returning
// sections in document order. Lines before the first heading are dropped. A
// text with no headings yields nil; that is accepted, not an error.
func Sections(text string) []models.Section {
	var sections []models.Section
	var title string
	var content []string

	flush := func() {
		if title != "" {
			sections = append(sections, models.Section{
				Title:   title,
				Content: strings.Join(content, "\n"),
			})
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isHeading(line) {
			flush()
			title = line
			content = nil
			continue
		}
		if title != "" {
			content = append(content, line)
		}
	}
	flush()
	return sections
}

func isHeading(line string) bool {
	for _, p := range headingPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
