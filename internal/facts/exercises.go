package facts

import (
	"regexp"
	"strings"

	"github.com/rehabflow/rehabflow/internal/models"
)

var (
	// Leading enumeration markers ("1. ", "2) ") and all-caps category
	// prefixes ("UPPER BODY - ") are stripped from exercise names.
	enumPrefixRe     = regexp.MustCompile(`^\d+[.)]\s*`)
	categoryPrefixRe = regexp.MustCompile(`^[A-Z\s]+-\s*`)

	sentenceSplitRe = regexp.MustCompile(`[.!?\n]+`)
	wordRe          = regexp.MustCompile(`[a-z]+(?:-[a-z]+)*`)
)

// importancePatterns are tried in order; the first capture wins.
var importancePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)importance[:\s]+(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?i)helps?\s+(.+?)(?:\.|$)`),
	regexp.MustCompile(`(?i)benefit[s]?[:\s]+(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?i)why[:\s]+(.+?)(?:\n|$)`),
}

// ExtractExercises splits text into blank-line-delimited paragraphs and
// returns one exercise per paragraph that mentions an exercise keyword.
// Returns nil when nothing matches; pattern misses are never errors.
func ExtractExercises(text string) []models.Exercise {
	var exercises []models.Exercise

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if len(para) < 10 {
			continue
		}
		if !containsAny(strings.ToLower(para), exerciseBlockKeywords) {
			continue
		}

		name := exerciseName(para)
		exercises = append(exercises, models.Exercise{
			Name:         name,
			Instructions: extractInstructions(para),
			Frequency:    parseFrequency(para),
			Importance:   extractImportance(para),
			Type:         classifyType(name + " " + para),
			RawText:      para,
		})
	}
	return exercises
}

// exerciseName is the first line of the block with enumeration markers and
// category prefixes stripped.
func exerciseName(para string) string {
	name, _, _ := strings.Cut(para, "\n")
	name = strings.TrimSpace(name)
	name = enumPrefixRe.ReplaceAllString(name, "")
	name = categoryPrefixRe.ReplaceAllString(name, "")
	return name
}

// extractInstructions concatenates the sentences classified as imperative.
// When no sentence qualifies, the full paragraph text is the fallback.
func extractInstructions(para string) string {
	var instructions []string
	for _, sent := range sentenceSplitRe.Split(para, -1) {
		sent = strings.TrimSpace(sent)
		if sent == "" {
			continue
		}
		if isImperative(sent) {
			instructions = append(instructions, sent+".")
		}
	}
	if len(instructions) == 0 {
		return para
	}
	return strings.Join(instructions, " ")
}

// isImperative reports whether a sentence contains a base-form or
// present-tense action verb.
func isImperative(sent string) bool {
	for _, word := range wordRe.FindAllString(strings.ToLower(sent), -1) {
		for _, verb := range actionVerbs {
			if word == verb || word == verb+"s" {
				return true
			}
		}
	}
	return false
}

func extractImportance(para string) string {
	for _, p := range importancePatterns {
		if m := p.FindStringSubmatch(para); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// classifyType scores text against the type buckets in priority order; the
// first bucket with a keyword hit wins, defaulting to exercise.
func classifyType(text string) models.MissionType {
	lower := strings.ToLower(text)
	for _, bucket := range typeBuckets {
		if containsAny(lower, bucket.Terms) {
			return bucket.Type
		}
	}
	return models.MissionExercise
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
