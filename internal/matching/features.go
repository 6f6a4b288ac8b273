package matching

import (
	"regexp"
	"strings"

	"github.com/rehabflow/rehabflow/internal/models"
)

// rehabKeywords are the treatment terms counted when profiling a patient's
// mission set. Matching is substring-based on the lowercased title and
// description, so "stretching" counts toward "stretch".
var rehabKeywords = []string{
	"stretch", "strength", "mobility", "flexibility", "pain",
	"rehabilitation", "therapy", "exercise", "retraction", "rotation",
	"extension", "flexion", "overhead", "posture", "range", "motion",
	"recovery", "healing",
}

// bodyParts are the anatomy terms counted from mission titles only.
var bodyParts = []string{
	"neck", "shoulder", "knee", "back", "spine", "hip", "ankle",
	"wrist", "elbow", "arm", "leg", "foot", "hand",
}

// featureSet profiles one user's missions for a single day as three term
// multisets. Counts, not presence, so a plan dominated by stretching looks
// different from one that mentions it once.
type featureSet struct {
	missionTypes map[string]int
	keywords     map[string]int
	bodyParts    map[string]int
}

// extractFeatures builds a featureSet from missions, counting each
// vocabulary term once per mission it appears in.
func extractFeatures(missions []models.Mission) featureSet {
	fs := featureSet{
		missionTypes: make(map[string]int),
		keywords:     make(map[string]int),
		bodyParts:    make(map[string]int),
	}
	for _, m := range missions {
		fs.missionTypes[string(m.Type)]++
		text := strings.ToLower(m.Title + " " + m.Description)
		for _, kw := range rehabKeywords {
			if strings.Contains(text, kw) {
				fs.keywords[kw]++
			}
		}
		// Body parts come from the title alone; descriptions mention anatomy
		// too freely to be a grouping signal.
		title := strings.ToLower(m.Title)
		for _, part := range bodyParts {
			if strings.Contains(title, part) {
				fs.bodyParts[part]++
			}
		}
	}
	return fs
}

// compareCounts returns the weighted Jaccard similarity of two multisets:
// the sum of per-key minimum counts over the size of the union. Two empty
// multisets score 0.
func compareCounts(a, b map[string]int) float64 {
	intersection := 0
	totalA, totalB := 0, 0
	for _, n := range a {
		totalA += n
	}
	for key, n := range b {
		totalB += n
		if m, ok := a[key]; ok {
			if m < n {
				intersection += m
			} else {
				intersection += n
			}
		}
	}
	union := totalA + totalB - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

var titleWordRe = regexp.MustCompile(`[a-z0-9]+`)

// titleWords lowercases a mission title and returns its word set.
func titleWords(title string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range titleWordRe.FindAllString(strings.ToLower(title), -1) {
		words[w] = struct{}{}
	}
	return words
}

// wordOverlap is the Jaccard similarity of two titles' word sets.
func wordOverlap(a, b string) float64 {
	wa, wb := titleWords(a), titleWords(b)
	if len(wa) == 0 && len(wb) == 0 {
		return 0
	}
	shared := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			shared++
		}
	}
	union := len(wa) + len(wb) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

// injurySimilarity compares two free-text injury descriptions by word
// overlap. Either side being empty scores 0.
func injurySimilarity(a, b string) float64 {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return 0
	}
	return wordOverlap(a, b)
}

// normalizeTitle collapses a title for exact common-mission comparison.
func normalizeTitle(title string) string {
	return strings.Join(titleWordRe.FindAllString(strings.ToLower(title), -1), " ")
}
