package facts

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rehabflow/rehabflow/internal/models"
)

// goalPatterns are scanned independently over the whole text. A span captured
// by more than one family yields duplicate goals; that is accepted behavior.
var goalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)(current\s+result|next\s+milestone|end\s+goal)[:\s]+(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?im)goal[s]?[:\s]+(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?im)(reach|achieve|attain|lift|gain)\s+(.+?)(?:\.|$)`),
}

var timeReferenceRe = regexp.MustCompile(`(?:in|within|by|after)\s+(\d+)(?:-(\d+))?\s*(weeks?|days?|months?)`)

// ExtractGoals returns every goal or milestone mentioned in the text.
func ExtractGoals(text string) []models.Goal {
	var goals []models.Goal
	for _, p := range goalPatterns {
		for _, m := range p.FindAllString(text, -1) {
			span := strings.TrimSpace(m)
			goals = append(goals, models.Goal{
				Type:          goalType(span),
				Description:   span,
				TimeReference: parseTimeReference(span),
			})
		}
	}
	return goals
}

// goalType infers the horizon from keyword presence, checked in priority
// order current > milestone > end > general.
func goalType(span string) models.GoalType {
	lower := strings.ToLower(span)
	switch {
	case strings.Contains(lower, "current"):
		return models.GoalCurrent
	case strings.Contains(lower, "milestone"):
		return models.GoalMilestone
	case strings.Contains(lower, "end"):
		return models.GoalEnd
	default:
		return models.GoalGeneral
	}
}

// parseTimeReference parses horizons like "in 2 weeks" or "within 6-8 weeks".
// Returns nil when the span carries no time reference.
func parseTimeReference(span string) *models.TimeReference {
	m := timeReferenceRe.FindStringSubmatch(strings.ToLower(span))
	if m == nil {
		return nil
	}
	value, _ := strconv.Atoi(m[1])
	maxValue := value
	if m[2] != "" {
		maxValue, _ = strconv.Atoi(m[2])
	}
	return &models.TimeReference{
		Value:    value,
		MaxValue: maxValue,
		Unit:     m[3],
		Text:     m[0],
	}
}
