package facts

import (
	"regexp"
	"strings"

	"github.com/rehabflow/rehabflow/internal/models"
)

var conditionRe = regexp.MustCompile(`(?im)(?:diagnosis|condition|injury)[:\s]+(.+?)(?:\n|$)`)

// ExtractConditions returns one condition per diagnosis/condition/injury
// label, with the body part resolved by first match against the fixed
// vocabulary.
func ExtractConditions(text string) []models.Condition {
	var conditions []models.Condition
	for _, m := range conditionRe.FindAllStringSubmatch(text, -1) {
		diagnosis := strings.TrimSpace(m[1])
		conditions = append(conditions, models.Condition{
			Diagnosis: diagnosis,
			BodyPart:  resolveBodyPart(diagnosis),
		})
	}
	return conditions
}

func resolveBodyPart(diagnosis string) string {
	lower := strings.ToLower(diagnosis)
	for _, part := range conditionBodyParts {
		if strings.Contains(lower, part) {
			return part
		}
	}
	return ""
}
