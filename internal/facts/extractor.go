// Package facts extracts structured clinical facts from normalized
// treatment-plan text using keyword vocabularies and regex pattern families.
// Every extractor returns an empty collection on no-match rather than
// failing; extraction never depends on a sibling extractor's output.
package facts

import "github.com/rehabflow/rehabflow/internal/models"

// ExtractAll composes the five independent extractors over the given text.
func ExtractAll(text string) models.FactSet {
	return models.FactSet{
		Exercises:    ExtractExercises(text),
		Goals:        ExtractGoals(text),
		DosAndDonts:  ExtractDosAndDonts(text),
		Appointments: ExtractAppointments(text),
		Conditions:   ExtractConditions(text),
	}
}
