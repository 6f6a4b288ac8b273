package facts

import "github.com/rehabflow/rehabflow/internal/models"

// Keyword vocabularies are named tables rather than inline literals so they
// can be extended without touching extraction logic.

// exerciseBlockKeywords qualify a paragraph as an exercise block.
var exerciseBlockKeywords = []string{
	"exercise", "stretch", "strength", "rehab",
	"movement", "mobility", "flexibility", "retraction",
}

// typeBucket pairs a mission type with its trigger terms. Buckets are checked
// in slice order; the first bucket with a hit wins.
type typeBucket struct {
	Type  models.MissionType
	Terms []string
}

var typeBuckets = []typeBucket{
	{models.MissionExercise, []string{"stretch", "exercise", "strength", "mobility", "flexibility"}},
	{models.MissionMedication, []string{"medication", "pain relief", "anti-inflammatory"}},
	{models.MissionTherapy, []string{"therapy", "physiotherapy", "treatment", "session"}},
	{models.MissionCheck, []string{"check", "monitor", "track", "log", "measure"}},
}

// actionVerbs mark a sentence as imperative for instruction extraction. Base
// and present-tense forms only.
var actionVerbs = []string{
	"stand", "sit", "lie", "hold", "keep", "lean", "lift", "raise", "lower",
	"bend", "pull", "push", "press", "rotate", "stretch", "extend", "repeat",
	"relax", "breathe", "squeeze", "tighten", "place", "perform", "apply",
	"move", "return", "start", "step", "walk", "reach",
}

// conditionBodyParts is the fixed vocabulary for diagnosis body-part
// resolution; first match wins.
var conditionBodyParts = []string{
	"neck", "shoulder", "knee", "back", "hip", "ankle", "wrist",
}
