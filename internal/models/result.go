package models

import "time"

// Metadata describes a single pipeline run over one source document.
type Metadata struct {
	SourcePath        string    `json:"source_path"`
	TotalPages        int       `json:"total_pages"`
	ExtractionMethod  string    `json:"extraction_method"`
	TextLength        int       `json:"text_length"`
	MissionsGenerated int       `json:"missions_generated"`
	EventsGenerated   int       `json:"calendar_events_generated"`
	ExtractedAt       time.Time `json:"extraction_timestamp"`
	Confidence        float64   `json:"confidence"`
}

// Result is the serialized interchange artifact for one processed document:
// the raw fact set, the section list, the generated missions and events, and
// run metadata.
type Result struct {
	// Text is the normalized document text the facts were extracted from.
	Text     string           `json:"text,omitempty"`
	Facts    FactSet          `json:"extracted_data"`
	Sections []Section        `json:"sections"`
	Missions []*Mission       `json:"missions"`
	Events   []*CalendarEvent `json:"calendar_events"`
	Metadata Metadata         `json:"metadata"`
}

// ComputeConfidence scores how much signal the run produced: base 0.8, +0.1
// when any exercise was extracted, +0.05 for goals, +0.05 for missions,
// capped at 1.0.
func ComputeConfidence(facts *FactSet, missionCount int) float64 {
	confidence := 0.8
	if len(facts.Exercises) > 0 {
		confidence += 0.1
	}
	if len(facts.Goals) > 0 {
		confidence += 0.05
	}
	if missionCount > 0 {
		confidence += 0.05
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}
