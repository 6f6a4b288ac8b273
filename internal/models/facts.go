// Package models defines core data structures for extracted facts, missions,
// calendar events, and peer matching.
package models

// MissionType classifies what kind of task a fact or mission represents.
type MissionType string

const (
	MissionExercise   MissionType = "exercise"
	MissionMedication MissionType = "medication"
	MissionTherapy    MissionType = "therapy"
	MissionCheck      MissionType = "check"
)

// GoalType classifies the horizon of an extracted goal.
type GoalType string

const (
	GoalCurrent   GoalType = "current"
	GoalMilestone GoalType = "milestone"
	GoalEnd       GoalType = "end"
	GoalGeneral   GoalType = "general"
)

// Frequency describes how often an exercise should be performed.
// Zero values mean the field was not present in the source text; Schedule
// always holds at least the default "daily".
type Frequency struct {
	Sets            int    `json:"sets,omitempty"`
	Reps            int    `json:"reps,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	Schedule        string `json:"schedule"`
}

// Exercise is a single extracted exercise block.
type Exercise struct {
	Name         string      `json:"name"`
	Instructions string      `json:"instructions"`
	Frequency    Frequency   `json:"frequency"`
	Importance   string      `json:"importance,omitempty"`
	Type         MissionType `json:"type"`
	// RawText keeps the source paragraph for downstream duration inference.
	RawText string `json:"raw_text"`
}

// TimeReference is a parsed time horizon like "within 6-8 weeks".
type TimeReference struct {
	Value    int    `json:"value"`
	MaxValue int    `json:"max_value"`
	Unit     string `json:"unit"`
	Text     string `json:"text"`
}

// Goal is an extracted treatment goal or milestone.
type Goal struct {
	Type          GoalType       `json:"type"`
	Description   string         `json:"description"`
	TimeReference *TimeReference `json:"time_reference,omitempty"`
}

// DosAndDonts holds the recommended and prohibited action lists.
type DosAndDonts struct {
	Dos   []string `json:"dos"`
	Donts []string `json:"donts"`
}

// Appointment is an extracted recurring appointment schedule.
type Appointment struct {
	Type               string `json:"type"`
	FrequencyPerPeriod int    `json:"frequency_per_period"`
	Period             string `json:"period"`
	TimeframeDuration  int    `json:"timeframe_duration,omitempty"`
	TimeframeUnit      string `json:"timeframe_unit,omitempty"`
	RawText            string `json:"raw_text"`
}

// Condition is an extracted diagnosis with an optionally recognized body part.
type Condition struct {
	Diagnosis string `json:"diagnosis"`
	BodyPart  string `json:"body_part,omitempty"`
}

// FactSet is the full structured output of fact extraction. Every fact
// carries enough information to be converted to missions without referring
// back to the source text.
type FactSet struct {
	Exercises    []Exercise    `json:"exercises"`
	Goals        []Goal        `json:"goals"`
	DosAndDonts  DosAndDonts   `json:"dos_and_donts"`
	Appointments []Appointment `json:"appointments"`
	Conditions   []Condition   `json:"conditions"`
}

// Section is a titled slice of the source document in document order.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
