package models

import "time"

// MissionStatus is the lifecycle status of a mission. The generator always
// emits missions as pending; downstream systems own later transitions.
type MissionStatus string

const (
	StatusPending MissionStatus = "pending"
)

// Recurrence describes the pattern that produced a mission, kept so a plan
// can be regenerated or edited later.
type Recurrence struct {
	Frequency string     `json:"frequency"`
	Interval  int        `json:"interval,omitempty"`
	Count     int        `json:"count,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// Mission is a single dated, timed, points-bearing task derived from a
// treatment-plan fact. Immutable once generated.
type Mission struct {
	ID              string        `json:"id,omitempty" db:"id"`
	Title           string        `json:"title" db:"title"`
	Description     string        `json:"description" db:"description"`
	Type            MissionType   `json:"mission_type" db:"mission_type"`
	ScheduledDate   time.Time     `json:"scheduled_date" db:"scheduled_date"`
	ScheduledTime   string        `json:"scheduled_time" db:"scheduled_time"`
	Due             time.Time     `json:"due_datetime" db:"due_datetime"`
	DurationMinutes int           `json:"duration_minutes,omitempty" db:"duration_minutes"`
	Points          int           `json:"points" db:"points"`
	Status          MissionStatus `json:"status" db:"status"`
	TreatmentPlanID string        `json:"treatment_plan_id" db:"treatment_plan_id"`
	PatientID       string        `json:"patient_id" db:"patient_id"`
	Recurrence      *Recurrence   `json:"recurrence,omitempty" db:"recurrence"`
}

// SameDay reports whether the mission is scheduled on the given calendar day.
func (m *Mission) SameDay(day time.Time) bool {
	y1, m1, d1 := m.ScheduledDate.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// CalendarEvent is derived 1:1 from therapy/checkup/appointment missions.
// MissionID is empty at generation time and back-filled by the store after
// the mission row exists.
type CalendarEvent struct {
	ID              string      `json:"id,omitempty" db:"id"`
	Title           string      `json:"title" db:"title"`
	Description     string      `json:"description" db:"description"`
	EventType       MissionType `json:"event_type" db:"event_type"`
	Start           time.Time   `json:"start_datetime" db:"start_datetime"`
	End             time.Time   `json:"end_datetime" db:"end_datetime"`
	MissionID       string      `json:"mission_id,omitempty" db:"mission_id"`
	PatientID       string      `json:"patient_id" db:"patient_id"`
	AllDay          bool        `json:"is_all_day" db:"is_all_day"`
	ReminderMinutes []int       `json:"reminder_minutes" db:"reminder_minutes"`
}
