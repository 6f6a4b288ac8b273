package missions

import "github.com/rehabflow/rehabflow/internal/models"

// Config holds all scheduling constants for mission generation. Everything a
// test may want to pin down lives here rather than as scattered literals.
type Config struct {
	// DefaultDurationDays is assumed when an exercise block names no week
	// count (8 weeks).
	DefaultDurationDays int `yaml:"default_duration_days"`
	// DefaultPoints is the reward for a generated mission when the caller
	// passes no override.
	DefaultPoints int `yaml:"default_points"`
	// TherapyPoints is the fixed reward for appointment-derived missions.
	TherapyPoints int `yaml:"therapy_points"`
	// TherapySessionMinutes is the fixed length of an appointment session.
	TherapySessionMinutes int `yaml:"therapy_session_minutes"`
	// AppointmentDueTime is the fixed due time for appointment-derived
	// missions (sessions run 14:00-16:00).
	AppointmentDueTime string `yaml:"appointment_due_time"`
	// DefaultEventMinutes is the calendar-event length when a mission has no
	// duration of its own.
	DefaultEventMinutes int `yaml:"default_event_minutes"`
	// ReminderMinutes are the fixed reminder offsets before an event start.
	ReminderMinutes []int `yaml:"reminder_minutes"`
	// DefaultTimeframeWeeks is assumed when an appointment schedule names no
	// timeframe.
	DefaultTimeframeWeeks int `yaml:"default_timeframe_weeks"`

	// ScheduledTimes maps mission type to its default start time ("HH:MM").
	ScheduledTimes map[models.MissionType]string `yaml:"scheduled_times"`
	// DueOffsetHours maps mission type to hours between start and due.
	DueOffsetHours map[models.MissionType]int `yaml:"due_offset_hours"`
	// FallbackTime and FallbackDueOffsetHours apply to unknown types.
	FallbackTime           string `yaml:"fallback_time"`
	FallbackDueOffsetHours int    `yaml:"fallback_due_offset_hours"`
}

// DefaultConfig returns the standard scheduling configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultDurationDays:   56,
		DefaultPoints:         50,
		TherapyPoints:         100,
		TherapySessionMinutes: 60,
		AppointmentDueTime:    "16:00",
		DefaultEventMinutes:   60,
		ReminderMinutes:       []int{1440, 60},
		DefaultTimeframeWeeks: 6,
		ScheduledTimes: map[models.MissionType]string{
			models.MissionExercise:   "07:00",
			models.MissionMedication: "08:00",
			models.MissionTherapy:    "14:00",
			models.MissionCheck:      "09:00",
		},
		DueOffsetHours: map[models.MissionType]int{
			models.MissionExercise:   2,
			models.MissionMedication: 1,
			models.MissionTherapy:    3,
			models.MissionCheck:      12,
		},
		FallbackTime:           "09:00",
		FallbackDueOffsetHours: 2,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()
	if c.DefaultDurationDays == 0 {
		c.DefaultDurationDays = defaults.DefaultDurationDays
	}
	if c.DefaultPoints == 0 {
		c.DefaultPoints = defaults.DefaultPoints
	}
	if c.TherapyPoints == 0 {
		c.TherapyPoints = defaults.TherapyPoints
	}
	if c.TherapySessionMinutes == 0 {
		c.TherapySessionMinutes = defaults.TherapySessionMinutes
	}
	if c.AppointmentDueTime == "" {
		c.AppointmentDueTime = defaults.AppointmentDueTime
	}
	if c.DefaultEventMinutes == 0 {
		c.DefaultEventMinutes = defaults.DefaultEventMinutes
	}
	if c.ReminderMinutes == nil {
		c.ReminderMinutes = defaults.ReminderMinutes
	}
	if c.DefaultTimeframeWeeks == 0 {
		c.DefaultTimeframeWeeks = defaults.DefaultTimeframeWeeks
	}
	if c.ScheduledTimes == nil {
		c.ScheduledTimes = defaults.ScheduledTimes
	}
	if c.DueOffsetHours == nil {
		c.DueOffsetHours = defaults.DueOffsetHours
	}
	if c.FallbackTime == "" {
		c.FallbackTime = defaults.FallbackTime
	}
	if c.FallbackDueOffsetHours == 0 {
		c.FallbackDueOffsetHours = defaults.FallbackDueOffsetHours
	}
}

// scheduledTime returns the default start time for a mission type.
func (c *Config) scheduledTime(t models.MissionType) string {
	if tm, ok := c.ScheduledTimes[t]; ok {
		return tm
	}
	return c.FallbackTime
}

// dueOffsetHours returns the hours between scheduled time and due time.
func (c *Config) dueOffsetHours(t models.MissionType) int {
	if h, ok := c.DueOffsetHours[t]; ok {
		return h
	}
	return c.FallbackDueOffsetHours
}
