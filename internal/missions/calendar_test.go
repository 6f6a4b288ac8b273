package missions

import (
	"testing"
	"time"

	"github.com/rehabflow/rehabflow/internal/models"
)

func TestGenerateCalendarEvents(t *testing.T) {
	g := NewGenerator(start, nil)
	missions := []*models.Mission{
		{
			Title:           "Physiotherapy",
			Description:     "Physiotherapy session 1",
			Type:            models.MissionTherapy,
			ScheduledDate:   start,
			ScheduledTime:   "14:00",
			DurationMinutes: 45,
			PatientID:       "patient-1",
		},
		{
			Title:         "Pec Stretch",
			Type:          models.MissionExercise,
			ScheduledDate: start,
			ScheduledTime: "07:00",
			PatientID:     "patient-1",
		},
		{
			Title:         "Follow-up",
			Type:          models.MissionType("checkup"),
			ScheduledDate: start.AddDate(0, 0, 7),
			ScheduledTime: "10:00",
			PatientID:     "patient-1",
		},
	}

	events := g.GenerateCalendarEvents(missions)
	if len(events) != 2 {
		t.Fatalf("expected events only for therapy/checkup/appointment, got %d", len(events))
	}

	therapy := events[0]
	wantStart := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	if !therapy.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", therapy.Start, wantStart)
	}
	if got := therapy.End.Sub(therapy.Start); got != 45*time.Minute {
		t.Errorf("event length = %v, want mission duration 45m", got)
	}
	if therapy.MissionID != "" {
		t.Error("mission id must be unset at generation time")
	}
	if len(therapy.ReminderMinutes) != 2 || therapy.ReminderMinutes[0] != 1440 || therapy.ReminderMinutes[1] != 60 {
		t.Errorf("reminders = %v, want [1440 60]", therapy.ReminderMinutes)
	}

	// No duration on the checkup mission: falls back to 60 minutes.
	checkup := events[1]
	if got := checkup.End.Sub(checkup.Start); got != 60*time.Minute {
		t.Errorf("default event length = %v, want 60m", got)
	}
}

func TestGenerateCalendarEvents_Empty(t *testing.T) {
	g := NewGenerator(start, nil)
	if got := g.GenerateCalendarEvents(nil); len(got) != 0 {
		t.Errorf("expected no events, got %d", len(got))
	}
}
