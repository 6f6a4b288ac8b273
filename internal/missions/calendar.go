package missions

import (
	"time"

	"github.com/rehabflow/rehabflow/internal/models"
)

// eventTypes are the mission types that produce calendar events.
var eventTypes = map[models.MissionType]bool{
	models.MissionTherapy:             true,
	models.MissionType("checkup"):     true,
	models.MissionType("appointment"): true,
}

// GenerateCalendarEvents derives events for therapy, checkup, and appointment
// missions. MissionID is left empty; the store back-fills it once the mission
// row exists.
func (g *Generator) GenerateCalendarEvents(missions []*models.Mission) []*models.CalendarEvent {
	var events []*models.CalendarEvent
	for _, m := range missions {
		if !eventTypes[m.Type] {
			continue
		}
		start := combine(m.ScheduledDate, m.ScheduledTime)
		minutes := m.DurationMinutes
		if minutes <= 0 {
			minutes = g.cfg.DefaultEventMinutes
		}
		events = append(events, &models.CalendarEvent{
			Title:           m.Title,
			Description:     m.Description,
			EventType:       m.Type,
			Start:           start,
			End:             start.Add(time.Duration(minutes) * time.Minute),
			PatientID:       m.PatientID,
			ReminderMinutes: g.cfg.ReminderMinutes,
		})
	}
	return events
}
