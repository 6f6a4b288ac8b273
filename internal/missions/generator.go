// Package missions expands extracted treatment-plan facts into dated, timed
// mission instances and derives calendar events from them.
package missions

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rehabflow/rehabflow/internal/models"
)

var (
	weeksRe           = regexp.MustCompile(`(\d+)[-\s]*(\d+)?\s*weeks?`)
	weeklyFrequencyRe = regexp.MustCompile(`^(\d+)\s*x?`)
)

// checkTitleLimit caps how much of a DO item goes into a check title.
const checkTitleLimit = 50

// Generator expands a fact set into missions for a fixed start date. It is
// stateless across calls.
type Generator struct {
	start time.Time
	cfg   *Config
}

// NewGenerator returns a Generator anchored at the given start date. A nil
// cfg uses defaults.
func NewGenerator(start time.Time, cfg *Config) *Generator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.ApplyDefaults()
	return &Generator{start: dateOnly(start), cfg: cfg}
}

// GenerateMissions converts the fact set into an ordered mission list:
// exercise-derived missions first, then check missions from DO items, then
// appointment-derived missions. Sparse fact sets yield short lists, never an
// error.
func (g *Generator) GenerateMissions(facts *models.FactSet, planID, patientID string, defaultPoints int) []*models.Mission {
	if defaultPoints <= 0 {
		defaultPoints = g.cfg.DefaultPoints
	}

	var missions []*models.Mission
	for i := range facts.Exercises {
		missions = append(missions, g.exerciseMissions(&facts.Exercises[i], planID, patientID, defaultPoints)...)
	}
	for _, item := range facts.DosAndDonts.Dos {
		if m := g.checkMission(item, planID, patientID, defaultPoints); m != nil {
			missions = append(missions, m)
		}
	}
	for i := range facts.Appointments {
		missions = append(missions, g.appointmentMissions(&facts.Appointments[i], planID, patientID)...)
	}
	return missions
}

// exerciseMissions expands one exercise according to its schedule. Schedules
// other than daily and weekly variants produce no missions.
func (g *Generator) exerciseMissions(ex *models.Exercise, planID, patientID string, points int) []*models.Mission {
	durationDays := g.durationDays(ex.RawText)
	durationMinutes := ex.Frequency.DurationSeconds / 60

	schedule := ex.Frequency.Schedule
	switch {
	case schedule == "daily":
		return g.dailyMissions(ex, planID, patientID, points, durationDays, durationMinutes)
	case strings.Contains(schedule, "week"):
		return g.weeklyMissions(ex, planID, patientID, points, durationDays, durationMinutes)
	default:
		return nil
	}
}

func (g *Generator) dailyMissions(ex *models.Exercise, planID, patientID string, points, durationDays, durationMinutes int) []*models.Mission {
	endDate := g.start.AddDate(0, 0, durationDays-1)
	missions := make([]*models.Mission, 0, durationDays)
	for day := 0; day < durationDays; day++ {
		date := g.start.AddDate(0, 0, day)
		m := g.newMission(ex, planID, patientID, points, date, durationMinutes)
		m.Recurrence = &models.Recurrence{Frequency: "daily", EndDate: &endDate}
		missions = append(missions, m)
	}
	return missions
}

func (g *Generator) weeklyMissions(ex *models.Exercise, planID, patientID string, points, durationDays, durationMinutes int) []*models.Mission {
	frequency := weeklyFrequency(ex.Frequency.Schedule)
	daysBetween := intervalDays(frequency)
	count := durationDays / daysBetween

	missions := make([]*models.Mission, 0, count)
	date := g.start
	for i := 0; i < count; i++ {
		m := g.newMission(ex, planID, patientID, points, date, durationMinutes)
		m.Recurrence = &models.Recurrence{Frequency: "weekly", Count: count, Interval: daysBetween}
		missions = append(missions, m)
		date = date.AddDate(0, 0, daysBetween)
	}
	return missions
}

func (g *Generator) newMission(ex *models.Exercise, planID, patientID string, points int, date time.Time, durationMinutes int) *models.Mission {
	scheduledTime := g.cfg.scheduledTime(ex.Type)
	return &models.Mission{
		Title:           ex.Name,
		Description:     ex.Instructions,
		Type:            ex.Type,
		ScheduledDate:   date,
		ScheduledTime:   scheduledTime,
		Due:             g.dueTime(date, scheduledTime, g.cfg.dueOffsetHours(ex.Type)),
		DurationMinutes: durationMinutes,
		Points:          points,
		Status:          models.StatusPending,
		TreatmentPlanID: planID,
		PatientID:       patientID,
	}
}

// checkMission turns a DO item into a same-day check mission. Items outside
// the [10,200] character range are skipped.
func (g *Generator) checkMission(item, planID, patientID string, defaultPoints int) *models.Mission {
	if len(item) < 10 || len(item) > 200 {
		return nil
	}
	title := item
	// Truncate on a rune boundary so multi-byte items keep a valid title.
	if runes := []rune(title); len(runes) > checkTitleLimit {
		title = string(runes[:checkTitleLimit])
	}
	scheduledTime := g.cfg.scheduledTime(models.MissionCheck)
	return &models.Mission{
		Title:           "Check: " + title,
		Description:     item,
		Type:            models.MissionCheck,
		ScheduledDate:   g.start,
		ScheduledTime:   scheduledTime,
		Due:             endOfDay(g.start),
		Points:          defaultPoints / 2,
		Status:          models.StatusPending,
		TreatmentPlanID: planID,
		PatientID:       patientID,
	}
}

// appointmentMissions emits one therapy mission per expected session. The
// timeframe unit is carried on the fact but scheduling math is week-based.
func (g *Generator) appointmentMissions(a *models.Appointment, planID, patientID string) []*models.Mission {
	timeframe := a.TimeframeDuration
	if timeframe <= 0 {
		timeframe = g.cfg.DefaultTimeframeWeeks
	}
	total := a.FrequencyPerPeriod * timeframe
	if total <= 0 {
		return nil
	}
	daysBetween := intervalDays(a.FrequencyPerPeriod)

	scheduledTime := g.cfg.scheduledTime(models.MissionTherapy)
	title := a.Type
	if title == "" {
		title = "Therapy Session"
	}

	missions := make([]*models.Mission, 0, total)
	date := g.start
	for i := 0; i < total; i++ {
		missions = append(missions, &models.Mission{
			Title:           title,
			Description:     fmt.Sprintf("%s session %d", title, i+1),
			Type:            models.MissionTherapy,
			ScheduledDate:   date,
			ScheduledTime:   scheduledTime,
			Due:             combine(date, g.cfg.AppointmentDueTime),
			DurationMinutes: g.cfg.TherapySessionMinutes,
			Points:          g.cfg.TherapyPoints,
			Status:          models.StatusPending,
			TreatmentPlanID: planID,
			PatientID:       patientID,
		})
		date = date.AddDate(0, 0, daysBetween)
	}
	return missions
}

// durationDays reads a week count from the exercise's raw text, defaulting to
// the configured duration when absent.
func (g *Generator) durationDays(rawText string) int {
	if m := weeksRe.FindStringSubmatch(strings.ToLower(rawText)); m != nil {
		if weeks, err := strconv.Atoi(m[1]); err == nil && weeks > 0 {
			return weeks * 7
		}
	}
	return g.cfg.DefaultDurationDays
}

// weeklyFrequency reads a leading occurrence count from a schedule string
// ("2x week" -> 2), defaulting to once per week.
func weeklyFrequency(schedule string) int {
	if m := weeklyFrequencyRe.FindStringSubmatch(strings.TrimSpace(schedule)); m != nil {
		if f, err := strconv.Atoi(m[1]); err == nil {
			return f
		}
	}
	return 1
}

// intervalDays is floor(7/frequency) clamped to [1,7]. Non-positive
// frequencies are treated as one occurrence per week.
func intervalDays(frequency int) int {
	if frequency <= 0 {
		return 7
	}
	days := 7 / frequency
	if days < 1 {
		days = 1
	}
	return days
}

// dueTime combines the scheduled date and time and adds the per-type offset,
// clamped to 23:59 of the same day so a late start never rolls into the next
// calendar day.
func (g *Generator) dueTime(date time.Time, scheduledTime string, offsetHours int) time.Time {
	due := combine(date, scheduledTime).Add(time.Duration(offsetHours) * time.Hour)
	if eod := endOfDay(date); due.After(eod) {
		return eod
	}
	return due
}

// combine parses "HH:MM" onto the given date. Malformed times fall back to
// midnight.
func combine(date time.Time, hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

func endOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 0, 0, date.Location())
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
