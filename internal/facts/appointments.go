package facts

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rehabflow/rehabflow/internal/models"
)

// appointmentRe matches schedules like "Physiotherapy sessions 2x per week
// for the first 3 weeks". Type and frequency are required; ordinal, timeframe
// duration, and unit are optional.
var appointmentRe = regexp.MustCompile(
	`(?i)(physiotherapy|therapy|appointment|session)[s]?\s+(\d+)\s*x?\s*per\s*(week|day|month)\s+(?:for|during)\s+(?:the\s+)?(first|second|third|last)?\s*(\d+)?\s*(weeks?|days?|months?)`)

// ExtractAppointments returns one appointment fact per non-overlapping match.
func ExtractAppointments(text string) []models.Appointment {
	var appointments []models.Appointment
	for _, m := range appointmentRe.FindAllStringSubmatch(text, -1) {
		frequency, _ := strconv.Atoi(m[2])
		timeframe := 0
		if m[5] != "" {
			timeframe, _ = strconv.Atoi(m[5])
		}
		appointments = append(appointments, models.Appointment{
			Type:               strings.TrimSpace(m[1]),
			FrequencyPerPeriod: frequency,
			Period:             strings.ToLower(m[3]),
			TimeframeDuration:  timeframe,
			TimeframeUnit:      strings.ToLower(m[6]),
			RawText:            m[0],
		})
	}
	return appointments
}
