package facts

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rehabflow/rehabflow/internal/models"
)

// Frequency extraction is an ordered cascade of independent parsers. Each
// parser returns an optional patch; the caller folds patches in priority
// order, so a later schedule-only match can override the schedule of an
// earlier fully-parsed sets/duration match while leaving its other fields
// intact.

// freqPatch is a partial frequency update. Nil fields leave the target
// untouched.
type freqPatch struct {
	Sets            *int
	Reps            *int
	DurationSeconds *int
	Schedule        *string
}

func (p *freqPatch) apply(f *models.Frequency) {
	if p == nil {
		return
	}
	if p.Sets != nil {
		f.Sets = *p.Sets
	}
	if p.Reps != nil {
		f.Reps = *p.Reps
	}
	if p.DurationSeconds != nil {
		f.DurationSeconds = *p.DurationSeconds
	}
	if p.Schedule != nil {
		f.Schedule = *p.Schedule
	}
}

var (
	setsDurationRe = regexp.MustCompile(`(\d+)\s*sets?\s*x\s*(\d+)\s*(seconds?|minutes?)\s*(daily|per day|weekly|per week)?`)
	setsRepsRe     = regexp.MustCompile(`(\d+)\s*sets?\s*x\s*(\d+)\s*reps?\s*(daily|per day|weekly|per week)?`)
	scheduleRe     = regexp.MustCompile(`(\d+)?\s*x?\s*(daily|per day|weekly|per week|twice weekly)`)
)

// defaultSchedule is assumed when no schedule token appears in the text.
const defaultSchedule = "daily"

type freqParser func(text string) *freqPatch

// freqParsers in priority order; later patches overwrite earlier-set fields.
var freqParsers = []freqParser{
	parseSetsDuration,
	parseSetsReps,
	parseScheduleOnly,
}

// parseFrequency runs the parser cascade over lowercased text and folds the
// resulting patches onto a default frequency.
func parseFrequency(text string) models.Frequency {
	freq := models.Frequency{Schedule: defaultSchedule}
	lower := strings.ToLower(text)
	for _, parse := range freqParsers {
		parse(lower).apply(&freq)
	}
	return freq
}

// parseSetsDuration handles "3 sets x 30 seconds daily".
func parseSetsDuration(text string) *freqPatch {
	m := setsDurationRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	sets, _ := strconv.Atoi(m[1])
	duration, _ := strconv.Atoi(m[2])
	if strings.HasPrefix(m[3], "minute") {
		duration *= 60
	}
	patch := &freqPatch{Sets: &sets, DurationSeconds: &duration}
	if m[4] != "" {
		sched := normalizeSchedule(m[4])
		patch.Schedule = &sched
	}
	return patch
}

// parseSetsReps handles "3 sets x 10 reps daily".
func parseSetsReps(text string) *freqPatch {
	m := setsRepsRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	sets, _ := strconv.Atoi(m[1])
	reps, _ := strconv.Atoi(m[2])
	patch := &freqPatch{Sets: &sets, Reps: &reps}
	if m[3] != "" {
		sched := normalizeSchedule(m[3])
		patch.Schedule = &sched
	}
	return patch
}

// parseScheduleOnly handles bare schedule tokens like "daily" or "2x per week".
func parseScheduleOnly(text string) *freqPatch {
	m := scheduleRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	sched := normalizeSchedule(m[2])
	if m[1] != "" {
		sched = m[1] + "x " + sched
	}
	return &freqPatch{Schedule: &sched}
}

func normalizeSchedule(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "per ", ""))
}
