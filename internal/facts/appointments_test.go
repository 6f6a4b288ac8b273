package facts

import "testing"

func TestExtractAppointments(t *testing.T) {
	text := "Physiotherapy sessions 2x per week for the first 3 weeks, then review."
	appointments := ExtractAppointments(text)
	if len(appointments) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(appointments))
	}
	a := appointments[0]
	// The term regex anchors on the word immediately before the frequency,
	// which here is "sessions".
	if a.Type != "session" {
		t.Errorf("type = %q", a.Type)
	}
	if a.FrequencyPerPeriod != 2 {
		t.Errorf("frequency = %d, want 2", a.FrequencyPerPeriod)
	}
	if a.Period != "week" {
		t.Errorf("period = %q, want week", a.Period)
	}
	if a.TimeframeDuration != 3 {
		t.Errorf("timeframe = %d, want 3", a.TimeframeDuration)
	}
	if a.TimeframeUnit != "weeks" {
		t.Errorf("timeframe unit = %q, want weeks", a.TimeframeUnit)
	}
}

func TestExtractAppointments_MultipleMatches(t *testing.T) {
	text := `Therapy 2x per week for 4 weeks.
Appointment 1x per week during 2 months.`
	appointments := ExtractAppointments(text)
	if len(appointments) != 2 {
		t.Fatalf("expected 2 appointments, got %d: %+v", len(appointments), appointments)
	}
}

func TestExtractAppointments_NoMatch(t *testing.T) {
	if got := ExtractAppointments("come by whenever it suits you"); len(got) != 0 {
		t.Errorf("expected no appointments, got %+v", got)
	}
}
