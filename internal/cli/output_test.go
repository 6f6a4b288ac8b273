package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rehabflow/rehabflow/internal/models"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		value   string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputText, false},
		{"text", OutputText, false},
		{"json", OutputJSON, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestWritePlanHits_Text(t *testing.T) {
	hits := []PlanHit{
		{PlanID: "p1", Title: "Shoulder Plan", PatientID: "ana", Score: 0.91, Snippet: "Doorway stretch, three sets."},
		{PlanID: "p2", Score: 0.42},
	}
	var buf bytes.Buffer
	if err := WritePlanHits(&buf, "doorway stretch", hits, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Found 2 plan(s)", "Shoulder Plan", "(patient ana)", "Doorway stretch", "p2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWritePlanHits_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := WritePlanHits(&buf, "stretch", []PlanHit{{PlanID: "p1", Score: 0.5}}, OutputJSON)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Query   string    `json:"query"`
		Results []PlanHit `json:"results"`
		Count   int       `json:"count"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if decoded.Query != "stretch" || decoded.Count != 1 || decoded.Results[0].PlanID != "p1" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestWriteResult_Text(t *testing.T) {
	result := &models.Result{
		Facts: models.FactSet{
			Exercises: []models.Exercise{{Name: "Pec Stretch"}},
			Goals:     []models.Goal{{Description: "Restore range of motion"}},
		},
		Metadata: models.Metadata{
			SourcePath:        "/plans/ana.txt",
			ExtractionMethod:  "plain",
			TotalPages:        1,
			MissionsGenerated: 14,
			EventsGenerated:   14,
			Confidence:        1.0,
		},
	}
	var buf bytes.Buffer
	if err := WriteResult(&buf, result, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"/plans/ana.txt", "exercises:   1", "missions:    14", "confidence:  1.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteMissions(t *testing.T) {
	missions := []*models.Mission{
		{
			Title:         "Pec Stretch",
			Type:          models.MissionExercise,
			ScheduledDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			ScheduledTime: "07:00",
			Points:        50,
			Status:        models.StatusPending,
		},
	}
	var buf bytes.Buffer
	if err := WriteMissions(&buf, missions, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "2026-03-02 07:00") || !strings.Contains(out, "Pec Stretch") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
