package pipeline

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rehabflow/rehabflow/internal/extract"
	"github.com/rehabflow/rehabflow/internal/models"
)

const planText = `TREATMENT PLAN

EXERCISES

Pec Stretch
Stand in a doorway with your arm raised. Perform 3 sets x 30 seconds.
Importance: Opens the chest and relieves shoulder tension.

GOALS

Goal: Restore full overhead range of motion in 6-8 weeks.

DOS AND DONTS

Do:
- Apply ice after each session for comfort
Don't:
- Avoid heavy lifting overhead until cleared
`

func writePlan(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.txt")
	if err := os.WriteFile(path, []byte(planText), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcess(t *testing.T) {
	path := writePlan(t)
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	result, err := New(nil, nil).Process(Request{
		Path:            path,
		TreatmentPlanID: "plan-1",
		PatientID:       "patient-1",
		StartDate:       start,
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(result.Facts.Exercises) != 1 {
		t.Fatalf("exercises = %d, want 1", len(result.Facts.Exercises))
	}
	if got := result.Facts.Exercises[0].Name; got != "Pec Stretch" {
		t.Errorf("exercise name = %q", got)
	}
	if len(result.Facts.Goals) == 0 {
		t.Error("no goals extracted")
	}
	if len(result.Missions) == 0 {
		t.Fatal("no missions generated")
	}
	for _, m := range result.Missions {
		if m.TreatmentPlanID != "plan-1" || m.PatientID != "patient-1" {
			t.Errorf("mission %q carries ids %q/%q", m.Title, m.TreatmentPlanID, m.PatientID)
		}
	}

	meta := result.Metadata
	if meta.SourcePath != path {
		t.Errorf("source path = %q", meta.SourcePath)
	}
	if meta.ExtractionMethod != "plain" {
		t.Errorf("extraction method = %q", meta.ExtractionMethod)
	}
	if meta.MissionsGenerated != len(result.Missions) {
		t.Errorf("missions_generated = %d, want %d", meta.MissionsGenerated, len(result.Missions))
	}
	// Exercises, goals, and missions all present.
	if meta.Confidence != 1.0 {
		t.Errorf("confidence = %.2f, want 1.0", meta.Confidence)
	}
}

func TestProcess_MissingFile(t *testing.T) {
	_, err := New(nil, nil).Process(Request{Path: filepath.Join(t.TempDir(), "gone.pdf")})
	if !errors.Is(err, extract.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveResult(t *testing.T) {
	result := &models.Result{
		Metadata: models.Metadata{SourcePath: "plan.txt", Confidence: 0.8},
	}
	path := filepath.Join(t.TempDir(), "out.json")

	if err := SaveResult(result, path, "json"); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded models.Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode saved result: %v", err)
	}
	if decoded.Metadata.SourcePath != "plan.txt" {
		t.Errorf("round-tripped source path = %q", decoded.Metadata.SourcePath)
	}
}

func TestSaveResult_UnsupportedFormat(t *testing.T) {
	err := SaveResult(&models.Result{}, filepath.Join(t.TempDir(), "out.csv"), "csv")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}
