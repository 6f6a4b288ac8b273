package search

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rehabflow/rehabflow/internal/models"
)

func openIndex(t *testing.T) *PlanIndex {
	t.Helper()
	idx, err := NewPlanIndex(filepath.Join(t.TempDir(), "plans.bleve"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestPlanIndex_SearchFindsPlanText(t *testing.T) {
	idx := openIndex(t)
	ctx := context.Background()

	plans := []*models.TreatmentPlan{
		{ID: "p1", Title: "Shoulder Rehab", Text: "Pec stretch in a doorway, 3 sets of 30 seconds daily.", PatientID: "u1"},
		{ID: "p2", Title: "Knee Recovery", Text: "Quad sets and straight leg raises after surgery.", PatientID: "u2"},
	}
	for _, plan := range plans {
		if err := idx.Index(ctx, plan); err != nil {
			t.Fatal(err)
		}
	}

	results, err := idx.Search(ctx, "doorway stretch", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) == 0 {
		t.Fatal("no results for indexed plan text")
	}
	if results[0].PlanID != "p1" {
		t.Errorf("top result = %q, want p1", results[0].PlanID)
	}
}

func TestPlanIndex_TitleWeightedHigher(t *testing.T) {
	idx := openIndex(t)
	ctx := context.Background()

	if err := idx.Index(ctx, &models.TreatmentPlan{
		ID: "title-hit", Title: "Shoulder Rehab", Text: "General program.",
	}); err != nil {
		t.Fatal(err)
	}
	if err := idx.Index(ctx, &models.TreatmentPlan{
		ID: "text-hit", Title: "Program B", Text: "Includes some shoulder work.",
	}); err != nil {
		t.Fatal(err)
	}

	results, err := idx.Search(ctx, "shoulder", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].PlanID != "title-hit" {
		t.Errorf("top result = %q, want title-hit", results[0].PlanID)
	}
}

func TestPlanIndex_DeleteAndCount(t *testing.T) {
	idx := openIndex(t)
	ctx := context.Background()

	if err := idx.Index(ctx, &models.TreatmentPlan{ID: "p1", Title: "A", Text: "pec stretch"}); err != nil {
		t.Fatal(err)
	}
	n, err := idx.Count()
	if err != nil || n != 1 {
		t.Fatalf("count = %d, %v", n, err)
	}

	if err := idx.Delete(ctx, "p1"); err != nil {
		t.Fatal(err)
	}
	n, _ = idx.Count()
	if n != 0 {
		t.Errorf("count after delete = %d, want 0", n)
	}
}
