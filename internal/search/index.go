// Package search provides the full-text index over stored treatment plans,
// backed by Bleve. Plans are indexed as they are processed so clinicians
// can find existing plans by exercise, body part, or diagnosis terms.
package search

import (
	"context"
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"

	"github.com/rehabflow/rehabflow/internal/models"
)

// planDoc is the indexed projection of a treatment plan.
type planDoc struct {
	Title     string `json:"title"`
	Text      string `json:"text"`
	PatientID string `json:"patient_id"`
}

// Result is one search hit.
type Result struct {
	PlanID string  `json:"plan_id"`
	Score  float64 `json:"score"`
}

// PlanIndex indexes treatment plans for keyword search.
type PlanIndex struct {
	index bleve.Index
}

// NewPlanIndex creates or opens a Bleve index at path. An existing index is
// reused; remove the directory to force a full re-index after a mapping
// change.
func NewPlanIndex(path string) (*PlanIndex, error) {
	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open plan index: %w", openErr)
		}
		return &PlanIndex{index: index}, nil
	}

	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so clinical
	// terms match as typed; English stemming mangles terms like "pec".
	textMapping := bleve.NewTextFieldMapping()
	textMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("title", textMapping)
	docMapping.AddFieldMappingsAt("text", textMapping)
	docMapping.AddFieldMappingsAt("patient_id", bleve.NewKeywordFieldMapping())
	im.AddDocumentMapping("plan", docMapping)
	im.DefaultType = "plan"
	im.DefaultMapping = docMapping

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan index: %w", err)
	}
	return &PlanIndex{index: index}, nil
}

// Index adds or replaces a plan in the index.
func (p *PlanIndex) Index(ctx context.Context, plan *models.TreatmentPlan) error {
	return p.index.Index(plan.ID, planDoc{
		Title:     plan.Title,
		Text:      plan.Text,
		PatientID: plan.PatientID,
	})
}

// Delete removes a plan from the index.
func (p *PlanIndex) Delete(ctx context.Context, id string) error {
	return p.index.Delete(id)
}

// Search runs a match query over titles and plan text, title hits weighted
// higher, and returns up to limit results by descending score.
func (p *PlanIndex) Search(ctx context.Context, query string, limit int) ([]*Result, error) {
	titleQuery := bleve.NewMatchQuery(query)
	titleQuery.SetField("title")
	titleQuery.SetBoost(2.0)
	textQuery := bleve.NewMatchQuery(query)
	textQuery.SetField("text")

	req := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(titleQuery, textQuery))
	req.Size = limit

	results, err := p.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("plan search failed: %w", err)
	}
	out := make([]*Result, len(results.Hits))
	for i, hit := range results.Hits {
		out[i] = &Result{PlanID: hit.ID, Score: hit.Score}
	}
	return out, nil
}

// Count returns the number of indexed plans.
func (p *PlanIndex) Count() (uint64, error) {
	return p.index.DocCount()
}

// Close closes the index.
func (p *PlanIndex) Close() error {
	return p.index.Close()
}
