// Package pipeline runs a treatment-plan document end to end: extract the
// text, normalize it, pull facts, expand them into scheduled missions and
// calendar events, and assemble the Result artifact.
package pipeline

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rehabflow/rehabflow/internal/extract"
	"github.com/rehabflow/rehabflow/internal/facts"
	"github.com/rehabflow/rehabflow/internal/missions"
	"github.com/rehabflow/rehabflow/internal/models"
	"github.com/rehabflow/rehabflow/internal/normalize"
)

// Request identifies one processing run.
type Request struct {
	// Path is the plan document on disk.
	Path            string
	TreatmentPlanID string
	PatientID       string
	// StartDate anchors mission scheduling. Zero means today.
	StartDate time.Time
	// DefaultPoints overrides the configured per-mission points when > 0.
	DefaultPoints int
}

// Pipeline orchestrates the processing stages.
type Pipeline struct {
	reader *extract.Reader
	cfg    *missions.Config
	logger *zap.Logger
}

// New creates a Pipeline. A nil mission config uses defaults; a nil logger
// is replaced with a no-op one.
func New(cfg *missions.Config, logger *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = missions.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		reader: extract.NewReader(),
		cfg:    cfg,
		logger: logger,
	}
}

// Process runs the full pipeline over one document.
func (p *Pipeline) Process(req Request) (*models.Result, error) {
	doc, err := p.reader.Extract(req.Path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", req.Path, err)
	}

	text := normalize.Clean(doc.Text)
	sections := normalize.Sections(text)
	factSet := facts.ExtractAll(text)

	start := req.StartDate
	if start.IsZero() {
		start = time.Now()
	}
	gen := missions.NewGenerator(start, p.cfg)
	missionList := gen.GenerateMissions(&factSet, req.TreatmentPlanID, req.PatientID, req.DefaultPoints)
	events := gen.GenerateCalendarEvents(missionList)

	result := &models.Result{
		Text:     text,
		Facts:    factSet,
		Sections: sections,
		Missions: missionList,
		Events:   events,
		Metadata: models.Metadata{
			SourcePath:        req.Path,
			TotalPages:        doc.Pages,
			ExtractionMethod:  doc.Method,
			TextLength:        len(text),
			MissionsGenerated: len(missionList),
			EventsGenerated:   len(events),
			ExtractedAt:       time.Now().UTC(),
			Confidence:        models.ComputeConfidence(&factSet, len(missionList)),
		},
	}

	p.logger.Info("processed treatment plan",
		zap.String("path", req.Path),
		zap.String("method", doc.Method),
		zap.Int("exercises", len(factSet.Exercises)),
		zap.Int("missions", len(missionList)),
		zap.Int("events", len(events)),
		zap.Float64("confidence", result.Metadata.Confidence))

	return result, nil
}
