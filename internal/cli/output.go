// Package cli formats command output for the rehabflow CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rehabflow/rehabflow/internal/models"
	"github.com/rehabflow/rehabflow/pkg/utils"
)

// OutputFormat selects how command results are rendered.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a -output flag value.
func ParseOutputFormat(value string) (OutputFormat, error) {
	switch value {
	case "", "text":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", value)
	}
}

// PlanHit is one search result resolved against stored plan metadata.
type PlanHit struct {
	PlanID    string  `json:"plan_id"`
	Title     string  `json:"title,omitempty"`
	PatientID string  `json:"patient_id,omitempty"`
	Score     float64 `json:"score"`
	Snippet   string  `json:"snippet,omitempty"`
}

// WritePlanHits writes plan search results to w in the given format.
func WritePlanHits(w io.Writer, query string, hits []PlanHit, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"query": query, "results": hits, "count": len(hits)})
	}
	fmt.Fprintf(w, "\nFound %d plan(s) for %q\n\n", len(hits), query)
	for i, hit := range hits {
		fmt.Fprintf(w, "%d. [%.4f] %s", i+1, hit.Score, hit.PlanID)
		if hit.Title != "" {
			fmt.Fprintf(w, "  %s", hit.Title)
		}
		if hit.PatientID != "" {
			fmt.Fprintf(w, "  (patient %s)", hit.PatientID)
		}
		fmt.Fprintln(w)
		if hit.Snippet != "" {
			fmt.Fprintf(w, "   %s\n", utils.Truncate(hit.Snippet, 200))
		}
	}
	return nil
}

// WriteResult writes a pipeline result to w in the given format. Text mode
// prints a run summary; JSON mode emits the full result document.
func WriteResult(w io.Writer, result *models.Result, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	meta := result.Metadata
	fmt.Fprintf(w, "source:      %s (%s, %d page(s))\n", meta.SourcePath, meta.ExtractionMethod, meta.TotalPages)
	fmt.Fprintf(w, "exercises:   %d\n", len(result.Facts.Exercises))
	fmt.Fprintf(w, "goals:       %d\n", len(result.Facts.Goals))
	fmt.Fprintf(w, "missions:    %d\n", meta.MissionsGenerated)
	fmt.Fprintf(w, "events:      %d\n", meta.EventsGenerated)
	fmt.Fprintf(w, "confidence:  %.2f\n", meta.Confidence)
	return nil
}

// WriteMissions writes a patient mission list to w in the given format.
func WriteMissions(w io.Writer, missions []*models.Mission, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"missions": missions, "count": len(missions)})
	}
	fmt.Fprintf(w, "\n%d mission(s)\n\n", len(missions))
	for _, m := range missions {
		fmt.Fprintf(w, "%s %s  [%s] %s (%d pts, %s)\n",
			m.ScheduledDate.Format("2006-01-02"), m.ScheduledTime, m.Type, m.Title, m.Points, m.Status)
	}
	return nil
}
