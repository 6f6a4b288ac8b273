// Package storage defines the persistence interface for treatment plans,
// missions, calendar events, and users. The core pipeline never assigns
// ids; the store does, at insert time.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/rehabflow/rehabflow/internal/models"
)

// ErrNotFound reports a missing record. Checked with errors.Is.
var ErrNotFound = errors.New("record not found")

// Storage defines persistence operations for the treatment-plan domain.
type Storage interface {
	// Plan operations
	CreatePlan(ctx context.Context, plan *models.TreatmentPlan) error
	GetPlan(ctx context.Context, id string) (*models.TreatmentPlan, error)
	ListPlans(ctx context.Context, offset, limit int) ([]*models.TreatmentPlan, error)
	DeletePlan(ctx context.Context, id string) error

	// SaveGenerated inserts a plan's missions and calendar events in one
	// transaction, assigning ids and linking each event to its mission.
	SaveGenerated(ctx context.Context, missions []*models.Mission, events []*models.CalendarEvent) error

	// MissionsByPatient returns a patient's missions. A non-zero day
	// restricts to missions scheduled on that calendar day.
	MissionsByPatient(ctx context.Context, patientID string, day time.Time) ([]*models.Mission, error)

	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)

	// Stats
	CountPlans(ctx context.Context) (int64, error)
	CountMissions(ctx context.Context) (int64, error)

	Close() error
}
