package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/rehabflow/rehabflow/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and
// initializes the schema. Parent directories are created if they do not
// exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS treatment_plans (
		id TEXT PRIMARY KEY,
		patient_id TEXT NOT NULL,
		title TEXT,
		source_path TEXT,
		text TEXT NOT NULL,
		result TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_plans_patient_id ON treatment_plans(patient_id);

	CREATE TABLE IF NOT EXISTS missions (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		mission_type TEXT NOT NULL,
		scheduled_date TIMESTAMP NOT NULL,
		scheduled_time TEXT,
		due_datetime TIMESTAMP,
		duration_minutes INTEGER,
		points INTEGER,
		status TEXT NOT NULL,
		treatment_plan_id TEXT,
		patient_id TEXT NOT NULL,
		recurrence TEXT,
		FOREIGN KEY (treatment_plan_id) REFERENCES treatment_plans(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_missions_patient_date ON missions(patient_id, scheduled_date);

	CREATE TABLE IF NOT EXISTS calendar_events (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		event_type TEXT NOT NULL,
		start_datetime TIMESTAMP NOT NULL,
		end_datetime TIMESTAMP NOT NULL,
		mission_id TEXT,
		patient_id TEXT NOT NULL,
		is_all_day INTEGER NOT NULL DEFAULT 0,
		reminder_minutes TEXT,
		FOREIGN KEY (mission_id) REFERENCES missions(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_events_patient ON calendar_events(patient_id);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		injury_type TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}

// CreatePlan inserts a treatment plan, assigning an id when empty.
func (s *SQLiteStorage) CreatePlan(ctx context.Context, plan *models.TreatmentPlan) error {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	resultJSON, err := json.Marshal(plan.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO treatment_plans (id, patient_id, title, source_path, text, result, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		plan.ID, plan.PatientID, plan.Title, plan.SourcePath, plan.Text, string(resultJSON),
		plan.CreatedAt, plan.UpdatedAt,
	)
	return err
}

// GetPlan returns a treatment plan by id.
func (s *SQLiteStorage) GetPlan(ctx context.Context, id string) (*models.TreatmentPlan, error) {
	var plan models.TreatmentPlan
	var resultJSON string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, patient_id, title, source_path, text, result, created_at, updated_at
		 FROM treatment_plans WHERE id = ?`, id,
	).Scan(&plan.ID, &plan.PatientID, &plan.Title, &plan.SourcePath, &plan.Text,
		&resultJSON, &plan.CreatedAt, &plan.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: plan %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if resultJSON != "" && resultJSON != "null" {
		if err := json.Unmarshal([]byte(resultJSON), &plan.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
	}
	return &plan, nil
}

// ListPlans returns plans with offset and limit, newest first.
func (s *SQLiteStorage) ListPlans(ctx context.Context, offset, limit int) ([]*models.TreatmentPlan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, patient_id, title, source_path, text, created_at, updated_at
		 FROM treatment_plans ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*models.TreatmentPlan
	for rows.Next() {
		var plan models.TreatmentPlan
		if err := rows.Scan(&plan.ID, &plan.PatientID, &plan.Title, &plan.SourcePath,
			&plan.Text, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, &plan)
	}
	return plans, rows.Err()
}

// DeletePlan removes a plan and, via cascade, its missions and events.
func (s *SQLiteStorage) DeletePlan(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM treatment_plans WHERE id = ?`, id)
	return err
}

// SaveGenerated inserts missions and events in one transaction. Mission ids
// are assigned here; each event is then linked to the mission sharing its
// title and calendar day before insertion.
func (s *SQLiteStorage) SaveGenerated(ctx context.Context, missions []*models.Mission, events []*models.CalendarEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO missions (id, title, description, mission_type, scheduled_date, scheduled_time,
		  due_datetime, duration_minutes, points, status, treatment_plan_id, patient_id, recurrence)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range missions {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		recurrenceJSON, err := json.Marshal(m.Recurrence)
		if err != nil {
			return fmt.Errorf("failed to marshal recurrence: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, m.ID, m.Title, m.Description, string(m.Type),
			m.ScheduledDate, m.ScheduledTime, m.Due, m.DurationMinutes, m.Points,
			string(m.Status), m.TreatmentPlanID, m.PatientID, string(recurrenceJSON)); err != nil {
			return err
		}
	}

	for _, e := range events {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.MissionID == "" {
			e.MissionID = missionIDForEvent(missions, e)
		}
		remindersJSON, err := json.Marshal(e.ReminderMinutes)
		if err != nil {
			return fmt.Errorf("failed to marshal reminders: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO calendar_events (id, title, description, event_type, start_datetime,
			  end_datetime, mission_id, patient_id, is_all_day, reminder_minutes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Title, e.Description, string(e.EventType), e.Start, e.End,
			e.MissionID, e.PatientID, e.AllDay, string(remindersJSON)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// missionIDForEvent finds the mission an event was derived from: same title,
// scheduled on the event's start day.
func missionIDForEvent(missions []*models.Mission, e *models.CalendarEvent) string {
	for _, m := range missions {
		if m.Title == e.Title && m.SameDay(e.Start) {
			return m.ID
		}
	}
	return ""
}

// MissionsByPatient returns a patient's missions ordered by scheduled date.
// A non-zero day restricts results to that calendar day.
func (s *SQLiteStorage) MissionsByPatient(ctx context.Context, patientID string, day time.Time) ([]*models.Mission, error) {
	query := `SELECT id, title, description, mission_type, scheduled_date, scheduled_time,
	   due_datetime, duration_minutes, points, status, treatment_plan_id, patient_id, recurrence
	  FROM missions WHERE patient_id = ?`
	args := []any{patientID}
	if !day.IsZero() {
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		query += ` AND scheduled_date >= ? AND scheduled_date < ?`
		args = append(args, dayStart, dayStart.AddDate(0, 0, 1))
	}
	query += ` ORDER BY scheduled_date, scheduled_time`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var missions []*models.Mission
	for rows.Next() {
		var m models.Mission
		var missionType, status, recurrenceJSON string
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &missionType, &m.ScheduledDate,
			&m.ScheduledTime, &m.Due, &m.DurationMinutes, &m.Points, &status,
			&m.TreatmentPlanID, &m.PatientID, &recurrenceJSON); err != nil {
			return nil, err
		}
		m.Type = models.MissionType(missionType)
		m.Status = models.MissionStatus(status)
		if recurrenceJSON != "" && recurrenceJSON != "null" {
			if err := json.Unmarshal([]byte(recurrenceJSON), &m.Recurrence); err != nil {
				return nil, fmt.Errorf("failed to unmarshal recurrence: %w", err)
			}
		}
		missions = append(missions, &m)
	}
	return missions, rows.Err()
}

// CreateUser inserts a user, assigning an id when empty.
func (s *SQLiteStorage) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, full_name, injury_type) VALUES (?, ?, ?)`,
		user.ID, user.FullName, user.Profile.InjuryType,
	)
	return err
}

// GetUser returns a user by id.
func (s *SQLiteStorage) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, full_name, injury_type FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.FullName, &user.Profile.InjuryType)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all users ordered by name.
func (s *SQLiteStorage) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, full_name, injury_type FROM users ORDER BY full_name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.FullName, &user.Profile.InjuryType); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

// CountPlans returns the total number of stored plans.
func (s *SQLiteStorage) CountPlans(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM treatment_plans`).Scan(&count)
	return count, err
}

// CountMissions returns the total number of stored missions.
func (s *SQLiteStorage) CountMissions(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM missions`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
