package models

import "time"

// TreatmentPlan is a stored, processed plan document: the normalized text
// plus the full pipeline result artifact.
type TreatmentPlan struct {
	ID         string    `json:"id" db:"id"`
	PatientID  string    `json:"patient_id" db:"patient_id"`
	Title      string    `json:"title" db:"title"`
	SourcePath string    `json:"source_path" db:"source_path"`
	Text       string    `json:"text" db:"text"`
	Result     *Result   `json:"result,omitempty" db:"result"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
