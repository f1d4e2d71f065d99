package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cvfiller/internal/resume"
)

// SaveResumeRequest is the body for creating or updating a stored resume.
type SaveResumeRequest struct {
	resume.Record
	SourceFilename string `json:"source_filename,omitempty"`
}

// SaveResumeResponse confirms a create or update. ID is the durable
// identifier assigned on creation; later updates address it in place.
type SaveResumeResponse struct {
	Status string    `json:"status"`
	ID     uuid.UUID `json:"id"`
}

// StoredResume is a persisted resume as the API returns it.
type StoredResume struct {
	ID             uuid.UUID     `json:"id"`
	UserID         uuid.UUID     `json:"user_id"`
	Record         resume.Record `json:"record"`
	SourceFilename string        `json:"source_filename,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// ResumeResponse is the single-resume endpoint envelope.
type ResumeResponse struct {
	Status string        `json:"status"`
	Resume *StoredResume `json:"resume"`
}

// ResumeListResponse is the list endpoint envelope.
type ResumeListResponse struct {
	Status  string         `json:"status"`
	Resumes []StoredResume `json:"resumes"`
	Count   int            `json:"count"`
}
