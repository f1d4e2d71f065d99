package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cvfiller/internal/resume"
)

// User represents a registered account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	CreatedAt    time.Time `json:"created_at"`
}

// Resume represents a saved resume row. The canonical record fields are
// stored as flat columns.
type Resume struct {
	ID             uuid.UUID     `json:"id"`
	UserID         uuid.UUID     `json:"user_id"`
	Record         resume.Record `json:"record"`
	SourceFilename string        `json:"source_filename"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
