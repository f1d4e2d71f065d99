package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/cvfiller/internal/resume"
)

const resumeColumns = `id, user_id, name, email, phone, education, experience,
	campus_experience, skills, source_filename, created_at, updated_at`

// SaveResume inserts a new resume row for the user and returns its ID.
func (db *DB) SaveResume(ctx context.Context, userID uuid.UUID, rec resume.Record, sourceFilename string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, name, email, phone, education, experience,
			campus_experience, skills, source_filename)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		userID, rec.Name, rec.Email, rec.Phone, rec.Education, rec.Experience,
		rec.CampusActivity, rec.Skills, sourceFilename,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return id, nil
}

// UpdateResume replaces the record fields of an existing resume. The row
// must belong to the user.
func (db *DB) UpdateResume(ctx context.Context, resumeID, userID uuid.UUID, rec resume.Record) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE resumes SET name = $1, email = $2, phone = $3, education = $4,
			experience = $5, campus_experience = $6, skills = $7, updated_at = NOW()
		 WHERE id = $8 AND user_id = $9`,
		rec.Name, rec.Email, rec.Phone, rec.Education, rec.Experience,
		rec.CampusActivity, rec.Skills, resumeID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", resumeID)
	}
	return nil
}

// GetResume retrieves one of the user's resumes by ID. Returns nil when
// no such row belongs to the user.
func (db *DB) GetResume(ctx context.Context, resumeID, userID uuid.UUID) (*Resume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND user_id = $2`,
		resumeID, userID,
	)

	stored, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return stored, nil
}

// ListResumes retrieves all of the user's resumes, most recent first.
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1
		 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		stored, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *stored)
	}
	return resumes, nil
}

// DeleteResume removes one of the user's resumes.
func (db *DB) DeleteResume(ctx context.Context, resumeID, userID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND user_id = $2`,
		resumeID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", resumeID)
	}
	return nil
}

func scanResume(row pgx.Row) (*Resume, error) {
	var stored Resume
	err := row.Scan(
		&stored.ID, &stored.UserID,
		&stored.Record.Name, &stored.Record.Email, &stored.Record.Phone,
		&stored.Record.Education, &stored.Record.Experience,
		&stored.Record.CampusActivity, &stored.Record.Skills,
		&stored.SourceFilename, &stored.CreatedAt, &stored.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}
