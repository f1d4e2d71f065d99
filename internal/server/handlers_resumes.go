package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/cvfiller/internal/db"
	"github.com/jonathan/cvfiller/internal/resume"
	"github.com/jonathan/cvfiller/internal/server/middleware"
	"github.com/jonathan/cvfiller/internal/types"
)

// ResumeStore is the subset of database operations the resume handlers
// need. DBClient covers the user side; together *db.DB satisfies both.
type ResumeStore interface {
	DBClient
	SaveResume(ctx context.Context, userID uuid.UUID, rec resume.Record, sourceFilename string) (uuid.UUID, error)
	UpdateResume(ctx context.Context, resumeID, userID uuid.UUID, rec resume.Record) error
	GetResume(ctx context.Context, resumeID, userID uuid.UUID) (*db.Resume, error)
	ListResumes(ctx context.Context, userID uuid.UUID) ([]db.Resume, error)
	DeleteResume(ctx context.Context, resumeID, userID uuid.UUID) error
}

func storedResumeFromDB(r *db.Resume) types.StoredResume {
	return types.StoredResume{
		ID:             r.ID,
		UserID:         r.UserID,
		Record:         r.Record,
		SourceFilename: r.SourceFilename,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// handleCreateResume stores a new resume for the authenticated user.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req types.SaveResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := s.db.SaveResume(r.Context(), userID, req.Record, req.SourceFilename)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to save resume")
		return
	}

	jsonResponse(w, http.StatusCreated, types.SaveResumeResponse{
		Status: types.StatusSuccess,
		ID:     id,
	})
}

// handleUpdateResume overwrites an existing resume in place.
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	resumeID, ok := s.resumeIDFromPath(w, r)
	if !ok {
		return
	}

	var req types.SaveResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.db.UpdateResume(r.Context(), resumeID, userID, req.Record); err != nil {
		notFound := &ErrResumeNotFound{ResumeID: resumeID}
		errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	jsonResponse(w, http.StatusOK, types.SaveResumeResponse{
		Status: types.StatusSuccess,
		ID:     resumeID,
	})
}

// handleGetResume returns one stored resume.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	resumeID, ok := s.resumeIDFromPath(w, r)
	if !ok {
		return
	}

	stored, err := s.db.GetResume(r.Context(), resumeID, userID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to load resume")
		return
	}
	if stored == nil {
		notFound := &ErrResumeNotFound{ResumeID: resumeID}
		errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	out := storedResumeFromDB(stored)
	jsonResponse(w, http.StatusOK, types.ResumeResponse{
		Status: types.StatusSuccess,
		Resume: &out,
	})
}

// handleListResumes returns the authenticated user's resumes, most
// recently updated first.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	resumes, err := s.db.ListResumes(r.Context(), userID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to list resumes")
		return
	}

	out := make([]types.StoredResume, 0, len(resumes))
	for i := range resumes {
		out = append(out, storedResumeFromDB(&resumes[i]))
	}

	jsonResponse(w, http.StatusOK, types.ResumeListResponse{
		Status:  types.StatusSuccess,
		Resumes: out,
		Count:   len(out),
	})
}

// handleDeleteResume removes one stored resume.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	resumeID, ok := s.resumeIDFromPath(w, r)
	if !ok {
		return
	}

	if err := s.db.DeleteResume(r.Context(), resumeID, userID); err != nil {
		notFound := &ErrResumeNotFound{ResumeID: resumeID}
		errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"status": types.StatusSuccess})
}

// resumeIDFromPath parses the {id} path segment. On failure it writes a
// 400 response and returns ok=false.
func (s *Server) resumeIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid resume id")
		return uuid.Nil, false
	}
	return id, true
}
