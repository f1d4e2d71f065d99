package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cvfiller/internal/db"
	"github.com/jonathan/cvfiller/internal/resume"
	"github.com/jonathan/cvfiller/internal/server/middleware"
	"github.com/jonathan/cvfiller/internal/types"
)

// fakeStore is an in-memory ResumeStore for handler tests.
type fakeStore struct {
	*fakeDB
	resumes map[uuid.UUID]*db.Resume
}

func newFakeStore() *fakeStore {
	return &fakeStore{fakeDB: newFakeDB(), resumes: make(map[uuid.UUID]*db.Resume)}
}

func (f *fakeStore) SaveResume(_ context.Context, userID uuid.UUID, rec resume.Record, sourceFilename string) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now()
	f.resumes[id] = &db.Resume{
		ID:             id,
		UserID:         userID,
		Record:         rec,
		SourceFilename: sourceFilename,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return id, nil
}

func (f *fakeStore) UpdateResume(_ context.Context, resumeID, userID uuid.UUID, rec resume.Record) error {
	stored, ok := f.resumes[resumeID]
	if !ok || stored.UserID != userID {
		return fmt.Errorf("resume not found: %s", resumeID)
	}
	stored.Record = rec
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) GetResume(_ context.Context, resumeID, userID uuid.UUID) (*db.Resume, error) {
	stored, ok := f.resumes[resumeID]
	if !ok || stored.UserID != userID {
		return nil, nil
	}
	return stored, nil
}

func (f *fakeStore) ListResumes(_ context.Context, userID uuid.UUID) ([]db.Resume, error) {
	var out []db.Resume
	for _, stored := range f.resumes {
		if stored.UserID == userID {
			out = append(out, *stored)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f *fakeStore) DeleteResume(_ context.Context, resumeID, userID uuid.UUID) error {
	stored, ok := f.resumes[resumeID]
	if !ok || stored.UserID != userID {
		return fmt.Errorf("resume not found: %s", resumeID)
	}
	delete(f.resumes, resumeID)
	return nil
}

func newTestServer(store ResumeStore) *Server {
	return &Server{db: store}
}

func authedRequest(method, path string, userID uuid.UUID, body any) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey(), userID)
	return req.WithContext(ctx)
}

func sampleRecord() resume.Record {
	return resume.Record{
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Experience: "Analytical Engines Ltd | Programmer | 1842 - 1843",
	}
}

func TestCreateResume(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	userID := uuid.New()

	rec := httptest.NewRecorder()
	srv.handleCreateResume(rec, authedRequest(http.MethodPost, "/api/resumes", userID, types.SaveResumeRequest{
		Record:         sampleRecord(),
		SourceFilename: "ada.pdf",
	}))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp types.SaveResumeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, types.StatusSuccess, resp.Status)

	stored := store.resumes[resp.ID]
	require.NotNil(t, stored)
	assert.Equal(t, userID, stored.UserID)
	assert.Equal(t, "Ada Lovelace", stored.Record.Name)
	assert.Equal(t, "ada.pdf", stored.SourceFilename)
}

func TestCreateResumeRequiresAuth(t *testing.T) {
	srv := newTestServer(newFakeStore())

	req := httptest.NewRequest(http.MethodPost, "/api/resumes", bytes.NewReader([]byte("{}")))
	rec := httptest.NewRecorder()
	srv.handleCreateResume(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateResume(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	userID := uuid.New()

	id, err := store.SaveResume(context.Background(), userID, sampleRecord(), "ada.pdf")
	require.NoError(t, err)

	updated := sampleRecord()
	updated.Phone = "+44 20 0000"

	req := authedRequest(http.MethodPut, "/api/resumes/"+id.String(), userID, types.SaveResumeRequest{Record: updated})
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()
	srv.handleUpdateResume(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "+44 20 0000", store.resumes[id].Record.Phone)
}

func TestUpdateResumeNotFound(t *testing.T) {
	srv := newTestServer(newFakeStore())
	userID := uuid.New()
	missing := uuid.New()

	req := authedRequest(http.MethodPut, "/api/resumes/"+missing.String(), userID, types.SaveResumeRequest{Record: sampleRecord()})
	req.SetPathValue("id", missing.String())
	rec := httptest.NewRecorder()
	srv.handleUpdateResume(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetResume(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	userID := uuid.New()

	id, err := store.SaveResume(context.Background(), userID, sampleRecord(), "ada.pdf")
	require.NoError(t, err)

	t.Run("owner sees resume", func(t *testing.T) {
		req := authedRequest(http.MethodGet, "/api/resumes/"+id.String(), userID, nil)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()
		srv.handleGetResume(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp types.ResumeResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, types.StatusSuccess, resp.Status)
		require.NotNil(t, resp.Resume)
		assert.Equal(t, id, resp.Resume.ID)
		assert.Equal(t, "Ada Lovelace", resp.Resume.Record.Name)
	})

	t.Run("other user gets 404", func(t *testing.T) {
		req := authedRequest(http.MethodGet, "/api/resumes/"+id.String(), uuid.New(), nil)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()
		srv.handleGetResume(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		req := authedRequest(http.MethodGet, "/api/resumes/nope", userID, nil)
		req.SetPathValue("id", "nope")
		rec := httptest.NewRecorder()
		srv.handleGetResume(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListResumes(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	userID := uuid.New()

	_, err := store.SaveResume(context.Background(), userID, sampleRecord(), "one.pdf")
	require.NoError(t, err)
	_, err = store.SaveResume(context.Background(), userID, sampleRecord(), "two.pdf")
	require.NoError(t, err)
	_, err = store.SaveResume(context.Background(), uuid.New(), sampleRecord(), "other.pdf")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.handleListResumes(rec, authedRequest(http.MethodGet, "/api/resumes", userID, nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.ResumeListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Resumes, 2)
	for _, stored := range resp.Resumes {
		assert.Equal(t, userID, stored.UserID)
	}
}

func TestDeleteResume(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	userID := uuid.New()

	id, err := store.SaveResume(context.Background(), userID, sampleRecord(), "ada.pdf")
	require.NoError(t, err)

	req := authedRequest(http.MethodDelete, "/api/resumes/"+id.String(), userID, nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()
	srv.handleDeleteResume(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.resumes)

	// Deleting again reports not found.
	req = authedRequest(http.MethodDelete, "/api/resumes/"+id.String(), userID, nil)
	req.SetPathValue("id", id.String())
	rec = httptest.NewRecorder()
	srv.handleDeleteResume(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
