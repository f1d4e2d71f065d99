package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cvfiller/internal/apiclient"
	"github.com/jonathan/cvfiller/internal/types"
)

// newRoutedServer wires a full Server against in-memory fakes so tests
// can exercise the router, including the auth middleware.
func newRoutedServer() (*Server, http.Handler) {
	store := newFakeStore()
	jwtService := testJWTService()
	userService := NewUserService(store, testPasswordConfig())

	s := &Server{
		db:          store,
		cfg:         testUploadConfig(),
		llm:         &stubLLM{response: `{"personal_info": {"name": "Ada Lovelace"}}`},
		jwtService:  jwtService,
		userService: userService,
		authHandler: NewAuthHandler(userService, jwtService),
	}
	return s, s.routes()
}

func TestHealthRoute(t *testing.T) {
	_, handler := newRoutedServer()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestResumeRoutesRequireToken(t *testing.T) {
	_, handler := newRoutedServer()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/resumes"},
		{http.MethodGet, "/api/resumes"},
		{http.MethodGet, "/api/auth/me"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRegisterLoginAndStoreFlow(t *testing.T) {
	_, handler := newRoutedServer()

	register := func() types.LoginResponse {
		payload, err := json.Marshal(types.RegisterRequest{
			Username: "ada",
			Email:    "ada@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp types.LoginResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		return resp
	}

	session := register()
	require.NotEmpty(t, session.AccessToken)

	// Create a resume with the issued token.
	payload, err := json.Marshal(types.SaveResumeRequest{Record: sampleRecord(), SourceFilename: "ada.pdf"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/resumes", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var saved types.SaveResumeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&saved))

	// The list endpoint returns it back.
	req = httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list types.ResumeListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, saved.ID, list.Resumes[0].ID)

	// The me endpoint resolves the token's account.
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var me types.MeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&me))
	assert.Equal(t, session.User.ID, me.User.ID)
}

// TestClientFetchesStoredResume drives the routed server through the real
// API client, so the single-resume envelope stays in sync on both sides.
func TestClientFetchesStoredResume(t *testing.T) {
	_, handler := newRoutedServer()
	srv := httptest.NewServer(handler)
	defer srv.Close()

	client := apiclient.New(srv.URL)
	ctx := context.Background()

	session, err := client.Register(ctx, types.RegisterRequest{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	token := session.AccessToken

	id, err := client.CreateResume(ctx, token, sampleRecord(), "ada.pdf")
	require.NoError(t, err)

	stored, err := client.GetResume(ctx, token, id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, id, stored.ID)
	assert.Equal(t, "Ada Lovelace", stored.Record.Name)
	assert.Equal(t, "ada.pdf", stored.SourceFilename)
}

func TestCORSPreflight(t *testing.T) {
	s, handler := newRoutedServer()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/resumes", nil)
	s.withCORS(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestExtractClientID(t *testing.T) {
	s := &Server{}

	r := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.RemoteAddr = "203.0.113.7:4411"
	assert.Equal(t, "203.0.113.7", s.extractClientID(r))

	r.RemoteAddr = "no-port-here"
	assert.Equal(t, "no-port-here", s.extractClientID(r))
}
