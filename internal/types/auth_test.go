package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		request RegisterRequest
		wantErr bool
	}{
		{
			name: "valid request",
			request: RegisterRequest{
				Username: "ada",
				Email:    "ada@example.com",
				Password: "password123",
			},
			wantErr: false,
		},
		{
			name: "missing username",
			request: RegisterRequest{
				Email:    "ada@example.com",
				Password: "password123",
			},
			wantErr: true,
		},
		{
			name: "malformed email",
			request: RegisterRequest{
				Username: "ada",
				Email:    "not-an-email",
				Password: "password123",
			},
			wantErr: true,
		},
		{
			name: "password too short",
			request: RegisterRequest{
				Username: "ada",
				Email:    "ada@example.com",
				Password: "short",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		request LoginRequest
		wantErr bool
	}{
		{"valid", LoginRequest{Email: "ada@example.com", Password: "pw"}, false},
		{"missing email", LoginRequest{Password: "pw"}, true},
		{"missing password", LoginRequest{Email: "ada@example.com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserJSONOmitsNothingSensitive(t *testing.T) {
	user := User{
		ID:        uuid.New(),
		Username:  "ada",
		Email:     "ada@example.com",
		CreatedAt: time.Now(),
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
	assert.Contains(t, string(data), "ada@example.com")
}

func TestLoginResponseJSONShape(t *testing.T) {
	resp := LoginResponse{
		AccessToken: "tok",
		TokenType:   "bearer",
		User:        &User{Username: "ada"},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"access_token":"tok"`)
	assert.Contains(t, string(data), `"token_type":"bearer"`)
}

func TestAdviceClamp(t *testing.T) {
	over := Advice{Score: 140}
	over.Clamp()
	assert.Equal(t, 100, over.Score)

	under := Advice{Score: -3}
	under.Clamp()
	assert.Equal(t, 0, under.Score)

	in := Advice{Score: 72}
	in.Clamp()
	assert.Equal(t, 72, in.Score)
}
