package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/feature-analytics/internal/models"
	"github.com/magabrotheeeer/feature-analytics/internal/storage/repository"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	created := &models.User{ID: 11, Email: "new@example.com", PasswordHash: "hash", CreatedAt: createdAt}

	tests := []struct {
		name       string
		body       string
		setupMock  func(s *ServiceMock)
		wantStatus int
		wantCode   string
		wantFields []string
	}{
		{
			name: "successful registration",
			body: `{"email":" new@example.com ","password":"Str0ng!pass"}`,
			setupMock: func(s *ServiceMock) {
				s.On("Register", mock.Anything, "new@example.com", "Str0ng!pass").Return(created, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid json body",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST_BODY",
		},
		{
			name:       "missing fields",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantFields: []string{"email", "password"},
		},
		{
			name:       "missing password",
			body:       `{"email":"new@example.com"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantFields: []string{"password"},
		},
		{
			name:       "invalid email",
			body:       `{"email":"not-an-email","password":"Str0ng!pass"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_EMAIL_FORMAT",
		},
		{
			name:       "weak password",
			body:       `{"email":"new@example.com","password":"password"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "WEAK_PASSWORD",
		},
		{
			name:       "password over bcrypt limit",
			body:       `{"email":"new@example.com","password":"Aa1!` + strings.Repeat("x", 76) + `"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "WEAK_PASSWORD",
		},
		{
			name: "duplicate email",
			body: `{"email":"new@example.com","password":"Str0ng!pass"}`,
			setupMock: func(s *ServiceMock) {
				s.On("Register", mock.Anything, "new@example.com", "Str0ng!pass").
					Return(nil, errors.Join(errors.New("services.auth.Register"), repository.ErrUserExists)).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "USER_ALREADY_EXISTS",
		},
		{
			name: "storage failure",
			body: `{"email":"new@example.com","password":"Str0ng!pass"}`,
			setupMock: func(s *ServiceMock) {
				s.On("Register", mock.Anything, "new@example.com", "Str0ng!pass").
					Return(nil, errors.New("db down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tt.wantCode == "" {
				assert.Equal(t, "success", body["status"])
				assert.Equal(t, "User registered successfully", body["message"])
				data := body["data"].(map[string]any)
				assert.Equal(t, map[string]any{
					"id":        float64(11),
					"email":     "new@example.com",
					"createdAt": "2024-05-01T10:00:00Z",
				}, data["user"])
			} else {
				assert.Equal(t, "error", body["status"])
				assert.Equal(t, tt.wantCode, body["errorCode"])
				if len(tt.wantFields) > 0 {
					fields := body["errors"].(map[string]any)
					assert.Len(t, fields, len(tt.wantFields))
					for _, f := range tt.wantFields {
						assert.Contains(t, fields, f)
					}
				}
			}
			svc.AssertExpectations(t)
		})
	}
}
