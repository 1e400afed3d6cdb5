package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/grandline-driver/internal/domain/apperror"
	"github.com/oksasatya/grandline-driver/internal/domain/entity"
	"github.com/oksasatya/grandline-driver/internal/mocks"
	"github.com/oksasatya/grandline-driver/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type envelope struct {
	Status    int             `json:"status"`
	RequestID string          `json:"request_id"`
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Errors    []string        `json:"errors"`
}

type refreshSet map[string]bool

func (s refreshSet) IsRefreshToken(t string) bool { return s[t] }

func serve(t *testing.T, h gin.HandlerFunc, method, body string) (int, envelope) {
	t.Helper()
	r := gin.New()
	r.Handle(method, "/x", h)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/x", nil)
	} else {
		req = httptest.NewRequest(method, "/x", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, w.Code, env.Status)
	return w.Code, env
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperror.Validation("email", "bad"), http.StatusBadRequest},
		{apperror.Auth("nope"), http.StatusUnauthorized},
		{apperror.New(apperror.KindUnauthorized, "expired"), http.StatusUnauthorized},
		{apperror.NotImplemented("later"), http.StatusNotImplemented},
		{apperror.New(apperror.KindTimeout, "slow"), http.StatusGatewayTimeout},
		{context.Canceled, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestAuthHandler_Login(t *testing.T) {
	backend := mocks.NewMockBackend()
	var got entity.Credentials
	backend.LoginFunc = func(_ context.Context, creds entity.Credentials) (*entity.AuthResponse, error) {
		got = creds
		if creds.Password != "password" {
			return nil, apperror.Auth("Invalid credentials. Please try again.")
		}
		return &entity.AuthResponse{User: entity.User{ID: "1"}, AccessToken: "a", RefreshToken: "r", ExpiresIn: 3600}, nil
	}
	h := NewAuthHandler(backend, refreshSet{}, nil)

	code, env := serve(t, h.Login, http.MethodPost, `{"email":"test@test.com","password":"password"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, "test@test.com", got.Email)
	var res entity.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "a", res.AccessToken)

	code, env = serve(t, h.Login, http.MethodPost, `{"email":"test@test.com","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials. Please try again.", env.Message)

	code, env = serve(t, h.Login, http.MethodPost, `{"email":"nope","password":""}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []string{"email must be a valid email", "password is required"}, env.Errors)

	code, env = serve(t, h.Login, http.MethodPost, `{"email":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
}

func TestAuthHandler_Refresh(t *testing.T) {
	h := NewAuthHandler(mocks.NewMockBackend(), refreshSet{"good": true}, nil)

	code, _ := serve(t, h.Refresh, http.MethodPost, `{"refreshToken":"good"}`)
	assert.Equal(t, http.StatusOK, code)

	code, env := serve(t, h.Refresh, http.MethodPost, `{"refreshToken":"bad"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid refresh token", env.Message)
}

func TestAuthHandler_ChangePasswordDefaultsConfirmation(t *testing.T) {
	backend := mocks.NewMockBackend()
	var got entity.PasswordChangeRequest
	backend.ChangePasswordFunc = func(_ context.Context, req entity.PasswordChangeRequest) error {
		got = req
		return nil
	}
	h := NewAuthHandler(backend, refreshSet{}, nil)

	code, _ := serve(t, h.ChangePassword, http.MethodPost, `{"currentPassword":"old","newPassword":"abcdef"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, entity.PasswordChangeRequest{CurrentPassword: "old", NewPassword: "abcdef", ConfirmPassword: "abcdef"}, got)
}

func TestAuthHandler_LogoutIgnoresBackendFailure(t *testing.T) {
	backend := mocks.NewMockBackend()
	backend.LogoutFunc = func(context.Context) error { return errors.New("down") }
	h := NewAuthHandler(backend, refreshSet{}, nil)

	code, env := serve(t, h.Logout, http.MethodPost, "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	backend := mocks.NewMockBackend()
	backend.UpdateProfileFunc = func(_ context.Context, in entity.ProfileUpdate) (*entity.User, error) {
		u := &entity.User{ID: "1", FirstName: "John"}
		in.Apply(u)
		return u, nil
	}
	h := NewUserHandler(backend, nil)

	code, env := serve(t, h.UpdateProfile, http.MethodPut, `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "No profile fields to update", env.Message)

	code, env = serve(t, h.UpdateProfile, http.MethodPut, `{"firstName":"Jane"}`)
	assert.Equal(t, http.StatusOK, code)
	var u entity.User
	require.NoError(t, json.Unmarshal(env.Data, &u))
	assert.Equal(t, "Jane", u.FirstName)
}

func TestDriverHandler_CompleteOnboarding(t *testing.T) {
	called := false
	backend := mocks.NewMockBackend()
	backend.CompleteOnboardingFunc = func(context.Context, entity.DriverOnboardingSubmission) (*entity.OnboardingResult, error) {
		called = true
		return &entity.OnboardingResult{IsOnboardingComplete: true}, nil
	}
	h := NewDriverHandler(backend, nil)

	code, env := serve(t, h.CompleteOnboarding, http.MethodPost, `{"driverLicense":"file://l.jpg"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Please upload both your driver's license and profile picture to continue.", env.Message)
	assert.False(t, called)

	code, _ = serve(t, h.CompleteOnboarding, http.MethodPost, `{"driverLicense":"file://l.jpg","profilePicture":"file://p.jpg"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, called)

	code, env = serve(t, h.UploadLicense, http.MethodPost, `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []string{"uri is required"}, env.Errors)
}

func TestDashboardHandler_Errors(t *testing.T) {
	backend := mocks.NewMockBackend()
	backend.GetStatsFunc = func(context.Context) (*entity.DashboardStats, error) {
		return nil, errors.New("")
	}
	h := NewDashboardHandler(backend, nil)

	code, env := serve(t, h.GetStats, http.MethodGet, "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to get dashboard stats", env.Message)

	code, _ = serve(t, h.GetRecentActivity, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, code)
}
