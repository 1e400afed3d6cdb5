package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/grandline-driver/internal/domain/apperror"
	"github.com/oksasatya/grandline-driver/internal/domain/entity"
	"github.com/oksasatya/grandline-driver/internal/infrastructure/mock"
	"github.com/oksasatya/grandline-driver/internal/mocks"
)

var testCreds = entity.Credentials{Email: "test@test.com", Password: "password"}

func newMockStore(t *testing.T) *Store {
	t.Helper()
	backend := mock.NewBackend(mock.Config{}, mock.WithSleep(mock.NoSleep))
	return NewStore(NewGateway(backend, nil), nil)
}

// watch records every snapshot and fails the test on an invariant violation.
func watch(t *testing.T, s *Store) *[]Session {
	t.Helper()
	var mu sync.Mutex
	var seen []Session
	unsub := s.Subscribe(func(sess Session) {
		if sess.IsAuthenticated {
			assert.NotNil(t, sess.User, "authenticated without user")
			assert.NotEmpty(t, sess.AccessToken, "authenticated without access token")
			assert.NotEmpty(t, sess.RefreshToken, "authenticated without refresh token")
		}
		mu.Lock()
		seen = append(seen, sess)
		mu.Unlock()
	})
	t.Cleanup(unsub)
	return &seen
}

func loggedIn(t *testing.T, s *Store) {
	t.Helper()
	require.NoError(t, s.Login(context.Background(), testCreds))
	require.True(t, s.Snapshot().IsAuthenticated)
}

func TestStore_InitialSession(t *testing.T) {
	s := newMockStore(t)
	assert.Equal(t, Session{}, s.Snapshot())
	assert.Equal(t, StateUnauthenticated, s.State())
}

func TestStore_LoginSuccess(t *testing.T) {
	s := newMockStore(t)
	seen := watch(t, s)

	require.NoError(t, s.Login(context.Background(), testCreds))

	got := s.Snapshot()
	assert.True(t, got.IsAuthenticated)
	assert.False(t, got.IsLoading)
	assert.Empty(t, got.Error)
	require.NotNil(t, got.User)
	assert.Equal(t, "test@test.com", got.User.Email)
	assert.Equal(t, mock.AccessToken, got.AccessToken)
	assert.Equal(t, mock.RefreshToken, got.RefreshToken)
	assert.Equal(t, StateAuthenticated, got.State())

	require.Len(t, *seen, 2)
	assert.True(t, (*seen)[0].IsLoading)
	assert.Equal(t, StateAuthenticating, (*seen)[0].State())
	assert.False(t, (*seen)[1].IsLoading)
}

func TestStore_LoginRejectsOtherCredentials(t *testing.T) {
	creds := []entity.Credentials{
		{Email: "test@test.com", Password: "wrong"},
		{Email: "driver@test.com", Password: "password"},
		{Email: "", Password: ""},
		{Email: "test@test.com", Password: "Password"},
	}
	for _, c := range creds {
		t.Run(fmt.Sprintf("%s/%s", c.Email, c.Password), func(t *testing.T) {
			s := newMockStore(t)
			err := s.Login(context.Background(), c)
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindAuth))

			got := s.Snapshot()
			assert.False(t, got.IsAuthenticated)
			assert.False(t, got.IsLoading)
			assert.Equal(t, "Invalid credentials. Please try again.", got.Error)
		})
	}
}

func TestStore_LoginFailureKeepsUserAndTokens(t *testing.T) {
	s := newMockStore(t)
	loggedIn(t, s)
	before := s.Snapshot()

	err := s.Login(context.Background(), entity.Credentials{Email: "test@test.com", Password: "nope"})
	require.Error(t, err)

	got := s.Snapshot()
	assert.False(t, got.IsAuthenticated)
	assert.Equal(t, before.User, got.User)
	assert.Equal(t, before.AccessToken, got.AccessToken)
	assert.Equal(t, before.RefreshToken, got.RefreshToken)
	assert.NotEmpty(t, got.Error)
}

func TestStore_LoginDefaultMessage(t *testing.T) {
	backend := mocks.NewMockBackend()
	backend.LoginFunc = func(context.Context, entity.Credentials) (*entity.AuthResponse, error) {
		return nil, errors.New("")
	}
	s := NewStore(NewGateway(backend, nil), nil)

	require.Error(t, s.Login(context.Background(), testCreds))
	assert.Equal(t, "Login failed", s.Snapshot().Error)
}

func TestStore_LoginWithoutTokensFails(t *testing.T) {
	backend := mocks.NewMockBackend()
	backend.LoginFunc = func(context.Context, entity.Credentials) (*entity.AuthResponse, error) {
		return &entity.AuthResponse{User: entity.User{ID: "1"}, AccessToken: "a"}, nil
	}
	s := NewStore(NewGateway(backend, nil), nil)
	watch(t, s)

	require.Error(t, s.Login(context.Background(), testCreds))
	assert.False(t, s.Snapshot().IsAuthenticated)
	assert.Equal(t, "Login failed", s.Snapshot().Error)
}

func TestStore_Logout(t *testing.T) {
	s := newMockStore(t)
	watch(t, s)
	loggedIn(t, s)

	s.Logout(context.Background())
	assert.Equal(t, Session{}, s.Snapshot())
}

func TestStore_LogoutIdempotent(t *testing.T) {
	s := newMockStore(t)
	s.Logout(context.Background())
	s.Logout(context.Background())
	assert.Equal(t, Session{}, s.Snapshot())
}

func TestStore_LogoutBackendFailureStillClears(t *testing.T) {
	backend := mocks.NewMockBackend()
	backend.LoginFunc = func(context.Context, entity.Credentials) (*entity.AuthResponse, error) {
		return &entity.AuthResponse{User: entity.User{ID: "1"}, AccessToken: "a", RefreshToken: "r"}, nil
	}
	backend.LogoutFunc = func(context.Context) error {
		return apperror.New(apperror.KindNetwork, "offline")
	}
	s := NewStore(NewGateway(backend, nil), nil)
	loggedIn(t, s)

	s.Logout(context.Background())
	assert.Equal(t, Session{}, s.Snapshot())
}

func TestStore_LogoutClearsError(t *testing.T) {
	s := newMockStore(t)
	require.Error(t, s.Login(context.Background(), entity.Credentials{}))
	require.NotEmpty(t, s.Snapshot().Error)

	s.Logout(context.Background())
	assert.Empty(t, s.Snapshot().Error)
}

func TestStore_RefreshToken(t *testing.T) {
	s := newMockStore(t)
	loggedIn(t, s)
	user := s.Snapshot().User

	require.NoError(t, s.RefreshToken(context.Background()))

	got := s.Snapshot()
	assert.True(t, got.IsAuthenticated)
	assert.Equal(t, "new_"+mock.AccessToken, got.AccessToken)
	assert.Equal(t, "new_"+mock.RefreshToken, got.RefreshToken)
	assert.Equal(t, user, got.User)
}

func TestStore_RefreshFailureForcesRelogin(t *testing.T) {
	backend := mocks.NewMockBackend()
	backend.LoginFunc = func(context.Context, entity.Credentials) (*entity.AuthResponse, error) {
		return &entity.AuthResponse{User: entity.User{ID: "1"}, AccessToken: "a", RefreshToken: "r"}, nil
	}
	backend.RefreshTokenFunc = func(context.Context) (*entity.AuthResponse, error) {
		return nil, apperror.New(apperror.KindUnauthorized, "Session expired")
	}
	s := NewStore(NewGateway(backend, nil), nil)
	watch(t, s)
	loggedIn(t, s)

	err := s.RefreshToken(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))

	got := s.Snapshot()
	assert.Equal(t, Session{Error: "Session expired"}, got)
	assert.Equal(t, StateUnauthenticated, got.State())
}

func TestStore_GetProfile(t *testing.T) {
	backend := mocks.NewMockBackend()
	backend.LoginFunc = func(context.Context, entity.Credentials) (*entity.AuthResponse, error) {
		return &entity.AuthResponse{User: entity.User{ID: "1", FirstName: "Old"}, AccessToken: "a", RefreshToken: "r"}, nil
	}
	calls := 0
	backend.GetProfileFunc = func(context.Context) (*entity.User, error) {
		calls++
		if calls == 1 {
			return &entity.User{ID: "1", FirstName: "New"}, nil
		}
		return nil, errors.New("")
	}
	s := NewStore(NewGateway(backend, nil), nil)
	loggedIn(t, s)

	require.NoError(t, s.GetProfile(context.Background()))
	assert.Equal(t, "New", s.Snapshot().User.FirstName)

	require.Error(t, s.GetProfile(context.Background()))
	got := s.Snapshot()
	assert.Equal(t, "Failed to get user profile", got.Error)
	assert.Equal(t, "New", got.User.FirstName)
	assert.True(t, got.IsAuthenticated)
	assert.False(t, got.IsLoading)
}

func TestStore_ChangePassword(t *testing.T) {
	s := newMockStore(t)
	loggedIn(t, s)
	before := s.Snapshot()

	err := s.ChangePassword(context.Background(), entity.PasswordChangeRequest{NewPassword: "abcde", ConfirmPassword: "abcde"})
	require.Error(t, err)
	assert.Equal(t, "Password must be at least 6 characters long", s.Snapshot().Error)

	require.NoError(t, s.ChangePassword(context.Background(), entity.PasswordChangeRequest{
		CurrentPassword: "password", NewPassword: "abcdef", ConfirmPassword: "abcdef",
	}))
	got := s.Snapshot()
	assert.Empty(t, got.Error)
	before.Error = ""
	assert.Equal(t, before, got)
}

func TestStore_CompleteOnboardingMergesFlag(t *testing.T) {
	backend := mocks.NewMockBackend()
	user := entity.User{
		ID:          "7",
		Email:       "d@test.com",
		FirstName:   "Dee",
		LastName:    "River",
		Avatar:      "file://a.jpg",
		PhoneNumber: "+10000000000",
		CreatedAt:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
	}
	backend.LoginFunc = func(context.Context, entity.Credentials) (*entity.AuthResponse, error) {
		return &entity.AuthResponse{User: user, AccessToken: "a", RefreshToken: "r"}, nil
	}
	s := NewStore(NewGateway(backend, nil), nil)
	loggedIn(t, s)
	before := s.Snapshot().User

	require.NoError(t, s.CompleteOnboarding(context.Background(), entity.DriverOnboardingSubmission{
		DriverLicense: "file://l.jpg", ProfilePicture: "file://p.jpg",
	}))

	after := s.Snapshot().User
	require.NotNil(t, after)
	assert.True(t, after.IsOnboardingComplete)
	want := *before
	want.IsOnboardingComplete = true
	assert.Equal(t, want, *after)
	assert.False(t, before.IsOnboardingComplete, "earlier snapshot must not change")
}

func TestStore_CompleteOnboardingFailure(t *testing.T) {
	backend := mocks.NewMockBackend()
	backend.CompleteOnboardingFunc = func(context.Context, entity.DriverOnboardingSubmission) (*entity.OnboardingResult, error) {
		return nil, errors.New("")
	}
	s := NewStore(NewGateway(backend, nil), nil)

	require.Error(t, s.CompleteOnboarding(context.Background(), entity.DriverOnboardingSubmission{}))
	assert.Equal(t, "Onboarding completion failed", s.Snapshot().Error)
	assert.Nil(t, s.Snapshot().User)
}

func TestStore_LoadingTogglesOncePerCall(t *testing.T) {
	s := newMockStore(t)
	seen := watch(t, s)
	ctx := context.Background()

	_ = s.Login(ctx, entity.Credentials{})
	_ = s.Login(ctx, testCreds)
	_ = s.GetProfile(ctx)
	_ = s.ChangePassword(ctx, entity.PasswordChangeRequest{NewPassword: "x"})
	_ = s.RefreshToken(ctx)
	_ = s.CompleteOnboarding(ctx, entity.DriverOnboardingSubmission{})
	s.Logout(ctx)

	require.Len(t, *seen, 14)
	for i, sess := range *seen {
		assert.Equal(t, i%2 == 0, sess.IsLoading, "snapshot %d", i)
	}
	assert.False(t, s.Snapshot().IsLoading)
}

// blockingLogin returns a backend whose Login waits for release.
func blockingLogin() (*mocks.MockBackend, chan struct{}, chan struct{}) {
	started := make(chan struct{})
	release := make(chan struct{})
	backend := mocks.NewMockBackend()
	backend.LoginFunc = func(ctx context.Context, creds entity.Credentials) (*entity.AuthResponse, error) {
		close(started)
		<-release
		if creds.Password != "password" {
			return nil, apperror.Auth("Invalid credentials. Please try again.")
		}
		return &entity.AuthResponse{User: entity.User{ID: "1"}, AccessToken: "a", RefreshToken: "r"}, nil
	}
	return backend, started, release
}

func TestStore_RejectsOverlappingOperations(t *testing.T) {
	backend, started, release := blockingLogin()
	s := NewStore(NewGateway(backend, nil), nil)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- s.Login(ctx, testCreds) }()
	<-started

	before := s.Snapshot()
	assert.True(t, before.IsLoading)
	assert.ErrorIs(t, s.Login(ctx, entity.Credentials{Email: "test@test.com", Password: "bad"}), ErrOperationInProgress)
	assert.ErrorIs(t, s.GetProfile(ctx), ErrOperationInProgress)
	assert.ErrorIs(t, s.SetAuthState(entity.User{}, "a", "r"), ErrOperationInProgress)
	assert.Equal(t, before, s.Snapshot())

	close(release)
	require.NoError(t, <-done)
	got := s.Snapshot()
	assert.True(t, got.IsAuthenticated)
	assert.Empty(t, got.Error)
}

func TestStore_LogoutSupersedesInFlightLogin(t *testing.T) {
	backend, started, release := blockingLogin()
	s := NewStore(NewGateway(backend, nil), nil)
	watch(t, s)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- s.Login(ctx, testCreds) }()
	<-started

	logoutDone := make(chan struct{})
	go func() {
		s.Logout(ctx)
		close(logoutDone)
	}()
	<-logoutDone

	close(release)
	assert.ErrorIs(t, <-done, ErrSuperseded)
	assert.Equal(t, Session{}, s.Snapshot())
}

func TestStore_LocalReducers(t *testing.T) {
	s := newMockStore(t)
	seen := watch(t, s)

	assert.ErrorIs(t, s.SetAuthState(entity.User{ID: "9"}, "", "r"), ErrIncompleteAuth)
	require.NoError(t, s.SetAuthState(entity.User{ID: "9", FirstName: "A"}, "a", "r"))
	assert.Equal(t, StateAuthenticated, s.State())

	name := "B"
	s.UpdateUserProfile(entity.ProfileUpdate{FirstName: &name})
	assert.Equal(t, "B", s.Snapshot().User.FirstName)
	assert.Equal(t, "9", s.Snapshot().User.ID)

	require.Error(t, s.ChangePassword(context.Background(), entity.PasswordChangeRequest{}))
	require.NotEmpty(t, s.Snapshot().Error)
	s.ClearError()
	assert.Empty(t, s.Snapshot().Error)

	s.ClearAuthState()
	assert.Equal(t, Session{}, s.Snapshot())

	s.UpdateUserProfile(entity.ProfileUpdate{FirstName: &name})
	assert.Nil(t, s.Snapshot().User)
	assert.NotEmpty(t, *seen)
}

func TestStore_LocalAuthReducersClearError(t *testing.T) {
	tests := []struct {
		name   string
		reduce func(*Store) error
	}{
		{"set", func(s *Store) error { return s.SetAuthState(mock.FixedUser("test@test.com"), "a", "b") }},
		{"clear", func(s *Store) error { s.ClearAuthState(); return nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMockStore(t)
			require.Error(t, s.Login(context.Background(), entity.Credentials{Email: "test@test.com", Password: "bad"}))
			require.Equal(t, "Invalid credentials. Please try again.", s.Snapshot().Error)

			require.NoError(t, tt.reduce(s))
			assert.Empty(t, s.Snapshot().Error)
		})
	}
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := newMockStore(t)
	loggedIn(t, s)

	snap := s.Snapshot()
	snap.User.FirstName = "Mutated"
	snap.AccessToken = ""
	assert.Equal(t, "John", s.Snapshot().User.FirstName)
	assert.Equal(t, mock.AccessToken, s.Snapshot().AccessToken)
}

func TestStore_Unsubscribe(t *testing.T) {
	s := newMockStore(t)
	calls := 0
	unsub := s.Subscribe(func(Session) { calls++ })

	s.ClearError()
	unsub()
	unsub()
	s.ClearError()
	assert.Equal(t, 1, calls)
}

func TestState_String(t *testing.T) {
	tests := []struct {
		sess Session
		want string
	}{
		{Session{}, "unauthenticated"},
		{Session{IsLoading: true}, "authenticating"},
		{Session{IsAuthenticated: true}, "authenticated"},
		{Session{IsAuthenticated: true, IsLoading: true}, "authenticated_loading"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.sess.State().String())
	}
	assert.Equal(t, "unknown", State(42).String())
}
