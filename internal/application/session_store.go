package application

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/grandline-driver/internal/domain/apperror"
	"github.com/oksasatya/grandline-driver/internal/domain/entity"
	"github.com/oksasatya/grandline-driver/pkg/helpers"
)

var (
	// ErrOperationInProgress is returned when an operation is started while
	// another one is still loading. The session is left untouched.
	ErrOperationInProgress = errors.New("another session operation is in progress")

	// ErrSuperseded is returned by an operation whose result was dropped because
	// the session was logged out or cleared while it was in flight.
	ErrSuperseded = errors.New("session operation superseded by logout")

	// ErrIncompleteAuth is returned by SetAuthState when a token is missing.
	ErrIncompleteAuth = errors.New("user, access token and refresh token are all required")
)

// Default failure messages when the backend error carries none.
const (
	msgLoginFailed      = "Login failed"
	msgRefreshFailed    = "Token refresh failed"
	msgProfileFailed    = "Failed to get user profile"
	msgPasswordFailed   = "Password change failed"
	msgOnboardingFailed = "Onboarding completion failed"
)

// SessionAPI is the subset of the gateway the session store drives.
type SessionAPI interface {
	Login(ctx context.Context, creds entity.Credentials) (*entity.AuthResponse, error)
	Logout(ctx context.Context) error
	RefreshToken(ctx context.Context) (*entity.AuthResponse, error)
	GetProfile(ctx context.Context) (*entity.User, error)
	ChangePassword(ctx context.Context, req entity.PasswordChangeRequest) error
	CompleteOnboarding(ctx context.Context, sub entity.DriverOnboardingSubmission) (*entity.OnboardingResult, error)
}

var _ SessionAPI = (*Gateway)(nil)

// Session is the client auth state. Values handed out by the store are copies.
type Session struct {
	User            *entity.User `json:"user,omitempty"`
	AccessToken     string       `json:"accessToken,omitempty"`
	RefreshToken    string       `json:"refreshToken,omitempty"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsLoading       bool         `json:"isLoading"`
	Error           string       `json:"error,omitempty"`
}

func (s Session) clone() Session {
	s.User = s.User.Clone()
	return s
}

func (s *Session) clearAuth() {
	s.User = nil
	s.AccessToken = ""
	s.RefreshToken = ""
	s.IsAuthenticated = false
}

// State is the machine state derived from a Session.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateAuthenticated
	StateAuthenticatedLoading
)

func (st State) String() string {
	switch st {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateAuthenticatedLoading:
		return "authenticated_loading"
	default:
		return "unknown"
	}
}

// State derives the machine state from the session fields.
func (s Session) State() State {
	switch {
	case s.IsAuthenticated && s.IsLoading:
		return StateAuthenticatedLoading
	case s.IsAuthenticated:
		return StateAuthenticated
	case s.IsLoading:
		return StateAuthenticating
	default:
		return StateUnauthenticated
	}
}

// Store owns the process-wide Session. Backend calls run outside the lock;
// only one non-logout operation may be in flight at a time.
type Store struct {
	api    SessionAPI
	logger *logrus.Logger

	mu      sync.Mutex
	session Session
	epoch   uint64
	subs    map[int]func(Session)
	nextSub int
}

// NewStore returns a store holding an empty session.
func NewStore(api SessionAPI, logger *logrus.Logger) *Store {
	return &Store{
		api:    api,
		logger: helpers.OrDiscard(logger),
		subs:   make(map[int]func(Session)),
	}
}

func (s *Store) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.clone()
}

func (s *Store) State() State {
	return s.Snapshot().State()
}

// Subscribe registers fn to receive a snapshot after every change. Listeners
// run synchronously on the goroutine that made the change.
func (s *Store) Subscribe(fn func(Session)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// commit must be called with s.mu held; it releases it and notifies listeners.
func (s *Store) commit(op string) {
	snap := s.session.clone()
	fns := make([]func(Session), 0, len(s.subs))
	for id := 0; id < s.nextSub; id++ {
		if fn, ok := s.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{"op": op, "state": snap.State().String()}).Debug("session updated")
	for _, fn := range fns {
		fn(snap)
	}
}

type pending struct {
	op       string
	clearErr bool
	logout   bool
}

// begin enters the loading phase and returns the epoch the operation belongs to.
func (s *Store) begin(p pending) (uint64, error) {
	s.mu.Lock()
	if s.session.IsLoading && !p.logout {
		s.mu.Unlock()
		s.logger.WithField("op", p.op).Debug("session operation rejected while loading")
		return 0, ErrOperationInProgress
	}
	if p.logout {
		s.epoch++
	}
	s.session.IsLoading = true
	if p.clearErr {
		s.session.Error = ""
	}
	epoch := s.epoch
	s.commit(p.op + ".pending")
	return epoch, nil
}

// finish applies fn and ends the loading phase, unless a logout happened since
// begin, in which case the result is dropped.
func (s *Store) finish(op string, epoch uint64, fn func(*Session)) error {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		s.logger.WithField("op", op).Debug("dropping stale session result")
		return ErrSuperseded
	}
	fn(&s.session)
	s.session.IsLoading = false
	s.commit(op)
	return nil
}

func (s *Store) fail(op string, epoch uint64, err error, fallback string, fn func(*Session)) error {
	msg := apperror.MessageOf(err, fallback)
	if ferr := s.finish(op, epoch, func(sess *Session) {
		if fn != nil {
			fn(sess)
		}
		sess.Error = msg
	}); ferr != nil {
		return ferr
	}
	return err
}

func validAuth(res *entity.AuthResponse) bool {
	return res != nil && res.AccessToken != "" && res.RefreshToken != ""
}

// Login authenticates with creds. On failure user and tokens stay as they were.
func (s *Store) Login(ctx context.Context, creds entity.Credentials) error {
	const op = "login"
	epoch, err := s.begin(pending{op: op, clearErr: true})
	if err != nil {
		return err
	}

	res, err := s.api.Login(ctx, creds)
	if err == nil && !validAuth(res) {
		err = apperror.New(apperror.KindAuth, msgLoginFailed)
	}
	if err != nil {
		return s.fail(op, epoch, err, msgLoginFailed, func(sess *Session) {
			sess.IsAuthenticated = false
		})
	}
	user := res.User
	return s.finish(op, epoch, func(sess *Session) {
		sess.User = &user
		sess.AccessToken = res.AccessToken
		sess.RefreshToken = res.RefreshToken
		sess.IsAuthenticated = true
		sess.Error = ""
	})
}

// Logout always ends unauthenticated; backend failures are only logged.
// It is accepted while other operations are loading and makes their results stale.
func (s *Store) Logout(ctx context.Context) {
	const op = "logout"
	epoch, _ := s.begin(pending{op: op, logout: true})

	if err := s.api.Logout(ctx); err != nil {
		s.logger.WithError(err).Warn("logout failed, clearing session anyway")
	}
	_ = s.finish(op, epoch, func(sess *Session) {
		sess.clearAuth()
		sess.Error = ""
	})
}

// RefreshToken rotates the tokens. Failure clears the whole session.
func (s *Store) RefreshToken(ctx context.Context) error {
	const op = "refreshToken"
	epoch, err := s.begin(pending{op: op})
	if err != nil {
		return err
	}

	res, err := s.api.RefreshToken(ctx)
	if err == nil && !validAuth(res) {
		err = apperror.New(apperror.KindUnauthorized, msgRefreshFailed)
	}
	if err != nil {
		return s.fail(op, epoch, err, msgRefreshFailed, (*Session).clearAuth)
	}
	return s.finish(op, epoch, func(sess *Session) {
		if sess.User == nil {
			user := res.User
			sess.User = &user
		}
		sess.AccessToken = res.AccessToken
		sess.RefreshToken = res.RefreshToken
		sess.IsAuthenticated = true
		sess.Error = ""
	})
}

// GetProfile replaces the user with the backend record.
func (s *Store) GetProfile(ctx context.Context) error {
	const op = "getProfile"
	epoch, err := s.begin(pending{op: op})
	if err != nil {
		return err
	}

	user, err := s.api.GetProfile(ctx)
	if err == nil && user == nil {
		err = apperror.New(apperror.KindRequest, msgProfileFailed)
	}
	if err != nil {
		return s.fail(op, epoch, err, msgProfileFailed, nil)
	}
	return s.finish(op, epoch, func(sess *Session) {
		sess.User = user.Clone()
		sess.Error = ""
	})
}

func (s *Store) ChangePassword(ctx context.Context, req entity.PasswordChangeRequest) error {
	const op = "changePassword"
	epoch, err := s.begin(pending{op: op, clearErr: true})
	if err != nil {
		return err
	}

	if err := s.api.ChangePassword(ctx, req); err != nil {
		return s.fail(op, epoch, err, msgPasswordFailed, nil)
	}
	return s.finish(op, epoch, func(sess *Session) {
		sess.Error = ""
	})
}

// CompleteOnboarding merges the returned flag into the current user.
func (s *Store) CompleteOnboarding(ctx context.Context, sub entity.DriverOnboardingSubmission) error {
	const op = "completeOnboarding"
	epoch, err := s.begin(pending{op: op, clearErr: true})
	if err != nil {
		return err
	}

	res, err := s.api.CompleteOnboarding(ctx, sub)
	if err == nil && res == nil {
		err = apperror.New(apperror.KindRequest, msgOnboardingFailed)
	}
	if err != nil {
		return s.fail(op, epoch, err, msgOnboardingFailed, nil)
	}
	return s.finish(op, epoch, func(sess *Session) {
		if sess.User != nil {
			u := sess.User.Clone()
			u.IsOnboardingComplete = res.IsOnboardingComplete
			sess.User = u
		}
		sess.Error = ""
	})
}

func (s *Store) ClearError() {
	s.mu.Lock()
	s.session.Error = ""
	s.commit("clearError")
}

// UpdateUserProfile merges p into the current user without a backend call.
// It is a no-op when no user is loaded.
func (s *Store) UpdateUserProfile(p entity.ProfileUpdate) {
	s.mu.Lock()
	if s.session.User == nil || p.IsEmpty() {
		s.mu.Unlock()
		return
	}
	u := s.session.User.Clone()
	p.Apply(u)
	s.session.User = u
	s.commit("updateUserProfile")
}

// SetAuthState installs an already issued session, e.g. one restored from storage.
func (s *Store) SetAuthState(user entity.User, accessToken, refreshToken string) error {
	if accessToken == "" || refreshToken == "" {
		return ErrIncompleteAuth
	}
	s.mu.Lock()
	if s.session.IsLoading {
		s.mu.Unlock()
		return ErrOperationInProgress
	}
	s.session.User = &user
	s.session.AccessToken = accessToken
	s.session.RefreshToken = refreshToken
	s.session.IsAuthenticated = true
	s.session.Error = ""
	s.commit("setAuthState")
	return nil
}

// ClearAuthState drops user and tokens locally. Like Logout it invalidates
// in-flight results.
func (s *Store) ClearAuthState() {
	s.mu.Lock()
	s.epoch++
	s.session.clearAuth()
	s.session.IsLoading = false
	s.session.Error = ""
	s.commit("clearAuthState")
}
