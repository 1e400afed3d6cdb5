package mock

import (
	"context"
	"math/rand/v2"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/grandline-driver/internal/domain/apperror"
	"github.com/oksasatya/grandline-driver/internal/domain/entity"
	"github.com/oksasatya/grandline-driver/internal/domain/repository"
	"github.com/oksasatya/grandline-driver/pkg/helpers"
)

const (
	AccessToken  = "mock_access_token_12345"
	RefreshToken = "mock_refresh_token_67890"
	ExpiresIn    = 3600

	refreshPrefix = "new_"
)

// Per-operation latencies used when Config.FixedDelays is set.
const (
	loginDelay          = 1500 * time.Millisecond
	logoutDelay         = 500 * time.Millisecond
	changePasswordDelay = 1200 * time.Millisecond
	refreshDelay        = 800 * time.Millisecond
	forgotPasswordDelay = 1000 * time.Millisecond
	resetPasswordDelay  = 1000 * time.Millisecond
	verifyEmailDelay    = 800 * time.Millisecond
	getProfileDelay     = 600 * time.Millisecond
	updateProfileDelay  = 1000 * time.Millisecond
	avatarDelay         = 1500 * time.Millisecond
	uploadDelay         = 2000 * time.Millisecond
	onboardingDelay     = 2500 * time.Millisecond
	driverInfoDelay     = 600 * time.Millisecond
	statsDelay          = 800 * time.Millisecond
	activityDelay       = 600 * time.Millisecond
)

var fixedTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// FixedUser is the only account the mock backend knows.
func FixedUser(email string) entity.User {
	return entity.User{
		ID:                   "1",
		Email:                email,
		FirstName:            "John",
		LastName:             "Doe",
		PhoneNumber:          "+1234567890",
		IsEmailVerified:      true,
		IsOnboardingComplete: true,
		CreatedAt:            fixedTime,
		UpdatedAt:            fixedTime,
	}
}

// SleepFunc suspends for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NoSleep skips latency; meant for tests.
func NoSleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

type Config struct {
	// FixedDelays gives every operation its own latency; otherwise each call
	// waits a random duration in [MinDelay, MaxDelay].
	FixedDelays  bool
	MinDelay     time.Duration
	MaxDelay     time.Duration
	TestEmail    string
	TestPassword string
}

// Backend is an in-memory stand-in for the driver API. It is stateless across
// calls apart from the fixed user.
type Backend struct {
	cfg    Config
	user   entity.User
	sleep  SleepFunc
	now    func() time.Time
	jitter func() float64
	logger *logrus.Logger
}

var _ repository.Backend = (*Backend)(nil)

type Option func(*Backend)

func WithSleep(fn SleepFunc) Option { return func(b *Backend) { b.sleep = fn } }

func WithClock(now func() time.Time) Option { return func(b *Backend) { b.now = now } }

// WithJitter replaces the [0,1) source used to pick random delays.
func WithJitter(fn func() float64) Option { return func(b *Backend) { b.jitter = fn } }

func WithLogger(l *logrus.Logger) Option { return func(b *Backend) { b.logger = l } }

func NewBackend(cfg Config, opts ...Option) *Backend {
	if cfg.TestEmail == "" {
		cfg.TestEmail = "test@test.com"
	}
	if cfg.TestPassword == "" {
		cfg.TestPassword = "password"
	}
	if cfg.MaxDelay < cfg.MinDelay {
		cfg.MaxDelay = cfg.MinDelay
	}
	b := &Backend{
		cfg:    cfg,
		user:   FixedUser(cfg.TestEmail),
		sleep:  sleepCtx,
		now:    time.Now,
		jitter: rand.Float64,
	}
	for _, o := range opts {
		o(b)
	}
	b.logger = helpers.OrDiscard(b.logger)
	return b
}

func (b *Backend) Name() string { return "mock" }

// Delay returns a duration in [MinDelay, MaxDelay].
func (b *Backend) Delay() time.Duration {
	span := b.cfg.MaxDelay - b.cfg.MinDelay
	return b.cfg.MinDelay + time.Duration(b.jitter()*float64(span))
}

// wait sleeps for the operation's fixed latency or a random delay.
func (b *Backend) wait(ctx context.Context, fixed time.Duration) error {
	d := fixed
	if !b.cfg.FixedDelays || d <= 0 {
		d = b.Delay()
	}
	return b.sleep(ctx, d)
}

// IsAccessToken reports whether token was issued by Login or RefreshToken.
func (b *Backend) IsAccessToken(token string) bool {
	return token == AccessToken || token == refreshPrefix+AccessToken
}

func (b *Backend) IsRefreshToken(token string) bool {
	return token == RefreshToken || token == refreshPrefix+RefreshToken
}

func (b *Backend) Login(ctx context.Context, creds entity.Credentials) (*entity.AuthResponse, error) {
	if err := b.wait(ctx, loginDelay); err != nil {
		return nil, err
	}
	if creds.Email != b.cfg.TestEmail || creds.Password != b.cfg.TestPassword {
		b.logger.WithField("email", creds.Email).Debug("mock login rejected")
		return nil, apperror.Auth("Invalid credentials. Please try again.")
	}
	return &entity.AuthResponse{
		User:         b.user,
		AccessToken:  AccessToken,
		RefreshToken: RefreshToken,
		ExpiresIn:    ExpiresIn,
	}, nil
}

func (b *Backend) Logout(ctx context.Context) error {
	return b.wait(ctx, logoutDelay)
}

// ChangePassword checks the raw new password; the current password is ignored.
func (b *Backend) ChangePassword(ctx context.Context, req entity.PasswordChangeRequest) error {
	if err := b.wait(ctx, changePasswordDelay); err != nil {
		return err
	}
	if utf8.RuneCountInString(req.NewPassword) < 6 {
		return apperror.Validation("newPassword", "Password must be at least 6 characters long")
	}
	if req.NewPassword != req.ConfirmPassword {
		return apperror.Validation("confirmPassword", "Passwords do not match")
	}
	return nil
}

func (b *Backend) RefreshToken(ctx context.Context) (*entity.AuthResponse, error) {
	if err := b.wait(ctx, refreshDelay); err != nil {
		return nil, err
	}
	return &entity.AuthResponse{
		User:         b.user,
		AccessToken:  refreshPrefix + AccessToken,
		RefreshToken: refreshPrefix + RefreshToken,
		ExpiresIn:    ExpiresIn,
	}, nil
}

func (b *Backend) ForgotPassword(ctx context.Context, _ string) error {
	return b.wait(ctx, forgotPasswordDelay)
}

func (b *Backend) ResetPassword(ctx context.Context, _ entity.PasswordReset) error {
	return b.wait(ctx, resetPasswordDelay)
}

func (b *Backend) VerifyEmail(ctx context.Context, _ string) error {
	return b.wait(ctx, verifyEmailDelay)
}

func (b *Backend) GetProfile(ctx context.Context) (*entity.User, error) {
	if err := b.wait(ctx, getProfileDelay); err != nil {
		return nil, err
	}
	u := b.user
	return &u, nil
}

// UpdateProfile merges in into a copy of the fixed user; the fixed user itself never changes.
func (b *Backend) UpdateProfile(ctx context.Context, in entity.ProfileUpdate) (*entity.User, error) {
	if err := b.wait(ctx, updateProfileDelay); err != nil {
		return nil, err
	}
	u := b.user
	in.Apply(&u)
	u.UpdatedAt = b.now().UTC()
	return &u, nil
}

func (b *Backend) UploadAvatar(ctx context.Context, avatarURI string) (*entity.AvatarUpload, error) {
	if err := b.wait(ctx, avatarDelay); err != nil {
		return nil, err
	}
	return &entity.AvatarUpload{AvatarURL: avatarURI}, nil
}

func (b *Backend) UploadLicense(ctx context.Context, licenseURI string) (*entity.LicenseUpload, error) {
	if err := b.wait(ctx, uploadDelay); err != nil {
		return nil, err
	}
	return &entity.LicenseUpload{LicenseURL: licenseURI}, nil
}

func (b *Backend) UploadProfilePicture(ctx context.Context, pictureURI string) (*entity.PictureUpload, error) {
	if err := b.wait(ctx, uploadDelay); err != nil {
		return nil, err
	}
	return &entity.PictureUpload{PictureURL: pictureURI}, nil
}

func (b *Backend) CompleteOnboarding(ctx context.Context, _ entity.DriverOnboardingSubmission) (*entity.OnboardingResult, error) {
	if err := b.wait(ctx, onboardingDelay); err != nil {
		return nil, err
	}
	return &entity.OnboardingResult{IsOnboardingComplete: true}, nil
}

func (b *Backend) GetDriverInfo(ctx context.Context) (*entity.DriverInfo, error) {
	if err := b.wait(ctx, driverInfoDelay); err != nil {
		return nil, err
	}
	return &entity.DriverInfo{HasLicense: true, HasProfilePicture: true}, nil
}

func (b *Backend) GetStats(ctx context.Context) (*entity.DashboardStats, error) {
	if err := b.wait(ctx, statsDelay); err != nil {
		return nil, err
	}
	return &entity.DashboardStats{TotalRides: 25, Earnings: 1250.50, Rating: 4.8}, nil
}

func (b *Backend) GetRecentActivity(ctx context.Context) ([]entity.Activity, error) {
	if err := b.wait(ctx, activityDelay); err != nil {
		return nil, err
	}
	return []entity.Activity{
		{ID: "1", Type: "ride", Date: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), Amount: amount(25.50)},
		{ID: "2", Type: "ride", Date: time.Date(2024, 1, 14, 15, 45, 0, 0, time.UTC), Amount: amount(18.75)},
		{ID: "3", Type: "bonus", Date: time.Date(2024, 1, 13, 9, 0, 0, 0, time.UTC), Amount: amount(50.00)},
	}, nil
}

func amount(v float64) *float64 { return &v }
