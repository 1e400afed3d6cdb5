package repository

import (
	"context"

	"github.com/oksasatya/grandline-driver/internal/domain/entity"
)

// Backend defines every operation the app can ask of the driver API.
// It is implemented by the mock backend and the real HTTP backend.
type Backend interface {
	Name() string

	// Auth
	Login(ctx context.Context, creds entity.Credentials) (*entity.AuthResponse, error)
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context, req entity.PasswordChangeRequest) error
	RefreshToken(ctx context.Context) (*entity.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req entity.PasswordReset) error
	VerifyEmail(ctx context.Context, token string) error

	// User
	GetProfile(ctx context.Context) (*entity.User, error)
	UpdateProfile(ctx context.Context, in entity.ProfileUpdate) (*entity.User, error)
	UploadAvatar(ctx context.Context, avatarURI string) (*entity.AvatarUpload, error)

	// Driver onboarding
	UploadLicense(ctx context.Context, licenseURI string) (*entity.LicenseUpload, error)
	UploadProfilePicture(ctx context.Context, pictureURI string) (*entity.PictureUpload, error)
	CompleteOnboarding(ctx context.Context, sub entity.DriverOnboardingSubmission) (*entity.OnboardingResult, error)
	GetDriverInfo(ctx context.Context) (*entity.DriverInfo, error)

	// Dashboard
	GetStats(ctx context.Context) (*entity.DashboardStats, error)
	GetRecentActivity(ctx context.Context) ([]entity.Activity, error)
}
