package mocks

import (
	"context"

	"github.com/oksasatya/grandline-driver/internal/domain/entity"
	"github.com/oksasatya/grandline-driver/internal/domain/repository"
)

// MockBackend implements repository.Backend for testing. Unset funcs succeed
// with zero values.
type MockBackend struct {
	NameValue string

	LoginFunc                func(ctx context.Context, creds entity.Credentials) (*entity.AuthResponse, error)
	LogoutFunc               func(ctx context.Context) error
	ChangePasswordFunc       func(ctx context.Context, req entity.PasswordChangeRequest) error
	RefreshTokenFunc         func(ctx context.Context) (*entity.AuthResponse, error)
	ForgotPasswordFunc       func(ctx context.Context, email string) error
	ResetPasswordFunc        func(ctx context.Context, req entity.PasswordReset) error
	VerifyEmailFunc          func(ctx context.Context, token string) error
	GetProfileFunc           func(ctx context.Context) (*entity.User, error)
	UpdateProfileFunc        func(ctx context.Context, in entity.ProfileUpdate) (*entity.User, error)
	UploadAvatarFunc         func(ctx context.Context, uri string) (*entity.AvatarUpload, error)
	UploadLicenseFunc        func(ctx context.Context, uri string) (*entity.LicenseUpload, error)
	UploadProfilePictureFunc func(ctx context.Context, uri string) (*entity.PictureUpload, error)
	CompleteOnboardingFunc   func(ctx context.Context, sub entity.DriverOnboardingSubmission) (*entity.OnboardingResult, error)
	GetDriverInfoFunc        func(ctx context.Context) (*entity.DriverInfo, error)
	GetStatsFunc             func(ctx context.Context) (*entity.DashboardStats, error)
	GetRecentActivityFunc    func(ctx context.Context) ([]entity.Activity, error)
}

// NewMockBackend creates a new MockBackend with default behaviors
func NewMockBackend() *MockBackend {
	return &MockBackend{NameValue: "test"}
}

func (m *MockBackend) Name() string { return m.NameValue }

func (m *MockBackend) Login(ctx context.Context, creds entity.Credentials) (*entity.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return &entity.AuthResponse{}, nil
}

func (m *MockBackend) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

func (m *MockBackend) ChangePassword(ctx context.Context, req entity.PasswordChangeRequest) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, req)
	}
	return nil
}

func (m *MockBackend) RefreshToken(ctx context.Context) (*entity.AuthResponse, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx)
	}
	return &entity.AuthResponse{}, nil
}

func (m *MockBackend) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

func (m *MockBackend) ResetPassword(ctx context.Context, req entity.PasswordReset) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, req)
	}
	return nil
}

func (m *MockBackend) VerifyEmail(ctx context.Context, token string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, token)
	}
	return nil
}

func (m *MockBackend) GetProfile(ctx context.Context) (*entity.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx)
	}
	return &entity.User{}, nil
}

func (m *MockBackend) UpdateProfile(ctx context.Context, in entity.ProfileUpdate) (*entity.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, in)
	}
	return &entity.User{}, nil
}

func (m *MockBackend) UploadAvatar(ctx context.Context, uri string) (*entity.AvatarUpload, error) {
	if m.UploadAvatarFunc != nil {
		return m.UploadAvatarFunc(ctx, uri)
	}
	return &entity.AvatarUpload{AvatarURL: uri}, nil
}

func (m *MockBackend) UploadLicense(ctx context.Context, uri string) (*entity.LicenseUpload, error) {
	if m.UploadLicenseFunc != nil {
		return m.UploadLicenseFunc(ctx, uri)
	}
	return &entity.LicenseUpload{LicenseURL: uri}, nil
}

func (m *MockBackend) UploadProfilePicture(ctx context.Context, uri string) (*entity.PictureUpload, error) {
	if m.UploadProfilePictureFunc != nil {
		return m.UploadProfilePictureFunc(ctx, uri)
	}
	return &entity.PictureUpload{PictureURL: uri}, nil
}

func (m *MockBackend) CompleteOnboarding(ctx context.Context, sub entity.DriverOnboardingSubmission) (*entity.OnboardingResult, error) {
	if m.CompleteOnboardingFunc != nil {
		return m.CompleteOnboardingFunc(ctx, sub)
	}
	return &entity.OnboardingResult{IsOnboardingComplete: true}, nil
}

func (m *MockBackend) GetDriverInfo(ctx context.Context) (*entity.DriverInfo, error) {
	if m.GetDriverInfoFunc != nil {
		return m.GetDriverInfoFunc(ctx)
	}
	return &entity.DriverInfo{}, nil
}

func (m *MockBackend) GetStats(ctx context.Context) (*entity.DashboardStats, error) {
	if m.GetStatsFunc != nil {
		return m.GetStatsFunc(ctx)
	}
	return &entity.DashboardStats{}, nil
}

func (m *MockBackend) GetRecentActivity(ctx context.Context) ([]entity.Activity, error) {
	if m.GetRecentActivityFunc != nil {
		return m.GetRecentActivityFunc(ctx)
	}
	return nil, nil
}

var _ repository.Backend = (*MockBackend)(nil)
