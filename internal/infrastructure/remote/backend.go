package remote

import (
	"context"
	"net/http"

	"github.com/oksasatya/grandline-driver/internal/domain/apperror"
	"github.com/oksasatya/grandline-driver/internal/domain/entity"
	"github.com/oksasatya/grandline-driver/internal/domain/repository"
)

// Backend serves the auth and profile operations over HTTP. Everything else
// fails with a NotImplemented error until the API exposes it.
type Backend struct {
	client *Client
}

var _ repository.Backend = (*Backend)(nil)

func NewBackend(client *Client) *Backend {
	return &Backend{client: client}
}

func (b *Backend) Name() string { return "real" }

func (b *Backend) saveTokens(ctx context.Context, res *entity.AuthResponse) {
	if err := b.client.Tokens.Save(ctx, entity.TokenPair{AccessToken: res.AccessToken, RefreshToken: res.RefreshToken}); err != nil {
		b.client.Logger.WithError(err).Warn("token store save failed")
	}
}

func (b *Backend) Login(ctx context.Context, creds entity.Credentials) (*entity.AuthResponse, error) {
	var out entity.AuthResponse
	err := b.client.do(ctx, call{
		method:    http.MethodPost,
		path:      PathLogin,
		body:      creds,
		out:       &out,
		fallback:  "Login failed",
		noRefresh: true,
	})
	if err != nil {
		if apperror.IsKind(err, apperror.KindUnauthorized) {
			return nil, apperror.Auth(apperror.MessageOf(err, "Login failed"))
		}
		return nil, err
	}
	b.saveTokens(ctx, &out)
	return &out, nil
}

// Logout never fails: the local token pair is cleared whatever the server says.
func (b *Backend) Logout(ctx context.Context) error {
	if err := b.client.do(ctx, call{method: http.MethodPost, path: PathLogout, fallback: "Logout failed"}); err != nil {
		b.client.Logger.WithError(err).Warn("logout api call failed")
	}
	if err := b.client.Tokens.Clear(ctx); err != nil {
		b.client.Logger.WithError(err).Warn("token store clear failed")
	}
	return nil
}

func (b *Backend) ChangePassword(ctx context.Context, req entity.PasswordChangeRequest) error {
	body := map[string]string{
		"currentPassword": req.CurrentPassword,
		"newPassword":     req.NewPassword,
	}
	return b.client.do(ctx, call{method: http.MethodPost, path: PathChangePassword, body: body, fallback: "Password change failed"})
}

func (b *Backend) RefreshToken(ctx context.Context) (*entity.AuthResponse, error) {
	res, err := b.client.refresh(ctx)
	if err != nil {
		if cerr := b.client.Tokens.Clear(ctx); cerr != nil {
			b.client.Logger.WithError(cerr).Warn("token store clear failed")
		}
		return nil, err
	}
	return res, nil
}

func (b *Backend) ForgotPassword(ctx context.Context, email string) error {
	return b.client.do(ctx, call{
		method:    http.MethodPost,
		path:      PathForgotPassword,
		body:      map[string]string{"email": email},
		fallback:  "Forgot password request failed",
		noRefresh: true,
	})
}

func (b *Backend) ResetPassword(ctx context.Context, req entity.PasswordReset) error {
	return b.client.do(ctx, call{
		method:    http.MethodPost,
		path:      PathResetPassword,
		body:      req,
		fallback:  "Password reset failed",
		noRefresh: true,
	})
}

func (b *Backend) VerifyEmail(ctx context.Context, token string) error {
	return b.client.do(ctx, call{
		method:   http.MethodPost,
		path:     PathVerifyEmail,
		body:     map[string]string{"token": token},
		fallback: "Email verification failed",
	})
}

func (b *Backend) GetProfile(ctx context.Context) (*entity.User, error) {
	var out entity.User
	if err := b.client.do(ctx, call{method: http.MethodGet, path: PathProfile, out: &out, fallback: "Failed to get user profile"}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *Backend) UpdateProfile(context.Context, entity.ProfileUpdate) (*entity.User, error) {
	return nil, apperror.NotImplemented("Update profile not implemented in real API yet")
}

func (b *Backend) UploadAvatar(context.Context, string) (*entity.AvatarUpload, error) {
	return nil, apperror.NotImplemented("Upload avatar not implemented in real API yet")
}

func (b *Backend) UploadLicense(context.Context, string) (*entity.LicenseUpload, error) {
	return nil, apperror.NotImplemented("Upload license not implemented in real API yet")
}

func (b *Backend) UploadProfilePicture(context.Context, string) (*entity.PictureUpload, error) {
	return nil, apperror.NotImplemented("Upload profile picture not implemented in real API yet")
}

func (b *Backend) CompleteOnboarding(context.Context, entity.DriverOnboardingSubmission) (*entity.OnboardingResult, error) {
	return nil, apperror.NotImplemented("Complete onboarding not implemented in real API yet")
}

func (b *Backend) GetDriverInfo(context.Context) (*entity.DriverInfo, error) {
	return nil, apperror.NotImplemented("Get driver info not implemented in real API yet")
}

func (b *Backend) GetStats(context.Context) (*entity.DashboardStats, error) {
	return nil, apperror.NotImplemented("Get dashboard stats not implemented in real API yet")
}

func (b *Backend) GetRecentActivity(context.Context) ([]entity.Activity, error) {
	return nil, apperror.NotImplemented("Get recent activity not implemented in real API yet")
}
