package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/grandline-driver/internal/domain/apperror"
	"github.com/oksasatya/grandline-driver/internal/domain/entity"
	"github.com/oksasatya/grandline-driver/internal/domain/repository"
	"github.com/oksasatya/grandline-driver/pkg/helpers"
)

// Gateway is the one operation surface the app talks to. The backend behind it
// is chosen once at startup and never re-evaluated.
type Gateway struct {
	backend repository.Backend
	logger  *logrus.Logger
}

func NewGateway(backend repository.Backend, logger *logrus.Logger) *Gateway {
	return &Gateway{backend: backend, logger: helpers.OrDiscard(logger)}
}

// Backend returns the name of the selected backend ("mock" or "real").
func (g *Gateway) Backend() string { return g.backend.Name() }

func invoke[T any](ctx context.Context, g *Gateway, op string, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	log := g.logger.WithFields(logrus.Fields{"op": op, "backend": g.backend.Name()})
	log.Debug("gateway call")
	out, err := fn(ctx)
	if err != nil {
		log.WithError(err).WithField("kind", apperror.KindOf(err).String()).Warn("gateway call failed")
		return out, err
	}
	log.WithField("took", time.Since(start)).Debug("gateway call done")
	return out, nil
}

func invokeErr(ctx context.Context, g *Gateway, op string, fn func(context.Context) error) error {
	_, err := invoke(ctx, g, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// Auth

func (g *Gateway) Login(ctx context.Context, creds entity.Credentials) (*entity.AuthResponse, error) {
	return invoke(ctx, g, "auth.login", func(ctx context.Context) (*entity.AuthResponse, error) {
		return g.backend.Login(ctx, creds)
	})
}

func (g *Gateway) Logout(ctx context.Context) error {
	return invokeErr(ctx, g, "auth.logout", g.backend.Logout)
}

func (g *Gateway) ChangePassword(ctx context.Context, req entity.PasswordChangeRequest) error {
	return invokeErr(ctx, g, "auth.changePassword", func(ctx context.Context) error {
		return g.backend.ChangePassword(ctx, req)
	})
}

func (g *Gateway) RefreshToken(ctx context.Context) (*entity.AuthResponse, error) {
	return invoke(ctx, g, "auth.refreshToken", g.backend.RefreshToken)
}

func (g *Gateway) ForgotPassword(ctx context.Context, email string) error {
	return invokeErr(ctx, g, "auth.forgotPassword", func(ctx context.Context) error {
		return g.backend.ForgotPassword(ctx, email)
	})
}

func (g *Gateway) ResetPassword(ctx context.Context, req entity.PasswordReset) error {
	return invokeErr(ctx, g, "auth.resetPassword", func(ctx context.Context) error {
		return g.backend.ResetPassword(ctx, req)
	})
}

func (g *Gateway) VerifyEmail(ctx context.Context, token string) error {
	return invokeErr(ctx, g, "auth.verifyEmail", func(ctx context.Context) error {
		return g.backend.VerifyEmail(ctx, token)
	})
}

// User

func (g *Gateway) GetProfile(ctx context.Context) (*entity.User, error) {
	return invoke(ctx, g, "user.getProfile", g.backend.GetProfile)
}

func (g *Gateway) UpdateProfile(ctx context.Context, in entity.ProfileUpdate) (*entity.User, error) {
	return invoke(ctx, g, "user.updateProfile", func(ctx context.Context) (*entity.User, error) {
		return g.backend.UpdateProfile(ctx, in)
	})
}

func (g *Gateway) UploadAvatar(ctx context.Context, avatarURI string) (*entity.AvatarUpload, error) {
	return invoke(ctx, g, "user.uploadAvatar", func(ctx context.Context) (*entity.AvatarUpload, error) {
		return g.backend.UploadAvatar(ctx, avatarURI)
	})
}

// Driver onboarding

func (g *Gateway) UploadLicense(ctx context.Context, licenseURI string) (*entity.LicenseUpload, error) {
	return invoke(ctx, g, "driver.uploadLicense", func(ctx context.Context) (*entity.LicenseUpload, error) {
		return g.backend.UploadLicense(ctx, licenseURI)
	})
}

func (g *Gateway) UploadProfilePicture(ctx context.Context, pictureURI string) (*entity.PictureUpload, error) {
	return invoke(ctx, g, "driver.uploadProfilePicture", func(ctx context.Context) (*entity.PictureUpload, error) {
		return g.backend.UploadProfilePicture(ctx, pictureURI)
	})
}

func (g *Gateway) CompleteOnboarding(ctx context.Context, sub entity.DriverOnboardingSubmission) (*entity.OnboardingResult, error) {
	return invoke(ctx, g, "driver.completeOnboarding", func(ctx context.Context) (*entity.OnboardingResult, error) {
		return g.backend.CompleteOnboarding(ctx, sub)
	})
}

func (g *Gateway) GetDriverInfo(ctx context.Context) (*entity.DriverInfo, error) {
	return invoke(ctx, g, "driver.getDriverInfo", g.backend.GetDriverInfo)
}

// Dashboard

func (g *Gateway) GetStats(ctx context.Context) (*entity.DashboardStats, error) {
	return invoke(ctx, g, "dashboard.getStats", g.backend.GetStats)
}

func (g *Gateway) GetRecentActivity(ctx context.Context) ([]entity.Activity, error) {
	return invoke(ctx, g, "dashboard.getRecentActivity", g.backend.GetRecentActivity)
}
