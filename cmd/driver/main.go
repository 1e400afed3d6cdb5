package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/grandline-driver/config"
	"github.com/oksasatya/grandline-driver/internal/application"
	"github.com/oksasatya/grandline-driver/internal/container"
	"github.com/oksasatya/grandline-driver/internal/domain/entity"
	"github.com/oksasatya/grandline-driver/pkg/helpers"
	"github.com/oksasatya/grandline-driver/pkg/validation"
)

type options struct {
	email       string
	password    string
	newPassword string
	confirm     string
	license     string
	picture     string
}

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	opts := options{}
	flag.StringVar(&opts.email, "email", cfg.MockTestEmail, "login email")
	flag.StringVar(&opts.password, "password", cfg.MockTestPassword, "login password")
	flag.StringVar(&opts.newPassword, "new-password", "", "change the password after login")
	flag.StringVar(&opts.confirm, "confirm-password", "", "confirmation for -new-password (defaults to the same value)")
	flag.StringVar(&opts.license, "license", "", "driver's license file reference for onboarding")
	flag.StringVar(&opts.picture, "picture", "", "profile picture file reference for onboarding")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(2)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, opts); err != nil {
		helpers.LogError(logger, "driver session failed", err, nil)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger, opts options) error {
	if fields := validation.ValidateLoginForm(opts.email, opts.password); len(fields) > 0 {
		return fmt.Errorf("invalid login form: %v", fields)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
	}
	tokens := container.NewTokenStore(cfg, rdb)
	gateway := application.NewGateway(container.NewBackend(cfg, tokens, logger), logger)
	store := application.NewStore(gateway, logger)

	unsubscribe := store.Subscribe(func(s application.Session) {
		logger.WithFields(logrus.Fields{
			"state":   s.State().String(),
			"loading": s.IsLoading,
			"error":   s.Error,
		}).Info("session changed")
	})
	defer unsubscribe()

	helpers.LogInfo(logger, "starting driver session", logrus.Fields{"backend": gateway.Backend()})

	if err := store.Login(ctx, validation.TrimCredentials(opts.email, opts.password)); err != nil {
		return sessionError(store, err)
	}
	defer store.Logout(context.WithoutCancel(ctx))

	if opts.newPassword != "" {
		confirm := opts.confirm
		if confirm == "" {
			confirm = opts.newPassword
		}
		if fields := validation.ValidatePasswordChangeForm(opts.newPassword, confirm); len(fields) > 0 {
			return fmt.Errorf("invalid password change form: %v", fields)
		}
		req := entity.PasswordChangeRequest{CurrentPassword: opts.password, NewPassword: opts.newPassword, ConfirmPassword: confirm}
		if err := store.ChangePassword(ctx, req); err != nil {
			return sessionError(store, err)
		}
		logger.Info("password changed")
	}

	if err := onboard(ctx, gateway, store, logger, opts); err != nil {
		return err
	}

	stats, err := gateway.GetStats(ctx)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"total_rides": stats.TotalRides,
		"earnings":    stats.Earnings,
		"rating":      stats.Rating,
	}).Info("dashboard stats")

	acts, err := gateway.GetRecentActivity(ctx)
	if err != nil {
		return err
	}
	for _, a := range acts {
		f := logrus.Fields{"id": a.ID, "type": a.Type, "date": a.Date}
		if a.Amount != nil {
			f["amount"] = *a.Amount
		}
		logger.WithFields(f).Info("recent activity")
	}
	return nil
}

// onboard uploads both documents and completes onboarding when the user has
// not finished it yet or documents were passed explicitly.
func onboard(ctx context.Context, gateway *application.Gateway, store *application.Store, logger *logrus.Logger, opts options) error {
	user := store.Snapshot().User
	if user != nil && user.IsOnboardingComplete && opts.license == "" && opts.picture == "" {
		logger.Info("onboarding already complete")
		return nil
	}

	sub := entity.DriverOnboardingSubmission{DriverLicense: opts.license, ProfilePicture: opts.picture}
	if err := validation.ValidateOnboarding(sub); err != nil {
		return err
	}
	lic, err := gateway.UploadLicense(ctx, sub.DriverLicense)
	if err != nil {
		return err
	}
	pic, err := gateway.UploadProfilePicture(ctx, sub.ProfilePicture)
	if err != nil {
		return err
	}
	sub = entity.DriverOnboardingSubmission{DriverLicense: lic.LicenseURL, ProfilePicture: pic.PictureURL}
	if err := store.CompleteOnboarding(ctx, sub); err != nil {
		return sessionError(store, err)
	}
	logger.Info("onboarding complete")
	return nil
}

func sessionError(store *application.Store, err error) error {
	if msg := store.Snapshot().Error; msg != "" && !errors.Is(err, application.ErrOperationInProgress) {
		return errors.New(msg)
	}
	return err
}
