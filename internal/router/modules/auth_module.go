package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/grandline-driver/internal/container"
	"github.com/oksasatya/grandline-driver/internal/infrastructure/remote"
	handlers "github.com/oksasatya/grandline-driver/internal/interface/http"
	"github.com/oksasatya/grandline-driver/internal/interface/middleware"
)

// AuthModule wires the /auth routes.
// Public: login, refresh, forgot-password, reset-password, verify-email
// Protected: logout, change-password
type AuthModule struct {
	Handler    *handlers.AuthHandler
	Tokens     middleware.TokenChecker
	LoginLimit int
}

func NewAuthModule(h *handlers.AuthHandler, tokens middleware.TokenChecker, loginLimit int) *AuthModule {
	return &AuthModule{Handler: h, Tokens: tokens, LoginLimit: loginLimit}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	loginLimiter := middleware.RateLimit(rdb, m.LoginLimit, time.Minute, middleware.KeyByIP())
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP())
	recoveryLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath())

	rg.POST(remote.PathLogin, loginLimiter, m.Handler.Login)
	rg.POST(remote.PathRefresh, refreshLimiter, m.Handler.Refresh)
	rg.POST(remote.PathForgotPassword, recoveryLimiter, m.Handler.ForgotPassword)
	rg.POST(remote.PathResetPassword, recoveryLimiter, m.Handler.ResetPassword)
	rg.POST(remote.PathVerifyEmail, m.Handler.VerifyEmail)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Tokens))
	{
		auth.POST(remote.PathLogout, m.Handler.Logout)
		auth.POST(remote.PathChangePassword, m.Handler.ChangePassword)
	}
}
