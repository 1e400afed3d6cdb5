package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/grandline-driver/internal/domain/entity"
	"github.com/oksasatya/grandline-driver/internal/domain/repository"
	"github.com/oksasatya/grandline-driver/pkg/helpers"
	"github.com/oksasatya/grandline-driver/pkg/response"
)

// RefreshChecker reports whether a refresh token was issued by the backend.
type RefreshChecker interface {
	IsRefreshToken(token string) bool
}

type AuthHandler struct {
	Backend repository.Backend
	Tokens  RefreshChecker
	Logger  *logrus.Logger
}

func NewAuthHandler(backend repository.Backend, tokens RefreshChecker, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Backend: backend, Tokens: tokens, Logger: helpers.OrDiscard(logger)}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,emailshape"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,emailshape"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,pwd"`
}

type verifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	res, err := h.Backend.Login(c.Request.Context(), entity.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		fail(c, h.Logger, err, "Login failed")
		return
	}
	h.Logger.WithField("user_id", res.User.ID).Info("driver logged in")
	response.OK(c, res, "Login successful")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Backend.Logout(c.Request.Context()); err != nil {
		h.Logger.WithError(err).Warn("logout failed")
	}
	response.OK[any](c, nil, "Logged out")
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if !h.Tokens.IsRefreshToken(req.RefreshToken) {
		response.Fail(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	res, err := h.Backend.RefreshToken(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err, "Token refresh failed")
		return
	}
	response.OK(c, res, "Token refreshed")
}

// ChangePassword accepts the real client's {currentPassword, newPassword}
// body; a missing confirmation is taken to equal the new password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if req.ConfirmPassword == "" {
		req.ConfirmPassword = req.NewPassword
	}
	err := h.Backend.ChangePassword(c.Request.Context(), entity.PasswordChangeRequest{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		fail(c, h.Logger, err, "Password change failed")
		return
	}
	response.OK[any](c, nil, "Password changed")
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Backend.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		fail(c, h.Logger, err, "Forgot password request failed")
		return
	}
	response.OK[any](c, nil, "If the account exists, a reset link has been sent")
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Backend.ResetPassword(c.Request.Context(), entity.PasswordReset{Token: req.Token, NewPassword: req.NewPassword}); err != nil {
		fail(c, h.Logger, err, "Password reset failed")
		return
	}
	response.OK[any](c, nil, "Password reset")
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Backend.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		fail(c, h.Logger, err, "Email verification failed")
		return
	}
	response.OK[any](c, nil, "Email verified")
}
