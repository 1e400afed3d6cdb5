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

type UserHandler struct {
	Backend repository.Backend
	Logger  *logrus.Logger
}

func NewUserHandler(backend repository.Backend, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Backend: backend, Logger: helpers.OrDiscard(logger)}
}

// uploadRequest carries an opaque file reference (a device URI).
type uploadRequest struct {
	URI string `json:"uri" binding:"required"`
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Backend.GetProfile(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err, "Failed to get user profile")
		return
	}
	response.OK(c, u, "Profile")
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req entity.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if req.IsEmpty() {
		response.Fail(c, http.StatusBadRequest, "No profile fields to update")
		return
	}
	u, err := h.Backend.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		fail(c, h.Logger, err, "Failed to update profile")
		return
	}
	response.OK(c, u, "Profile updated")
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	res, err := h.Backend.UploadAvatar(c.Request.Context(), req.URI)
	if err != nil {
		fail(c, h.Logger, err, "Failed to upload avatar")
		return
	}
	response.OK(c, res, "Avatar uploaded")
}
