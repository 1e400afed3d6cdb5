package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/grandline-driver/internal/domain/entity"
	"github.com/oksasatya/grandline-driver/internal/domain/repository"
	"github.com/oksasatya/grandline-driver/pkg/helpers"
	"github.com/oksasatya/grandline-driver/pkg/response"
	"github.com/oksasatya/grandline-driver/pkg/validation"
)

type DriverHandler struct {
	Backend repository.Backend
	Logger  *logrus.Logger
}

func NewDriverHandler(backend repository.Backend, logger *logrus.Logger) *DriverHandler {
	return &DriverHandler{Backend: backend, Logger: helpers.OrDiscard(logger)}
}

func (h *DriverHandler) UploadLicense(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	res, err := h.Backend.UploadLicense(c.Request.Context(), req.URI)
	if err != nil {
		fail(c, h.Logger, err, "Failed to upload license")
		return
	}
	response.OK(c, res, "License uploaded")
}

func (h *DriverHandler) UploadProfilePicture(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	res, err := h.Backend.UploadProfilePicture(c.Request.Context(), req.URI)
	if err != nil {
		fail(c, h.Logger, err, "Failed to upload profile picture")
		return
	}
	response.OK(c, res, "Profile picture uploaded")
}

func (h *DriverHandler) CompleteOnboarding(c *gin.Context) {
	var req entity.DriverOnboardingSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := validation.ValidateOnboarding(req); err != nil {
		fail(c, h.Logger, err, "Onboarding completion failed")
		return
	}
	res, err := h.Backend.CompleteOnboarding(c.Request.Context(), req)
	if err != nil {
		fail(c, h.Logger, err, "Onboarding completion failed")
		return
	}
	response.OK(c, res, "Onboarding complete")
}

func (h *DriverHandler) GetDriverInfo(c *gin.Context) {
	res, err := h.Backend.GetDriverInfo(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err, "Failed to get driver info")
		return
	}
	response.OK(c, res, "Driver info")
}
