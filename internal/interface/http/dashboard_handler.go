package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/grandline-driver/internal/domain/repository"
	"github.com/oksasatya/grandline-driver/pkg/helpers"
	"github.com/oksasatya/grandline-driver/pkg/response"
)

type DashboardHandler struct {
	Backend repository.Backend
	Logger  *logrus.Logger
}

func NewDashboardHandler(backend repository.Backend, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Backend: backend, Logger: helpers.OrDiscard(logger)}
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.Backend.GetStats(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err, "Failed to get dashboard stats")
		return
	}
	response.OK(c, stats, "Dashboard stats")
}

func (h *DashboardHandler) GetRecentActivity(c *gin.Context) {
	acts, err := h.Backend.GetRecentActivity(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err, "Failed to get recent activity")
		return
	}
	response.OK(c, acts, "Recent activity")
}
