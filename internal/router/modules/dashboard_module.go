package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/grandline-driver/internal/infrastructure/remote"
	handlers "github.com/oksasatya/grandline-driver/internal/interface/http"
	"github.com/oksasatya/grandline-driver/internal/interface/middleware"
)

type DashboardModule struct {
	Handler *handlers.DashboardHandler
	Tokens  middleware.TokenChecker
}

func NewDashboardModule(h *handlers.DashboardHandler, tokens middleware.TokenChecker) *DashboardModule {
	return &DashboardModule{Handler: h, Tokens: tokens}
}

func (m *DashboardModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Tokens))
	{
		auth.GET(remote.PathStats, m.Handler.GetStats)
		auth.GET(remote.PathActivity, m.Handler.GetRecentActivity)
	}
}
