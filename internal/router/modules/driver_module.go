package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/grandline-driver/internal/infrastructure/remote"
	handlers "github.com/oksasatya/grandline-driver/internal/interface/http"
	"github.com/oksasatya/grandline-driver/internal/interface/middleware"
)

// DriverModule wires onboarding document uploads and driver info.
type DriverModule struct {
	Handler *handlers.DriverHandler
	Tokens  middleware.TokenChecker
}

func NewDriverModule(h *handlers.DriverHandler, tokens middleware.TokenChecker) *DriverModule {
	return &DriverModule{Handler: h, Tokens: tokens}
}

func (m *DriverModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Tokens))
	{
		auth.POST(remote.PathLicense, m.Handler.UploadLicense)
		auth.POST(remote.PathProfilePicture, m.Handler.UploadProfilePicture)
		auth.POST(remote.PathOnboarding, m.Handler.CompleteOnboarding)
		auth.GET(remote.PathDriverInfo, m.Handler.GetDriverInfo)
	}
}
