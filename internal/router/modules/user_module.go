package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/grandline-driver/internal/infrastructure/remote"
	handlers "github.com/oksasatya/grandline-driver/internal/interface/http"
	"github.com/oksasatya/grandline-driver/internal/interface/middleware"
)

// UserModule wires the protected /user routes.
type UserModule struct {
	Handler *handlers.UserHandler
	Tokens  middleware.TokenChecker
}

func NewUserModule(h *handlers.UserHandler, tokens middleware.TokenChecker) *UserModule {
	return &UserModule{Handler: h, Tokens: tokens}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Tokens))
	{
		auth.GET(remote.PathProfile, m.Handler.GetProfile)
		auth.PUT(remote.PathProfile, m.Handler.UpdateProfile)
		auth.POST(remote.PathAvatar, m.Handler.UploadAvatar)
	}
}
