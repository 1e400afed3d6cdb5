package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/grandline-driver/internal/container"
	"github.com/oksasatya/grandline-driver/internal/interface/middleware"
	"github.com/oksasatya/grandline-driver/pkg/response"
)

// DebugModule exposes health and expvar endpoints.
type DebugModule struct {
	Backend string
}

func NewDebugModule(backend string) *DebugModule { return &DebugModule{Backend: backend} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP())
	rg.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"backend": m.Backend}, "ok")
	})
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
