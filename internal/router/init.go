package router

import (
	"github.com/oksasatya/grandline-driver/internal/container"
	handlers "github.com/oksasatya/grandline-driver/internal/interface/http"
	"github.com/oksasatya/grandline-driver/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	backend := container.GetMockBackend()
	logger := container.GetLogger()

	loginLimit := 10
	if cfg := container.GetConfig(); cfg != nil {
		loginLimit = cfg.LoginRateLimit
	}

	r.Add(modules.NewDebugModule(backend.Name()))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(backend, backend, logger), backend, loginLimit))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(backend, logger), backend))
	r.Add(modules.NewDriverModule(handlers.NewDriverHandler(backend, logger), backend))
	r.Add(modules.NewDashboardModule(handlers.NewDashboardHandler(backend, logger), backend))
}
