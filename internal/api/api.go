// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/callqa/internal/config"
	"github.com/JaimeStill/callqa/internal/infrastructure"
	"github.com/JaimeStill/callqa/pkg/middleware"
	"github.com/JaimeStill/callqa/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, err
	}

	return module.New(cfg.API.BasePath, mux,
		middleware.CORS(&cfg.API.CORS),
		middleware.Logger(runtime.Infrastructure.Logger),
		middleware.Metrics(cfg.API.BasePath),
		middleware.NoStore(),
	)
}
