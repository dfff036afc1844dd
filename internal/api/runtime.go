package api

import (
	"github.com/JaimeStill/callqa/internal/config"
	"github.com/JaimeStill/callqa/internal/infrastructure"
	"github.com/JaimeStill/callqa/internal/metrics"
	"github.com/JaimeStill/callqa/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination  pagination.Config
	Scoring     metrics.Scoring
	MaxBodySize int64
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Cache:     infra.Cache,
		},
		Pagination: cfg.API.Pagination,
		Scoring: metrics.Scoring{
			SuccessThreshold:     cfg.Scoring.SuccessThreshold,
			DiscrepancyThreshold: cfg.Scoring.DiscrepancyThreshold,
		},
		MaxBodySize: cfg.API.MaxBodySizeBytes(),
	}
}
