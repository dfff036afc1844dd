package api

import (
	"github.com/JaimeStill/callqa/internal/calls"
	"github.com/JaimeStill/callqa/internal/clinics"
	"github.com/JaimeStill/callqa/internal/metrics"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Calls   calls.System
	Clinics clinics.System
	Metrics metrics.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	callsSystem := calls.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Cache,
		runtime.Logger,
		runtime.Pagination,
	)

	clinicsSystem := clinics.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	metricsSystem := metrics.New(
		callsSystem,
		runtime.Cache,
		runtime.Scoring,
		runtime.Logger,
	)

	return &Domain{
		Calls:   callsSystem,
		Clinics: clinicsSystem,
		Metrics: metricsSystem,
	}
}
