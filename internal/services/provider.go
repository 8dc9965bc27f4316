package services

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/cache"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/services/evaluation"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/services/simulation"
)

// Provider holds all service instances
type Provider struct {
	EvaluationService evaluation.Service
	SimulationService simulation.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Cache cache.Cache // Optional - defaults to the bounded in-memory cache

	PowerAttackThreshold float64
	Workers              int
	BatchSize            int
	MaxIterations        int
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil {
		cfg = &ProviderConfig{}
	}

	// Use the in-memory cache if none provided
	resultCache := cfg.Cache
	if resultCache == nil {
		resultCache = cache.NewInMemory(nil)
	}

	evalService := evaluation.NewService(&evaluation.ServiceConfig{
		Cache:     resultCache,
		Threshold: cfg.PowerAttackThreshold,
	})

	simService := simulation.NewService(&simulation.ServiceConfig{
		Workers:       cfg.Workers,
		BatchSize:     cfg.BatchSize,
		MaxIterations: cfg.MaxIterations,
	})

	return &Provider{
		EvaluationService: evalService,
		SimulationService: simService,
	}
}
