package evaluation

//go:generate mockgen -destination=mock/mock_service.go -package=mockevaluation -source=service.go

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/cache"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/probability"
)

// Default DPR-difference band inside which power attack is called a wash.
const defaultThreshold = 0.5

// Service defines the deterministic combat math interface
type Service interface {
	// EvaluateDPR computes expected damage per round for a build against a target
	EvaluateDPR(ctx context.Context, input *EvaluateInput) (*combat.DPRResult, error)

	// AnalyzePowerAttack compares a single attack with and without the
	// -5/+10 trade and finds the armor class where they break even
	AnalyzePowerAttack(ctx context.Context, input *PowerAttackInput) (*combat.PowerAttackAnalysis, error)

	// HitProbability returns the chance to hit under an advantage state,
	// clamped to [0.05, 0.95]
	HitProbability(toHitBonus, armorClass int, state combat.AdvantageState) float64
}

// EvaluateInput carries one evaluation request. Tactics may be nil for a
// single plain round.
type EvaluateInput struct {
	Build   *combat.Build
	Target  *combat.Target
	Tactics *combat.Tactics
}

// PowerAttackInput carries one power-attack analysis request. The attack's
// own advantage state applies to both arms of the comparison.
type PowerAttackInput struct {
	Attack *combat.AttackProfile
	Target *combat.Target
}

type service struct {
	cache     cache.Cache
	threshold float64
	group     singleflight.Group
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Cache     cache.Cache // Optional - evaluations compute directly if nil
	Threshold float64     // DPR difference below which power attack is neutral (default: 0.5)
}

// NewService creates a new evaluation service
func NewService(cfg *ServiceConfig) Service {
	svc := &service{
		threshold: defaultThreshold,
	}

	if cfg != nil {
		if cfg.Cache != nil {
			svc.cache = cfg.Cache
		}
		if cfg.Threshold > 0 {
			svc.threshold = cfg.Threshold
		}
	}

	return svc
}

// HitProbability returns the chance to hit under an advantage state
func (s *service) HitProbability(toHitBonus, armorClass int, state combat.AdvantageState) float64 {
	return probability.ForState(probability.HitChance(toHitBonus, armorClass), state)
}
