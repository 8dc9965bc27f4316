package combat

import (
	dnderr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

// Tactics are per-evaluation knobs layered over a build: how many rounds to
// evaluate, whether to force an advantage state on every attack, whether to
// take the -5/+10 power-attack trade, and an optional bonus die added to
// every attack roll (a Bless-style d4).
type Tactics struct {
	Rounds            int             `json:"rounds,omitempty"`
	AdvantageOverride *AdvantageState `json:"advantage_override,omitempty"`
	PowerAttack       bool            `json:"power_attack,omitempty"`
	BonusAttackDie    int             `json:"bonus_attack_die,omitempty"`
	ExactBonusDie     bool            `json:"exact_bonus_die,omitempty"`
}

const maxRounds = 100

// Validate checks the tactics and returns a typed validation error naming
// the first offending field.
func (t *Tactics) Validate() error {
	if t.Rounds < 0 {
		return dnderr.InvalidField("rounds", t.Rounds, "must not be negative")
	}
	if t.Rounds > maxRounds {
		return dnderr.InvalidField("rounds", t.Rounds, "exceeds the round limit")
	}
	if t.AdvantageOverride != nil && !t.AdvantageOverride.IsValid() {
		return dnderr.InvalidField("advantageOverride", string(*t.AdvantageOverride), "unknown advantage state")
	}
	if t.BonusAttackDie < 0 {
		return dnderr.InvalidField("bonusAttackDie", t.BonusAttackDie, "must not be negative")
	}
	if t.BonusAttackDie > 20 {
		return dnderr.InvalidField("bonusAttackDie", t.BonusAttackDie, "must be a die of at most 20 sides")
	}
	return nil
}

// RoundCount returns the number of rounds to evaluate, defaulting to one.
func (t *Tactics) RoundCount() int {
	if t == nil || t.Rounds <= 0 {
		return 1
	}
	return t.Rounds
}
