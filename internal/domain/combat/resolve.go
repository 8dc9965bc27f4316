package combat

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

// Power attack trades attack bonus for flat damage.
const (
	PowerAttackPenalty = 5
	PowerAttackBonus   = 10
)

// ResolvedAttack is an attack profile after tactics are applied: damage
// parsed, count expanded, advantage override and elven upgrade resolved, and
// the power-attack trade folded into the numbers.
type ResolvedAttack struct {
	Label               string
	ToHit               int
	Expr                dice.Expression
	DamageType          DamageType
	CritFaces           int
	State               AdvantageState
	GreatWeaponFighting bool
}

// ResolvedSpell is a spell profile with its damage parsed. Casts zero means
// every round.
type ResolvedSpell struct {
	Label       string
	SaveDC      int
	SaveAbility Ability
	Expr        dice.Expression
	DamageType  DamageType
	HalfOnSave  bool
	Casts       int
}

// ResolvedRider is a rider with its damage parsed. Uses zero means
// unlimited.
type ResolvedRider struct {
	Label      string
	Expr       dice.Expression
	DamageType DamageType
	Trigger    RiderTrigger
	Uses       int
}

// ResolvedExtra is an extra damage source with its damage parsed.
type ResolvedExtra struct {
	Label      string
	Expr       dice.Expression
	DamageType DamageType
}

// Scenario is a build normalized against a set of tactics, ready for either
// the deterministic evaluator or the simulator. Both consume this one shape
// so their semantics cannot drift apart.
type Scenario struct {
	Attacks        []ResolvedAttack
	Spells         []ResolvedSpell
	Riders         []ResolvedRider
	Extras         []ResolvedExtra
	Policy         RiderPolicy
	Rounds         int
	BonusAttackDie int
	ExactBonusDie  bool
}

// ResolveScenario validates the records and flattens build plus tactics into
// a scenario. A nil tactics means defaults: one round, no override, no power
// attack.
func ResolveScenario(build *Build, target *Target, tactics *Tactics) (*Scenario, error) {
	if build == nil {
		return nil, dnderr.InvalidArgument("build is required")
	}
	if target == nil {
		return nil, dnderr.InvalidArgument("target is required")
	}
	if err := build.Validate(); err != nil {
		return nil, err
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if tactics != nil {
		if err := tactics.Validate(); err != nil {
			return nil, err
		}
	}

	scenario := &Scenario{
		Policy: build.EffectivePolicy(),
		Rounds: tactics.RoundCount(),
	}
	if tactics != nil {
		scenario.BonusAttackDie = tactics.BonusAttackDie
		scenario.ExactBonusDie = tactics.ExactBonusDie
	}

	for i := range build.Attacks {
		attack := &build.Attacks[i]
		expr, err := dice.Parse(attack.Damage)
		if err != nil {
			return nil, dnderr.Wrapf(err, "attack %q damage", attack.Label)
		}

		toHit := attack.ToHitBonus
		if tactics != nil && tactics.PowerAttack {
			toHit -= PowerAttackPenalty
			expr.Modifier += PowerAttackBonus
		}

		resolved := ResolvedAttack{
			Label:               attack.Label,
			ToHit:               toHit,
			Expr:                expr,
			DamageType:          attack.DamageType,
			CritFaces:           attack.CritFaces(),
			State:               ResolveState(attack.Advantage, build, tactics),
			GreatWeaponFighting: attack.GreatWeaponFighting,
		}
		for n := 0; n < attack.Repeat(); n++ {
			scenario.Attacks = append(scenario.Attacks, resolved)
		}
	}

	for i := range build.Spells {
		spell := &build.Spells[i]
		expr, err := dice.Parse(spell.Damage)
		if err != nil {
			return nil, dnderr.Wrapf(err, "spell %q damage", spell.Label)
		}
		scenario.Spells = append(scenario.Spells, ResolvedSpell{
			Label:       spell.Label,
			SaveDC:      spell.SaveDC,
			SaveAbility: spell.SaveAbility,
			Expr:        expr,
			DamageType:  spell.DamageType,
			HalfOnSave:  spell.HalfOnSave,
			Casts:       spell.CastsPerCombat,
		})
	}

	for i := range build.Riders {
		rider := &build.Riders[i]
		expr, err := dice.Parse(rider.Damage)
		if err != nil {
			return nil, dnderr.Wrapf(err, "rider %q damage", rider.Label)
		}
		scenario.Riders = append(scenario.Riders, ResolvedRider{
			Label:      rider.Label,
			Expr:       expr,
			DamageType: rider.DamageType,
			Trigger:    rider.EffectiveTrigger(),
			Uses:       rider.UsesPerCombat,
		})
	}

	for i := range build.Extras {
		extra := &build.Extras[i]
		expr, err := dice.Parse(extra.Damage)
		if err != nil {
			return nil, dnderr.Wrapf(err, "extra %q damage", extra.Label)
		}
		scenario.Extras = append(scenario.Extras, ResolvedExtra{
			Label:      extra.Label,
			Expr:       expr,
			DamageType: extra.DamageType,
		})
	}

	return scenario, nil
}

// RiderBudgets returns the per-rider remaining-use budget for one pass over
// the scenario's rounds. Zero configured uses means unlimited, tracked as -1
// so decrementing never exhausts it. Both the evaluator and the simulator
// spend from budgets built here.
func (s *Scenario) RiderBudgets() []int {
	remaining := make([]int, len(s.Riders))
	for i := range s.Riders {
		if s.Riders[i].Uses == 0 {
			remaining[i] = -1
		} else {
			remaining[i] = s.Riders[i].Uses
		}
	}
	return remaining
}

// ResolveState applies the tactics override and the elven-accuracy upgrade
// to an attack's base advantage state. An explicit override wins outright;
// the feat upgrades advantage, however obtained, to a triple roll.
func ResolveState(base AdvantageState, build *Build, tactics *Tactics) AdvantageState {
	state := base
	if state == "" {
		state = AdvantageStateNone
	}
	if tactics != nil && tactics.AdvantageOverride != nil {
		state = *tactics.AdvantageOverride
		if state == "" {
			state = AdvantageStateNone
		}
	}
	if build != nil && build.ElvenAccuracy && state == AdvantageStateAdvantage {
		state = AdvantageStateElven
	}
	return state
}
