package evaluation

import (
	"context"
	"log"
	"math"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/cache"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/probability"
	dnderr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

// EvaluateDPR computes expected damage per round for a build against a
// target. Identical concurrent requests are coalesced, and results are
// served from the cache when one is configured. Cache failures degrade to
// direct computation and never reach the caller.
func (s *service) EvaluateDPR(ctx context.Context, input *EvaluateInput) (*combat.DPRResult, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}

	scenario, err := combat.ResolveScenario(input.Build, input.Target, input.Tactics)
	if err != nil {
		return nil, err
	}

	key, keyErr := cache.Key(input.Build, input.Target, input.Tactics)
	if keyErr != nil {
		// A request we cannot key we can neither share nor cache
		log.Printf("evaluation: cache key unavailable, computing directly: %v", keyErr)
		return evaluateScenario(scenario, input.Build.ElvenAccuracy, input.Target), nil
	}

	if s.cache != nil {
		cached, getErr := s.cache.Get(ctx, key)
		if getErr == nil {
			return cached, nil
		}
		if !dnderr.IsNotFound(getErr) {
			log.Printf("evaluation: cache get failed for %s: %v", key, getErr)
		}
	}

	computed, err, _ := s.group.Do(key, func() (any, error) {
		result := evaluateScenario(scenario, input.Build.ElvenAccuracy, input.Target)
		if s.cache != nil {
			if setErr := s.cache.Set(ctx, key, result); setErr != nil {
				log.Printf("evaluation: cache set failed for %s: %v", key, setErr)
			}
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}

	// Callers of a coalesced flight share one result; hand each its own copy
	result := *computed.(*combat.DPRResult)
	return &result, nil
}

// evaluateScenario runs the full evaluation: the scenario as resolved, plus
// the conditions grid recomputed under each forced advantage state. The grid
// forces states directly, so an Elven Accuracy build still shows plain
// advantage in its advantage cell and the feat's value in its elven cell.
func evaluateScenario(scenario *combat.Scenario, elvenAccuracy bool, target *combat.Target) *combat.DPRResult {
	result := computeScenario(scenario, target)

	result.Conditions = combat.ConditionsBreakdown{
		Normal:       computeScenario(forceState(scenario, combat.AdvantageStateNone), target).Total,
		Advantage:    computeScenario(forceState(scenario, combat.AdvantageStateAdvantage), target).Total,
		Disadvantage: computeScenario(forceState(scenario, combat.AdvantageStateDisadvantage), target).Total,
	}
	if elvenAccuracy {
		elven := computeScenario(forceState(scenario, combat.AdvantageStateElven), target).Total
		result.Conditions.ElvenAccuracy = &elven
	}

	return result
}

// computeScenario evaluates one scenario: weapon attacks with crit split,
// spells via save algebra, extras, and at most one rider per round. Total
// always equals the breakdown sum and the ByRound sum.
func computeScenario(scenario *combat.Scenario, target *combat.Target) *combat.DPRResult {
	result := &combat.DPRResult{
		ByRound:   make([]float64, scenario.Rounds),
		PerAttack: make([]combat.AttackBreakdown, 0, len(scenario.Attacks)),
	}

	// Attacks repeat identically every round, so their trace, round total,
	// and the hit/crit unions the rider allocator needs are computed once.
	weaponRound := 0.0
	pAllMiss, pNoCrit := 1.0, 1.0
	for i := range scenario.Attacks {
		attack := &scenario.Attacks[i]
		hit, crit := attackChances(attack, target.ArmorClass, scenario.BonusAttackDie, scenario.ExactBonusDie)
		expected := attackExpected(attack, target, hit, crit)

		result.PerAttack = append(result.PerAttack, combat.AttackBreakdown{
			Label:          attack.Label,
			HitChance:      hit,
			CritChance:     crit,
			ExpectedDamage: expected,
		})
		weaponRound += expected
		pAllMiss *= 1 - hit
		pNoCrit *= 1 - crit
	}
	pAnyHit := 1 - pAllMiss
	pAnyCrit := 1 - pNoCrit

	extrasRound := 0.0
	for i := range scenario.Extras {
		extra := &scenario.Extras[i]
		extrasRound += target.ApplyResistance(extra.Expr.Average(), extra.DamageType)
	}

	remaining := scenario.RiderBudgets()
	for round := 0; round < scenario.Rounds; round++ {
		spellRound := 0.0
		for i := range scenario.Spells {
			spell := &scenario.Spells[i]
			if spell.Casts == 0 || round < spell.Casts {
				spellRound += spellExpected(spell, target)
			}
		}

		riderRound := 0.0
		if idx, contribution, ok := allocateRider(scenario, target, pAnyHit, pAnyCrit, remaining); ok {
			riderRound = contribution
			if remaining[idx] > 0 {
				remaining[idx]--
			}
		}

		result.ByRound[round] = weaponRound + riderRound + spellRound + extrasRound
		result.Breakdown.WeaponDamage += weaponRound
		result.Breakdown.OncePerTurn += riderRound
		result.Breakdown.SpellDamage += spellRound
		result.Breakdown.OtherSources += extrasRound
	}

	result.Total = result.Breakdown.Sum()
	return result
}

// attackChances returns the hit and crit chances for one resolved attack.
// A bonus die either shifts the hit boundary exactly (per-face convolution)
// or approximates as extra attack bonus, per the scenario's opt-in. The crit
// chance depends on the kept natural face alone, so the bonus die never
// moves it.
func attackChances(attack *combat.ResolvedAttack, armorClass, bonusDie int, exact bool) (hit, crit float64) {
	switch {
	case bonusDie > 0 && exact:
		hit = probability.HitChanceWithBonusDie(attack.ToHit, armorClass, bonusDie, attack.State)
	case bonusDie > 0:
		toHit := float64(attack.ToHit) + float64(bonusDie+1)/2
		hit = probability.ForState(probability.HitChanceFloat(toHit, armorClass), attack.State)
	default:
		hit = probability.ForState(probability.HitChance(attack.ToHit, armorClass), attack.State)
	}

	crit = probability.CritChance(attack.CritFaces, attack.State, hit)
	return hit, crit
}

// attackExpected returns the per-swing expected damage after resistance.
// A crit doubles the dice portion only; the flat modifier is added once.
func attackExpected(attack *combat.ResolvedAttack, target *combat.Target, hit, crit float64) float64 {
	avg := attack.Expr.Average()
	diceAvg := attack.Expr.DiceAverage()
	if attack.GreatWeaponFighting {
		avg = attack.Expr.AverageGreatWeapon()
		diceAvg = attack.Expr.DiceAverageGreatWeapon()
	}

	normal := target.ApplyResistance(avg, attack.DamageType)
	critical := target.ApplyResistance(avg+diceAvg, attack.DamageType)
	return (hit-crit)*normal + crit*critical
}

// spellExpected returns a spell's expected damage for one cast. Order is
// fixed: average, halve on a successful save (floored), then resistance.
func spellExpected(spell *combat.ResolvedSpell, target *combat.Target) float64 {
	fail := probability.SaveFailChance(spell.SaveDC, target.SaveBonusFor(spell.SaveAbility), target.MagicResistance)
	avg := spell.Expr.Average()

	expected := fail * target.ApplyResistance(avg, spell.DamageType)
	if spell.HalfOnSave {
		half := target.ApplyResistance(math.Floor(avg/2), spell.DamageType)
		expected += (1 - fail) * half
	}
	return expected
}

// forceState clones the scenario with every attack forced to one advantage
// state for the conditions grid.
func forceState(scenario *combat.Scenario, state combat.AdvantageState) *combat.Scenario {
	forced := *scenario
	forced.Attacks = make([]combat.ResolvedAttack, len(scenario.Attacks))
	copy(forced.Attacks, scenario.Attacks)
	for i := range forced.Attacks {
		forced.Attacks[i].State = state
	}
	return &forced
}
