package simulation

import (
	"math"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/dice"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
)

// batchTally accumulates what one batch contributes beyond its raw samples.
// Partials merge in batch index order so float accumulation stays
// deterministic.
type batchTally struct {
	attackRolls int
	hits        int
	crits       int
	riderRounds int
	roundSum    []float64
	roundSumSq  []float64
}

func (t *batchTally) init(rounds int) {
	t.roundSum = make([]float64, rounds)
	t.roundSumSq = make([]float64, rounds)
}

// runTrial plays the scenario once and returns its total damage. The roll
// order is part of the reproducibility contract: each attack in order (the
// state's d20s, the bonus die, damage dice on a hit), then the allocated
// rider, then each spell in order (save first, damage if any comes through),
// then each extra.
func runTrial(scenario *combat.Scenario, target *combat.Target, prng *dice.PRNG, tally *batchTally) float64 {
	remaining := scenario.RiderBudgets()
	total := 0.0

	for round := 0; round < scenario.Rounds; round++ {
		roundDamage := 0.0
		anyHit, anyCrit := false, false

		for i := range scenario.Attacks {
			attack := &scenario.Attacks[i]
			face := rollD20(prng, attack.State)
			check := face + attack.ToHit
			if scenario.BonusAttackDie > 0 {
				check += prng.Roll(scenario.BonusAttackDie)
			}
			tally.attackRolls++

			// A natural 1 misses and a natural 20 hits whatever the
			// totals say. Crit faces only crit when they also hit.
			hit := face != 1 && (face == 20 || check >= target.ArmorClass)
			if !hit {
				continue
			}
			crit := face >= 21-attack.CritFaces

			tally.hits++
			anyHit = true
			if crit {
				tally.crits++
				anyCrit = true
			}

			rolled := rollExpr(prng, attack.Expr, attack.GreatWeaponFighting, crit)
			roundDamage += target.ApplyResistance(float64(rolled), attack.DamageType)
		}

		if idx, ok := pickRider(scenario, target, anyHit, anyCrit, remaining); ok {
			rider := &scenario.Riders[idx]
			doubled := anyCrit && rider.Trigger != combat.RiderTriggerAlways
			rolled := rollExpr(prng, rider.Expr, false, doubled)
			roundDamage += target.ApplyResistance(float64(rolled), rider.DamageType)
			if remaining[idx] > 0 {
				remaining[idx]--
			}
			tally.riderRounds++
		}

		for i := range scenario.Spells {
			spell := &scenario.Spells[i]
			if spell.Casts != 0 && round >= spell.Casts {
				continue
			}
			roundDamage += rollSpell(prng, spell, target)
		}

		for i := range scenario.Extras {
			extra := &scenario.Extras[i]
			rolled := rollExpr(prng, extra.Expr, false, false)
			roundDamage += target.ApplyResistance(float64(rolled), extra.DamageType)
		}

		tally.roundSum[round] += roundDamage
		tally.roundSumSq[round] += roundDamage * roundDamage
		total += roundDamage
	}

	return total
}

// rollD20 rolls the attack d20 under a state and returns the kept face.
func rollD20(prng *dice.PRNG, state combat.AdvantageState) int {
	switch state {
	case combat.AdvantageStateAdvantage:
		best := prng.Roll(20)
		if second := prng.Roll(20); second > best {
			best = second
		}
		return best
	case combat.AdvantageStateDisadvantage:
		worst := prng.Roll(20)
		if second := prng.Roll(20); second < worst {
			worst = second
		}
		return worst
	case combat.AdvantageStateElven:
		best := prng.Roll(20)
		for i := 0; i < 2; i++ {
			if next := prng.Roll(20); next > best {
				best = next
			}
		}
		return best
	default:
		return prng.Roll(20)
	}
}

// rollExpr rolls the dice portion, twice over on a crit, rerolling each die
// at most once on a 1 or 2 when the great-weapon style applies, and adds
// the flat modifier a single time.
func rollExpr(prng *dice.PRNG, expr dice.Expression, greatWeapon, crit bool) int {
	count := expr.Count
	if crit {
		count *= 2
	}

	total := 0
	for i := 0; i < count; i++ {
		face := prng.Roll(expr.Sides)
		if greatWeapon && face <= 2 {
			face = prng.Roll(expr.Sides)
		}
		total += face
	}
	return total + expr.Modifier
}

// rollSpell rolls the save and, when damage comes through, the spell dice.
// Order is fixed: roll, halve on a made save (floored), then resistance.
func rollSpell(prng *dice.PRNG, spell *combat.ResolvedSpell, target *combat.Target) float64 {
	saved := rollSave(prng, spell.SaveDC, target.SaveBonusFor(spell.SaveAbility), target.MagicResistance)
	if !saved {
		rolled := rollExpr(prng, spell.Expr, false, false)
		return target.ApplyResistance(float64(rolled), spell.DamageType)
	}
	if spell.HalfOnSave {
		rolled := rollExpr(prng, spell.Expr, false, false)
		return target.ApplyResistance(math.Floor(float64(rolled)/2), spell.DamageType)
	}
	return 0
}

// rollSave rolls the saving throw. A natural 1 always fails and a natural
// 20 always succeeds; magic resistance rolls twice and keeps the better
// face.
func rollSave(prng *dice.PRNG, dc, bonus int, magicResistance bool) bool {
	face := prng.Roll(20)
	if magicResistance {
		if second := prng.Roll(20); second > face {
			face = second
		}
	}
	if face == 1 {
		return false
	}
	if face == 20 {
		return true
	}
	return face+bonus >= dc
}

// pickRider chooses at most one rider for the round from what actually
// happened: on-hit riders need a hit this round, on-crit riders a crit.
// optimal takes the candidate with the highest expected payout given the
// round's events, priority the first satisfiable in declared order.
func pickRider(scenario *combat.Scenario, target *combat.Target, anyHit, anyCrit bool, remaining []int) (int, bool) {
	chosen := -1
	best := 0.0

	for i := range scenario.Riders {
		rider := &scenario.Riders[i]
		if remaining[i] == 0 {
			continue
		}
		if !riderSatisfied(rider.Trigger, anyHit, anyCrit) {
			continue
		}
		if scenario.Policy == combat.RiderPolicyPriority {
			return i, true
		}

		value := riderValue(rider, target, anyCrit)
		if chosen == -1 || value > best {
			chosen = i
			best = value
		}
	}

	return chosen, chosen != -1
}

func riderSatisfied(trigger combat.RiderTrigger, anyHit, anyCrit bool) bool {
	switch trigger {
	case combat.RiderTriggerOnCrit:
		return anyCrit
	case combat.RiderTriggerAlways:
		return true
	default:
		return anyHit
	}
}

// riderValue ranks candidates under the optimal policy: the expected payout
// of firing the rider on this round's events. A crit in the round doubles
// the dice of any rider an attack carries.
func riderValue(rider *combat.ResolvedRider, target *combat.Target, anyCrit bool) float64 {
	avg := rider.Expr.Average()
	if anyCrit && rider.Trigger != combat.RiderTriggerAlways {
		avg += rider.Expr.DiceAverage()
	}
	return target.ApplyResistance(avg, rider.DamageType)
}
