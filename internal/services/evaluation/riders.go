package evaluation

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
)

// riderExpected returns one rider's expected contribution for a round given
// the chance of at least one hit and at least one crit across the round's
// attacks. Rider dice double when the carrying attack crits; the flat part
// never does.
func riderExpected(rider *combat.ResolvedRider, target *combat.Target, pAnyHit, pAnyCrit float64) float64 {
	avg := rider.Expr.Average()
	diceAvg := rider.Expr.DiceAverage()

	switch rider.Trigger {
	case combat.RiderTriggerOnCrit:
		return pAnyCrit * target.ApplyResistance(avg+diceAvg, rider.DamageType)
	case combat.RiderTriggerAlways:
		return target.ApplyResistance(avg, rider.DamageType)
	default: // on hit
		onHit := (pAnyHit - pAnyCrit) * target.ApplyResistance(avg, rider.DamageType)
		onCrit := pAnyCrit * target.ApplyResistance(avg+diceAvg, rider.DamageType)
		return onHit + onCrit
	}
}

// allocateRider picks at most one rider for the round - the double-count
// guard lives here. optimal takes the highest contribution among riders that
// can still fire; priority takes the first in configured order. Spending the
// winner's budget is the caller's job.
func allocateRider(scenario *combat.Scenario, target *combat.Target, pAnyHit, pAnyCrit float64, remaining []int) (int, float64, bool) {
	chosen := -1
	best := 0.0

	for i := range scenario.Riders {
		rider := &scenario.Riders[i]
		if remaining[i] == 0 {
			continue
		}
		if rider.Trigger != combat.RiderTriggerAlways && len(scenario.Attacks) == 0 {
			continue // nothing to ride on
		}

		contribution := riderExpected(rider, target, pAnyHit, pAnyCrit)
		if scenario.Policy == combat.RiderPolicyPriority {
			return i, contribution, true
		}
		if chosen == -1 || contribution > best {
			chosen = i
			best = contribution
		}
	}

	if chosen == -1 {
		return 0, 0, false
	}
	return chosen, best, true
}
