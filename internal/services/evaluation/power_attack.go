package evaluation

import (
	"context"
	"math"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/dice"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	dnderr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

// Armor class range the break-even search covers.
const (
	minArmorClass = 1
	maxArmorClass = 30
)

// AnalyzePowerAttack compares one attack with and without the -5/+10 trade
// against the target and reports where the two break even.
func (s *service) AnalyzePowerAttack(ctx context.Context, input *PowerAttackInput) (*combat.PowerAttackAnalysis, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}
	if input.Attack == nil {
		return nil, dnderr.InvalidArgument("attack is required")
	}
	if input.Target == nil {
		return nil, dnderr.InvalidArgument("target is required")
	}
	if err := input.Attack.Validate(); err != nil {
		return nil, err
	}
	if err := input.Target.Validate(); err != nil {
		return nil, err
	}

	expr, err := dice.Parse(input.Attack.Damage)
	if err != nil {
		return nil, dnderr.Wrapf(err, "attack %q damage", input.Attack.Label)
	}

	normal, power := powerArms(input.Attack, expr)
	count := input.Attack.Repeat()

	normalDPR := armDPR(&normal, input.Target, input.Target.ArmorClass, count)
	powerDPR := armDPR(&power, input.Target, input.Target.ArmorClass, count)

	return &combat.PowerAttackAnalysis{
		NormalDPR:      normalDPR,
		PowerAttackDPR: powerDPR,
		BreakEvenAC:    breakEvenAC(&normal, &power, input.Target),
		Recommendation: s.recommend(normalDPR, powerDPR),
	}, nil
}

// recommend turns the DPR difference at the target's actual armor class
// into a verdict. Differences inside the threshold band are a wash.
func (s *service) recommend(normalDPR, powerDPR float64) combat.Recommendation {
	switch diff := powerDPR - normalDPR; {
	case diff > s.threshold:
		return combat.RecommendationUse
	case diff < -s.threshold:
		return combat.RecommendationAvoid
	default:
		return combat.RecommendationNeutral
	}
}

// powerArms resolves the two arms of the comparison from one profile.
func powerArms(attack *combat.AttackProfile, expr dice.Expression) (normal, power combat.ResolvedAttack) {
	state := attack.Advantage
	if state == "" {
		state = combat.AdvantageStateNone
	}

	normal = combat.ResolvedAttack{
		Label:               attack.Label,
		ToHit:               attack.ToHitBonus,
		Expr:                expr,
		DamageType:          attack.DamageType,
		CritFaces:           attack.CritFaces(),
		State:               state,
		GreatWeaponFighting: attack.GreatWeaponFighting,
	}
	power = normal
	power.ToHit -= combat.PowerAttackPenalty
	power.Expr.Modifier += combat.PowerAttackBonus
	return normal, power
}

// armDPR is one arm's expected damage per round at a hypothetical armor
// class, scaled by the profile's attack count.
func armDPR(arm *combat.ResolvedAttack, target *combat.Target, armorClass, count int) float64 {
	hit, crit := attackChances(arm, armorClass, 0, false)
	return float64(count) * attackExpected(arm, target, hit, crit)
}

// breakEvenAC finds the armor class where the arms tie. The closed form
// toHit + 11 - 10d/(d+10) is kept as the first candidate for fidelity with
// the calculators it comes from, but it is only trusted when the EV
// difference really changes sign there; its linearization and the hit-chance
// clamps both push the true crossing away from it, so the integer sweep is
// the authority.
func breakEvenAC(normal, power *combat.ResolvedAttack, target *combat.Target) int {
	avg := normal.Expr.Average()
	if normal.GreatWeaponFighting {
		avg = normal.Expr.AverageGreatWeapon()
	}

	candidate := clampAC(int(math.Round(float64(normal.ToHit) + 11 - 10*avg/(avg+10))))
	if linear(normal.ToHit, candidate) && linear(power.ToHit, candidate) &&
		crossesAt(normal, power, target, candidate) {
		return candidate
	}

	return sweepBreakEven(normal, power, target)
}

// sweepBreakEven walks armor classes upward and returns the one nearest the
// first sign change of the EV difference. Power attack winning through the
// whole range reports the top of it; losing from the start reports the
// bottom.
func sweepBreakEven(normal, power *combat.ResolvedAttack, target *combat.Target) int {
	prev := evDiff(normal, power, target, minArmorClass)
	if prev < 0 {
		return minArmorClass
	}

	for ac := minArmorClass + 1; ac <= maxArmorClass; ac++ {
		diff := evDiff(normal, power, target, ac)
		if diff < 0 {
			if math.Abs(prev) <= math.Abs(diff) {
				return ac - 1
			}
			return ac
		}
		prev = diff
	}

	return maxArmorClass
}

// evDiff is power minus normal expected damage at a hypothetical armor
// class. Positive means the trade pays.
func evDiff(normal, power *combat.ResolvedAttack, target *combat.Target, armorClass int) float64 {
	return armDPR(power, target, armorClass, 1) - armDPR(normal, target, armorClass, 1)
}

// crossesAt reports whether the EV difference changes sign at ac, the
// closed-form verification.
func crossesAt(normal, power *combat.ResolvedAttack, target *combat.Target, ac int) bool {
	before := evDiff(normal, power, target, clampAC(ac-1))
	after := evDiff(normal, power, target, clampAC(ac+1))
	return before >= 0 && after <= 0
}

// linear reports whether the hit chance at ac sits strictly between its
// clamp bounds for the given attack bonus.
func linear(toHit, ac int) bool {
	need := ac - toHit
	return need >= 2 && need <= 20
}

func clampAC(ac int) int {
	if ac < minArmorClass {
		return minArmorClass
	}
	if ac > maxArmorClass {
		return maxArmorClass
	}
	return ac
}
