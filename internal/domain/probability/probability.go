// Package probability implements the d20 chance algebra: hit and crit
// chances, advantage-state transforms, save chances, and the exact
// bonus-die convolution. Everything here is pure math on the combat records.
package probability

import (
	"math"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
)

// Hit probabilities live in this band: a natural 20 always hits and a
// natural 1 always misses, so no attack is ever better than 95% or worse
// than 5%.
const (
	MinChance = 0.05
	MaxChance = 0.95
)

// Clamp bounds a probability to [MinChance, MaxChance].
func Clamp(p float64) float64 {
	return math.Min(MaxChance, math.Max(MinChance, p))
}

// HitChance returns the single-roll chance that toHit beats the armor class.
// The needed face is clamped to [2, 20] before converting to a probability:
// a 1 never hits and a 20 always does.
func HitChance(toHit, ac int) float64 {
	return HitChanceFloat(float64(toHit), ac)
}

// HitChanceFloat is HitChance on a fractional attack bonus. The fractional
// form carries a bonus die approximated by its average.
func HitChanceFloat(toHit float64, ac int) float64 {
	need := float64(ac) - toHit
	if need < 2 {
		need = 2
	}
	if need > 20 {
		need = 20
	}
	return Clamp((21 - need) / 20)
}

// Advantage is the best-of-two transform.
func Advantage(p float64) float64 {
	return 1 - (1-p)*(1-p)
}

// Disadvantage is the worst-of-two transform.
func Disadvantage(p float64) float64 {
	return p * p
}

// ElvenAccuracy is the best-of-three transform.
func ElvenAccuracy(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

// Transform applies the advantage-state transform without clamping. Crit
// chances go through here raw: a crit under disadvantage really is a
// quarter-percent event.
func Transform(p float64, state combat.AdvantageState) float64 {
	switch state {
	case combat.AdvantageStateAdvantage:
		return Advantage(p)
	case combat.AdvantageStateDisadvantage:
		return Disadvantage(p)
	case combat.AdvantageStateElven:
		return ElvenAccuracy(p)
	}
	return p
}

// ForState transforms a hit chance for an advantage state and re-clamps.
func ForState(p float64, state combat.AdvantageState) float64 {
	return Clamp(Transform(p, state))
}

// CritChance returns the chance of a critical hit for the given number of
// crit faces under an advantage state. A crit is also a hit, so the result
// never exceeds the hit chance.
func CritChance(critFaces int, state combat.AdvantageState, hitChance float64) float64 {
	crit := Transform(float64(critFaces)/20, state)
	if crit > hitChance {
		crit = hitChance
	}
	if crit < 0 {
		crit = 0
	}
	return crit
}

// SaveSuccessChance returns the chance the target passes a saving throw.
// Magic resistance grants advantage on the save.
func SaveSuccessChance(dc, saveBonus int, magicResistance bool) float64 {
	need := dc - saveBonus
	if need < 2 {
		need = 2
	}
	if need > 20 {
		need = 20
	}
	p := Clamp(float64(21-need) / 20)
	if magicResistance {
		p = Clamp(Advantage(p))
	}
	return p
}

// SaveFailChance is the complement of SaveSuccessChance.
func SaveFailChance(dc, saveBonus int, magicResistance bool) float64 {
	return 1 - SaveSuccessChance(dc, saveBonus, magicResistance)
}
