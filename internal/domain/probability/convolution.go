package probability

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
)

// faceWeight returns the probability that the KEPT d20 face equals f under
// the given advantage state. The weights are the exact order statistics:
// best of two keeps f with probability (2f-1)/400, worst of two with
// (41-2f)/400, best of three with (f^3-(f-1)^3)/8000.
func faceWeight(f int, state combat.AdvantageState) float64 {
	switch state {
	case combat.AdvantageStateAdvantage:
		return float64(2*f-1) / 400
	case combat.AdvantageStateDisadvantage:
		return float64(41-2*f) / 400
	case combat.AdvantageStateElven:
		cube := func(n int) int { return n * n * n }
		return float64(cube(f)-cube(f-1)) / 8000
	}
	return 1.0 / 20
}

// HitChanceWithBonusDie returns the hit chance when a bonus die (Bless-style
// dN) is added to every attack roll, convolving the kept-face distribution
// with the die exactly instead of approximating the die by its average.
// Natural 1s and 20s are decided by the kept face alone, before the bonus
// die applies. A die of zero sides degenerates to the plain hit chance. The
// result is clamped like every other hit chance.
func HitChanceWithBonusDie(toHit, ac, die int, state combat.AdvantageState) float64 {
	p := 0.0
	for f := 1; f <= 20; f++ {
		w := faceWeight(f, state)
		switch {
		case f == 1:
			// auto-miss
		case f == 20:
			p += w
		case die <= 0:
			if f+toHit >= ac {
				p += w
			}
		default:
			hitting := 0
			for b := 1; b <= die; b++ {
				if f+toHit+b >= ac {
					hitting++
				}
			}
			p += w * float64(hitting) / float64(die)
		}
	}
	return Clamp(p)
}
