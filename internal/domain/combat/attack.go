package combat

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

// AdvantageState describes how the d20 is rolled for an attack
type AdvantageState string

const (
	// AdvantageStateNone rolls a single d20
	AdvantageStateNone AdvantageState = "none"

	// AdvantageStateAdvantage rolls two d20s and keeps the higher
	AdvantageStateAdvantage AdvantageState = "advantage"

	// AdvantageStateDisadvantage rolls two d20s and keeps the lower
	AdvantageStateDisadvantage AdvantageState = "disadvantage"

	// AdvantageStateElven rolls three d20s and keeps the highest
	// (Elven Accuracy)
	AdvantageStateElven AdvantageState = "elven"
)

// IsValid reports whether the state is known. The zero value is valid and
// means a plain single roll.
func (s AdvantageState) IsValid() bool {
	switch s {
	case "", AdvantageStateNone, AdvantageStateAdvantage, AdvantageStateDisadvantage, AdvantageStateElven:
		return true
	}
	return false
}

// AttackProfile describes one weapon attack in a build. CritRange is the
// number of d20 faces that score a critical hit: 1 means only a natural 20,
// 2 means 19-20. Zero takes the default of 1. Count repeats the attack that
// many times per round; zero takes the default of 1.
type AttackProfile struct {
	Label               string         `json:"label"`
	ToHitBonus          int            `json:"to_hit_bonus"`
	Damage              string         `json:"damage"`
	DamageType          DamageType     `json:"damage_type,omitempty"`
	CritRange           int            `json:"crit_range,omitempty"`
	Advantage           AdvantageState `json:"advantage,omitempty"`
	GreatWeaponFighting bool           `json:"great_weapon_fighting,omitempty"`
	Count               int            `json:"count,omitempty"`
}

// Validate checks the profile and returns a typed validation error naming the
// first offending field.
func (a *AttackProfile) Validate() error {
	if _, err := dice.Parse(a.Damage); err != nil {
		return dnderr.Wrapf(err, "attack %q damage", a.Label)
	}
	if a.CritRange < 0 || a.CritRange > 20 {
		return dnderr.InvalidField("critRange", a.CritRange, "must be between 1 and 20 faces")
	}
	if !a.DamageType.IsValid() {
		return dnderr.InvalidField("damageType", string(a.DamageType), "unknown damage type")
	}
	if !a.Advantage.IsValid() {
		return dnderr.InvalidField("advantage", string(a.Advantage), "unknown advantage state")
	}
	if a.Count < 0 {
		return dnderr.InvalidField("count", a.Count, "must not be negative")
	}
	return nil
}

// CritFaces returns the number of d20 faces that crit, applying the default.
func (a *AttackProfile) CritFaces() int {
	if a.CritRange <= 0 {
		return 1
	}
	return a.CritRange
}

// Repeat returns how many times the attack happens per round, applying the
// default.
func (a *AttackProfile) Repeat() int {
	if a.Count <= 0 {
		return 1
	}
	return a.Count
}
