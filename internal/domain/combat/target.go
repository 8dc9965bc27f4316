package combat

import (
	"math"

	dnderr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

// Target is the defender a build is evaluated against.
type Target struct {
	Name            string          `json:"name"`
	ArmorClass      int             `json:"armor_class"`
	Resistances     []DamageType    `json:"resistances,omitempty"`
	Immunities      []DamageType    `json:"immunities,omitempty"`
	Vulnerabilities []DamageType    `json:"vulnerabilities,omitempty"`
	SaveBonus       map[Ability]int `json:"save_bonus,omitempty"`
	MagicResistance bool            `json:"magic_resistance,omitempty"`
}

// Validate checks the target and returns a typed validation error naming the
// first offending field.
func (t *Target) Validate() error {
	if t.ArmorClass < 1 {
		return dnderr.InvalidField("armorClass", t.ArmorClass, "must be positive")
	}
	for _, dt := range t.Resistances {
		if dt == DamageTypeNone || !dt.IsValid() {
			return dnderr.InvalidField("resistances", string(dt), "unknown damage type")
		}
	}
	for _, dt := range t.Immunities {
		if dt == DamageTypeNone || !dt.IsValid() {
			return dnderr.InvalidField("immunities", string(dt), "unknown damage type")
		}
	}
	for _, dt := range t.Vulnerabilities {
		if dt == DamageTypeNone || !dt.IsValid() {
			return dnderr.InvalidField("vulnerabilities", string(dt), "unknown damage type")
		}
	}
	for ability := range t.SaveBonus {
		if !ability.IsValid() {
			return dnderr.InvalidField("saveBonus", string(ability), "unknown save ability")
		}
	}
	return nil
}

// ApplyResistance resolves a damage amount against the target's defenses.
// Exactly one rule applies, checked in this order: immunity zeroes the
// damage, resistance halves it rounding down, vulnerability doubles it.
// Untyped damage passes through. Both the deterministic evaluator (on
// expected magnitudes) and the simulator (on rolled totals) resolve through
// this one function so the two paths can never disagree on the rules.
func (t *Target) ApplyResistance(amount float64, dt DamageType) float64 {
	if dt == DamageTypeNone {
		return amount
	}
	if containsType(t.Immunities, dt) {
		return 0
	}
	if containsType(t.Resistances, dt) {
		return math.Floor(amount / 2)
	}
	if containsType(t.Vulnerabilities, dt) {
		return amount * 2
	}
	return amount
}

// SaveBonusFor returns the target's save bonus for an ability, zero when
// unlisted.
func (t *Target) SaveBonusFor(ability Ability) int {
	if t.SaveBonus == nil {
		return 0
	}
	return t.SaveBonus[ability]
}

func containsType(types []DamageType, dt DamageType) bool {
	for _, candidate := range types {
		if candidate == dt {
			return true
		}
	}
	return false
}
