package combat

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

// SpellProfile describes save-based damage. CastsPerCombat zero means the
// spell is cast every round (a cantrip); k >= 1 allocates casts to the first
// k rounds of the evaluation window.
type SpellProfile struct {
	Label          string     `json:"label"`
	SaveDC         int        `json:"save_dc"`
	SaveAbility    Ability    `json:"save_ability"`
	Damage         string     `json:"damage"`
	DamageType     DamageType `json:"damage_type,omitempty"`
	HalfOnSave     bool       `json:"half_on_save,omitempty"`
	CastsPerCombat int        `json:"casts_per_combat,omitempty"`
}

// Validate checks the profile and returns a typed validation error naming the
// first offending field.
func (s *SpellProfile) Validate() error {
	if _, err := dice.Parse(s.Damage); err != nil {
		return dnderr.Wrapf(err, "spell %q damage", s.Label)
	}
	if s.SaveDC < 1 {
		return dnderr.InvalidField("saveDC", s.SaveDC, "must be positive")
	}
	if !s.SaveAbility.IsValid() {
		return dnderr.InvalidField("saveAbility", string(s.SaveAbility), "unknown save ability")
	}
	if !s.DamageType.IsValid() {
		return dnderr.InvalidField("damageType", string(s.DamageType), "unknown damage type")
	}
	if s.CastsPerCombat < 0 {
		return dnderr.InvalidField("castsPerCombat", s.CastsPerCombat, "must not be negative")
	}
	return nil
}

// RiderTrigger names the event a once-per-turn rider needs before it can fire
type RiderTrigger string

const (
	// RiderTriggerOnHit fires on the first hit of the round
	RiderTriggerOnHit RiderTrigger = "on_hit"

	// RiderTriggerOnCrit fires only on a critical hit
	RiderTriggerOnCrit RiderTrigger = "on_crit"

	// RiderTriggerAlways fires once per round unconditionally
	RiderTriggerAlways RiderTrigger = "always"
)

// IsValid reports whether the trigger is known. The zero value is valid and
// defaults to on-hit.
func (t RiderTrigger) IsValid() bool {
	switch t {
	case "", RiderTriggerOnHit, RiderTriggerOnCrit, RiderTriggerAlways:
		return true
	}
	return false
}

// RiderPolicy selects which satisfied rider fires when several could
type RiderPolicy string

const (
	// RiderPolicyOptimal fires the candidate with the highest expected
	// contribution against the current target
	RiderPolicyOptimal RiderPolicy = "optimal"

	// RiderPolicyPriority fires the first satisfied candidate in declared
	// order
	RiderPolicyPriority RiderPolicy = "priority"
)

// IsValid reports whether the policy is known. The zero value is valid and
// defaults to optimal.
func (p RiderPolicy) IsValid() bool {
	switch p {
	case "", RiderPolicyOptimal, RiderPolicyPriority:
		return true
	}
	return false
}

// Rider is a once-per-turn bonus damage source such as sneak attack or a
// smite. At most one rider fires per round regardless of how many are
// satisfied. UsesPerCombat zero means unlimited.
type Rider struct {
	Label         string       `json:"label"`
	Damage        string       `json:"damage"`
	DamageType    DamageType   `json:"damage_type,omitempty"`
	Trigger       RiderTrigger `json:"trigger,omitempty"`
	UsesPerCombat int          `json:"uses_per_combat,omitempty"`
}

// Validate checks the rider and returns a typed validation error naming the
// first offending field.
func (r *Rider) Validate() error {
	if _, err := dice.Parse(r.Damage); err != nil {
		return dnderr.Wrapf(err, "rider %q damage", r.Label)
	}
	if !r.DamageType.IsValid() {
		return dnderr.InvalidField("damageType", string(r.DamageType), "unknown damage type")
	}
	if !r.Trigger.IsValid() {
		return dnderr.InvalidField("trigger", string(r.Trigger), "unknown rider trigger")
	}
	if r.UsesPerCombat < 0 {
		return dnderr.InvalidField("usesPerCombat", r.UsesPerCombat, "must not be negative")
	}
	return nil
}

// EffectiveTrigger returns the trigger with the default applied.
func (r *Rider) EffectiveTrigger() RiderTrigger {
	if r.Trigger == "" {
		return RiderTriggerOnHit
	}
	return r.Trigger
}

// ExtraDamage is an unconditional per-round damage source that needs no
// attack roll and allows no save, such as an aura.
type ExtraDamage struct {
	Label      string     `json:"label"`
	Damage     string     `json:"damage"`
	DamageType DamageType `json:"damage_type,omitempty"`
}

// Validate checks the extra and returns a typed validation error naming the
// first offending field.
func (e *ExtraDamage) Validate() error {
	if _, err := dice.Parse(e.Damage); err != nil {
		return dnderr.Wrapf(err, "extra %q damage", e.Label)
	}
	if !e.DamageType.IsValid() {
		return dnderr.InvalidField("damageType", string(e.DamageType), "unknown damage type")
	}
	return nil
}
