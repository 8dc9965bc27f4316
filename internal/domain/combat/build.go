package combat

import (
	dnderr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

// Build is the attacker: an ordered list of attacks plus optional spells,
// once-per-turn riders, and unconditional extras.
type Build struct {
	Name          string          `json:"name"`
	Attacks       []AttackProfile `json:"attacks,omitempty"`
	Spells        []SpellProfile  `json:"spells,omitempty"`
	Riders        []Rider         `json:"riders,omitempty"`
	RiderPolicy   RiderPolicy     `json:"rider_policy,omitempty"`
	ElvenAccuracy bool            `json:"elven_accuracy,omitempty"`
	Extras        []ExtraDamage   `json:"extras,omitempty"`
}

// Validate checks every record in the build and returns the first typed
// validation error. A build must bring at least one damage source.
func (b *Build) Validate() error {
	if len(b.Attacks) == 0 && len(b.Spells) == 0 && len(b.Extras) == 0 {
		return dnderr.InvalidField("attacks", len(b.Attacks), "build has no damage sources")
	}
	for i := range b.Attacks {
		if err := b.Attacks[i].Validate(); err != nil {
			return err
		}
	}
	for i := range b.Spells {
		if err := b.Spells[i].Validate(); err != nil {
			return err
		}
	}
	for i := range b.Riders {
		if err := b.Riders[i].Validate(); err != nil {
			return err
		}
	}
	for i := range b.Extras {
		if err := b.Extras[i].Validate(); err != nil {
			return err
		}
	}
	if !b.RiderPolicy.IsValid() {
		return dnderr.InvalidField("riderPolicy", string(b.RiderPolicy), "unknown rider policy")
	}
	return nil
}

// EffectivePolicy returns the rider policy with the default applied.
func (b *Build) EffectivePolicy() RiderPolicy {
	if b.RiderPolicy == "" {
		return RiderPolicyOptimal
	}
	return b.RiderPolicy
}
