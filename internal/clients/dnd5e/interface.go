package dnd5e

//go:generate mockgen -destination=mock/mock_client.go -package=mockdnd5e -source=interface.go

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
)

// Client fetches reference monsters from the public 5e API, mapped into
// engine records.
type Client interface {
	// GetMonster fetches one monster by its API key, for example "goblin".
	GetMonster(key string) (*Monster, error)

	// ListMonstersByCR fetches every monster whose challenge rating falls
	// inside the inclusive range.
	ListMonstersByCR(minCR, maxCR float64) ([]*Monster, error)
}

// Monster is a reference monster reduced to what the engine works with:
// defenses on one side, an attack routine on the other.
type Monster struct {
	Key             string  `json:"key"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	ArmorClass      int     `json:"armor_class"`
	HitPoints       int     `json:"hit_points"`
	HitDice         string  `json:"hit_dice"`
	ChallengeRating float64 `json:"challenge_rating"`

	Attacks []combat.AttackProfile `json:"attacks,omitempty"`
}

// Target returns the monster's defender record. The reference data does not
// expose save bonuses or resistances in a form the engine can trust, so
// callers layer those on when they know them.
func (m *Monster) Target() *combat.Target {
	return &combat.Target{
		Name:       m.Name,
		ArmorClass: m.ArmorClass,
	}
}

// Build returns the monster's own attack routine as an attacker record, for
// head-to-head comparisons. A monster with no parsed attack actions produces
// a build with no damage sources, which evaluation rejects.
func (m *Monster) Build() *combat.Build {
	return &combat.Build{
		Name:    m.Name,
		Attacks: m.Attacks,
	}
}
