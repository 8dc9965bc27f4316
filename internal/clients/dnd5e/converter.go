package dnd5e

import (
	"fmt"

	apiEntities "github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/dice"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
)

func apiToMonster(input *apiEntities.Monster) *Monster {
	if input == nil {
		return nil
	}

	return &Monster{
		Key:             input.Key,
		Name:            input.Name,
		Type:            input.Type,
		ArmorClass:      input.ArmorClass,
		HitPoints:       input.HitPoints,
		HitDice:         input.HitDice,
		ChallengeRating: float64(input.ChallengeRating),
		Attacks:         apiToAttacks(input.MonsterActions),
	}
}

// apiToAttacks maps a monster's attack actions onto attack profiles. The
// reference data is messy: damage strings parse leniently, and an action
// that still does not parse is dropped rather than failing the monster. An
// action with several damage entries becomes one profile per entry, all
// sharing the action's attack bonus.
func apiToAttacks(input []*apiEntities.MonsterAction) []combat.AttackProfile {
	var attacks []combat.AttackProfile
	for _, action := range input {
		if action == nil || len(action.Damage) == 0 {
			continue
		}

		for i, dmg := range action.Damage {
			if dmg == nil {
				continue
			}
			expr, ok := dice.ParseLenient(dmg.DamageDice)
			if !ok || expr.IsZero() {
				continue
			}

			label := action.Name
			if len(action.Damage) > 1 {
				label = fmt.Sprintf("%s (%d)", action.Name, i+1)
			}

			// TODO: add damage type
			attacks = append(attacks, combat.AttackProfile{
				Label:      label,
				ToHitBonus: action.AttackBonus,
				Damage:     expr.String(),
			})
		}
	}
	return attacks
}
