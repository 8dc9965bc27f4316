package testutils

import (
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
)

// CreateTestBuild creates a fighter-style build with one longsword attack.
// Against CreateTestTarget at AC 15 the closed-form DPR is 4.35.
func CreateTestBuild(name string) *combat.Build {
	return &combat.Build{
		Name: name,
		Attacks: []combat.AttackProfile{
			{
				Label:      "Longsword",
				ToHitBonus: 5,
				Damage:     "1d8+3",
				DamageType: combat.DamageTypeSlashing,
			},
		},
	}
}

// CreateTestRogueBuild creates a build that exercises the rider path:
// an advantaged shortsword attack plus a once-per-turn sneak attack
func CreateTestRogueBuild(name string) *combat.Build {
	return &combat.Build{
		Name: name,
		Attacks: []combat.AttackProfile{
			{
				Label:      "Shortsword",
				ToHitBonus: 6,
				Damage:     "1d6+4",
				DamageType: combat.DamageTypePiercing,
				Advantage:  combat.AdvantageStateAdvantage,
			},
		},
		Riders: []combat.Rider{
			{
				Label:      "Sneak Attack",
				Damage:     "3d6",
				DamageType: combat.DamageTypePiercing,
			},
		},
	}
}

// CreateTestTarget creates a plain target with no defenses beyond armor class
func CreateTestTarget(name string, armorClass int) *combat.Target {
	return &combat.Target{
		Name:       name,
		ArmorClass: armorClass,
	}
}

// CreateTestResistantTarget creates a target that resists the given damage types
func CreateTestResistantTarget(name string, armorClass int, resists ...combat.DamageType) *combat.Target {
	return &combat.Target{
		Name:        name,
		ArmorClass:  armorClass,
		Resistances: resists,
	}
}

// CreateTestTactics creates tactics for a fight of the given length
func CreateTestTactics(rounds int) *combat.Tactics {
	return &combat.Tactics{
		Rounds: rounds,
	}
}
