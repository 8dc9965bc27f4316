package evaluation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/services/evaluation"
)

// Rider fixtures against the baseline fighter (hit 0.55, crit 0.05 at AC
// 15): sneak attack 3d6 is worth 0.50*10.5 + 0.05*21 = 6.3 on-hit, hex 1d6
// is worth 0.50*3.5 + 0.05*7 = 2.1.
func sneakAttack() combat.Rider {
	return combat.Rider{Label: "Sneak Attack", Damage: "3d6", DamageType: combat.DamageTypePiercing}
}

func hex() combat.Rider {
	return combat.Rider{Label: "Hex", Damage: "1d6", DamageType: combat.DamageTypeNecrotic}
}

func TestRiders_AtMostOnePerRound(t *testing.T) {
	svc := evaluation.NewService(nil)

	// Two satisfied riders contribute the best one, never their sum.
	build := fighterBuild()
	build.Riders = []combat.Rider{sneakAttack(), hex()}

	result, err := svc.EvaluateDPR(context.Background(), &evaluation.EvaluateInput{
		Build:  build,
		Target: banditTarget(),
	})

	require.NoError(t, err)
	assert.InDelta(t, 6.3, result.Breakdown.OncePerTurn, 1e-9)
	assert.InDelta(t, 4.35+6.3, result.Total, 1e-9)
}

func TestRiders_PriorityTakesDeclaredOrder(t *testing.T) {
	svc := evaluation.NewService(nil)

	build := fighterBuild()
	build.Riders = []combat.Rider{hex(), sneakAttack()}
	build.RiderPolicy = combat.RiderPolicyPriority

	result, err := svc.EvaluateDPR(context.Background(), &evaluation.EvaluateInput{
		Build:  build,
		Target: banditTarget(),
	})

	require.NoError(t, err)
	assert.InDelta(t, 2.1, result.Breakdown.OncePerTurn, 1e-9, "hex is declared first, sneak attack never fires")
}

func TestRiders_PrioritySkipsExhausted(t *testing.T) {
	svc := evaluation.NewService(nil)

	spentHex := hex()
	spentHex.UsesPerCombat = 1
	build := fighterBuild()
	build.Riders = []combat.Rider{spentHex, sneakAttack()}
	build.RiderPolicy = combat.RiderPolicyPriority

	result, err := svc.EvaluateDPR(context.Background(), &evaluation.EvaluateInput{
		Build:   build,
		Target:  banditTarget(),
		Tactics: &combat.Tactics{Rounds: 2},
	})

	require.NoError(t, err)
	require.Len(t, result.ByRound, 2)
	assert.InDelta(t, 4.35+2.1, result.ByRound[0], 1e-9)
	assert.InDelta(t, 4.35+6.3, result.ByRound[1], 1e-9, "round two falls through to the next in order")
}

func TestRiders_OptimalRespondsToResistance(t *testing.T) {
	svc := evaluation.NewService(nil)

	// Piercing resistance drops a 2d6 sneak attack to 0.50*3 + 0.05*7 =
	// 1.85, below hex's unresisted 2.1, so optimal flips its pick.
	smallSneak := combat.Rider{Label: "Sneak Attack", Damage: "2d6", DamageType: combat.DamageTypePiercing}
	build := fighterBuild()
	build.Riders = []combat.Rider{smallSneak, hex()}

	result, err := svc.EvaluateDPR(context.Background(), &evaluation.EvaluateInput{
		Build: build,
		Target: &combat.Target{
			Name:        "Swarm of Insects",
			ArmorClass:  15,
			Resistances: []combat.DamageType{combat.DamageTypePiercing},
		},
	})

	require.NoError(t, err)
	assert.InDelta(t, 2.1, result.Breakdown.OncePerTurn, 1e-9)
}

func TestRiders_UsesPerCombatBudget(t *testing.T) {
	svc := evaluation.NewService(nil)

	limited := sneakAttack()
	limited.UsesPerCombat = 1
	build := fighterBuild()
	build.Riders = []combat.Rider{limited}

	result, err := svc.EvaluateDPR(context.Background(), &evaluation.EvaluateInput{
		Build:   build,
		Target:  banditTarget(),
		Tactics: &combat.Tactics{Rounds: 3},
	})

	require.NoError(t, err)
	require.Len(t, result.ByRound, 3)
	assert.InDelta(t, 4.35+6.3, result.ByRound[0], 1e-9)
	assert.InDelta(t, 4.35, result.ByRound[1], 1e-9)
	assert.InDelta(t, 4.35, result.ByRound[2], 1e-9)
	assert.InDelta(t, 6.3, result.Breakdown.OncePerTurn, 1e-9)
}

func TestRiders_BudgetFallsBackToLesserRider(t *testing.T) {
	svc := evaluation.NewService(nil)

	limited := sneakAttack()
	limited.UsesPerCombat = 1
	build := fighterBuild()
	build.Riders = []combat.Rider{limited, hex()}

	result, err := svc.EvaluateDPR(context.Background(), &evaluation.EvaluateInput{
		Build:   build,
		Target:  banditTarget(),
		Tactics: &combat.Tactics{Rounds: 3},
	})

	require.NoError(t, err)
	assert.InDelta(t, 4.35+6.3, result.ByRound[0], 1e-9, "spend the big one while it lasts")
	assert.InDelta(t, 4.35+2.1, result.ByRound[1], 1e-9)
	assert.InDelta(t, 4.35+2.1, result.ByRound[2], 1e-9)
	assert.InDelta(t, 6.3+2.1+2.1, result.Breakdown.OncePerTurn, 1e-9)
}

func TestRiders_OnCritTrigger(t *testing.T) {
	svc := evaluation.NewService(nil)

	brutal := combat.Rider{
		Label:      "Brutal Critical",
		Damage:     "3d6",
		DamageType: combat.DamageTypePiercing,
		Trigger:    combat.RiderTriggerOnCrit,
	}
	build := fighterBuild()
	build.Riders = []combat.Rider{brutal}

	result, err := svc.EvaluateDPR(context.Background(), &evaluation.EvaluateInput{
		Build:  build,
		Target: banditTarget(),
	})

	require.NoError(t, err)
	// The carrying crit doubles the rider's dice: 0.05 * (10.5 + 10.5).
	assert.InDelta(t, 0.05*21, result.Breakdown.OncePerTurn, 1e-9)
}

func TestRiders_AlwaysTriggerNeedsNoAttack(t *testing.T) {
	svc := evaluation.NewService(nil)

	sphere := combat.Rider{
		Label:      "Flaming Sphere ram",
		Damage:     "2d6",
		DamageType: combat.DamageTypeFire,
		Trigger:    combat.RiderTriggerAlways,
	}
	sacredFlame := combat.SpellProfile{
		Label:       "Sacred Flame",
		SaveDC:      15,
		SaveAbility: combat.AbilityDexterity,
		Damage:      "1d8",
		DamageType:  combat.DamageTypeRadiant,
	}

	result, err := svc.EvaluateDPR(context.Background(), &evaluation.EvaluateInput{
		Build: &combat.Build{
			Name:   "Summoner",
			Spells: []combat.SpellProfile{sacredFlame},
			Riders: []combat.Rider{sphere},
		},
		Target: &combat.Target{Name: "Bandit Captain", ArmorClass: 15, SaveBonus: map[combat.Ability]int{combat.AbilityDexterity: 5}},
	})

	require.NoError(t, err)
	assert.InDelta(t, 7.0, result.Breakdown.OncePerTurn, 1e-9, "an always rider fires without any attack")
}

func TestRiders_OnHitNeedsAnAttack(t *testing.T) {
	svc := evaluation.NewService(nil)

	sacredFlame := combat.SpellProfile{
		Label:       "Sacred Flame",
		SaveDC:      15,
		SaveAbility: combat.AbilityDexterity,
		Damage:      "1d8",
		DamageType:  combat.DamageTypeRadiant,
	}

	result, err := svc.EvaluateDPR(context.Background(), &evaluation.EvaluateInput{
		Build: &combat.Build{
			Name:   "Spellcaster",
			Spells: []combat.SpellProfile{sacredFlame},
			Riders: []combat.Rider{sneakAttack()},
		},
		Target: &combat.Target{Name: "Bandit Captain", ArmorClass: 15, SaveBonus: map[combat.Ability]int{combat.AbilityDexterity: 5}},
	})

	require.NoError(t, err)
	assert.Zero(t, result.Breakdown.OncePerTurn, "nothing to ride on")
}

func TestRiders_MultipleAttacksShareOneRider(t *testing.T) {
	svc := evaluation.NewService(nil)

	// Two swings raise the chance the rider lands - any hit 0.7975, any
	// crit 0.0975 - but it still fires at most once.
	build := fighterBuild()
	build.Attacks[0].Count = 2
	build.Riders = []combat.Rider{sneakAttack()}

	result, err := svc.EvaluateDPR(context.Background(), &evaluation.EvaluateInput{
		Build:  build,
		Target: banditTarget(),
	})

	require.NoError(t, err)
	assert.InDelta(t, 0.7*10.5+0.0975*21, result.Breakdown.OncePerTurn, 1e-9)
	assert.InDelta(t, 8.7+0.7*10.5+0.0975*21, result.Total, 1e-9)
}
