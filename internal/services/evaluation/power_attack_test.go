package evaluation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	dnderr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/services/evaluation"
)

func longsword() *combat.AttackProfile {
	return &combat.AttackProfile{Label: "Longsword", ToHitBonus: 5, Damage: "1d8+3", DamageType: combat.DamageTypeSlashing}
}

func TestAnalyzePowerAttack_Longsword(t *testing.T) {
	svc := evaluation.NewService(nil)

	result, err := svc.AnalyzePowerAttack(context.Background(), &evaluation.PowerAttackInput{
		Attack: longsword(),
		Target: banditTarget(),
	})

	require.NoError(t, err)
	assert.InDelta(t, 4.35, result.NormalDPR, 1e-9)
	// The power arm is +0 to hit for 1d8+13: 0.25*17.5 + 0.05*22.
	assert.InDelta(t, 5.475, result.PowerAttackDPR, 1e-9)
	assert.Equal(t, 17, result.BreakEvenAC)
	assert.Equal(t, combat.RecommendationUse, result.Recommendation)
}

func TestAnalyzePowerAttack_BreakEvenAC(t *testing.T) {
	tests := []struct {
		name   string
		attack *combat.AttackProfile
		want   int
	}{
		{
			// True crossing at toHit+16-d/2 = 17.25.
			"longsword",
			longsword(),
			17,
		},
		{
			// Rerolling ones and twos raises 2d6+4 to 12.33, pulling the
			// crossing down to 14.83.
			"greatsword with rerolls",
			&combat.AttackProfile{Label: "Greatsword", ToHitBonus: 5, Damage: "2d6+4", DamageType: combat.DamageTypeSlashing, GreatWeaponFighting: true},
			15,
		},
		{
			// Big dice swallow the flat +10: crossing at 8.75.
			"nova smite",
			&combat.AttackProfile{Label: "Smite", ToHitBonus: 5, Damage: "7d6", DamageType: combat.DamageTypeRadiant},
			9,
		},
		{
			"power attack pays across the whole range",
			&combat.AttackProfile{Label: "Legendary Longsword", ToHitBonus: 20, Damage: "1d8+3", DamageType: combat.DamageTypeSlashing},
			30,
		},
		{
			"power attack loses from the lowest armor class",
			&combat.AttackProfile{Label: "Cursed Dagger", ToHitBonus: -14, Damage: "1d4", DamageType: combat.DamageTypePiercing},
			1,
		},
		{
			// Beyond AC 18 both arms sit on the floor and the flat +10
			// makes the trade pay again; the first crossing still governs.
			"dagger with the floor reversal past it",
			&combat.AttackProfile{Label: "Dagger", ToHitBonus: 2, Damage: "1d4", DamageType: combat.DamageTypePiercing},
			17,
		},
	}

	svc := evaluation.NewService(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.AnalyzePowerAttack(context.Background(), &evaluation.PowerAttackInput{
				Attack: tt.attack,
				Target: banditTarget(),
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, result.BreakEvenAC)
		})
	}
}

func TestAnalyzePowerAttack_BreakEvenBracketsTheCrossing(t *testing.T) {
	svc := evaluation.NewService(nil)

	// On either side of the reported break-even the verdict flips: the
	// trade pays below it and costs above it.
	below, err := svc.AnalyzePowerAttack(context.Background(), &evaluation.PowerAttackInput{
		Attack: longsword(),
		Target: &combat.Target{Name: "Thug", ArmorClass: 16},
	})
	require.NoError(t, err)
	assert.Positive(t, below.PowerAttackDPR-below.NormalDPR)

	above, err := svc.AnalyzePowerAttack(context.Background(), &evaluation.PowerAttackInput{
		Attack: longsword(),
		Target: &combat.Target{Name: "Knight", ArmorClass: 18},
	})
	require.NoError(t, err)
	assert.Negative(t, above.PowerAttackDPR-above.NormalDPR)
}

func TestAnalyzePowerAttack_Recommendation(t *testing.T) {
	tests := []struct {
		name       string
		armorClass int
		want       combat.Recommendation
	}{
		{"well below break-even", 12, combat.RecommendationUse},
		{"just past break-even is a wash", 18, combat.RecommendationNeutral},
		{"clearly past break-even", 19, combat.RecommendationAvoid},
	}

	svc := evaluation.NewService(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.AnalyzePowerAttack(context.Background(), &evaluation.PowerAttackInput{
				Attack: longsword(),
				Target: &combat.Target{Name: "Dummy", ArmorClass: tt.armorClass},
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Recommendation)
		})
	}
}

func TestAnalyzePowerAttack_CustomThreshold(t *testing.T) {
	svc := evaluation.NewService(&evaluation.ServiceConfig{Threshold: 3.0})

	// At AC 12 the trade is worth +2.625 DPR, inside a 3-point band.
	result, err := svc.AnalyzePowerAttack(context.Background(), &evaluation.PowerAttackInput{
		Attack: longsword(),
		Target: &combat.Target{Name: "Dummy", ArmorClass: 12},
	})

	require.NoError(t, err)
	assert.InDelta(t, 2.625, result.PowerAttackDPR-result.NormalDPR, 1e-9)
	assert.Equal(t, combat.RecommendationNeutral, result.Recommendation)
}

func TestAnalyzePowerAttack_ExtraAttackScalesDPRNotBreakEven(t *testing.T) {
	svc := evaluation.NewService(nil)

	attack := longsword()
	attack.Count = 2

	result, err := svc.AnalyzePowerAttack(context.Background(), &evaluation.PowerAttackInput{
		Attack: attack,
		Target: banditTarget(),
	})

	require.NoError(t, err)
	assert.InDelta(t, 8.7, result.NormalDPR, 1e-9)
	assert.InDelta(t, 10.95, result.PowerAttackDPR, 1e-9)
	assert.Equal(t, 17, result.BreakEvenAC, "the crossing is per swing")
}

func TestAnalyzePowerAttack_AdvantageAppliesToBothArms(t *testing.T) {
	svc := evaluation.NewService(nil)

	attack := longsword()
	attack.Advantage = combat.AdvantageStateAdvantage

	result, err := svc.AnalyzePowerAttack(context.Background(), &evaluation.PowerAttackInput{
		Attack: attack,
		Target: banditTarget(),
	})

	require.NoError(t, err)
	assert.InDelta(t, 6.42, result.NormalDPR, 1e-9)
	assert.InDelta(t, 9.36375, result.PowerAttackDPR, 1e-9)
	// Advantage softens the -5, pushing the break-even up a step.
	assert.Equal(t, 18, result.BreakEvenAC)
}

func TestAnalyzePowerAttack_ResistanceAffectsBothArms(t *testing.T) {
	svc := evaluation.NewService(nil)

	result, err := svc.AnalyzePowerAttack(context.Background(), &evaluation.PowerAttackInput{
		Attack: longsword(),
		Target: &combat.Target{
			Name:        "Skeleton",
			ArmorClass:  15,
			Resistances: []combat.DamageType{combat.DamageTypeSlashing},
		},
	})

	require.NoError(t, err)
	// floor(7.5/2)=3 and floor(12/2)=6 on the normal arm, floor(17.5/2)=8
	// and floor(22/2)=11 on the power arm.
	assert.InDelta(t, 0.5*3+0.05*6, result.NormalDPR, 1e-9)
	assert.InDelta(t, 0.25*8+0.05*11, result.PowerAttackDPR, 1e-9)
}

func TestAnalyzePowerAttack_Validation(t *testing.T) {
	svc := evaluation.NewService(nil)
	ctx := context.Background()

	t.Run("nil input", func(t *testing.T) {
		_, err := svc.AnalyzePowerAttack(ctx, nil)
		require.Error(t, err)
		assert.True(t, dnderr.IsInvalidArgument(err))
	})

	t.Run("nil attack", func(t *testing.T) {
		_, err := svc.AnalyzePowerAttack(ctx, &evaluation.PowerAttackInput{Target: banditTarget()})
		require.Error(t, err)
		assert.True(t, dnderr.IsInvalidArgument(err))
	})

	t.Run("nil target", func(t *testing.T) {
		_, err := svc.AnalyzePowerAttack(ctx, &evaluation.PowerAttackInput{Attack: longsword()})
		require.Error(t, err)
		assert.True(t, dnderr.IsInvalidArgument(err))
	})

	t.Run("malformed damage", func(t *testing.T) {
		attack := longsword()
		attack.Damage = "2d"
		_, err := svc.AnalyzePowerAttack(ctx, &evaluation.PowerAttackInput{Attack: attack, Target: banditTarget()})
		require.Error(t, err)
		assert.True(t, dnderr.IsValidation(err))
	})

	t.Run("invalid target", func(t *testing.T) {
		_, err := svc.AnalyzePowerAttack(ctx, &evaluation.PowerAttackInput{
			Attack: longsword(),
			Target: &combat.Target{Name: "Void", ArmorClass: -3},
		})
		require.Error(t, err)
		assert.True(t, dnderr.IsValidation(err))
	})
}
