package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	dnderr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

func validBuild() *combat.Build {
	return &combat.Build{
		Name: "Fighter 5",
		Attacks: []combat.AttackProfile{
			{Label: "Longsword", ToHitBonus: 5, Damage: "1d8+3", DamageType: combat.DamageTypeSlashing},
		},
	}
}

func TestBuild_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*combat.Build)
		wantField string
	}{
		{
			name:   "valid build passes",
			mutate: func(b *combat.Build) {},
		},
		{
			name: "no damage sources",
			mutate: func(b *combat.Build) {
				b.Attacks = nil
			},
			wantField: "attacks",
		},
		{
			name: "bad attack damage",
			mutate: func(b *combat.Build) {
				b.Attacks[0].Damage = "1d"
			},
			wantField: "expression",
		},
		{
			name: "crit range out of bounds",
			mutate: func(b *combat.Build) {
				b.Attacks[0].CritRange = 21
			},
			wantField: "critRange",
		},
		{
			name: "unknown advantage state",
			mutate: func(b *combat.Build) {
				b.Attacks[0].Advantage = combat.AdvantageState("lucky")
			},
			wantField: "advantage",
		},
		{
			name: "unknown damage type",
			mutate: func(b *combat.Build) {
				b.Attacks[0].DamageType = combat.DamageType("emotional")
			},
			wantField: "damageType",
		},
		{
			name: "negative attack count",
			mutate: func(b *combat.Build) {
				b.Attacks[0].Count = -1
			},
			wantField: "count",
		},
		{
			name: "spell without positive DC",
			mutate: func(b *combat.Build) {
				b.Spells = []combat.SpellProfile{{Label: "Fireball", SaveDC: 0, SaveAbility: combat.AbilityDexterity, Damage: "8d6"}}
			},
			wantField: "saveDC",
		},
		{
			name: "spell with unknown ability",
			mutate: func(b *combat.Build) {
				b.Spells = []combat.SpellProfile{{Label: "Fireball", SaveDC: 15, SaveAbility: combat.Ability("luck"), Damage: "8d6"}}
			},
			wantField: "saveAbility",
		},
		{
			name: "rider with unknown trigger",
			mutate: func(b *combat.Build) {
				b.Riders = []combat.Rider{{Label: "Sneak Attack", Damage: "3d6", Trigger: combat.RiderTrigger("whenever")}}
			},
			wantField: "trigger",
		},
		{
			name: "rider with negative uses",
			mutate: func(b *combat.Build) {
				b.Riders = []combat.Rider{{Label: "Smite", Damage: "2d8", UsesPerCombat: -2}}
			},
			wantField: "usesPerCombat",
		},
		{
			name: "unknown rider policy",
			mutate: func(b *combat.Build) {
				b.RiderPolicy = combat.RiderPolicy("greedy")
			},
			wantField: "riderPolicy",
		},
		{
			name: "extra with bad damage",
			mutate: func(b *combat.Build) {
				b.Extras = []combat.ExtraDamage{{Label: "Aura", Damage: "d8"}}
			},
			wantField: "expression",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			build := validBuild()
			tt.mutate(build)

			err := build.Validate()

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, dnderr.IsValidation(err), "expected validation error, got %v", err)
			assert.Equal(t, tt.wantField, dnderr.GetMeta(err)["field"])
		})
	}
}

func TestTarget_Validate(t *testing.T) {
	tests := []struct {
		name      string
		target    combat.Target
		wantField string
	}{
		{
			name:   "valid target passes",
			target: combat.Target{Name: "Goblin", ArmorClass: 15},
		},
		{
			name:      "armor class must be positive",
			target:    combat.Target{ArmorClass: 0},
			wantField: "armorClass",
		},
		{
			name: "unknown resistance type",
			target: combat.Target{
				ArmorClass:  15,
				Resistances: []combat.DamageType{"emotional"},
			},
			wantField: "resistances",
		},
		{
			name: "unknown immunity type",
			target: combat.Target{
				ArmorClass: 15,
				Immunities: []combat.DamageType{""},
			},
			wantField: "immunities",
		},
		{
			name: "unknown vulnerability type",
			target: combat.Target{
				ArmorClass:      15,
				Vulnerabilities: []combat.DamageType{"sunlight"},
			},
			wantField: "vulnerabilities",
		},
		{
			name: "unknown save ability",
			target: combat.Target{
				ArmorClass: 15,
				SaveBonus:  map[combat.Ability]int{"luck": 3},
			},
			wantField: "saveBonus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, dnderr.IsValidation(err))
			assert.Equal(t, tt.wantField, dnderr.GetMeta(err)["field"])
		})
	}
}

func TestTactics_Validate(t *testing.T) {
	bad := combat.AdvantageState("lucky")

	tests := []struct {
		name      string
		tactics   combat.Tactics
		wantField string
	}{
		{
			name:    "zero value passes",
			tactics: combat.Tactics{},
		},
		{
			name:      "negative rounds",
			tactics:   combat.Tactics{Rounds: -1},
			wantField: "rounds",
		},
		{
			name:      "rounds over the limit",
			tactics:   combat.Tactics{Rounds: 101},
			wantField: "rounds",
		},
		{
			name:      "unknown override state",
			tactics:   combat.Tactics{AdvantageOverride: &bad},
			wantField: "advantageOverride",
		},
		{
			name:      "negative bonus die",
			tactics:   combat.Tactics{BonusAttackDie: -4},
			wantField: "bonusAttackDie",
		},
		{
			name:      "oversized bonus die",
			tactics:   combat.Tactics{BonusAttackDie: 100},
			wantField: "bonusAttackDie",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tactics.Validate()

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, dnderr.IsValidation(err))
			assert.Equal(t, tt.wantField, dnderr.GetMeta(err)["field"])
		})
	}
}

func TestDamageType_Parse(t *testing.T) {
	dt, ok := combat.ParseDamageType("Fire")
	assert.True(t, ok)
	assert.Equal(t, combat.DamageTypeFire, dt)

	dt, ok = combat.ParseDamageType("chromatic")
	assert.False(t, ok)
	assert.Equal(t, combat.DamageTypeNone, dt)

	dt, ok = combat.ParseDamageType("")
	assert.False(t, ok)
	assert.Equal(t, combat.DamageTypeNone, dt)
}
