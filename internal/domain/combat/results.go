package combat

// DamageBreakdown splits a total into its four source buckets. The buckets
// always sum to the total they accompany.
type DamageBreakdown struct {
	WeaponDamage float64 `json:"weapon_damage"`
	OncePerTurn  float64 `json:"once_per_turn"`
	SpellDamage  float64 `json:"spell_damage"`
	OtherSources float64 `json:"other_sources"`
}

// Sum returns the total across all buckets.
func (b DamageBreakdown) Sum() float64 {
	return b.WeaponDamage + b.OncePerTurn + b.SpellDamage + b.OtherSources
}

// ConditionsBreakdown reports the full evaluation recomputed under each
// advantage state. ElvenAccuracy is present only for builds with the feat.
type ConditionsBreakdown struct {
	Normal        float64  `json:"normal"`
	Advantage     float64  `json:"advantage"`
	Disadvantage  float64  `json:"disadvantage"`
	ElvenAccuracy *float64 `json:"elven_accuracy,omitempty"`
}

// AttackBreakdown is the per-attack trace line of a deterministic
// evaluation: chances after all state resolution, and the per-round expected
// damage after resistance.
type AttackBreakdown struct {
	Label          string  `json:"label"`
	HitChance      float64 `json:"hit_chance"`
	CritChance     float64 `json:"crit_chance"`
	ExpectedDamage float64 `json:"expected_damage"`
}

// DPRResult is the outcome of a deterministic evaluation.
type DPRResult struct {
	Total      float64             `json:"total"`
	ByRound    []float64           `json:"by_round"`
	Breakdown  DamageBreakdown     `json:"breakdown"`
	Conditions ConditionsBreakdown `json:"conditions"`
	PerAttack  []AttackBreakdown   `json:"per_attack"`
}

// ConfidenceInterval is a 95% interval around a mean.
type ConfidenceInterval struct {
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	Margin float64 `json:"margin"`
}

// RoundStats carries per-round simulation statistics, indexed by round.
type RoundStats struct {
	Mean               []float64            `json:"mean"`
	ConfidenceInterval []ConfidenceInterval `json:"confidence_interval"`
}

// DamageStats aggregates the damage samples of a simulation. Percentiles is
// keyed by percentile (5, 25, 50, 75, 95).
type DamageStats struct {
	Mean               float64            `json:"mean"`
	Median             float64            `json:"median"`
	StandardDeviation  float64            `json:"standard_deviation"`
	Percentiles        map[int]float64    `json:"percentiles"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	ByRound            RoundStats         `json:"by_round"`
}

// AccuracyStats reports observed attack-roll outcomes across all trials.
type AccuracyStats struct {
	HitRate  float64 `json:"hit_rate"`
	CritRate float64 `json:"crit_rate"`
}

// Insights are presentation heuristics derived from the samples. Rounds are
// one-based.
type Insights struct {
	OptimalRounds  []int    `json:"optimal_rounds,omitempty"`
	WeakestRounds  []int    `json:"weakest_rounds,omitempty"`
	BestStrategies []string `json:"best_strategies,omitempty"`
	RiskFactors    []string `json:"risk_factors,omitempty"`
}

// MonteCarloResult is the outcome of a simulation run. Identical seed,
// iterations, and scenario records reproduce it bit for bit.
type MonteCarloResult struct {
	Runs     int           `json:"runs"`
	Seed     int64         `json:"seed"`
	Damage   DamageStats   `json:"damage"`
	Accuracy AccuracyStats `json:"accuracy"`
	Insights Insights      `json:"insights"`
}

// Recommendation is the verdict of a power-attack analysis.
type Recommendation string

const (
	RecommendationUse     Recommendation = "use"
	RecommendationAvoid   Recommendation = "avoid"
	RecommendationNeutral Recommendation = "neutral"
)

// PowerAttackAnalysis compares a build with and without the -5/+10 trade
// against one target and reports the armor class at which the two break
// even.
type PowerAttackAnalysis struct {
	NormalDPR      float64        `json:"normal_dpr"`
	PowerAttackDPR float64        `json:"power_attack_dpr"`
	BreakEvenAC    int            `json:"break_even_ac"`
	Recommendation Recommendation `json:"recommendation"`
}
