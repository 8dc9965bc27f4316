package simulation

import (
	"math"
	"sort"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
)

// confidenceZ is the normal-approximation z for a 95% interval.
const confidenceZ = 1.96

var percentileMarks = []int{5, 25, 50, 75, 95}

// aggregate folds the trial samples and per-batch tallies into the result
// record. Samples are visited in index order and tallies merge in batch
// index order, which keeps every float accumulation deterministic.
func aggregate(samples []float64, tallies []batchTally, scenario *combat.Scenario, seed int64) *combat.MonteCarloResult {
	n := len(samples)
	nf := float64(n)

	sum := 0.0
	for _, sample := range samples {
		sum += sample
	}
	mean := sum / nf

	varianceSum := 0.0
	for _, sample := range samples {
		diff := sample - mean
		varianceSum += diff * diff
	}
	stddev := math.Sqrt(varianceSum / nf)
	margin := confidenceZ * stddev / math.Sqrt(nf)

	sorted := make([]float64, n)
	copy(sorted, samples)
	sort.Float64s(sorted)

	percentiles := make(map[int]float64, len(percentileMarks))
	for _, p := range percentileMarks {
		percentiles[p] = percentileOf(sorted, p)
	}

	var attackRolls, hits, crits, riderRounds int
	for i := range tallies {
		attackRolls += tallies[i].attackRolls
		hits += tallies[i].hits
		crits += tallies[i].crits
		riderRounds += tallies[i].riderRounds
	}

	accuracy := combat.AccuracyStats{}
	if attackRolls > 0 {
		accuracy.HitRate = float64(hits) / float64(attackRolls)
		accuracy.CritRate = float64(crits) / float64(attackRolls)
	}

	damage := combat.DamageStats{
		Mean:              mean,
		Median:            percentiles[50],
		StandardDeviation: stddev,
		Percentiles:       percentiles,
		ConfidenceInterval: combat.ConfidenceInterval{
			Lower:  mean - margin,
			Upper:  mean + margin,
			Margin: margin,
		},
		ByRound: roundStats(tallies, scenario.Rounds, nf),
	}

	return &combat.MonteCarloResult{
		Runs:     n,
		Seed:     seed,
		Damage:   damage,
		Accuracy: accuracy,
		Insights: buildInsights(scenario, damage, accuracy, riderRounds, n),
	}
}

// percentileOf indexes the ascending samples at floor(n*p/100), capped at
// the last element.
func percentileOf(sorted []float64, p int) float64 {
	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// roundStats merges the per-round partial sums and converts them to means
// with their own confidence intervals.
func roundStats(tallies []batchTally, rounds int, nf float64) combat.RoundStats {
	stats := combat.RoundStats{
		Mean:               make([]float64, rounds),
		ConfidenceInterval: make([]combat.ConfidenceInterval, rounds),
	}

	for round := 0; round < rounds; round++ {
		sum, sumSq := 0.0, 0.0
		for i := range tallies {
			sum += tallies[i].roundSum[round]
			sumSq += tallies[i].roundSumSq[round]
		}

		mean := sum / nf
		variance := sumSq/nf - mean*mean
		if variance < 0 {
			variance = 0 // single-pass subtraction can land fractionally below zero
		}
		margin := confidenceZ * math.Sqrt(variance) / math.Sqrt(nf)

		stats.Mean[round] = mean
		stats.ConfidenceInterval[round] = combat.ConfidenceInterval{
			Lower:  mean - margin,
			Upper:  mean + margin,
			Margin: margin,
		}
	}

	return stats
}
