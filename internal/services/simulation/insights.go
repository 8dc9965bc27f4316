package simulation

import (
	"fmt"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
)

// Presentation thresholds. These tune the generated copy, not the math:
// a round at 110% of the average round reads as a spike, 90% as a dip.
const (
	spikeRoundRatio   = 1.10
	dipRoundRatio     = 0.90
	volatileCV        = 0.5
	strongCritRate    = 0.09
	reliableRiderRate = 0.90
	flakyRiderRate    = 0.50
)

// buildInsights derives the human-readable highlights from the aggregates.
func buildInsights(scenario *combat.Scenario, damage combat.DamageStats, accuracy combat.AccuracyStats, riderRounds, trials int) combat.Insights {
	insights := combat.Insights{}

	roundMean := damage.Mean / float64(scenario.Rounds)
	if roundMean > 0 {
		for round, mean := range damage.ByRound.Mean {
			if mean >= spikeRoundRatio*roundMean {
				insights.OptimalRounds = append(insights.OptimalRounds, round+1)
			}
			if mean <= dipRoundRatio*roundMean {
				insights.WeakestRounds = append(insights.WeakestRounds, round+1)
			}
		}
	}

	if len(scenario.Riders) > 0 && trials > 0 {
		utilization := float64(riderRounds) / float64(trials*scenario.Rounds)
		switch {
		case utilization >= reliableRiderRate:
			insights.BestStrategies = append(insights.BestStrategies,
				"Once-per-turn damage lands nearly every round")
		case utilization < flakyRiderRate:
			insights.BestStrategies = append(insights.BestStrategies,
				fmt.Sprintf("Once-per-turn damage fired in only %.0f%% of rounds; more attacks or advantage would help", utilization*100))
		}
	}
	if accuracy.CritRate >= strongCritRate {
		insights.BestStrategies = append(insights.BestStrategies,
			"Critical hits come often enough to build around")
	}

	if damage.Mean > 0 && damage.StandardDeviation/damage.Mean > volatileCV {
		insights.RiskFactors = append(insights.RiskFactors,
			"Damage varies a lot between runs; plan for low rolls")
	}
	if damage.Percentiles[5] == 0 {
		insights.RiskFactors = append(insights.RiskFactors,
			"The worst runs dealt no damage at all")
	}

	return insights
}
