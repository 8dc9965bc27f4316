package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/cache"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/clients/dnd5e"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/config"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/services"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/services/evaluation"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/services/simulation"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	monsterKey := flag.String("monster", "", "Monster key to fight (e.g. goblin); empty uses a plain AC target")
	armorClass := flag.Int("ac", 15, "Target armor class when no monster is given")
	resist := flag.String("resist", "", "Comma-separated damage types the target resists")
	iterations := flag.Int("iterations", 0, "Monte Carlo iterations (0 uses the configured default)")
	seed := flag.Int64("seed", 42, "Simulation seed")
	flag.Parse()

	ctx := context.Background()

	// A 5th-level fighter with Extra Attack, the standard benchmark build
	build := &combat.Build{
		Name: "Sample Fighter",
		Attacks: []combat.AttackProfile{
			{
				Label:      "Longsword",
				ToHitBonus: 5,
				Damage:     "1d8+3",
				DamageType: combat.DamageTypeSlashing,
				Count:      2,
			},
		},
	}

	target := resolveTarget(*monsterKey, *armorClass)

	if *resist != "" {
		for _, raw := range strings.Split(*resist, ",") {
			dt, ok := combat.ParseDamageType(raw)
			if !ok {
				log.Fatalf("Unknown damage type %q", raw)
			}
			target.Resistances = append(target.Resistances, dt)
		}
	}

	provider := services.NewProvider(&services.ProviderConfig{
		Cache:         buildCache(cfg),
		Workers:       cfg.Simulation.Workers,
		BatchSize:     cfg.Simulation.BatchSize,
		MaxIterations: cfg.Simulation.MaxIterations,
	})
	evalService := provider.EvaluationService

	fmt.Printf("%s vs %s (AC %d)\n\n", build.Name, target.Name, target.ArmorClass)

	// Deterministic evaluation
	result, err := evalService.EvaluateDPR(ctx, &evaluation.EvaluateInput{
		Build:  build,
		Target: target,
	})
	if err != nil {
		log.Fatalf("Failed to evaluate DPR: %v", err)
	}

	fmt.Printf("Expected DPR: %.2f\n", result.Total)
	for _, attack := range result.PerAttack {
		fmt.Printf("  %s: %.1f%% hit, %.1f%% crit, %.2f expected\n",
			attack.Label, attack.HitChance*100, attack.CritChance*100, attack.ExpectedDamage)
	}
	fmt.Printf("  weapons %.2f, once-per-turn %.2f, spells %.2f, other %.2f\n\n",
		result.Breakdown.WeaponDamage, result.Breakdown.OncePerTurn,
		result.Breakdown.SpellDamage, result.Breakdown.OtherSources)

	// Power attack analysis for the first attack
	analysis, err := evalService.AnalyzePowerAttack(ctx, &evaluation.PowerAttackInput{
		Attack: &build.Attacks[0],
		Target: target,
	})
	if err != nil {
		log.Fatalf("Failed to analyze power attack: %v", err)
	}

	fmt.Printf("Power attack (%s): normal %.2f, with -5/+10 %.2f, break-even AC %d\n",
		build.Attacks[0].Label, analysis.NormalDPR, analysis.PowerAttackDPR, analysis.BreakEvenAC)
	fmt.Printf("  recommendation: %s\n\n", analysis.Recommendation)

	// Monte Carlo simulation
	runs := *iterations
	if runs <= 0 {
		runs = cfg.Simulation.Iterations
	}

	simResult, err := provider.SimulationService.Run(ctx, &simulation.RunInput{
		Build:      build,
		Target:     target,
		Iterations: runs,
		Seed:       *seed,
	})
	if err != nil {
		log.Fatalf("Failed to run simulation: %v", err)
	}

	fmt.Printf("Monte Carlo (%d runs, seed %d):\n", simResult.Runs, simResult.Seed)
	fmt.Printf("  mean %.2f (95%% CI %.2f to %.2f), median %.1f\n",
		simResult.Damage.Mean,
		simResult.Damage.ConfidenceInterval.Lower, simResult.Damage.ConfidenceInterval.Upper,
		simResult.Damage.Median)
	fmt.Printf("  percentiles: p5 %.1f, p25 %.1f, p50 %.1f, p75 %.1f, p95 %.1f\n",
		simResult.Damage.Percentiles[5], simResult.Damage.Percentiles[25],
		simResult.Damage.Percentiles[50], simResult.Damage.Percentiles[75],
		simResult.Damage.Percentiles[95])
	fmt.Printf("  hit rate %.1f%%, crit rate %.1f%%\n",
		simResult.Accuracy.HitRate*100, simResult.Accuracy.CritRate*100)

	for _, note := range simResult.Insights.BestStrategies {
		fmt.Printf("  + %s\n", note)
	}
	for _, note := range simResult.Insights.RiskFactors {
		fmt.Printf("  - %s\n", note)
	}
}

// resolveTarget looks the monster up through the 5e API, or builds a plain
// target at the given armor class when no monster key is set
func resolveTarget(monsterKey string, armorClass int) *combat.Target {
	if monsterKey == "" {
		return &combat.Target{
			Name:       fmt.Sprintf("AC %d target", armorClass),
			ArmorClass: armorClass,
		}
	}

	client, err := dnd5e.New(&dnd5e.Config{
		HttpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	})
	if err != nil {
		log.Fatalf("Failed to create D&D 5e client: %v", err)
	}

	monster, err := client.GetMonster(monsterKey)
	if err != nil {
		log.Fatalf("Failed to fetch monster %q: %v", monsterKey, err)
	}

	fmt.Printf("%s: AC %d, %d HP, CR %g\n", monster.Name, monster.ArmorClass, monster.HitPoints, monster.ChallengeRating)
	for _, attack := range monster.Attacks {
		fmt.Printf("  %s: %+d to hit, %s\n", attack.Label, attack.ToHitBonus, attack.Damage)
	}
	fmt.Println()

	return monster.Target()
}

// buildCache opens the Redis-backed result cache when an address is
// configured, falling back to the in-memory cache otherwise
func buildCache(cfg *config.Config) cache.Cache {
	if cfg.Redis.Addr != "" {
		log.Printf("Connecting to Redis at: %s", cfg.Redis.Addr)

		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
			log.Printf("Failed to connect to Redis: %v", pingErr)
			log.Println("Falling back to the in-memory cache")
		} else {
			return cache.NewRedis(&cache.RedisConfig{
				Client: redisClient,
				TTL:    cfg.Cache.TTL,
			})
		}
	}

	return cache.NewInMemory(&cache.InMemoryConfig{
		MaxEntries: cfg.Cache.MaxEntries,
		TTL:        cfg.Cache.TTL,
	})
}
