package dice

import "sync"

// seededRoller implements Roller on a PRNG so that a sequence of rolls is
// reproducible from its seed. Safe for concurrent use; concurrent callers
// still consume a single stream, so reproducibility holds only for a single
// goroutine or externally ordered calls.
type seededRoller struct {
	mu   sync.Mutex
	prng *PRNG
}

// NewSeededRoller creates a deterministic roller from a seed.
func NewSeededRoller(seed int64) Roller {
	return &seededRoller{prng: NewPRNG(seed)}
}

// Roll implements Roller.Roll
func (r *seededRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if err := checkDice(count, sides); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rolls := make([]int, count)
	rawTotal := 0
	for i := 0; i < count; i++ {
		roll := r.prng.Roll(sides)
		rolls[i] = roll
		rawTotal += roll
	}

	return newRollResult(rolls, rawTotal, bonus, count, sides), nil
}

// RollWithAdvantage implements Roller.RollWithAdvantage
func (r *seededRoller) RollWithAdvantage(sides, bonus int) (*RollResult, error) {
	return r.RollBestOf(2, sides, bonus)
}

// RollWithDisadvantage implements Roller.RollWithDisadvantage
func (r *seededRoller) RollWithDisadvantage(sides, bonus int) (*RollResult, error) {
	if err := checkDice(2, sides); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	roll1 := r.prng.Roll(sides)
	roll2 := r.prng.Roll(sides)

	lower := roll1
	if roll2 < lower {
		lower = roll2
	}

	return newRollResult([]int{roll1, roll2}, lower, bonus, 1, sides), nil
}

// RollBestOf implements Roller.RollBestOf
func (r *seededRoller) RollBestOf(n, sides, bonus int) (*RollResult, error) {
	if err := checkDice(n, sides); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rolls := make([]int, n)
	highest := 0
	for i := 0; i < n; i++ {
		roll := r.prng.Roll(sides)
		rolls[i] = roll
		if roll > highest {
			highest = roll
		}
	}

	return newRollResult(rolls, highest, bonus, 1, sides), nil
}
