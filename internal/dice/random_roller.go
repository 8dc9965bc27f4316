package dice

import (
	"errors"
	"math/rand"
)

// randomRoller implements Roller on the global math/rand source
type randomRoller struct{}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if err := checkDice(count, sides); err != nil {
		return nil, err
	}

	rolls := make([]int, count)
	rawTotal := 0
	for i := 0; i < count; i++ {
		roll := rand.Intn(sides) + 1
		rolls[i] = roll
		rawTotal += roll
	}

	return newRollResult(rolls, rawTotal, bonus, count, sides), nil
}

// RollWithAdvantage implements Roller.RollWithAdvantage
func (r *randomRoller) RollWithAdvantage(sides, bonus int) (*RollResult, error) {
	return r.RollBestOf(2, sides, bonus)
}

// RollWithDisadvantage implements Roller.RollWithDisadvantage
func (r *randomRoller) RollWithDisadvantage(sides, bonus int) (*RollResult, error) {
	if err := checkDice(2, sides); err != nil {
		return nil, err
	}

	roll1 := rand.Intn(sides) + 1
	roll2 := rand.Intn(sides) + 1

	lower := roll1
	if roll2 < lower {
		lower = roll2
	}

	return newRollResult([]int{roll1, roll2}, lower, bonus, 1, sides), nil
}

// RollBestOf implements Roller.RollBestOf
func (r *randomRoller) RollBestOf(n, sides, bonus int) (*RollResult, error) {
	if err := checkDice(n, sides); err != nil {
		return nil, err
	}

	rolls := make([]int, n)
	highest := 0
	for i := 0; i < n; i++ {
		roll := rand.Intn(sides) + 1
		rolls[i] = roll
		if roll > highest {
			highest = roll
		}
	}

	return newRollResult(rolls, highest, bonus, 1, sides), nil
}

func checkDice(count, sides int) error {
	if count < 1 {
		return errors.New("invalid dice count")
	}
	if sides < 1 {
		return errors.New("invalid dice size")
	}
	return nil
}

// newRollResult assembles a RollResult, flagging crits and fumbles when the
// kept value came from a single effective d20.
func newRollResult(rolls []int, rawTotal, bonus, count, sides int) *RollResult {
	result := &RollResult{
		Total:    rawTotal + bonus,
		RawTotal: rawTotal,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
	}

	if count == 1 && sides == 20 {
		result.IsCrit = rawTotal == 20
		result.IsFumble = rawTotal == 1
	}

	return result
}
