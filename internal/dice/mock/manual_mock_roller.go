package mockdice

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/dice"
)

// ManualMockRoller implements dice.Roller for testing with predetermined results
type ManualMockRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewManualMockRoller creates a new mock dice roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{
		rolls: []int{},
	}
}

// SetNextRoll sets the next roll result
func (m *ManualMockRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls sets multiple roll results
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// Reset clears all rolls and resets the index
func (m *ManualMockRoller) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = []int{}
	m.rollIndex = 0
}

// getNextRoll returns the next predetermined roll
func (m *ManualMockRoller) getNextRoll() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}

	roll := m.rolls[m.rollIndex]
	m.rollIndex++
	return roll, nil
}

// take consumes n predetermined rolls, validating each against the die size
func (m *ManualMockRoller) take(n, sides int) ([]int, error) {
	rolls := make([]int, n)
	for i := 0; i < n; i++ {
		roll, err := m.getNextRoll()
		if err != nil {
			return nil, err
		}
		if roll < 1 || roll > sides {
			return nil, fmt.Errorf("invalid roll %d for d%d", roll, sides)
		}
		rolls[i] = roll
	}
	return rolls, nil
}

// Roll implements dice.Roller.Roll
func (m *ManualMockRoller) Roll(count, sides, bonus int) (*dice.RollResult, error) {
	rolls, err := m.take(count, sides)
	if err != nil {
		return nil, err
	}

	rawTotal := 0
	for _, roll := range rolls {
		rawTotal += roll
	}

	result := &dice.RollResult{
		Total:    rawTotal + bonus,
		RawTotal: rawTotal,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
	}

	// Check for crit/fumble on d20
	if count == 1 && sides == 20 {
		result.IsCrit = rawTotal == 20
		result.IsFumble = rawTotal == 1
	}

	return result, nil
}

// RollWithAdvantage implements dice.Roller.RollWithAdvantage
func (m *ManualMockRoller) RollWithAdvantage(sides, bonus int) (*dice.RollResult, error) {
	return m.RollBestOf(2, sides, bonus)
}

// RollWithDisadvantage implements dice.Roller.RollWithDisadvantage
func (m *ManualMockRoller) RollWithDisadvantage(sides, bonus int) (*dice.RollResult, error) {
	rolls, err := m.take(2, sides)
	if err != nil {
		return nil, err
	}

	// Take the lower roll
	lowerRoll := rolls[0]
	if rolls[1] < lowerRoll {
		lowerRoll = rolls[1]
	}

	result := &dice.RollResult{
		Total:    lowerRoll + bonus,
		RawTotal: lowerRoll,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    1,
		Sides:    sides,
	}

	// Check for crit/fumble on d20
	if sides == 20 {
		result.IsCrit = lowerRoll == 20
		result.IsFumble = lowerRoll == 1
	}

	return result, nil
}

// RollBestOf implements dice.Roller.RollBestOf
func (m *ManualMockRoller) RollBestOf(n, sides, bonus int) (*dice.RollResult, error) {
	rolls, err := m.take(n, sides)
	if err != nil {
		return nil, err
	}

	// Take the highest roll
	higherRoll := rolls[0]
	for _, roll := range rolls[1:] {
		if roll > higherRoll {
			higherRoll = roll
		}
	}

	result := &dice.RollResult{
		Total:    higherRoll + bonus,
		RawTotal: higherRoll,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    1,
		Sides:    sides,
	}

	// Check for crit/fumble on d20
	if sides == 20 {
		result.IsCrit = higherRoll == 20
		result.IsFumble = higherRoll == 1
	}

	return result, nil
}
