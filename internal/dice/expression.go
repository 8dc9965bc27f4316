package dice

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	dnderr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

const (
	maxDiceCount = 100
	maxDieSize   = 1000
)

// Expression is a parsed damage expression: a single NdM dice term plus a
// flat modifier. A flat-only expression has Count and Sides of zero.
type Expression struct {
	Count    int
	Sides    int
	Modifier int
}

// Parse parses a damage expression of the form NdM, NdM+K, NdM-K, or a bare
// non-negative integer. The die marker is case-insensitive and surrounding
// whitespace is ignored. Errors are validation errors naming the rejected
// expression.
func Parse(input string) (Expression, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return Expression{}, dnderr.InvalidField("expression", input, "empty damage expression")
	}

	if !strings.Contains(s, "d") {
		flat, err := strconv.Atoi(s)
		if err != nil {
			return Expression{}, dnderr.InvalidField("expression", input, "expected NdM, NdM+K, or a flat integer")
		}
		if flat < 0 {
			return Expression{}, dnderr.InvalidField("expression", input, "flat damage must not be negative")
		}
		return Expression{Modifier: flat}, nil
	}

	dicePart := s
	modifier := 0
	if idx := strings.LastIndexAny(s, "+-"); idx > strings.Index(s, "d") {
		mod, err := strconv.Atoi(s[idx:])
		if err != nil {
			return Expression{}, dnderr.InvalidField("expression", input, "modifier must be an integer")
		}
		modifier = mod
		dicePart = s[:idx]
	}

	parts := strings.Split(dicePart, "d")
	if len(parts) != 2 {
		return Expression{}, dnderr.InvalidField("expression", input, "expected a single NdM dice term")
	}

	count, err := strconv.Atoi(parts[0])
	if err != nil {
		return Expression{}, dnderr.InvalidField("expression", input, "dice count must be an integer")
	}
	sides, err := strconv.Atoi(parts[1])
	if err != nil {
		return Expression{}, dnderr.InvalidField("expression", input, "die size must be an integer")
	}

	if count < 1 {
		return Expression{}, dnderr.InvalidField("expression", input, "dice count must be positive")
	}
	if count > maxDiceCount {
		return Expression{}, dnderr.InvalidField("expression", input, fmt.Sprintf("dice count must not exceed %d", maxDiceCount))
	}
	if sides < 1 {
		return Expression{}, dnderr.InvalidField("expression", input, "die size must be positive")
	}
	if sides > maxDieSize {
		return Expression{}, dnderr.InvalidField("expression", input, fmt.Sprintf("die size must not exceed %d", maxDieSize))
	}

	return Expression{Count: count, Sides: sides, Modifier: modifier}, nil
}

// ParseLenient parses reference-data damage strings that may be messy. It
// strips interior whitespace before parsing and never fails: anything still
// unparseable is logged and contributes zero damage, so one bad action block
// does not sink a whole monster import. The second return reports whether the
// input parsed.
func ParseLenient(input string) (Expression, bool) {
	expr, err := Parse(strings.ReplaceAll(input, " ", ""))
	if err != nil {
		log.Printf("dice: unparseable damage %q, treating as zero", input)
		return Expression{}, false
	}
	return expr, true
}

// IsZero reports whether the expression contributes no damage at all.
func (e Expression) IsZero() bool {
	return e.Count == 0 && e.Modifier == 0
}

func (e Expression) String() string {
	if e.Count == 0 {
		return strconv.Itoa(e.Modifier)
	}
	if e.Modifier == 0 {
		return fmt.Sprintf("%dd%d", e.Count, e.Sides)
	}
	return fmt.Sprintf("%dd%d%+d", e.Count, e.Sides, e.Modifier)
}

// Average returns the expected value of the expression.
func (e Expression) Average() float64 {
	return e.DiceAverage() + float64(e.Modifier)
}

// DiceAverage returns the expected value of the dice portion alone. This is
// the part a critical hit doubles.
func (e Expression) DiceAverage() float64 {
	return float64(e.Count) * float64(e.Sides+1) / 2
}

// Variance returns the variance of the expression. Dice are independent, so
// each die contributes (M^2-1)/12 and the flat modifier contributes nothing.
func (e Expression) Variance() float64 {
	return float64(e.Count) * float64(e.Sides*e.Sides-1) / 12
}

// AverageGreatWeapon returns the expected value when 1s and 2s are rerolled
// once per die. The per-die expectation is (M+4)(M-1)/(2M); for a d6 that is
// 4.1667 against a plain 3.5, and for a d12 it is 7.3333 against 6.5.
func (e Expression) AverageGreatWeapon() float64 {
	return e.DiceAverageGreatWeapon() + float64(e.Modifier)
}

// DiceAverageGreatWeapon returns the reroll-adjusted expectation of the dice
// portion alone.
func (e Expression) DiceAverageGreatWeapon() float64 {
	if e.Count == 0 {
		return 0
	}
	// A d1 or d2 is rerolled every time, which changes nothing.
	if e.Sides <= 2 {
		return e.DiceAverage()
	}
	perDie := float64((e.Sides+4)*(e.Sides-1)) / float64(2*e.Sides)
	return float64(e.Count) * perDie
}

// Min returns the smallest total the expression can roll.
func (e Expression) Min() int {
	return e.Count + e.Modifier
}

// Max returns the largest total the expression can roll.
func (e Expression) Max() int {
	return e.Count*e.Sides + e.Modifier
}

// Roll rolls the expression with the given roller. Flat-only expressions
// resolve without consuming any dice.
func (e Expression) Roll(r Roller) (*RollResult, error) {
	if e.Count == 0 {
		return &RollResult{Total: e.Modifier, Bonus: e.Modifier}, nil
	}
	return r.Roll(e.Count, e.Sides, e.Modifier)
}
