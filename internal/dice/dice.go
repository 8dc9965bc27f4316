package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// RollResult describes a single dice roll. Rolls holds every die as it came
// up (both dice under advantage or disadvantage), RawTotal the kept dice, and
// Total the kept dice plus the flat bonus.
type RollResult struct {
	Total    int
	RawTotal int
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int
	IsCrit   bool
	IsFumble bool
}

func (r *RollResult) String() string {
	if len(r.Rolls) == 0 {
		return strconv.Itoa(r.Total)
	}

	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", ",")
	if r.Bonus != 0 {
		return fmt.Sprintf("%d : %s%+d", r.Total, compact, r.Bonus)
	}
	return fmt.Sprintf("%d : %s", r.Total, compact)
}
