// Package dice parses and rolls dice expressions and records the per-die audit
// trail for each roll.
package dice

import (
	"fmt"
	"strings"
)

// DieRoll is the outcome of a single die.
type DieRoll struct {
	Sides  int  `json:"sides"`
	Result int  `json:"result"`
	Keep   bool `json:"keep"`
}

// RollResult holds the full audit trail for a single dice roll evaluation.
//
// Postcondition: Value() == sum(kept Dice results) + Modifier.
type RollResult struct {
	Expression string    `json:"expression"`
	Dice       []DieRoll `json:"dice"`
	Modifier   int       `json:"modifier"`
}

// Value returns the sum of all kept die results plus the modifier.
func (r RollResult) Value() int {
	total := r.Modifier
	for _, d := range r.Dice {
		if d.Keep {
			total += d.Result
		}
	}
	return total
}

// Kept returns the results of the kept dice in roll order.
func (r RollResult) Kept() []int {
	kept := make([]int, 0, len(r.Dice))
	for _, d := range r.Dice {
		if d.Keep {
			kept = append(kept, d.Result)
		}
	}
	return kept
}

// String returns a human-readable audit string in the format:
//
//	"4d6kh3+1 → [6 (2) 5 4] +1 = 16"
//
// Dropped dice are shown in parentheses.
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	parts := make([]string, len(r.Dice))
	for i, d := range r.Dice {
		if d.Keep {
			parts[i] = fmt.Sprintf("%d", d.Result)
		} else {
			parts[i] = fmt.Sprintf("(%d)", d.Result)
		}
	}
	return fmt.Sprintf("%s → [%s] %+d = %d", r.Expression, strings.Join(parts, " "), r.Modifier, r.Value())
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
