package condition

import (
	"slices"
	"strings"
)

// UnknownPriority is the priority of any name outside the canonical set.
const UnknownPriority = 1000

// priorities orders conditions from most to least urgent for display.
var priorities = map[string]int{
	Dead:          1,
	Bloodied:      2,
	Unconscious:   3,
	Stunned:       4,
	Concentrating: 5,
	Surprised:     6,
	Frightened:    7,
	Charmed:       8,
	Blinded:       9,
	Deafened:      10,
	Marked:        11,
	Poisoned:      12,
	Invisible:     13,
	Paralyzed:     14,
	Petrified:     15,
	Prone:         16,
	Grappled:      17,
	Incapacitated: 18,
	Restrained:    19,
}

// Priority returns the display priority of name; lower sorts first.
func Priority(name string) int {
	if p, ok := priorities[name]; ok {
		return p
	}
	return UnknownPriority
}

// SortByPriority returns a copy of conditions ordered by Priority. The sort is
// stable, so equal priorities keep their original relative order.
//
// Postcondition: The input slice is not modified.
func SortByPriority(conditions []Condition) []Condition {
	out := slices.Clone(conditions)
	slices.SortStableFunc(out, func(a, b Condition) int {
		return Priority(a.Name) - Priority(b.Name)
	})
	return out
}

// ClassNames joins the canonical names among conditions with single spaces,
// in input order. Custom names are skipped.
func ClassNames(conditions []Condition) string {
	names := make([]string, 0, len(conditions))
	for _, c := range conditions {
		if c.IsCanonical() {
			names = append(names, c.Name)
		}
	}
	return strings.Join(names, " ")
}
