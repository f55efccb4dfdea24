package condition

import (
	"slices"
	"strings"

	"github.com/cory-johannsen/initiative/internal/game/gametime"
)

// OtherSelector is the selection value standing for "a custom condition name".
const OtherSelector = "other"

// BuildOptions is a user's request to apply conditions to a participant.
type BuildOptions struct {
	// Selected holds condition names in selection order; it may include OtherSelector.
	Selected      []string
	CustomName    string
	DurationType  DurationType
	ElapsedAmount int
	ElapsedUnit   ElapsedUnit
	// Instigator is the participant credited with the conditions, or nil.
	Instigator *int
}

// Build turns opts into conditions that all start at start.
// OtherSelector entries are dropped; when OtherSelector was chosen and the
// trimmed custom name is non-empty it is appended last. An empty selection
// yields an empty, non-nil slice.
//
// Postcondition: Output order matches opts.Selected; every condition shares start,
// expiry and instigator.
func Build(opts BuildOptions, start gametime.Time) []Condition {
	names := make([]string, 0, len(opts.Selected)+1)
	for _, n := range opts.Selected {
		if n != OtherSelector {
			names = append(names, n)
		}
	}
	if custom := strings.TrimSpace(opts.CustomName); custom != "" && slices.Contains(opts.Selected, OtherSelector) {
		names = append(names, custom)
	}

	expiry := ToExpiry(opts.DurationType, opts.ElapsedAmount, opts.ElapsedUnit)

	out := make([]Condition, 0, len(names))
	for _, n := range names {
		c := Condition{Name: n, StartTime: start, Expiry: expiry}
		if opts.Instigator != nil {
			id := *opts.Instigator
			c.Instigator = &id
		}
		out = append(out, c)
	}
	return out
}
