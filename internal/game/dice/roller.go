package dice

import (
	"cmp"
	"slices"
)

// Roll evaluates an Expression using the given Source and returns a RollResult.
//
// Precondition: expr must come from Parse (Count >= 1, Sides >= 2); src must be non-nil.
// Postcondition: len(result.Dice) == expr.Count and exactly expr.Kept() of
// them are marked Keep. Ties are broken by roll order.
func Roll(expr Expression, src Source) (RollResult, error) {
	rolled := make([]DieRoll, expr.Count)
	for i := range rolled {
		rolled[i] = DieRoll{Sides: expr.Sides, Result: src.Intn(expr.Sides) + 1, Keep: true}
	}
	applySelection(rolled, expr.Select)

	return RollResult{
		Expression: expr.Raw,
		Dice:       rolled,
		Modifier:   expr.Modifier,
	}, nil
}

func applySelection(rolled []DieRoll, sel Selection) {
	if sel.Mode == SelectAll {
		return
	}
	// idx ordered highest first
	idx := make([]int, len(rolled))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int { return cmp.Compare(rolled[b].Result, rolled[a].Result) })

	var drop []int
	switch sel.Mode {
	case KeepHighest:
		drop = idx[sel.N:]
	case KeepLowest:
		drop = idx[:len(idx)-sel.N]
	case DropHighest:
		drop = idx[:sel.N]
	case DropLowest:
		drop = idx[len(idx)-sel.N:]
	}
	for _, i := range drop {
		rolled[i].Keep = false
	}
}

// RollExpr parses expr and rolls it using src in a single call.
//
// Precondition: expr must be a valid dice expression string; src must be non-nil.
// Postcondition: Returns a RollResult or a parse/roll error.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src)
}
