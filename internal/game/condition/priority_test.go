package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/initiative/internal/game/condition"
)

func named(ns ...string) []condition.Condition {
	out := make([]condition.Condition, 0, len(ns))
	for _, n := range ns {
		out = append(out, condition.New(n, start))
	}
	return out
}

func TestSortByPriority(t *testing.T) {
	in := named(condition.Prone, condition.Dead, "unknown-custom")
	got := condition.SortByPriority(in)
	assert.Equal(t, []string{condition.Dead, condition.Prone, "unknown-custom"}, names(got))
	assert.Equal(t, []string{condition.Prone, condition.Dead, "unknown-custom"}, names(in), "input must be untouched")
}

func TestSortByPriority_UnknownKeepsRelativeOrder(t *testing.T) {
	got := condition.SortByPriority(named("zeta", condition.Restrained, "alpha", condition.Bloodied))
	assert.Equal(t, []string{condition.Bloodied, condition.Restrained, "zeta", "alpha"}, names(got))
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 1, condition.Priority(condition.Dead))
	assert.Equal(t, 19, condition.Priority(condition.Restrained))
	assert.Equal(t, condition.UnknownPriority, condition.Priority("hexed"))
	for _, n := range condition.Names {
		assert.Less(t, condition.Priority(n), condition.UnknownPriority, n)
	}
}

func TestSortByPriority_Deterministic_Property(t *testing.T) {
	pool := append([]string{"hexed", "blessed"}, condition.Names...)
	rapid.Check(t, func(rt *rapid.T) {
		in := named(rapid.SliceOf(rapid.SampledFrom(pool)).Draw(rt, "names")...)
		a := condition.SortByPriority(in)
		b := condition.SortByPriority(in)
		assert.Equal(rt, a, b)
		assert.Len(rt, a, len(in))
		for i := 1; i < len(a); i++ {
			assert.LessOrEqual(rt, condition.Priority(a[i-1].Name), condition.Priority(a[i].Name))
		}
	})
}

func TestClassNames(t *testing.T) {
	got := condition.ClassNames(named(condition.Prone, "hexed", condition.Dead))
	assert.Equal(t, "prone dead", got)
	assert.Equal(t, "", condition.ClassNames(nil))
}
