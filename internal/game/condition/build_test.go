package condition_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/initiative/internal/game/condition"
	"github.com/cory-johannsen/initiative/internal/game/gametime"
)

var start = gametime.Time{Round: 3, Initiative: 17}

func names(cs []condition.Condition) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}

func TestBuild_PreservesSelectionOrder(t *testing.T) {
	got := condition.Build(condition.BuildOptions{
		Selected:     []string{condition.Prone, condition.OtherSelector, condition.Charmed},
		CustomName:   "  hexed ",
		DurationType: condition.UntilRemoved,
	}, start)

	assert.Equal(t, []string{condition.Prone, condition.Charmed, "hexed"}, names(got))
	for _, c := range got {
		assert.Equal(t, start, c.StartTime)
		assert.Equal(t, condition.NoExpiry(), c.Expiry)
		assert.Nil(t, c.Instigator)
	}
}

func TestBuild_BlankCustomNameContributesNothing(t *testing.T) {
	got := condition.Build(condition.BuildOptions{
		Selected:   []string{condition.OtherSelector},
		CustomName: "   ",
	}, start)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBuild_CustomNameIgnoredWithoutOther(t *testing.T) {
	got := condition.Build(condition.BuildOptions{
		Selected:   []string{condition.Blinded},
		CustomName: "hexed",
	}, start)
	assert.Equal(t, []string{condition.Blinded}, names(got))
}

func TestBuild_EmptySelection(t *testing.T) {
	got := condition.Build(condition.BuildOptions{}, start)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBuild_SharesInstigatorAndExpiry(t *testing.T) {
	instigator := 4
	got := condition.Build(condition.BuildOptions{
		Selected:      []string{condition.Frightened, condition.Poisoned},
		DurationType:  condition.Elapsed,
		ElapsedAmount: 1,
		ElapsedUnit:   condition.Minutes,
		Instigator:    &instigator,
	}, start)

	require.Len(t, got, 2)
	for _, c := range got {
		require.NotNil(t, c.Instigator)
		assert.Equal(t, 4, *c.Instigator)
		assert.Equal(t, condition.DurationExpiry(10), c.Expiry)
	}
	instigator = 9
	assert.Equal(t, 4, *got[0].Instigator, "built conditions must not alias the caller's instigator")
}

func TestBuild_OrderPreserving_Property(t *testing.T) {
	pool := append([]string{condition.OtherSelector}, condition.Names...)
	rapid.Check(t, func(rt *rapid.T) {
		selected := rapid.SliceOf(rapid.SampledFrom(pool)).Draw(rt, "selected")
		custom := rapid.StringMatching(`[ a-z]{0,8}`).Draw(rt, "custom")

		got := condition.Build(condition.BuildOptions{Selected: selected, CustomName: custom}, start)

		var want []string
		hasOther := false
		for _, s := range selected {
			if s == condition.OtherSelector {
				hasOther = true
				continue
			}
			want = append(want, s)
		}
		trimmed := strings.TrimSpace(custom)
		if hasOther && trimmed != "" {
			want = append(want, trimmed)
		}
		if want == nil {
			want = []string{}
		}
		assert.Equal(rt, want, names(got))
	})
}
