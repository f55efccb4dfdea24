package difficulty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/initiative/internal/game/difficulty"
)

func TestXPForCR(t *testing.T) {
	assert.Equal(t, 10, difficulty.XPForCR(0))
	assert.Equal(t, 25, difficulty.XPForCR(1))
	assert.Equal(t, 200, difficulty.XPForCR(4))
	assert.Equal(t, 155000, difficulty.XPForCR(33))
	assert.Equal(t, 155000, difficulty.XPForCR(99), "encodings past the table clamp to its last entry")
}

func TestXPForCR_Monotonic_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(0, 60).Draw(rt, "a")
		b := rapid.IntRange(a, 60).Draw(rt, "b")
		assert.LessOrEqual(rt, difficulty.XPForCR(a), difficulty.XPForCR(b))
	})
}

func TestMultiplier(t *testing.T) {
	cases := map[int]float64{0: 1, 1: 1, 2: 1.5, 3: 2, 6: 2, 7: 2.5, 10: 2.5, 11: 3, 14: 3, 15: 4, 40: 4}
	for n, want := range cases {
		assert.Equal(t, want, difficulty.Multiplier(n), "count=%d", n)
	}
}

func TestPartyThresholds51_ClampsLevels(t *testing.T) {
	assert.Equal(t, difficulty.PartyThresholds51([]int{1}), difficulty.PartyThresholds51([]int{0}))
	assert.Equal(t, difficulty.PartyThresholds51([]int{20}), difficulty.PartyThresholds51([]int{25}))
	assert.Equal(t, difficulty.Thresholds51{}, difficulty.PartyThresholds51(nil))
}

func TestPartyThresholds52_RoundedAverage(t *testing.T) {
	// average 4.5 rounds half away from zero to 5
	got := difficulty.PartyThresholds52([]int{4, 5})
	assert.Equal(t, difficulty.Thresholds52{Low: 1000, Moderate: 1500, High: 2200}, got)
	assert.Equal(t, difficulty.Thresholds52{}, difficulty.PartyThresholds52(nil))
}

func TestCalculate_SRD51_TwoCROneMonsters(t *testing.T) {
	got := difficulty.Calculate([]int{4, 4}, []int{3, 3, 3, 3}, difficulty.SRD51)

	assert.Equal(t, difficulty.SRD51, got.RulesVersion)
	assert.Equal(t, 400, got.TotalXP)
	assert.Equal(t, 600, got.AdjustedXP)
	require.NotNil(t, got.Thresholds51)
	assert.Nil(t, got.Thresholds52)
	assert.Equal(t, difficulty.Thresholds51{Easy: 300, Medium: 600, Hard: 900, Deadly: 1600}, *got.Thresholds51)
	assert.Equal(t, difficulty.Medium, got.Rating, "meeting a threshold exactly earns its label")
	assert.Equal(t, 100, got.XPPerPlayer)
	assert.Equal(t, 4.0, got.AverageCR)
	assert.Equal(t, 2, got.MonsterCount)
	assert.Equal(t, 4, got.PlayerCount)
}

func TestCalculate_SRD52_NoMonsters(t *testing.T) {
	got := difficulty.Calculate(nil, []int{5}, difficulty.SRD52)
	assert.Equal(t, 0, got.TotalXP)
	assert.Equal(t, difficulty.Trivial, got.Rating)
	assert.Equal(t, 0, got.XPPerPlayer)
	assert.Equal(t, 0.0, got.AverageCR)
	require.NotNil(t, got.Thresholds52)
	assert.Equal(t, difficulty.Thresholds52{Low: 500, Moderate: 750, High: 1100}, *got.Thresholds52)
}

func TestCalculate_EmptyEverything(t *testing.T) {
	for _, rules := range []difficulty.RulesVersion{difficulty.SRD51, difficulty.SRD52} {
		got := difficulty.Calculate(nil, nil, rules)
		assert.Equal(t, difficulty.Trivial, got.Rating, rules)
		assert.Equal(t, 0, got.XPPerPlayer)
	}
}

func TestCalculate_SRD52_NoMultiplier(t *testing.T) {
	got := difficulty.Calculate([]int{5, 5, 5}, []int{3, 3, 3, 3}, difficulty.SRD52)
	assert.Equal(t, 1350, got.TotalXP)
	assert.Equal(t, 1350, got.AdjustedXP)
	// level 3 budget: low 150, moderate 225, high 400; x4 = 600, 900, 1600
	assert.Equal(t, difficulty.Moderate, got.Rating)
	assert.Equal(t, 337, got.XPPerPlayer)
}

func TestCalculate_SRD51_Deadly(t *testing.T) {
	got := difficulty.Calculate([]int{8}, []int{1, 1}, difficulty.SRD51)
	assert.Equal(t, 1800, got.AdjustedXP)
	assert.Equal(t, difficulty.Deadly, got.Rating)
}

func TestCalculate_UnknownRulesUsesSRD51(t *testing.T) {
	got := difficulty.Calculate([]int{4}, []int{1}, "homebrew")
	assert.Equal(t, difficulty.SRD51, got.RulesVersion)
}

func TestCalculate_AverageCRUsesEncodings(t *testing.T) {
	got := difficulty.Calculate([]int{1, 2}, []int{1}, difficulty.SRD51)
	assert.Equal(t, 1.5, got.AverageCR)
}

func TestCalculate_Idempotent_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		crs := rapid.SliceOf(rapid.IntRange(0, 40)).Draw(rt, "crs")
		levels := rapid.SliceOf(rapid.IntRange(-2, 25)).Draw(rt, "levels")
		rules := rapid.SampledFrom([]difficulty.RulesVersion{difficulty.SRD51, difficulty.SRD52}).Draw(rt, "rules")

		a := difficulty.Calculate(crs, levels, rules)
		b := difficulty.Calculate(crs, levels, rules)
		assert.Equal(rt, a, b)
		if len(crs) == 0 {
			assert.Equal(rt, difficulty.Trivial, a.Rating)
		}
		if rules == difficulty.SRD51 {
			assert.GreaterOrEqual(rt, a.AdjustedXP, a.TotalXP)
		}
	})
}

func TestParseRulesVersion(t *testing.T) {
	v, err := difficulty.ParseRulesVersion("srd52")
	require.NoError(t, err)
	assert.Equal(t, difficulty.SRD52, v)
	_, err = difficulty.ParseRulesVersion("4e")
	assert.Error(t, err)
}
