package dice_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/initiative/internal/game/dice"
	"github.com/cory-johannsen/initiative/internal/testutil"
)

func die(result int, keep bool) dice.DieRoll {
	return dice.DieRoll{Sides: 6, Result: result, Keep: keep}
}

func TestRollResult_Value_SkipsDroppedDice(t *testing.T) {
	r := dice.RollResult{
		Expression: "4d6kh3+1",
		Dice:       []dice.DieRoll{die(6, true), die(2, false), die(5, true), die(4, true)},
		Modifier:   1,
	}
	assert.Equal(t, 16, r.Value())
	assert.Equal(t, []int{6, 5, 4}, r.Kept())
}

func TestRollResult_String(t *testing.T) {
	r := dice.RollResult{
		Expression: "4d6kh3+1",
		Dice:       []dice.DieRoll{die(6, true), die(2, false), die(5, true), die(4, true)},
		Modifier:   1,
	}
	assert.Equal(t, "4d6kh3+1 → [6 (2) 5 4] +1 = 16", r.String())
}

func TestRollResult_String_PanicsOnEmptyExpression(t *testing.T) {
	r := dice.RollResult{Dice: []dice.DieRoll{die(4, true)}}
	assert.Panics(t, func() { _ = r.String() })
}

func TestRollResult_Value_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		results := rapid.SliceOf(rapid.IntRange(1, 20)).Draw(rt, "results")
		keeps := rapid.SliceOfN(rapid.Bool(), len(results), len(results)).Draw(rt, "keeps")
		modifier := rapid.IntRange(-100, 100).Draw(rt, "modifier")

		r := dice.RollResult{Expression: "x", Modifier: modifier}
		expected := modifier
		for i, v := range results {
			r.Dice = append(r.Dice, dice.DieRoll{Sides: 20, Result: v, Keep: keeps[i]})
			if keeps[i] {
				expected += v
			}
		}
		assert.Equal(rt, expected, r.Value())
		assert.Contains(rt, r.String(), fmt.Sprintf("= %d", expected))
	})
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want dice.Expression
	}{
		{"d20", dice.Expression{Raw: "d20", Count: 1, Sides: 20}},
		{"2d6+3", dice.Expression{Raw: "2d6+3", Count: 2, Sides: 6, Modifier: 3}},
		{"4d8-2", dice.Expression{Raw: "4d8-2", Count: 4, Sides: 8, Modifier: -2}},
		{"d%", dice.Expression{Raw: "d%", Count: 1, Sides: 100}},
		{"4d+1", dice.Expression{Raw: "4d+1", Count: 4, Sides: 6, Modifier: 1}},
		{" 3d8 + 2 ", dice.Expression{Raw: "3d8 + 2", Count: 3, Sides: 8, Modifier: 2}},
		{"4d6kh3", dice.Expression{Raw: "4d6kh3", Count: 4, Sides: 6, Select: dice.Selection{Mode: dice.KeepHighest, N: 3}}},
		{"4d6k3", dice.Expression{Raw: "4d6k3", Count: 4, Sides: 6, Select: dice.Selection{Mode: dice.KeepHighest, N: 3}}},
		{"2d20kl", dice.Expression{Raw: "2d20kl", Count: 2, Sides: 20, Select: dice.Selection{Mode: dice.KeepLowest, N: 1}}},
		{"4d6d1", dice.Expression{Raw: "4d6d1", Count: 4, Sides: 6, Select: dice.Selection{Mode: dice.DropLowest, N: 1}}},
		{"3d6dh1+2", dice.Expression{Raw: "3d6dh1+2", Count: 3, Sides: 6, Modifier: 2, Select: dice.Selection{Mode: dice.DropHighest, N: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := dice.Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "   ", "20", "0d6", "2d1", "2d6kh2", "2d6kh0", "2d6x", "2d6+", "abc"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, in)
	}
}

func TestParse_Bounds(t *testing.T) {
	got, err := dice.Parse("1000d6")
	require.NoError(t, err)
	assert.Equal(t, dice.MaxCount, got.Count)

	got, err = dice.Parse("d1000")
	require.NoError(t, err)
	assert.Equal(t, dice.MaxSides, got.Sides)

	for _, in := range []string{"1001d6", "d1001", "2000000000d6", "2d2000000000", "99999999999999999999d6"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, in)
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("nope") })
	assert.NotPanics(t, func() { dice.MustParse("d20") })
}

func TestRoll_KeepHighest(t *testing.T) {
	src := testutil.NewSequenceSource(5, 1, 4, 3) // 6 2 5 4
	r, err := dice.RollExpr("4d6kh3", src)
	require.NoError(t, err)
	require.Len(t, r.Dice, 4)
	assert.Equal(t, []bool{true, false, true, true}, keeps(r))
	assert.Equal(t, 15, r.Value())
}

func TestRoll_KeepLowest(t *testing.T) {
	src := testutil.NewSequenceSource(17, 3) // 18 4
	r, err := dice.RollExpr("2d20kl1", src)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, keeps(r))
	assert.Equal(t, 4, r.Value())
}

func TestRoll_DropTiesFavourRollOrder(t *testing.T) {
	src := testutil.NewSequenceSource(2, 2, 2) // 3 3 3
	r, err := dice.RollExpr("3d6dh1", src)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, true}, keeps(r))

	r, err = dice.RollExpr("3d6dl1", testutil.NewSequenceSource(2, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false}, keeps(r))
}

func TestRoll_KeptCountProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(2, 10).Draw(rt, "count")
		n := rapid.IntRange(1, count-1).Draw(rt, "n")
		suffix := rapid.SampledFrom([]string{"kh", "kl", "dh", "dl"}).Draw(rt, "suffix")
		expr := dice.MustParse(fmt.Sprintf("%dd8%s%d", count, suffix, n))

		r, err := dice.Roll(expr, dice.NewCryptoSource())
		require.NoError(rt, err)
		assert.Len(rt, r.Dice, count)
		assert.Len(rt, r.Kept(), expr.Kept())
		for _, d := range r.Dice {
			assert.Equal(rt, 8, d.Sides)
			assert.GreaterOrEqual(rt, d.Result, 1)
			assert.LessOrEqual(rt, d.Result, 8)
		}
	})
}

func TestRoller_RollExpr(t *testing.T) {
	roller := dice.NewLoggedRoller(testutil.NewSequenceSource(19), zap.NewNop())
	r, err := roller.RollExpr("d20+5")
	require.NoError(t, err)
	assert.Equal(t, 25, r.Value())
	assert.True(t, strings.HasPrefix(r.String(), "d20+5"))

	_, err = roller.RollExpr("d")
	assert.NoError(t, err, "bare d is a d6")
	_, err = roller.RollExpr("x")
	assert.Error(t, err)
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestSeededSource_Replays(t *testing.T) {
	a, b := dice.NewSeededSource(42), dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Intn(20), b.Intn(20))
	}

	ra, err := dice.RollExpr("8d6", dice.NewSeededSource(7))
	require.NoError(t, err)
	rb, err := dice.RollExpr("8d6", dice.NewSeededSource(7))
	require.NoError(t, err)
	assert.Equal(t, ra.Dice, rb.Dice)
}

func TestRoller_LogsRoll(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	roller := dice.NewLoggedRoller(testutil.NewSequenceSource(5, 0, 3), zap.New(core))
	_, err := roller.RollExpr("3d6kh2+1")
	require.NoError(t, err)

	entries := logs.FilterMessage("dice roll").All()
	require.Len(t, entries, 1)
	roll, ok := entries[0].ContextMap()["roll"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "3d6kh2+1", roll["expression"])
	assert.EqualValues(t, 11, roll["value"])
	assert.EqualValues(t, 3, roll["rolled"])
}

func keeps(r dice.RollResult) []bool {
	out := make([]bool, len(r.Dice))
	for i, d := range r.Dice {
		out[i] = d.Keep
	}
	return out
}
