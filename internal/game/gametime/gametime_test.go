package gametime_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/initiative/internal/game/gametime"
)

func TestTime_TotalSeconds(t *testing.T) {
	assert.Equal(t, 18, gametime.Time{Round: 3, Initiative: 12}.TotalSeconds())
}

func TestTime_String(t *testing.T) {
	assert.Equal(t, "1:06", gametime.Time{Round: 11}.String())
	assert.Equal(t, "0:06", gametime.Time{Round: 1}.String())
}

func TestTime_Before(t *testing.T) {
	early := gametime.Time{Round: 1, Initiative: 5}
	assert.True(t, early.Before(gametime.Time{Round: 2, Initiative: 20}))
	assert.True(t, gametime.Time{Round: 1, Initiative: 18}.Before(early))
	assert.False(t, early.Before(early))
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		rounds int
		want   string
	}{
		{0, "0s"},
		{1, "6s"},
		{10, "1m 0s"},
		{11, "1m 6s"},
		{600, "1h 0m 0s"},
		{611, "1h 1m 6s"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, gametime.FormatDuration(tc.rounds), "rounds=%d", tc.rounds)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "0:00", gametime.FormatClock(0))
	assert.Equal(t, "1:06", gametime.FormatClock(11))
	assert.Equal(t, "01:01:06", gametime.FormatClock(611))
}

func TestTotalRounds(t *testing.T) {
	assert.Equal(t, 1, gametime.TotalRounds(0, 0, 3))
	assert.Equal(t, 2, gametime.TotalRounds(0, 0, 12))
	assert.Equal(t, 600, gametime.TotalRounds(1, 0, 0))
	assert.Equal(t, 0, gametime.TotalRounds(0, 0, 0))
}

func TestCeilRounds_MaxInt(t *testing.T) {
	rounds := gametime.CeilRounds(math.MaxInt)
	assert.Equal(t, math.MaxInt/gametime.SecondsPerRound+1, rounds)
	assert.Equal(t, "2562047788015215h 30m 12s", gametime.FormatDuration(rounds))
}

func TestCeilRounds_CoversSpan_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		secs := rapid.IntRange(1, 100000).Draw(rt, "seconds")
		rounds := gametime.CeilRounds(secs)
		assert.GreaterOrEqual(rt, rounds*gametime.SecondsPerRound, secs)
		assert.Less(rt, (rounds-1)*gametime.SecondsPerRound, secs)
	})
}
