// Package gametime models in-fiction encounter time: rounds, the initiative
// position within a round, and their conversion to seconds.
package gametime

import "fmt"

// SecondsPerRound is the in-fiction length of one combat round.
const SecondsPerRound = 6

// Time is a point in an encounter: the round and the initiative score of the
// participant acting at that moment.
type Time struct {
	Round      int `json:"round"`
	Initiative int `json:"initiative"`
}

// TotalSeconds returns the elapsed in-fiction seconds at the start of t's round.
//
// Postcondition: Returns t.Round * SecondsPerRound.
func (t Time) TotalSeconds() int {
	return t.Round * SecondsPerRound
}

// Before reports whether t precedes other. Earlier rounds come first; within a
// round a higher initiative acts first.
func (t Time) Before(other Time) bool {
	if t.Round != other.Round {
		return t.Round < other.Round
	}
	return t.Initiative > other.Initiative
}

// AddRounds returns t advanced by n rounds at the same initiative.
func (t Time) AddRounds(n int) Time {
	return Time{Round: t.Round + n, Initiative: t.Initiative}
}

// String renders t as "m:ss" of elapsed fiction time.
func (t Time) String() string {
	secs := t.TotalSeconds()
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// FormatDuration renders a span of rounds as "1h 2m 3s", "2m 3s" or "3s".
//
// Precondition: rounds >= 0.
func FormatDuration(rounds int) string {
	hours, minutes, seconds := clock(rounds)

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatClock renders a span of rounds as a clock: "01:02:03" once an hour has
// passed, otherwise "m:ss".
//
// Precondition: rounds >= 0.
func FormatClock(rounds int) string {
	hours, minutes, seconds := clock(rounds)

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// clock splits rounds into hours, minutes and seconds without forming the
// total in seconds, which overflows for very long spans.
func clock(rounds int) (hours, minutes, seconds int) {
	const roundsPerHour = 3600 / SecondsPerRound
	hours = rounds / roundsPerHour
	rest := (rounds % roundsPerHour) * SecondsPerRound
	return hours, rest / 60, rest % 60
}

// TotalRounds converts a wall-clock span into rounds, rounding up so the result
// always covers the requested span.
//
// Postcondition: TotalRounds(h, m, s) * SecondsPerRound >= h*3600 + m*60 + s.
func TotalRounds(hours, minutes, seconds int) int {
	total := hours*3600 + minutes*60 + seconds
	return CeilRounds(total)
}

// CeilRounds returns the number of whole rounds needed to cover seconds.
//
// Postcondition: Returns 0 for seconds <= 0.
func CeilRounds(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	rounds := seconds / SecondsPerRound
	if seconds%SecondsPerRound != 0 {
		rounds++
	}
	return rounds
}
