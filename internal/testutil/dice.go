package testutil

import "sync"

// SequenceSource is a dice.Source that replays zero-based Intn results in order
// and wraps around once exhausted. Each value is clamped into [0, n).
type SequenceSource struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequenceSource returns a SequenceSource over values.
//
// Precondition: len(values) > 0.
func NewSequenceSource(values ...int) *SequenceSource {
	if len(values) == 0 {
		panic("testutil: NewSequenceSource requires at least one value")
	}
	return &SequenceSource{values: values}
}

// Intn returns the next queued value clamped into [0, n).
func (s *SequenceSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	if v >= n {
		return n - 1
	}
	if v < 0 {
		return 0
	}
	return v
}
