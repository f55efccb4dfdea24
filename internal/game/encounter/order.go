package encounter

import (
	"cmp"
	"slices"
)

// OrderByInitiative returns the ids of participants sorted by descending
// initiative, then descending tiebreaker, then ascending id.
//
// Postcondition: the result is a permutation of the keys of participants.
func OrderByInitiative(participants map[int]Participant) []int {
	ids := make([]int, 0, len(participants))
	for id := range participants {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b int) int {
		pa, pb := participants[a], participants[b]
		if c := cmp.Compare(Initiative(pb), Initiative(pa)); c != 0 {
			return c
		}
		if c := cmp.Compare(Tiebreaker(pb), Tiebreaker(pa)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return ids
}
