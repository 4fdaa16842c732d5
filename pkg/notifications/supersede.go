package notifications

import "slices"

// FilterSuperseded drops every candidate whose category is listed in another
// candidate's SupersedesCategories. The result does not depend on the order
// of the input.
//
// A candidate that supersedes its own category removes itself. When two
// candidates supersede each other the one with the lower Rank survives.
// Longer cycles are not broken: every member is dropped.
func FilterSuperseded(candidates []Candidate) []Candidate {
	if len(candidates) == 0 {
		return nil
	}

	suppress := make([][]string, len(candidates))
	for i, c := range candidates {
		suppress[i] = supersededBy(c.Handler)
	}
	supersedes := func(i, j int) bool {
		return slices.Contains(suppress[i], candidates[j].Category())
	}

	out := make([]Candidate, 0, len(candidates))
	for j, c := range candidates {
		if supersedes(j, j) {
			continue
		}
		dropped := false
		for i := range candidates {
			if i == j || !supersedes(i, j) {
				continue
			}
			if supersedes(j, i) && c.Rank < candidates[i].Rank {
				continue
			}
			dropped = true
			break
		}
		if !dropped {
			out = append(out, c)
		}
	}
	return out
}
