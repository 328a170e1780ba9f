package engine

import "sort"

// sortDesireCandidates applies the most-restrictive-variable / largest-item-
// first heuristic (§4.3 step 5): highest credits first, then fewest time
// slots first, so the DFS accrues credit fast and prunes fast.
func sortDesireCandidates(courses []Course) {
	sort.SliceStable(courses, func(i, j int) bool {
		if courses[i].Credits != courses[j].Credits {
			return courses[i].Credits > courses[j].Credits
		}
		return len(courses[i].TimeSlots) < len(courses[j].TimeSlots)
	})
}
