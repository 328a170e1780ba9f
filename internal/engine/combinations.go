package engine

import "sort"

// requiredCombinations enumerates every conflict-free choice of exactly one
// course per requirement group, via exhaustive backtracking in group
// declaration order (§4.4). The result is sorted by descending total
// credits; ties are left in discovery order.
func requiredCombinations(groups [][]Course) []Schedule {
	var bases []Schedule
	current := newSchedule()

	var backtrack func(idx int)
	backtrack = func(idx int) {
		if idx == len(groups) {
			bases = append(bases, current.clone())
			return
		}
		for _, candidate := range groups[idx] {
			if !current.addCourse(candidate) {
				continue
			}
			backtrack(idx + 1)
			current.removeCourse(candidate)
		}
	}
	backtrack(0)

	sort.SliceStable(bases, func(i, j int) bool {
		return bases[i].TotalCredits > bases[j].TotalCredits
	})
	return bases
}
