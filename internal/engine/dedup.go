package engine

import (
	"sort"
	"strings"
)

// contentHashOf computes the canonical sorted-multiset signature over a
// course list (§4.5, §6 "Content-hash canonical format"). Two schedules
// with the same set of {name, professor, time} strings are the same
// observable timetable regardless of which requirement group produced
// which course, or the order courses were added.
func contentHashOf(courses []Course) string {
	sigs := make([]string, len(courses))
	for i, c := range courses {
		sigs[i] = c.signature()
	}
	sort.Strings(sigs)
	return strings.Join(sigs, "\n")
}
