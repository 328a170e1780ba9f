package engine

// ExcludedInterval is a forbidden weekly interval on the same half-open,
// 5-minute-aligned grid as TimeSlot.
type ExcludedInterval struct {
	Day   Day
	Start int
	End   int
}

// Configuration is the host-supplied request (§3, §6 "config"). Required
// and Desired are ordered: requirement groups are resolved in declaration
// order by the combination enumerator (§4.4), and desire candidates inherit
// catalog order before the heuristic sort reorders them.
type Configuration struct {
	MinCredits        int
	MaxCredits        int
	Required          []Filter
	Desired           []Filter
	ExcludedDays      []Day
	ExcludedIntervals []ExcludedInterval
}

// CompiledConstraints is the immutable, read-only-after-compile product of
// compileConstraints (§4.3/§3). Nothing downstream mutates it; the search
// only reads from it.
type CompiledConstraints struct {
	MinCredits        int
	MaxCredits        int
	ForbiddenMask     WeekMask
	RequirementGroups [][]Course
	DesireCandidates  []Course
	OpenPool          []Course
}
