package engine

// Schedule is a partial or complete timetable under construction. The
// search owns one Schedule per DFS frame and mutates it in place via
// addCourse/removeCourse, which are exact inverses; a Schedule is only ever
// deep-copied at acceptance into the result store.
type Schedule struct {
	Courses      []Course
	TotalCredits int
	names        map[string]struct{}
	UnionMask    WeekMask
	RandomFilled bool
}

func newSchedule() *Schedule {
	return &Schedule{names: make(map[string]struct{})}
}

// addCourse attempts to add c. It fails (returns false, no mutation) if c
// conflicts with the union mask or duplicates a course name already present.
func (s *Schedule) addCourse(c Course) bool {
	if _, dup := s.names[c.Name]; dup {
		return false
	}
	if conflicts(s.UnionMask, c.TimeMask) {
		return false
	}
	s.Courses = append(s.Courses, c)
	s.TotalCredits += c.Credits
	s.names[c.Name] = struct{}{}
	s.UnionMask = unionMask(s.UnionMask, c.TimeMask)
	return true
}

// removeCourse undoes the most recent addCourse(c) call. Callers must
// remove in exact LIFO order relative to their own adds (the DFS frame
// discipline guarantees this); it is not a general list-remove.
func (s *Schedule) removeCourse(c Course) {
	last := len(s.Courses) - 1
	s.Courses = s.Courses[:last]
	s.TotalCredits -= c.Credits
	delete(s.names, c.Name)
	s.UnionMask = subtractMask(s.UnionMask, c.TimeMask)
}

// clone deep-copies the schedule for handoff to the result store; after
// clone, the original and the clone share no mutable state.
func (s *Schedule) clone() Schedule {
	courses := make([]Course, len(s.Courses))
	copy(courses, s.Courses)
	names := make(map[string]struct{}, len(s.names))
	for k := range s.names {
		names[k] = struct{}{}
	}
	return Schedule{
		Courses:      courses,
		TotalCredits: s.TotalCredits,
		names:        names,
		UnionMask:    s.UnionMask,
		RandomFilled: s.RandomFilled,
	}
}

// contentHash is the canonical dedup key (§4.5): the sorted multiset of
// "name|professor|time" signatures, joined so two schedules with the same
// observable courses in different internal order compare equal.
func (s *Schedule) contentHash() string {
	return contentHashOf(s.Courses)
}
