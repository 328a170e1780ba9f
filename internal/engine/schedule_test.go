package engine

import "testing"

func TestAddRemoveRoundTrip(t *testing.T) {
	s := newSchedule()
	a := NewCourse("a", "Math", 3, "Kim", []TimeSlot{{Day: Monday, Start: 540, End: 630}}, "", "")
	b := NewCourse("b", "Eng", 3, "Lee", []TimeSlot{{Day: Tuesday, Start: 540, End: 630}}, "", "")

	if !s.addCourse(a) {
		t.Fatal("expected a to be added")
	}
	wantMask, wantCredits := s.UnionMask, s.TotalCredits

	if !s.addCourse(b) {
		t.Fatal("expected b to be added")
	}
	s.removeCourse(b)

	if s.UnionMask != wantMask || s.TotalCredits != wantCredits {
		t.Fatalf("remove did not restore state: mask=%v credits=%d", s.UnionMask, s.TotalCredits)
	}
	if _, present := s.names["Eng"]; present {
		t.Fatal("removed course name should no longer be tracked")
	}
}

func TestAddCourseRejectsConflict(t *testing.T) {
	s := newSchedule()
	a := NewCourse("a", "Math", 3, "", []TimeSlot{{Day: Monday, Start: 540, End: 630}}, "", "")
	b := NewCourse("b", "Eng", 3, "", []TimeSlot{{Day: Monday, Start: 600, End: 660}}, "", "")
	s.addCourse(a)
	if s.addCourse(b) {
		t.Fatal("expected conflicting course to be rejected")
	}
}

func TestAddCourseRejectsDuplicateName(t *testing.T) {
	s := newSchedule()
	a := NewCourse("a", "Math", 3, "Kim", []TimeSlot{{Day: Monday, Start: 540, End: 630}}, "", "")
	b := NewCourse("b", "Math", 3, "Lee", []TimeSlot{{Day: Tuesday, Start: 540, End: 630}}, "", "")
	s.addCourse(a)
	if s.addCourse(b) {
		t.Fatal("expected duplicate-name course to be rejected")
	}
}

func TestContentHashInvariantUnderReordering(t *testing.T) {
	a := NewCourse("a", "Math", 3, "Kim", []TimeSlot{{Day: Monday, Start: 540, End: 630}}, "", "")
	b := NewCourse("b", "Eng", 3, "Lee", []TimeSlot{{Day: Tuesday, Start: 540, End: 630}}, "", "")

	h1 := contentHashOf([]Course{a, b})
	h2 := contentHashOf([]Course{b, a})
	if h1 != h2 {
		t.Fatalf("content hash must be order-independent: %q != %q", h1, h2)
	}
}

func TestContentHashDistinguishesDifferentSchedules(t *testing.T) {
	a := NewCourse("a", "Math", 3, "Kim", []TimeSlot{{Day: Monday, Start: 540, End: 630}}, "", "")
	c := NewCourse("c", "Physics", 3, "Park", []TimeSlot{{Day: Wednesday, Start: 540, End: 630}}, "", "")
	if contentHashOf([]Course{a}) == contentHashOf([]Course{c}) {
		t.Fatal("distinct schedules must not collide")
	}
}
