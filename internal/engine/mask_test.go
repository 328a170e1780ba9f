package engine

import "testing"

func TestSlotIndexAndMask(t *testing.T) {
	c := NewCourse("c1", "Math", 3, "Kim", []TimeSlot{
		{Day: Monday, Start: 9 * 60, End: 10*60 + 30},
	}, "", "")

	wantSlots := 90 / minutesPerSlot
	if got := c.TimeMask.popcount(); got != wantSlots {
		t.Fatalf("popcount = %d, want %d", got, wantSlots)
	}
}

func TestConflictsDetectsOverlap(t *testing.T) {
	a := NewCourse("a", "A", 3, "", []TimeSlot{{Day: Monday, Start: 540, End: 630}}, "", "")
	b := NewCourse("b", "B", 3, "", []TimeSlot{{Day: Monday, Start: 600, End: 660}}, "", "")
	c := NewCourse("c", "C", 3, "", []TimeSlot{{Day: Tuesday, Start: 540, End: 630}}, "", "")

	if !conflicts(a.TimeMask, b.TimeMask) {
		t.Fatal("expected a and b to conflict")
	}
	if conflicts(a.TimeMask, c.TimeMask) {
		t.Fatal("expected a and c (different day) not to conflict")
	}
}

func TestUnionAndSubtractAreInverse(t *testing.T) {
	a := NewCourse("a", "A", 3, "", []TimeSlot{{Day: Monday, Start: 540, End: 630}}, "", "")
	b := NewCourse("b", "B", 3, "", []TimeSlot{{Day: Tuesday, Start: 600, End: 660}}, "", "")

	u := unionMask(a.TimeMask, b.TimeMask)
	back := subtractMask(u, b.TimeMask)
	if back != a.TimeMask {
		t.Fatalf("subtract(union(a,b), b) != a")
	}
}

func TestHalfOpenBoundary(t *testing.T) {
	// A course ending exactly at 10:00 and one starting at 10:00 must not conflict.
	a := NewCourse("a", "A", 3, "", []TimeSlot{{Day: Monday, Start: 540, End: 600}}, "", "")
	b := NewCourse("b", "B", 3, "", []TimeSlot{{Day: Monday, Start: 600, End: 660}}, "", "")
	if conflicts(a.TimeMask, b.TimeMask) {
		t.Fatal("half-open adjacent slots must not conflict")
	}
}
