package engine

import "testing"

func TestFilterIDShortcircuits(t *testing.T) {
	catalog := []Course{
		NewCourse("m1", "Algebra", 3, "Kim", nil, "", ""),
		NewCourse("m2", "Calculus", 3, "Lee", nil, "", ""),
	}
	f := Filter{ID: "m2", Name: "Algebra"}
	got := matchAll(f, catalog)
	if len(got) != 1 || got[0].ID != "m2" {
		t.Fatalf("expected id shortcircuit to return m2, got %+v", got)
	}
}

func TestFilterKeywordsAreANDed(t *testing.T) {
	catalog := []Course{
		NewCourse("1", "Math Analysis", 3, "Kim Professor", nil, "", ""),
		NewCourse("2", "Math Analysis", 3, "Lee Professor", nil, "", ""),
	}
	f := Filter{Name: "Math Analysis", Professor: "Kim"}
	got := matchAll(f, catalog)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected only course 1, got %+v", got)
	}
}

func TestFilterDoesNotLowercase(t *testing.T) {
	catalog := []Course{
		NewCourse("1", "수학", 3, "김교수", nil, "", ""),
	}
	f := Filter{Name: "수학"}
	if got := matchAll(f, catalog); len(got) != 1 {
		t.Fatalf("expected CJK substring match to succeed, got %+v", got)
	}
}

func TestEmptyFilterIsEmpty(t *testing.T) {
	if !(Filter{}).empty() {
		t.Fatal("zero-value filter must be empty")
	}
	if (Filter{Name: "x"}).empty() {
		t.Fatal("filter with a name predicate must not be empty")
	}
}
