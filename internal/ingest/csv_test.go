package ingest

import (
	"strings"
	"testing"
)

func TestParseCatalogBasicRow(t *testing.T) {
	csv := `A,Math,3,Kim,Mon 09:00~10:30(101),all,1
B,Eng,3,Lee,Tue 10:00~11:30 Thu 10:00~11:30,all,1
`
	courses, err := ParseCatalog(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(courses))
	}
	if courses[0].ID != "A" || courses[0].Credits != 3 {
		t.Fatalf("unexpected first course: %+v", courses[0])
	}
	if len(courses[1].TimeSlots) != 2 {
		t.Fatalf("expected 2 time slots for repeated time string, got %d", len(courses[1].TimeSlots))
	}
	if courses[0].TimeSlots[0].Room != "101" {
		t.Fatalf("expected room 101, got %q", courses[0].TimeSlots[0].Room)
	}
}

func TestParseCatalogRejectsBadColumnCount(t *testing.T) {
	_, err := ParseCatalog(strings.NewReader("A,Math,3\n"))
	if err == nil {
		t.Fatal("expected error for short row")
	}
}

func TestParseCatalogRejectsUnknownDay(t *testing.T) {
	_, err := ParseCatalog(strings.NewReader("A,Math,3,Kim,Xyz 09:00~10:30,all,1\n"))
	if err == nil {
		t.Fatal("expected error for unknown day token")
	}
}
