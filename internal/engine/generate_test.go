package engine

import (
	"reflect"
	"testing"
)

func mkCourse(id, name string, credits int, professor string, day Day, start, end int) Course {
	return NewCourse(id, name, credits, professor, []TimeSlot{{Day: day, Start: start, End: end}}, "", "")
}

// Scenario A — minimal success.
func TestGenerateScenarioAMinimalSuccess(t *testing.T) {
	catalog := []Course{
		mkCourse("A", "Math", 3, "", Monday, 9*60, 10*60+30),
		mkCourse("B", "Eng", 3, "", Tuesday, 10*60, 11*60+30),
		mkCourse("C", "Phys", 3, "", Wednesday, 13*60, 15*60),
	}
	cfg := Configuration{
		MinCredits: 6,
		MaxCredits: 9,
		Required:   []Filter{{Name: "Math"}},
		Desired:    []Filter{{Name: "Eng"}, {Name: "Phys"}},
	}
	results, err := Generate(catalog, cfg, Options{Seed: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one schedule")
	}
	for _, s := range results {
		hasMath := false
		for _, c := range s.Courses {
			if c.Name == "Math" {
				hasMath = true
			}
		}
		if !hasMath {
			t.Fatal("every schedule must contain Math")
		}
		if s.TotalCredits != 6 && s.TotalCredits != 9 {
			t.Fatalf("total credits %d not in {6,9}", s.TotalCredits)
		}
	}
}

// Scenario B — conflict pruning: Math+Eng never coexist.
func TestGenerateScenarioBConflictPruning(t *testing.T) {
	catalog := []Course{
		mkCourse("M1", "Math", 3, "", Monday, 9*60, 10*60+30),
		mkCourse("M2", "MathB", 3, "", Monday, 10*60, 11*60+30),
		mkCourse("E", "Eng", 3, "", Monday, 10*60, 12*60),
	}
	cfg := Configuration{
		MinCredits: 3,
		MaxCredits: 6,
		Required:   []Filter{{Name: "Math"}},
		Desired:    []Filter{{Name: "Eng"}},
	}
	results, err := Generate(catalog, cfg, Options{Seed: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range results {
		for i := 0; i < len(s.Courses); i++ {
			for j := i + 1; j < len(s.Courses); j++ {
				if conflicts(s.Courses[i].TimeMask, s.Courses[j].TimeMask) {
					t.Fatalf("returned schedule has a mask conflict: %+v", s)
				}
			}
		}
	}
}

// Scenario C — forbidden interval never appears in any result.
func TestGenerateScenarioCForbiddenInterval(t *testing.T) {
	catalog := []Course{
		mkCourse("A", "Math", 3, "", Monday, 9*60, 10*60+30),
		mkCourse("B", "Eng", 3, "", Monday, 10*60, 11*60),
	}
	cfg := Configuration{
		MinCredits:        3,
		MaxCredits:        6,
		Required:          []Filter{{Name: "Math"}},
		Desired:           []Filter{{Name: "Eng"}},
		ExcludedIntervals: []ExcludedInterval{{Day: Monday, Start: 9 * 60, End: 11 * 60}},
	}
	results, err := Generate(catalog, cfg, Options{Seed: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	forbidden := buildForbiddenMask(cfg)
	for _, s := range results {
		for _, c := range s.Courses {
			if conflicts(forbidden, c.TimeMask) {
				t.Fatalf("course %s intersects forbidden interval", c.ID)
			}
		}
	}
}

// Scenario D — name-duplicate prevention: two sections of "Math" never
// co-occur in the same schedule.
func TestGenerateScenarioDNameDuplicatePrevention(t *testing.T) {
	catalog := []Course{
		mkCourse("M1", "Math", 3, "Kim", Monday, 9*60, 10*60+30),
		mkCourse("M2", "Math", 3, "Lee", Tuesday, 9*60, 10*60+30),
	}
	cfg := Configuration{
		MinCredits: 0,
		MaxCredits: 6,
		Desired:    []Filter{{Name: "Math"}},
		Required:   []Filter{{ID: "M1"}},
	}
	results, err := Generate(catalog, cfg, Options{Seed: 11})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range results {
		seen := map[string]bool{}
		for _, c := range s.Courses {
			if seen[c.Name] {
				t.Fatalf("duplicate course name %q in schedule", c.Name)
			}
			seen[c.Name] = true
		}
	}
}

// Scenario F — determinism: identical seed/catalog/config -> identical output.
func TestGenerateScenarioFDeterminism(t *testing.T) {
	catalog := []Course{
		mkCourse("A", "Math", 3, "", Monday, 9*60, 10*60+30),
		mkCourse("B", "Eng", 3, "", Tuesday, 10*60, 11*60+30),
		mkCourse("C", "Phys", 3, "", Wednesday, 13*60, 15*60),
		mkCourse("D", "Chem", 3, "", Thursday, 9*60, 10*60+30),
	}
	cfg := Configuration{
		MinCredits: 6,
		MaxCredits: 12,
		Required:   []Filter{{Name: "Math"}},
		Desired:    []Filter{{Name: "Eng"}, {Name: "Phys"}, {Name: "Chem"}},
	}
	opts := Options{Seed: 42}
	r1, err1 := Generate(catalog, cfg, opts)
	r2, err2 := Generate(catalog, cfg, opts)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v %v", err1, err2)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Fatal("identical seed/catalog/config must produce identical output")
	}
}

// Scenario C7 — random fill: the required course alone can never clear
// MinCredits with no desired candidates, so the controller must exhaust
// MaxPureFailures and transition Pure->Fill, producing a random_filled
// result drawn from the open-enrollment pool (AllGradesMarker).
func TestGenerateScenarioC7RandomFill(t *testing.T) {
	required := NewCourse("R", "Core", 3, "", []TimeSlot{{Day: Monday, Start: 9 * 60, End: 10*60 + 30}}, "", "")
	open1 := NewCourse("O1", "Open1", 3, "", []TimeSlot{{Day: Tuesday, Start: 9 * 60, End: 10*60 + 30}}, "Open", "")
	open2 := NewCourse("O2", "Open2", 3, "", []TimeSlot{{Day: Wednesday, Start: 9 * 60, End: 10*60 + 30}}, "Open", "")
	catalog := []Course{required, open1, open2}

	cfg := Configuration{
		MinCredits: 6,
		MaxCredits: 9,
		Required:   []Filter{{Name: "Core"}},
	}
	opts := Options{
		Seed:            13,
		Target:          3,
		MaxPureFailures: 1,
		AllGradesMarker: "Open",
	}
	results, err := Generate(catalog, cfg, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one filled schedule")
	}
	foundFilled := false
	for _, s := range results {
		if s.TotalCredits < cfg.MinCredits || s.TotalCredits > cfg.MaxCredits {
			t.Fatalf("schedule outside credit window: %+v", s)
		}
		if s.RandomFilled {
			foundFilled = true
		}
	}
	if !foundFilled {
		t.Fatal("expected at least one schedule with RandomFilled=true")
	}
}

func TestGenerateRequirementUnresolved(t *testing.T) {
	catalog := []Course{mkCourse("A", "Math", 3, "", Monday, 9*60, 10*60+30)}
	cfg := Configuration{MinCredits: 0, MaxCredits: 10, Required: []Filter{{Name: "Nonexistent"}}}
	_, err := Generate(catalog, cfg, Options{})
	engErr, ok := err.(*Error)
	if !ok || engErr.Kind != KindRequirementUnresolved {
		t.Fatalf("expected RequirementUnresolved, got %v", err)
	}
}

func TestGenerateRequirementsIncompatible(t *testing.T) {
	catalog := []Course{
		mkCourse("A", "Math", 3, "", Monday, 9*60, 10*60+30),
		mkCourse("B", "Eng", 3, "", Monday, 9*60+15, 10*60+30),
	}
	cfg := Configuration{
		MinCredits: 0,
		MaxCredits: 10,
		Required:   []Filter{{Name: "Math"}, {Name: "Eng"}},
	}
	_, err := Generate(catalog, cfg, Options{})
	engErr, ok := err.(*Error)
	if !ok || engErr.Kind != KindRequirementsIncompatible {
		t.Fatalf("expected RequirementsIncompatible, got %v", err)
	}
}

func TestGenerateInvalidCreditWindow(t *testing.T) {
	_, err := Generate(nil, Configuration{MinCredits: 10, MaxCredits: 5}, Options{})
	engErr, ok := err.(*Error)
	if !ok || engErr.Kind != KindInvalidCreditWindow {
		t.Fatalf("expected InvalidCreditWindow, got %v", err)
	}
}

func TestGenerateMisalignedTime(t *testing.T) {
	catalog := []Course{mkCourse("A", "Math", 3, "", Monday, 9*60+3, 10*60)}
	cfg := Configuration{MinCredits: 0, MaxCredits: 10, Required: []Filter{{Name: "Math"}}}
	_, err := Generate(catalog, cfg, Options{})
	engErr, ok := err.(*Error)
	if !ok || engErr.Kind != KindMisalignedTime {
		t.Fatalf("expected MisalignedTime, got %v", err)
	}
}

// Boundary: a single course with credits == C_min == C_max yields a
// length-1 schedule.
func TestGenerateSingleCourseExactWindow(t *testing.T) {
	catalog := []Course{mkCourse("A", "Math", 6, "", Monday, 9*60, 10*60+30)}
	cfg := Configuration{MinCredits: 6, MaxCredits: 6, Required: []Filter{{Name: "Math"}}}
	results, err := Generate(catalog, cfg, Options{Seed: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || len(results[0].Courses) != 1 {
		t.Fatalf("expected exactly one single-course schedule, got %+v", results)
	}
}

// Scenario E — saturation: a catalog with exactly 3 obtainable distinct
// schedules terminates well under the target and returns exactly 3.
func TestGenerateScenarioESaturation(t *testing.T) {
	catalog := []Course{
		mkCourse("R", "Core", 3, "", Monday, 9*60, 10*60+30),
		mkCourse("D1", "Opt1", 3, "", Tuesday, 9*60, 10*60+30),
		mkCourse("D2", "Opt2", 3, "", Wednesday, 9*60, 10*60+30),
		mkCourse("D3", "Opt3", 3, "", Thursday, 9*60, 10*60+30),
	}
	cfg := Configuration{
		MinCredits: 3,
		MaxCredits: 6,
		Required:   []Filter{{Name: "Core"}},
		Desired:    []Filter{{ID: "D1"}, {ID: "D2"}, {ID: "D3"}},
	}
	results, err := Generate(catalog, cfg, Options{Seed: 9, SaturationWindow: 5, SaturationThreshold: 1, MaxPureFailures: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 distinct schedules (Core with each Opt), got %d", len(results))
	}
}
