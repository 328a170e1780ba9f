package configstore

import (
	"bytes"
	"testing"

	"github.com/classwise/timetabler/internal/engine"
)

func TestRoundTrip(t *testing.T) {
	original := Defaults()
	original.Required = append(original.Required, engine.Filter{Name: "Math"})
	original.ExcludedDays = append(original.ExcludedDays, engine.Saturday)

	var buf bytes.Buffer
	if err := Save(&buf, original); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(&buf)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.MinCredits != original.MinCredits || got.MaxCredits != original.MaxCredits {
		t.Fatalf("credit window mismatch: %+v vs %+v", got, original)
	}
	if len(got.Required) != 1 || got.Required[0].Name != "Math" {
		t.Fatalf("required filter not round-tripped: %+v", got.Required)
	}
}

func TestLoadEmptyYieldsDefaults(t *testing.T) {
	got, err := Load(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Defaults()
	if got.MinCredits != want.MinCredits || got.MaxCredits != want.MaxCredits {
		t.Fatalf("expected defaults, got %+v", got)
	}
}
