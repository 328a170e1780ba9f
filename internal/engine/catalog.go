package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Day is Monday..Sunday, zero-indexed. Only Mon..Fri are ever user-facing,
// but the mask and every operation below tolerate all seven.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (d Day) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// TimeSlot is a single weekly occupied interval on a 5-minute grid.
// Half-open: [Start, End). Room is free-form metadata, never used for
// conflict detection.
type TimeSlot struct {
	Day   Day
	Start int // minutes since 00:00
	End   int // minutes since 00:00
	Room  string
}

// String renders the slot as "Mon 09:00~10:30", the canonical form used in
// the content-hash signature (§4.5).
func (t TimeSlot) String() string {
	return fmt.Sprintf("%s %s~%s", t.Day, minutesToHHMM(t.Start), minutesToHHMM(t.End))
}

func minutesToHHMM(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func (t TimeSlot) aligned() bool {
	return t.Start%minutesPerSlot == 0 && t.End%minutesPerSlot == 0
}

func (t TimeSlot) valid() bool {
	return t.Start >= 0 && t.End <= 24*60 && t.Start < t.End
}

// Course is an immutable catalog record. TimeMask is precomputed once at
// construction and never recomputed; nothing in the engine mutates a Course.
type Course struct {
	ID          string
	Name        string
	Credits     int
	Professor   string
	TimeSlots   []TimeSlot
	Category    string
	TargetGrade string
	TimeMask    WeekMask
}

// NewCourse builds a Course and computes its TimeMask from TimeSlots. It
// does not validate alignment or bounds; CompileConstraints validates the
// whole catalog up front so every malformed slot is reported together.
func NewCourse(id, name string, credits int, professor string, slots []TimeSlot, category, targetGrade string) Course {
	var mask WeekMask
	for _, s := range slots {
		mask.setRange(slotIndex(int(s.Day), s.Start), slotIndex(int(s.Day), s.End))
	}
	return Course{
		ID:          id,
		Name:        name,
		Credits:     credits,
		Professor:   professor,
		TimeSlots:   slots,
		Category:    category,
		TargetGrade: targetGrade,
		TimeMask:    mask,
	}
}

// timeSummary joins the course's slots in declaration order, the exact
// fragment the content hash signature embeds after "name|professor|".
func (c Course) timeSummary() string {
	parts := make([]string, len(c.TimeSlots))
	for i, s := range c.TimeSlots {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

// signature is the per-course fragment of the content-hash key (§4.5).
func (c Course) signature() string {
	return c.Name + "|" + c.Professor + "|" + c.timeSummary()
}

// buildCatalogIndex indexes courses by id for O(1) lookup during filter
// matching and alignment validation; misaligned slots are reported once,
// sorted by course id, so a bad catalog fails with a stable message.
func buildCatalogIndex(catalog []Course) (map[string]Course, error) {
	index := make(map[string]Course, len(catalog))
	var misaligned []string
	var invalid []string
	for _, c := range catalog {
		index[c.ID] = c
		if c.TimeMask.isZero() {
			invalid = append(invalid, fmt.Sprintf("%s: zero time_mask", c.ID))
			continue
		}
		for _, s := range c.TimeSlots {
			if !s.valid() || !s.aligned() {
				misaligned = append(misaligned, fmt.Sprintf("%s: %s", c.ID, s))
			}
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, newError(KindInvalidCourse, strings.Join(invalid, "; "))
	}
	if len(misaligned) > 0 {
		sort.Strings(misaligned)
		return nil, newError(KindMisalignedTime, strings.Join(misaligned, "; "))
	}
	return index, nil
}
