// Package ingest reads the catalog CSV format (§6 "CLI / wire / file
// formats"): course-id, name, credits, professor, a time-string with
// pattern "DAY HH:MM~HH:MM (ROOM)" possibly repeated whitespace-separated,
// category, target-grade.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/classwise/timetabler/internal/engine"
	appErrors "github.com/classwise/timetabler/pkg/errors"
)

var dayIndex = map[string]engine.Day{
	"Mon": engine.Monday, "Tue": engine.Tuesday, "Wed": engine.Wednesday,
	"Thu": engine.Thursday, "Fri": engine.Friday, "Sat": engine.Saturday, "Sun": engine.Sunday,
}

const csvColumnCount = 7

// ParseCatalog reads a catalog CSV (no header row) from r and builds the
// engine's immutable Course list. Each malformed row is reported with its
// 1-based line number so a bad upload fails with a precise location.
func ParseCatalog(r io.Reader) ([]engine.Course, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var courses []engine.Course
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed catalog CSV")
		}
		line++
		course, err := parseRow(record)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("catalog row %d: %v", line, err))
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func parseRow(record []string) (engine.Course, error) {
	if len(record) < csvColumnCount {
		return engine.Course{}, fmt.Errorf("expected %d columns, got %d", csvColumnCount, len(record))
	}
	id, name, creditsRaw, professor, timeStr, category, grade := record[0], record[1], record[2], record[3], record[4], record[5], record[6]

	credits, err := strconv.Atoi(strings.TrimSpace(creditsRaw))
	if err != nil {
		return engine.Course{}, fmt.Errorf("invalid credits %q: %w", creditsRaw, err)
	}

	slots, err := parseTimeString(timeStr)
	if err != nil {
		return engine.Course{}, err
	}

	return engine.NewCourse(id, name, credits, professor, slots, category, grade), nil
}

// parseTimeString parses one or more whitespace-separated
// "DAY HH:MM~HH:MM(ROOM)" entries, where "(ROOM)" is optional and may also
// follow the time range after a space.
func parseTimeString(s string) ([]engine.TimeSlot, error) {
	var slots []engine.TimeSlot
	fields := strings.Fields(s)
	for i := 0; i < len(fields); i += 2 {
		if i+1 >= len(fields) {
			return nil, fmt.Errorf("malformed time token %q", fields[i])
		}
		tok := fields[i] + " " + fields[i+1]
		if i+2 < len(fields) && strings.HasPrefix(fields[i+2], "(") {
			tok += fields[i+2]
			i++
		}
		slot, err := parseTimeToken(tok)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("empty time string")
	}
	return slots, nil
}

func parseTimeToken(tok string) (engine.TimeSlot, error) {
	room := ""
	if i := strings.IndexByte(tok, '('); i >= 0 && strings.HasSuffix(tok, ")") {
		room = tok[i+1 : len(tok)-1]
		tok = tok[:i]
	}
	parts := strings.SplitN(tok, " ", 2)
	if len(parts) != 2 {
		return engine.TimeSlot{}, fmt.Errorf("malformed time token %q", tok)
	}
	day, ok := dayIndex[parts[0]]
	if !ok {
		return engine.TimeSlot{}, fmt.Errorf("unknown day %q", parts[0])
	}
	bounds := strings.SplitN(parts[1], "~", 2)
	if len(bounds) != 2 {
		return engine.TimeSlot{}, fmt.Errorf("malformed time range %q", parts[1])
	}
	start, err := parseHHMM(bounds[0])
	if err != nil {
		return engine.TimeSlot{}, err
	}
	end, err := parseHHMM(bounds[1])
	if err != nil {
		return engine.TimeSlot{}, err
	}
	return engine.TimeSlot{Day: day, Start: start, End: end, Room: room}, nil
}

func parseHHMM(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed HH:MM %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed minute in %q: %w", s, err)
	}
	return h*60 + m, nil
}
