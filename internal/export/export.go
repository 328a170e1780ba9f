// Package export renders generated schedules to the two on-disk formats
// spec §6 names as out-of-core but implementer-shippable: an HTML weekly
// grid per schedule, and a CSV summary with one row per course of each
// schedule.
package export

import (
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/classwise/timetabler/internal/engine"
	"github.com/classwise/timetabler/pkg/export"
)

var gridTemplate = template.Must(template.New("grid").Parse(`
<table class="schedule" border="1">
<caption>{{.Credits}} credits{{if .RandomFilled}} (random-filled){{end}}</caption>
<tr><th>Day</th><th>Time</th><th>Course</th><th>Professor</th><th>Room</th></tr>
{{range .Rows}}<tr><td>{{.Day}}</td><td>{{.Time}}</td><td>{{.Course}}</td><td>{{.Professor}}</td><td>{{.Room}}</td></tr>
{{end}}</table>
`))

type gridRow struct {
	Day, Time, Course, Professor, Room string
}

type gridView struct {
	Credits      int
	RandomFilled bool
	Rows         []gridRow
}

// WriteHTML renders one weekly grid per schedule to w.
func WriteHTML(w io.Writer, schedules []engine.Schedule) error {
	for _, s := range schedules {
		view := gridView{Credits: s.TotalCredits, RandomFilled: s.RandomFilled}
		for _, c := range s.Courses {
			for _, slot := range c.TimeSlots {
				view.Rows = append(view.Rows, gridRow{
					Day:       slot.Day.String(),
					Time:      fmt.Sprintf("%02d:%02d~%02d:%02d", slot.Start/60, slot.Start%60, slot.End/60, slot.End%60),
					Course:    c.Name,
					Professor: c.Professor,
					Room:      slot.Room,
				})
			}
		}
		if err := gridTemplate.Execute(w, view); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSVSummary renders one summary row per course of each schedule
// (1-based schedule number, course id, name, credits, time summary) using
// the teacher's tabular CSV exporter.
func WriteCSVSummary(w io.Writer, schedules []engine.Schedule) error {
	exporter := export.NewCSVExporter()
	headers := []string{"schedule", "course_id", "name", "credits", "time_summary"}
	rows := make([]map[string]string, 0)
	for i, s := range schedules {
		for _, c := range s.Courses {
			summary := ""
			for j, slot := range c.TimeSlots {
				if j > 0 {
					summary += ", "
				}
				summary += slot.String()
			}
			rows = append(rows, map[string]string{
				"schedule":     strconv.Itoa(i + 1),
				"course_id":    c.ID,
				"name":         c.Name,
				"credits":      strconv.Itoa(c.Credits),
				"time_summary": summary,
			})
		}
	}
	data, err := exporter.Render(export.Dataset{Headers: headers, Rows: rows})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
