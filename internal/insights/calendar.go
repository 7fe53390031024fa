package insights

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/agencyd/internal/model"
)

type CalendarFilter string

const (
	FilterAll      CalendarFilter = "all"
	FilterMeetings CalendarFilter = "meetings"
	FilterTasks    CalendarFilter = "tasks"
)

var CalendarFilters = []CalendarFilter{FilterAll, FilterMeetings, FilterTasks}

func (f CalendarFilter) Next() CalendarFilter {
	switch f {
	case FilterAll:
		return FilterMeetings
	case FilterMeetings:
		return FilterTasks
	default:
		return FilterAll
	}
}

func ParseCalendarFilter(raw string) (CalendarFilter, error) {
	f := CalendarFilter(strings.ToLower(strings.TrimSpace(raw)))
	switch f {
	case FilterAll, FilterMeetings, FilterTasks:
		return f, nil
	case "":
		return FilterAll, nil
	default:
		return "", fmt.Errorf("invalid calendar filter %q", raw)
	}
}

func (f CalendarFilter) showsTasks() bool    { return f != FilterMeetings }
func (f CalendarFilter) showsMeetings() bool { return f != FilterTasks }

type Day struct {
	// Date is zero for the leading blank cells.
	Date     time.Time
	Tasks    []model.Task
	Meetings []model.Meeting
}

func (d Day) Blank() bool {
	return d.Date.IsZero()
}

type MonthGrid struct {
	Year  int
	Month time.Month
	// Cells starts with one blank per weekday before the 1st (Sunday first).
	Cells []Day
}

// Month lays out the month containing anchor. Times are compared in anchor's
// location.
func Month(data model.Dataset, anchor time.Time, filter CalendarFilter) MonthGrid {
	loc := anchor.Location()
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, loc)
	daysIn := first.AddDate(0, 1, -1).Day()

	grid := MonthGrid{Year: first.Year(), Month: first.Month()}
	grid.Cells = make([]Day, int(first.Weekday()), int(first.Weekday())+daysIn)
	for d := 0; d < daysIn; d++ {
		grid.Cells = append(grid.Cells, Agenda(data, first.AddDate(0, 0, d), filter))
	}
	return grid
}

// Agenda returns the tasks due and meetings held on day's calendar date.
func Agenda(data model.Dataset, day time.Time, filter CalendarFilter) Day {
	loc := day.Location()
	out := Day{Date: time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)}
	if filter.showsTasks() {
		for _, t := range data.Tasks {
			if !t.DueDate.IsZero() && SameDay(t.DueDate.In(loc), day) {
				out.Tasks = append(out.Tasks, t.Clone())
			}
		}
	}
	if filter.showsMeetings() {
		for _, m := range data.Meetings {
			if SameDay(m.Time.In(loc), day) {
				out.Meetings = append(out.Meetings, m)
			}
		}
	}
	return out
}
