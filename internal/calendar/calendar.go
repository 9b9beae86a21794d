// Package calendar builds the month grid shown by the agenda.
package calendar

import (
	"fmt"
	"time"

	"github.com/julianstephens/diario/internal/constants"
	"github.com/julianstephens/diario/internal/datekey"
)

// EntrySource answers whether a day has a diary entry.
type EntrySource interface {
	HasEntry(key string) bool
}

// EventSource is optionally implemented by an EntrySource to mark days with
// events.
type EventSource interface {
	EventCount(key string) int
}

type Day struct {
	Day      int
	Key      string
	HasEntry bool
	IsToday  bool
	Events   int
}

// Grid is one month laid out Sunday-first. Leading is the number of blank
// cells before the 1st.
type Grid struct {
	Year    int
	Month   time.Month
	Leading int
	Days    []Day
}

func Build(year int, month time.Month, src EntrySource, today time.Time) Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	year, month = first.Year(), first.Month()

	events, _ := src.(EventSource)
	n := datekey.DaysIn(year, month)
	g := Grid{
		Year:    year,
		Month:   month,
		Leading: int(first.Weekday()),
		Days:    make([]Day, 0, n),
	}

	for day := 1; day <= n; day++ {
		key := datekey.FromDate(year, month, day)
		d := Day{
			Day:     day,
			Key:     key,
			IsToday: today.Year() == year && today.Month() == month && today.Day() == day,
		}
		if src != nil {
			d.HasEntry = src.HasEntry(key)
		}
		if events != nil {
			d.Events = events.EventCount(key)
		}
		g.Days = append(g.Days, d)
	}
	return g
}

// Weeks splits the grid into rows of seven cells; blank cells are nil.
func (g Grid) Weeks() [][]*Day {
	var weeks [][]*Day
	week := make([]*Day, 0, 7)
	for i := 0; i < g.Leading; i++ {
		week = append(week, nil)
	}
	for i := range g.Days {
		week = append(week, &g.Days[i])
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]*Day, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, nil)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

var weekdayNames = [...]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return fmt.Sprintf("%%!Month(%d)", int(m))
	}
	return monthNames[m-1]
}

func WeekdayName(d time.Weekday) string {
	return weekdayNames[d%7]
}

// Title is the month header, e.g. "Março 2024".
func (g Grid) Title() string {
	return fmt.Sprintf("%s %d", MonthName(g.Month), g.Year)
}

// Cursor is the month currently displayed by the agenda.
type Cursor struct {
	Year  int
	Month time.Month
}

func NewCursor(t time.Time) Cursor {
	return Cursor{Year: t.Year(), Month: t.Month()}
}

// ParseMonth reads a YYYY-MM month.
func ParseMonth(s string) (Cursor, error) {
	t, err := time.Parse(constants.MonthFormat, s)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid month %q, use YYYY-MM", s)
	}
	return NewCursor(t), nil
}

// Shift moves the cursor by n months, rolling the year over as needed.
func (c *Cursor) Shift(n int) {
	t := time.Date(c.Year, c.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	c.Year, c.Month = t.Year(), t.Month()
}

func (c *Cursor) Today(now time.Time) {
	*c = NewCursor(now)
}

func (c Cursor) String() string {
	return fmt.Sprintf("%04d-%02d", c.Year, int(c.Month))
}
