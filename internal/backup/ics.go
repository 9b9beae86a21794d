package backup

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/julianstephens/diario/internal/constants"
	"github.com/julianstephens/diario/internal/datekey"
	"github.com/julianstephens/diario/internal/logger"
	"github.com/julianstephens/diario/internal/models"
)

const (
	icsDateTime    = "20060102T150405"
	icsDateTimeUTC = "20060102T150405Z"
	icsDate        = "20060102"
	productID      = "-//julianstephens//diario//PT"
)

// EventStore is the part of the diary the iCalendar exchange needs.
type EventStore interface {
	EventKeys() []string
	GetEvents(key string) []models.Event
	AddEvent(date string, event models.Event) (models.Event, error)
}

// ExportICS writes every event as a VEVENT. Events with an HH:MM time become
// timed events of constants.DefaultEventDuration; all others are all-day.
func ExportICS(store EventStore, w io.Writer) (int, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	count := 0
	for _, key := range store.EventKeys() {
		day, err := datekey.Date(key, time.Local)
		if err != nil {
			logger.Warn("Skipping events with malformed day", "key", key)
			continue
		}
		for _, ev := range store.GetEvents(key) {
			id := ev.ID
			if id == "" {
				id = fmt.Sprintf("%s-%d@%s", key, ev.CreatedAt.Unix(), constants.AppName)
			}
			vevent := cal.AddEvent(id)
			vevent.SetDtStampTime(ev.CreatedAt.UTC())
			vevent.SetSummary(ev.Title)
			if ev.Description != "" {
				vevent.SetDescription(ev.Description)
			}

			if hm, err := time.ParseInLocation(constants.TimeFormat, strings.TrimSpace(ev.Time), time.Local); err == nil {
				start := time.Date(day.Year(), day.Month(), day.Day(), hm.Hour(), hm.Minute(), 0, 0, time.Local)
				vevent.SetStartAt(start)
				vevent.SetEndAt(start.Add(constants.DefaultEventDuration))
			} else {
				vevent.SetAllDayStartAt(day)
				vevent.SetAllDayEndAt(day.AddDate(0, 0, 1))
			}
			count++
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return count, fmt.Errorf("failed to write calendar: %w", err)
	}
	return count, nil
}

// ImportICS appends every VEVENT with a summary to its start day. Events
// whose UID is already present on that day are skipped, so importing the
// same file twice is harmless. Returns imported and skipped counts.
func ImportICS(store EventStore, r io.Reader) (int, int, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse calendar: %w", err)
	}

	imported, skipped := 0, 0
	for _, vevent := range cal.Events() {
		summary := vevent.GetProperty(ical.ComponentPropertySummary)
		start := vevent.GetProperty(ical.ComponentPropertyDtStart)
		if summary == nil || strings.TrimSpace(summary.Value) == "" || start == nil {
			skipped++
			continue
		}

		at, allDay, err := parseStart(start)
		if err != nil {
			logger.Warn("Skipping event with unreadable start", "uid", vevent.Id(), "value", start.Value)
			skipped++
			continue
		}
		key := datekey.Encode(at)

		if id := vevent.Id(); id != "" && hasEvent(store, key, id) {
			skipped++
			continue
		}

		ev := models.Event{ID: vevent.Id(), Title: summary.Value}
		if !allDay {
			ev.Time = at.Format(constants.TimeFormat)
		}
		if desc := vevent.GetProperty(ical.ComponentPropertyDescription); desc != nil {
			ev.Description = desc.Value
		}

		if _, err := store.AddEvent(key, ev); err != nil {
			return imported, skipped, err
		}
		imported++
	}
	return imported, skipped, nil
}

// parseStart reads a DTSTART value as local time. Date-only values are
// all-day events.
func parseStart(prop *ical.IANAProperty) (time.Time, bool, error) {
	v := strings.TrimSpace(prop.Value)

	loc := time.Local
	if tzid, ok := prop.ICalParameters["TZID"]; ok && len(tzid) > 0 {
		if l, err := time.LoadLocation(tzid[0]); err == nil {
			loc = l
		}
	}

	if t, err := time.Parse(icsDateTimeUTC, v); err == nil {
		return t.In(time.Local), false, nil
	}
	if t, err := time.ParseInLocation(icsDateTime, v, loc); err == nil {
		return t.In(time.Local), false, nil
	}
	if t, err := time.ParseInLocation(icsDate, v, time.Local); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("unsupported DTSTART %q", v)
}

func hasEvent(store EventStore, key, id string) bool {
	for _, ev := range store.GetEvents(key) {
		if ev.ID == id {
			return true
		}
	}
	return false
}
