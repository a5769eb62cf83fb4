// Package reminders delivers important-date reminders: a periodic scan over
// reminder-enabled dates, a pure recurrence rule deciding what is due, and a
// pluggable delivery channel.
package reminders

import (
	"time"

	"github.com/daddyparodz/nametag/backend/internal/store"
)

// Reminder types
const (
	TypeOneTime   = "ONE_TIME"
	TypeRecurring = "RECURRING"
)

// Interval units
const (
	UnitDays   = "DAYS"
	UnitWeeks  = "WEEKS"
	UnitMonths = "MONTHS"
	UnitYears  = "YEARS"
)

// IntervalDuration converts an interval to a duration for the elapsed-time
// units. Months use a fixed 30-day approximation. Yearly recurrence never
// goes through here; it is anniversary-based (see Due).
func IntervalDuration(interval int, unit string) time.Duration {
	if interval <= 0 {
		interval = 1
	}
	day := 24 * time.Hour
	switch unit {
	case UnitDays:
		return time.Duration(interval) * day
	case UnitWeeks:
		return time.Duration(interval) * 7 * day
	case UnitMonths:
		return time.Duration(interval) * 30 * day
	case UnitYears:
		return time.Duration(interval) * 365 * day
	default:
		return 365 * day
	}
}

// Due decides whether a reminder candidate should be delivered now.
// Reminders never fire before the event date. A one-time reminder fires
// once. A recurring day/week/month reminder fires again only after its
// interval has elapsed since the last delivery. A yearly reminder is
// anniversary-based: it fires only on the event's month and day, at most
// once per interval in calendar years, so a delivery that happens late never
// drifts the schedule off the anniversary.
func Due(c store.ReminderCandidate, now time.Time) bool {
	event := midnight(c.Date)
	today := midnight(now)

	if today.Before(event) {
		return false
	}

	switch c.ReminderType {
	case TypeOneTime:
		return c.LastReminderSent == nil
	case TypeRecurring:
		if c.IntervalUnit == UnitYears {
			return dueOnAnniversary(c, today, event)
		}
		if c.LastReminderSent == nil {
			return true
		}
		elapsed := today.Sub(midnight(*c.LastReminderSent))
		return elapsed >= IntervalDuration(c.Interval, c.IntervalUnit)
	default:
		return false
	}
}

func dueOnAnniversary(c store.ReminderCandidate, today, event time.Time) bool {
	if today.Month() != event.Month() || today.Day() != event.Day() {
		return false
	}
	if c.LastReminderSent == nil {
		return true
	}
	interval := c.Interval
	if interval <= 0 {
		interval = 1
	}
	return today.Year()-c.LastReminderSent.Year() >= interval
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
