/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timeexpr

import "time"

// Resolve computes the concrete instant an expression describes, relative
// to now. Callers resolving both ends of a range must pass the same now to
// each call so the endpoints never skew against each other; Resolve itself
// never reads the clock.
func Resolve(e Expression, now time.Time) time.Time {
	now = now.Truncate(time.Millisecond)

	switch e.Kind {
	case KindNow:
		return now
	case KindAbsolute:
		return e.When.Truncate(time.Millisecond)
	case KindOffset:
		return now.Add(-offsetDuration(e.Amount, e.Unit))
	case KindOffsetSnap:
		return snapStart(now.Add(-offsetDuration(e.Amount, e.Unit)), e.SnapTo)
	case KindSnapOnly:
		return snapStart(now, e.SnapTo)
	}

	return now
}

func offsetDuration(amount int, unit Unit) time.Duration {
	n := time.Duration(amount)
	switch unit {
	case UnitMinute:
		return n * time.Minute
	case UnitHour:
		return n * time.Hour
	case UnitDay:
		return n * 24 * time.Hour
	case UnitWeek:
		return n * 7 * 24 * time.Hour
	case UnitMonth:
		return n * 30 * 24 * time.Hour
	case UnitYear:
		return n * 365 * 24 * time.Hour
	}
	return 0
}

// snapStart truncates t to the start of the given calendar boundary, in
// t's location. Weeks start on Sunday.
func snapStart(t time.Time, snap Snap) time.Time {
	year, month, day := t.Date()

	switch snap {
	case SnapDay:
		return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	case SnapWeek:
		dayStart := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
		return dayStart.AddDate(0, 0, -int(dayStart.Weekday()))
	case SnapMonth:
		return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	case SnapYear:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location())
	}

	return t
}
