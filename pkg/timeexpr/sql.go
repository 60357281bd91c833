/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timeexpr

import (
	"fmt"
)

// SQL renders an expression in its deferred form, evaluated by the engine's
// own clock at query time. Only the DuckDB dialect is emitted; there is no
// adaptation layer for other engines.
func SQL(e Expression) string {
	switch e.Kind {
	case KindNow:
		return "NOW()"
	case KindAbsolute:
		return fmt.Sprintf("TIMESTAMP '%s'", e.When.UTC().Format("2006-01-02 15:04:05.000"))
	case KindOffset:
		return fmt.Sprintf("NOW() - %s", intervalSQL(e.Amount, e.Unit))
	case KindOffsetSnap:
		return snapSQL(fmt.Sprintf("NOW() - %s", intervalSQL(e.Amount, e.Unit)), e.SnapTo)
	case KindSnapOnly:
		return snapSQL("NOW()", e.SnapTo)
	}

	return "NOW()"
}

// intervalSQL keeps the engine-side arithmetic identical to Resolve: month
// and year offsets become 30- and 365-day intervals rather than calendar
// intervals, so both resolution paths land on the same instant.
func intervalSQL(amount int, unit Unit) string {
	switch unit {
	case UnitMinute:
		return fmt.Sprintf("INTERVAL %d MINUTE", amount)
	case UnitHour:
		return fmt.Sprintf("INTERVAL %d HOUR", amount)
	case UnitDay:
		return fmt.Sprintf("INTERVAL %d DAY", amount)
	case UnitWeek:
		return fmt.Sprintf("INTERVAL %d DAY", amount*7)
	case UnitMonth:
		return fmt.Sprintf("INTERVAL %d DAY", amount*30)
	case UnitYear:
		return fmt.Sprintf("INTERVAL %d DAY", amount*365)
	}
	return fmt.Sprintf("INTERVAL %d MINUTE", amount)
}

func snapSQL(inner string, snap Snap) string {
	switch snap {
	case SnapDay:
		return fmt.Sprintf("DATE_TRUNC('day', %s)", inner)
	case SnapWeek:
		// DATE_TRUNC('week') is Monday-based in the engine; shift by a day
		// on both sides to keep the Sunday week-start convention.
		return fmt.Sprintf("DATE_TRUNC('week', %s + INTERVAL 1 DAY) - INTERVAL 1 DAY", inner)
	case SnapMonth:
		return fmt.Sprintf("DATE_TRUNC('month', %s)", inner)
	case SnapYear:
		return fmt.Sprintf("DATE_TRUNC('year', %s)", inner)
	}
	return inner
}
