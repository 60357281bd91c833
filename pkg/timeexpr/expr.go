/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package timeexpr parses relative and absolute time expressions such as
// "now", "now-24h", "now-1d/d", or an ISO timestamp, and turns them into
// either a concrete instant or a symbolic SQL expression evaluated by the
// database at query time.
package timeexpr

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Kind int

const (
	// KindNow is the bare "now" token.
	KindNow Kind = iota
	// KindOffset is "now-<N><unit>".
	KindOffset
	// KindOffsetSnap is "now-<N><unit>/<snap>": subtract, then truncate.
	KindOffsetSnap
	// KindSnapOnly is "now/<snap>": truncate without subtracting.
	KindSnapOnly
	// KindAbsolute is anything that parsed as a concrete timestamp.
	KindAbsolute
)

type Unit int

const (
	UnitMinute Unit = iota
	UnitHour
	UnitDay
	UnitWeek
	// UnitMonth is approximated as 30 days. Deliberate: relative ranges
	// like "now-1M" are rough windows, not calendar arithmetic.
	UnitMonth
	// UnitYear is approximated as 365 days, same reasoning as UnitMonth.
	UnitYear
)

type Snap int

const (
	SnapDay Snap = iota
	// SnapWeek truncates to the most recent Sunday. Week start is a fixed
	// convention, not locale-sensitive.
	SnapWeek
	SnapMonth
	SnapYear
)

// Expression is a parsed time expression. Amount and Unit are meaningful
// for KindOffset and KindOffsetSnap, SnapTo for the snapped kinds, and
// When only for KindAbsolute.
type Expression struct {
	Kind   Kind
	Amount int
	Unit   Unit
	SnapTo Snap
	When   time.Time
}

// UnparseableTimeError is returned when an input matches neither the
// relative grammar nor any known timestamp format. Callers decide fallback
// policy; the parser never substitutes "now" for garbage.
type UnparseableTimeError struct {
	Input string
}

func (e UnparseableTimeError) Error() string {
	return fmt.Sprintf("time expression %q did not match a relative expression or a known timestamp", e.Input)
}

var units = map[byte]Unit{
	'm': UnitMinute,
	'h': UnitHour,
	'd': UnitDay,
	'w': UnitWeek,
	'M': UnitMonth,
	'y': UnitYear,
}

var snaps = map[byte]Snap{
	'd': SnapDay,
	'w': SnapWeek,
	'M': SnapMonth,
	'y': SnapYear,
}

// Parse classifies a time expression token.
//
// Grammar:
//
//	expression = "now" [ "-" amount unit ] [ "/" snap ] / timestamp
//	amount     = 1*DIGIT
//	unit       = "m" / "h" / "d" / "w" / "M" / "y"
//	snap       = "d" / "w" / "M" / "y"
func Parse(input string) (Expression, error) {
	s := strings.TrimSpace(input)

	if !strings.HasPrefix(s, "now") {
		when, err := ParseVagueDateTime(s)
		if err != nil {
			return Expression{}, UnparseableTimeError{Input: input}
		}
		return Expression{Kind: KindAbsolute, When: when}, nil
	}

	rest := s[len("now"):]
	if rest == "" {
		return Expression{Kind: KindNow}, nil
	}

	var expr Expression

	if snapPart, ok := strings.CutPrefix(rest, "/"); ok {
		snap, err := parseSnap(snapPart, input)
		if err != nil {
			return Expression{}, err
		}
		return Expression{Kind: KindSnapOnly, SnapTo: snap}, nil
	}

	offsetPart, ok := strings.CutPrefix(rest, "-")
	if !ok {
		return Expression{}, UnparseableTimeError{Input: input}
	}

	offsetPart, snapPart, snapped := strings.Cut(offsetPart, "/")

	if len(offsetPart) < 2 {
		return Expression{}, UnparseableTimeError{Input: input}
	}
	unit, ok := units[offsetPart[len(offsetPart)-1]]
	if !ok {
		return Expression{}, UnparseableTimeError{Input: input}
	}
	amount, err := strconv.Atoi(offsetPart[:len(offsetPart)-1])
	if err != nil || amount <= 0 {
		return Expression{}, UnparseableTimeError{Input: input}
	}

	expr = Expression{Kind: KindOffset, Amount: amount, Unit: unit}

	if snapped {
		snap, err := parseSnap(snapPart, input)
		if err != nil {
			return Expression{}, err
		}
		expr.Kind = KindOffsetSnap
		expr.SnapTo = snap
	}

	return expr, nil
}

func parseSnap(s, input string) (Snap, error) {
	if len(s) != 1 {
		return 0, UnparseableTimeError{Input: input}
	}
	snap, ok := snaps[s[0]]
	if !ok {
		return 0, UnparseableTimeError{Input: input}
	}
	return snap, nil
}
