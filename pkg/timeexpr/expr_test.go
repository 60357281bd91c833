/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timeexpr

import (
	"errors"
	"testing"
	"time"
)

func mustParse(t *testing.T, input string) Expression {
	t.Helper()
	e, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %s", input, err)
	}
	return e
}

func TestParse(t *testing.T) {
	tt := []struct {
		input string
		want  Expression
	}{
		{"now", Expression{Kind: KindNow}},
		{" now ", Expression{Kind: KindNow}},
		{"now-24h", Expression{Kind: KindOffset, Amount: 24, Unit: UnitHour}},
		{"now-5m", Expression{Kind: KindOffset, Amount: 5, Unit: UnitMinute}},
		{"now-1d", Expression{Kind: KindOffset, Amount: 1, Unit: UnitDay}},
		{"now-2w", Expression{Kind: KindOffset, Amount: 2, Unit: UnitWeek}},
		{"now-1M", Expression{Kind: KindOffset, Amount: 1, Unit: UnitMonth}},
		{"now-1y", Expression{Kind: KindOffset, Amount: 1, Unit: UnitYear}},
		{"now-1d/d", Expression{Kind: KindOffsetSnap, Amount: 1, Unit: UnitDay, SnapTo: SnapDay}},
		{"now-7d/w", Expression{Kind: KindOffsetSnap, Amount: 7, Unit: UnitDay, SnapTo: SnapWeek}},
		{"now/d", Expression{Kind: KindSnapOnly, SnapTo: SnapDay}},
		{"now/M", Expression{Kind: KindSnapOnly, SnapTo: SnapMonth}},
		{"now/y", Expression{Kind: KindSnapOnly, SnapTo: SnapYear}},
	}

	for _, tc := range tt {
		got := mustParse(t, tc.input)
		if got != tc.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tc.input, got, tc.want)
		}
	}
}

func TestParseAbsolute(t *testing.T) {
	e := mustParse(t, "1996-12-19T16:39:57-08:00")
	if e.Kind != KindAbsolute {
		t.Fatalf("wanted KindAbsolute, got %v", e.Kind)
	}

	want, _ := time.Parse(time.RFC3339, "1996-12-19T16:39:57-08:00")
	if !e.When.Equal(want) {
		t.Errorf("wanted absolute expression to parse to %s, got %s", want, e.When)
	}
}

func TestParseFailure(t *testing.T) {
	inputs := []string{
		"",
		"yesterday",
		"now-",
		"now-h",
		"now-24",
		"now-24q",
		"now-0h",
		"now-x4h",
		"now/q",
		"now/dd",
		"nowhere",
		"12 o'clock",
	}

	for _, input := range inputs {
		_, err := Parse(input)
		if err == nil {
			t.Errorf("Parse(%q) should have failed", input)
			continue
		}

		var unparseable UnparseableTimeError
		if !errors.As(err, &unparseable) {
			t.Errorf("Parse(%q) returned %T, want UnparseableTimeError", input, err)
		}
	}
}

func TestResolveOffset(t *testing.T) {
	reference, _ := time.Parse(time.RFC3339, "2024-01-02T12:00:00Z")

	got := Resolve(mustParse(t, "now-24h"), reference)
	want, _ := time.Parse(time.RFC3339, "2024-01-01T12:00:00Z")
	if !got.Equal(want) {
		t.Errorf("now-24h from %s = %s, want %s", reference, got, want)
	}
}

func TestResolveOffsetSnap(t *testing.T) {
	reference, _ := time.Parse(time.RFC3339, "2024-01-02T15:30:00Z")

	got := Resolve(mustParse(t, "now-1d/d"), reference)
	want, _ := time.Parse(time.RFC3339, "2024-01-01T00:00:00Z")
	if !got.Equal(want) {
		t.Errorf("now-1d/d from %s = %s, want %s", reference, got, want)
	}
}

func TestResolveSnapDay(t *testing.T) {
	// Snapping to day start should hold regardless of time-of-day.
	for _, ts := range []string{
		"2024-03-15T00:00:00Z",
		"2024-03-15T00:00:01Z",
		"2024-03-15T12:30:45Z",
		"2024-03-15T23:59:59Z",
	} {
		reference, _ := time.Parse(time.RFC3339, ts)
		got := Resolve(mustParse(t, "now/d"), reference)
		want, _ := time.Parse(time.RFC3339, "2024-03-15T00:00:00Z")
		if !got.Equal(want) {
			t.Errorf("now/d from %s = %s, want %s", ts, got, want)
		}
	}
}

func TestResolveSnapWeekStartsSunday(t *testing.T) {
	// 2024-01-10 is a Wednesday; the enclosing week starts Sunday the 7th.
	reference, _ := time.Parse(time.RFC3339, "2024-01-10T09:15:00Z")

	got := Resolve(mustParse(t, "now/w"), reference)
	want, _ := time.Parse(time.RFC3339, "2024-01-07T00:00:00Z")
	if !got.Equal(want) {
		t.Errorf("now/w from %s = %s, want %s", reference, got, want)
	}

	// A Sunday reference snaps to itself.
	sunday, _ := time.Parse(time.RFC3339, "2024-01-07T18:00:00Z")
	got = Resolve(mustParse(t, "now/w"), sunday)
	if !got.Equal(want) {
		t.Errorf("now/w from %s = %s, want %s", sunday, got, want)
	}
}

func TestResolveSnapMonthYear(t *testing.T) {
	reference, _ := time.Parse(time.RFC3339, "2024-07-19T08:00:00Z")

	got := Resolve(mustParse(t, "now/M"), reference)
	want, _ := time.Parse(time.RFC3339, "2024-07-01T00:00:00Z")
	if !got.Equal(want) {
		t.Errorf("now/M from %s = %s, want %s", reference, got, want)
	}

	got = Resolve(mustParse(t, "now/y"), reference)
	want, _ = time.Parse(time.RFC3339, "2024-01-01T00:00:00Z")
	if !got.Equal(want) {
		t.Errorf("now/y from %s = %s, want %s", reference, got, want)
	}
}

func TestResolveApproximateUnits(t *testing.T) {
	reference, _ := time.Parse(time.RFC3339, "2024-03-31T12:00:00Z")

	// One month is exactly 30 days back, not "the 29th of February".
	got := Resolve(mustParse(t, "now-1M"), reference)
	want := reference.Add(-30 * 24 * time.Hour)
	if !got.Equal(want) {
		t.Errorf("now-1M from %s = %s, want %s", reference, got, want)
	}

	got = Resolve(mustParse(t, "now-1y"), reference)
	want = reference.Add(-365 * 24 * time.Hour)
	if !got.Equal(want) {
		t.Errorf("now-1y from %s = %s, want %s", reference, got, want)
	}
}

func TestResolveSharedReference(t *testing.T) {
	reference, _ := time.Parse(time.RFC3339, "2024-01-02T12:00:00Z")

	// Both endpoints of a range resolved against the same reference must
	// keep their exact distance.
	from := Resolve(mustParse(t, "now-1h"), reference)
	to := Resolve(mustParse(t, "now"), reference)
	if to.Sub(from) != time.Hour {
		t.Errorf("endpoints skewed: from=%s to=%s", from, to)
	}
}

func TestSQL(t *testing.T) {
	tt := []struct {
		input string
		want  string
	}{
		{"now", "NOW()"},
		{"now-24h", "NOW() - INTERVAL 24 HOUR"},
		{"now-5m", "NOW() - INTERVAL 5 MINUTE"},
		{"now-2w", "NOW() - INTERVAL 14 DAY"},
		{"now-1M", "NOW() - INTERVAL 30 DAY"},
		{"now-1d/d", "DATE_TRUNC('day', NOW() - INTERVAL 1 DAY)"},
		{"now/d", "DATE_TRUNC('day', NOW())"},
		{"now/M", "DATE_TRUNC('month', NOW())"},
		{"now/w", "DATE_TRUNC('week', NOW() + INTERVAL 1 DAY) - INTERVAL 1 DAY"},
	}

	for _, tc := range tt {
		got := SQL(mustParse(t, tc.input))
		if got != tc.want {
			t.Errorf("SQL(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSQLAbsolute(t *testing.T) {
	got := SQL(mustParse(t, "2024-01-02T12:00:00Z"))
	want := "TIMESTAMP '2024-01-02 12:00:00.000'"
	if got != want {
		t.Errorf("SQL(absolute) = %q, want %q", got, want)
	}
}

func TestParseVagueDateTime(t *testing.T) {
	tt := []string{
		"2024-01-02T12:00:00Z",
		"2024-01-02 12:00:00",
		"2024-01-02",
		"2024/01/02",
		"Jan 02, 2024",
	}

	for _, input := range tt {
		tm, err := ParseVagueDateTime(input)
		if err != nil {
			t.Errorf("ParseVagueDateTime(%q) failed: %s", input, err)
			continue
		}
		if tm.Year() != 2024 || tm.Month() != time.January || tm.Day() != 2 {
			t.Errorf("ParseVagueDateTime(%q) = %s, wanted January 2, 2024", input, tm)
		}
	}
}
