/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package sqlfilter

import (
	"errors"
	"strings"
	"testing"

	"github.com/dburkart/sift/pkg/schema"
	"github.com/dburkart/sift/pkg/timeexpr"
)

var lastHour = Range{From: "now-1h", To: "now", Enabled: true}

func TestCompileDatetime(t *testing.T) {
	pred, err := Compile(lastHour, schema.Datetime(), "ts")
	if err != nil {
		t.Fatalf("Compile failed: %s", err)
	}

	want := "ts >= NOW() - INTERVAL 1 HOUR AND ts <= NOW()"
	if pred.SQL != want {
		t.Errorf("predicate = %q, want %q", pred.SQL, want)
	}
	if pred.Column != "ts" {
		t.Errorf("predicate column = %q, want ts", pred.Column)
	}
}

func TestCompileEpoch(t *testing.T) {
	tt := []struct {
		precision schema.Precision
		want      string
	}{
		{schema.Seconds, "ts >= EPOCH(NOW() - INTERVAL 1 HOUR) AND ts <= EPOCH(NOW())"},
		{schema.Millis, "ts >= EPOCH_MS(NOW() - INTERVAL 1 HOUR) AND ts <= EPOCH_MS(NOW())"},
		{schema.Micros, "ts >= EPOCH_US(NOW() - INTERVAL 1 HOUR) AND ts <= EPOCH_US(NOW())"},
		{schema.Nanos, "ts >= EPOCH_NS(NOW() - INTERVAL 1 HOUR) AND ts <= EPOCH_NS(NOW())"},
	}

	for _, tc := range tt {
		pred, err := Compile(lastHour, schema.Epoch(tc.precision), "ts")
		if err != nil {
			t.Fatalf("Compile(%s) failed: %s", tc.precision, err)
		}
		if pred.SQL != tc.want {
			t.Errorf("predicate for %s = %q, want %q", tc.precision, pred.SQL, tc.want)
		}
	}
}

// Both endpoints must always carry the same epoch scale; the scale comes
// from the representation, so counting the extraction function on each
// side is enough.
func TestCompileScaleConsistency(t *testing.T) {
	for _, p := range []schema.Precision{schema.Seconds, schema.Millis, schema.Micros, schema.Nanos} {
		pred, err := Compile(lastHour, schema.Epoch(p), "ts")
		if err != nil {
			t.Fatalf("Compile(%s) failed: %s", p, err)
		}

		fn := map[schema.Precision]string{
			schema.Seconds: "EPOCH(",
			schema.Millis:  "EPOCH_MS(",
			schema.Micros:  "EPOCH_US(",
			schema.Nanos:   "EPOCH_NS(",
		}[p]

		if got := strings.Count(pred.SQL, fn); got != 2 {
			t.Errorf("precision %s: wanted both endpoints wrapped in %s, found %d", p, fn, got)
		}
	}
}

func TestCompileAbsoluteEndpoints(t *testing.T) {
	r := Range{From: "2024-01-01", To: "2024-01-02T12:00:00Z", Enabled: true}

	pred, err := Compile(r, schema.Epoch(schema.Millis), "event_ms")
	if err != nil {
		t.Fatalf("Compile failed: %s", err)
	}

	want := "event_ms >= EPOCH_MS(TIMESTAMP '2024-01-01 00:00:00.000') AND event_ms <= EPOCH_MS(TIMESTAMP '2024-01-02 12:00:00.000')"
	if pred.SQL != want {
		t.Errorf("predicate = %q, want %q", pred.SQL, want)
	}
}

func TestCompileSkips(t *testing.T) {
	tt := []struct {
		test   string
		r      Range
		column string
	}{
		{"disabled range", Range{From: "now-1h", To: "now"}, "ts"},
		{"no-filter sentinel", NoFilter, "ts"},
		{"empty column", lastHour, ""},
		{"empty from", Range{To: "now", Enabled: true}, "ts"},
		{"empty to", Range{From: "now-1h", Enabled: true}, "ts"},
	}

	for _, tc := range tt {
		for _, repr := range []schema.Representation{schema.Datetime(), schema.Epoch(schema.Nanos)} {
			pred, err := Compile(tc.r, repr, tc.column)
			if err != nil {
				t.Errorf("%s: unexpected error %s", tc.test, err)
			}
			if pred != nil {
				t.Errorf("%s: wanted no predicate, got %q", tc.test, pred.SQL)
			}
		}
	}
}

func TestCompileUnparseableEndpoint(t *testing.T) {
	r := Range{From: "ages ago", To: "now", Enabled: true}

	_, err := Compile(r, schema.Datetime(), "ts")
	if err == nil {
		t.Fatal("Compile should surface unparseable endpoints")
	}

	var unparseable timeexpr.UnparseableTimeError
	if !errors.As(err, &unparseable) {
		t.Errorf("wanted UnparseableTimeError, got %T", err)
	}
}

func TestPresetByLabel(t *testing.T) {
	r := PresetByLabel("Last 1 hour")
	if r != lastHour {
		t.Errorf("preset = %+v, want %+v", r, lastHour)
	}

	if r := PresetByLabel("Last eon"); r.Enabled {
		t.Errorf("unknown label should map to the no-filter sentinel, got %+v", r)
	}
}
