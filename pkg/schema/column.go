/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package schema describes time-candidate columns: which columns of a table
// can carry a time filter, and how each one physically represents time
// (datetime values, or integer epochs at some precision).
package schema

import (
	"fmt"
	"strings"
)

// Precision is the unit an integer epoch column counts since 1970.
type Precision int

const (
	Seconds Precision = iota
	Millis
	Micros
	Nanos
)

func (p Precision) String() string {
	switch p {
	case Seconds:
		return "s"
	case Millis:
		return "ms"
	case Micros:
		return "us"
	case Nanos:
		return "ns"
	}
	return "ms"
}

// ParsePrecision maps the unit spellings accepted on the wire and the
// command line onto a Precision.
func ParsePrecision(s string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "sec", "seconds":
		return Seconds, nil
	case "ms", "milli", "milliseconds":
		return Millis, nil
	case "us", "micro", "microseconds":
		return Micros, nil
	case "ns", "nano", "nanoseconds":
		return Nanos, nil
	}
	return Millis, fmt.Errorf("unknown epoch unit %q", s)
}

// Column is the metadata triple the engine receives for one column. Type is
// the declared database type verbatim; Unit, when set, is an explicit epoch
// precision that overrides all inference.
type Column struct {
	Name string
	Type string
	Unit *Precision
}

// Timeish reports whether an identifier smells like a time column by name
// alone: the common substrings, the short form "ts", and audit-style
// "_at" suffixes.
func Timeish(name string) bool {
	lower := strings.ToLower(name)
	if lower == "ts" || strings.HasSuffix(lower, "_ts") || strings.HasSuffix(lower, "_at") {
		return true
	}
	return strings.Contains(lower, "time") || strings.Contains(lower, "date")
}

func datetimeType(declared string) bool {
	lower := strings.ToLower(declared)
	return strings.Contains(lower, "timestamp") ||
		strings.Contains(lower, "datetime") ||
		strings.Contains(lower, "date")
}

func integerType(declared string) bool {
	lower := strings.ToLower(declared)
	for _, t := range []string{"bigint", "hugeint", "integer", "int64", "uint64", "int32", "uint32", "long"} {
		if strings.Contains(lower, t) {
			return true
		}
	}
	// Bare "int" needs a word-ish match so "point" doesn't qualify.
	return lower == "int" || strings.HasPrefix(lower, "int ") || strings.HasPrefix(lower, "int(")
}

// TimeCandidates filters a table's columns down to those that could carry
// a time filter: datetime-typed columns, and integer columns whose name
// looks temporal.
func TimeCandidates(cols []Column) []Column {
	var out []Column
	for _, c := range cols {
		if IsTimeCandidate(c) {
			out = append(out, c)
		}
	}
	return out
}

func IsTimeCandidate(c Column) bool {
	if c.Unit != nil {
		return true
	}
	if datetimeType(c.Type) {
		return true
	}
	return integerType(c.Type) && Timeish(c.Name)
}
