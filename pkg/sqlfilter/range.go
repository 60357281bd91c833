/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package sqlfilter compiles a logical time range against a column's
// representation into a SQL predicate, and splices that predicate into an
// existing query string by keyword-boundary search. It is not a SQL
// parser: it assumes a single well-formed top-level SELECT.
package sqlfilter

// Range is a caller-selected time window. When Enabled is false no filter
// is ever compiled, whatever From and To contain.
type Range struct {
	From    string
	To      string
	Enabled bool
}

// NoFilter is the sentinel "do not filter on time" selection.
var NoFilter = Range{}

// Preset is a quick-range choice offered by the console.
type Preset struct {
	Label string
	Range Range
}

var Presets = []Preset{
	{"Last 5 minutes", Range{From: "now-5m", To: "now", Enabled: true}},
	{"Last 15 minutes", Range{From: "now-15m", To: "now", Enabled: true}},
	{"Last 1 hour", Range{From: "now-1h", To: "now", Enabled: true}},
	{"Last 6 hours", Range{From: "now-6h", To: "now", Enabled: true}},
	{"Last 24 hours", Range{From: "now-24h", To: "now", Enabled: true}},
	{"Last 7 days", Range{From: "now-7d", To: "now", Enabled: true}},
	{"Last 30 days", Range{From: "now-30d", To: "now", Enabled: true}},
	{"Today", Range{From: "now/d", To: "now", Enabled: true}},
	{"Yesterday", Range{From: "now-1d/d", To: "now/d", Enabled: true}},
	{"This week", Range{From: "now/w", To: "now", Enabled: true}},
	{"This month", Range{From: "now/M", To: "now", Enabled: true}},
	{"No filter", NoFilter},
}

// PresetByLabel returns the named preset, or the no-filter sentinel when
// the label is unknown.
func PresetByLabel(label string) Range {
	for _, p := range Presets {
		if p.Label == label {
			return p.Range
		}
	}
	return NoFilter
}
