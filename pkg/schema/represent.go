/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package schema

import "strings"

// Representation is how a column physically stores time: as a datetime
// value the engine compares directly, or as an integer epoch at some
// precision.
type Representation struct {
	Epoch     bool
	Precision Precision
}

func Datetime() Representation {
	return Representation{}
}

func Epoch(p Precision) Representation {
	return Representation{Epoch: true, Precision: p}
}

func (r Representation) String() string {
	if !r.Epoch {
		return "datetime"
	}
	return "epoch[" + r.Precision.String() + "]"
}

// The resolution cascade. Order matters and is part of the contract: an
// explicit unit beats a datetime declaration, which beats name inference.
// Several rules can match the same column; the first one wins. Every rule
// either claims the column or passes, and the cascade always terminates in
// the datetime default, so resolution is total.
var cascade = []func(Column) (Representation, bool){
	// 1. An explicit unit from the caller overrides everything.
	func(c Column) (Representation, bool) {
		if c.Unit != nil {
			return Epoch(*c.Unit), true
		}
		return Representation{}, false
	},
	// 2. Datetime-family declared types store datetime literals.
	func(c Column) (Representation, bool) {
		if datetimeType(c.Type) {
			return Datetime(), true
		}
		return Representation{}, false
	},
	// 3. Precision spelled out in the name.
	func(c Column) (Representation, bool) {
		lower := strings.ToLower(c.Name)
		switch {
		case strings.HasSuffix(lower, "_ns") || strings.Contains(lower, "nano"):
			return Epoch(Nanos), true
		case strings.HasSuffix(lower, "_us") || strings.Contains(lower, "micro"):
			return Epoch(Micros), true
		case strings.HasSuffix(lower, "_ms") || strings.Contains(lower, "milli"):
			return Epoch(Millis), true
		case strings.HasSuffix(lower, "_s") || strings.Contains(lower, "sec"):
			return Epoch(Seconds), true
		}
		return Representation{}, false
	},
	// 4. Well-known convention fields with fixed precision.
	func(c Column) (Representation, bool) {
		switch strings.ToLower(c.Name) {
		case "__timestamp", "timestamp_ns":
			return Epoch(Nanos), true
		case "__time", "timestamp_ms":
			return Epoch(Millis), true
		}
		return Representation{}, false
	},
	// 5. Integer columns with temporal names are assumed millisecond
	//    epochs absent better evidence.
	func(c Column) (Representation, bool) {
		if integerType(c.Type) && Timeish(c.Name) {
			return Epoch(Millis), true
		}
		return Representation{}, false
	},
}

// Resolve decides a column's time representation by running the cascade.
// There is no unknown result; anything the rules don't claim is treated as
// a datetime column.
func Resolve(c Column) Representation {
	for _, rule := range cascade {
		if repr, ok := rule(c); ok {
			return repr
		}
	}
	return Datetime()
}
