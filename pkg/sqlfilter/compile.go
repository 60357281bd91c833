/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package sqlfilter

import (
	"fmt"
	"strings"

	"github.com/dburkart/sift/pkg/schema"
	"github.com/dburkart/sift/pkg/timeexpr"
)

// Predicate is a compiled SQL boolean fragment constraining Column. It has
// no further structure and no tie to any particular query.
type Predicate struct {
	Column string
	SQL    string
}

// epochFuncs maps a precision onto the engine function extracting an epoch
// at that scale from a timestamp expression.
var epochFuncs = map[schema.Precision]string{
	schema.Seconds: "EPOCH",
	schema.Millis:  "EPOCH_MS",
	schema.Micros:  "EPOCH_US",
	schema.Nanos:   "EPOCH_NS",
}

// Compile turns a range plus a column's representation into a predicate.
// A nil predicate with a nil error means "do not filter": the range is
// disabled, an endpoint is empty, or there is no column to constrain.
// Unparseable endpoints are real errors and surface to the caller.
func Compile(r Range, repr schema.Representation, column string) (*Predicate, error) {
	if !r.Enabled || column == "" ||
		strings.TrimSpace(r.From) == "" || strings.TrimSpace(r.To) == "" {
		return nil, nil
	}

	from, err := timeexpr.Parse(r.From)
	if err != nil {
		return nil, err
	}
	to, err := timeexpr.Parse(r.To)
	if err != nil {
		return nil, err
	}

	// Both endpoints pass through the same representation, so an epoch
	// column always gets the identical scale on each side.
	lo := endpointSQL(from, repr)
	hi := endpointSQL(to, repr)

	return &Predicate{
		Column: column,
		SQL:    fmt.Sprintf("%s >= %s AND %s <= %s", column, lo, column, hi),
	}, nil
}

func endpointSQL(e timeexpr.Expression, repr schema.Representation) string {
	expr := timeexpr.SQL(e)
	if !repr.Epoch {
		return expr
	}
	return fmt.Sprintf("%s(%s)", epochFuncs[repr.Precision], expr)
}
