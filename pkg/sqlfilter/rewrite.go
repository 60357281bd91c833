/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package sqlfilter

import "github.com/dburkart/sift/pkg/schema"

// Outcome describes what Rewrite did to a query.
type Outcome string

const (
	// OutcomeInjected means a predicate was compiled and spliced in.
	OutcomeInjected Outcome = "injected"
	// OutcomeSkipped means the query already filters on time.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeNone means no filter applied: range disabled or no column.
	OutcomeNone Outcome = "none"
)

// Rewrite is the full pipeline over one query: resolve the column's
// representation, compile the range against it, and splice the result in.
// The returned query is always executable; on OutcomeNone and
// OutcomeSkipped it is the input unchanged.
func Rewrite(query string, col schema.Column, r Range) (string, Outcome, error) {
	pred, err := Compile(r, schema.Resolve(col), col.Name)
	if err != nil {
		return query, OutcomeNone, err
	}
	if pred == nil {
		return query, OutcomeNone, nil
	}

	out := Inject(query, pred)
	if out == query {
		return query, OutcomeSkipped, nil
	}
	return out, OutcomeInjected, nil
}
