/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package sqlfilter

import (
	"regexp"
	"strings"

	"github.com/dburkart/sift/pkg/schema"
)

// Clause boundaries are found by case-insensitive keyword search on the
// raw string, never by parsing. Known limitation: a subquery that places
// these keywords at misleading top-level-looking positions will confuse
// the splicer. The contract assumes one top-level SELECT.
var (
	reWhere = regexp.MustCompile(`(?i)\bWHERE\b`)
	reFrom  = regexp.MustCompile(`(?i)\bFROM\b`)

	// In priority order: the first of these after FROM is where a
	// synthesized WHERE goes.
	boundaries = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bGROUP\s+BY\b`),
		regexp.MustCompile(`(?i)\bORDER\s+BY\b`),
		regexp.MustCompile(`(?i)\bLIMIT\b`),
	}

	reTimeFunc    = regexp.MustCompile(`(?i)\b(NOW\s*\(|CURRENT_TIMESTAMP|CURRENT_DATE|INTERVAL\b|DATE_TRUNC\s*\(|EPOCH(_MS|_US|_NS)?\s*\(|TO_TIMESTAMP\s*\()`)
	reDateLiteral = regexp.MustCompile(`'\d{4}-\d{2}-\d{2}`)
	reEpochValue  = regexp.MustCompile(`\b\d{10,19}\b`)
	reIdentThenOp = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*(>=|<=|<>|!=|<|>|=)`)
	reOpThenIdent = regexp.MustCompile(`(>=|<=|<>|!=|<|>|=)\s*([A-Za-z_][A-Za-z0-9_]*)`)
	reIdentBtwn   = regexp.MustCompile(`(?i)([A-Za-z_][A-Za-z0-9_]*)\s+BETWEEN\b`)
)

// HasTimeFilter reports whether the query's WHERE clause already appears to
// constrain time. Only the text after the first WHERE is inspected; a query
// without a WHERE never has a time filter. The heuristics are deliberately
// broad: a false positive skips injection and returns a working query, a
// false negative would double-filter.
func HasTimeFilter(query string) bool {
	loc := reWhere.FindStringIndex(query)
	if loc == nil {
		return false
	}
	body := query[loc[1]:]

	if reTimeFunc.MatchString(body) {
		return true
	}
	if reDateLiteral.MatchString(body) {
		return true
	}
	if reEpochValue.MatchString(body) {
		return true
	}

	for _, m := range reIdentThenOp.FindAllStringSubmatch(body, -1) {
		if schema.Timeish(m[1]) {
			return true
		}
	}
	for _, m := range reOpThenIdent.FindAllStringSubmatch(body, -1) {
		if schema.Timeish(m[2]) {
			return true
		}
	}
	for _, m := range reIdentBtwn.FindAllStringSubmatch(body, -1) {
		if schema.Timeish(m[1]) {
			return true
		}
	}

	return false
}

// Inject splices a compiled predicate into query. A nil predicate, a query
// that already filters on time, or a query whose shape cannot be classified
// all return the input unchanged: a failed injection is a no-op, never
// malformed SQL. Injection is idempotent because the predicate it emits is
// itself recognized by HasTimeFilter.
func Inject(query string, p *Predicate) string {
	if p == nil || p.Column == "" || strings.TrimSpace(query) == "" {
		return query
	}
	if HasTimeFilter(query) {
		return query
	}

	// Peel a trailing semicolon off so appended clauses land inside the
	// statement.
	body := strings.TrimRight(query, " \t\n")
	semi := strings.HasSuffix(body, ";")
	if semi {
		body = strings.TrimRight(body[:len(body)-1], " \t\n")
	}

	whereLoc := reWhere.FindStringIndex(body)

	var out string
	if whereLoc == nil {
		out = injectNewWhere(body, p)
	} else {
		out = augmentWhere(body, whereLoc, p)
	}
	if out == "" {
		// Structure not understood; hand the original back untouched.
		return query
	}

	if semi {
		out += ";"
	}
	return out
}

// injectNewWhere synthesizes a WHERE clause before the first trailing
// boundary keyword after FROM, or at the end of the statement.
func injectNewWhere(body string, p *Predicate) string {
	fromLoc := reFrom.FindStringIndex(body)
	if fromLoc == nil {
		return ""
	}

	insertAt := len(body)
	for _, re := range boundaries {
		if loc := re.FindStringIndex(body[fromLoc[1]:]); loc != nil {
			insertAt = fromLoc[1] + loc[0]
			break
		}
	}

	head := strings.TrimRight(body[:insertAt], " \t\n")
	out := head + " WHERE " + p.SQL
	if insertAt < len(body) {
		out += " " + strings.TrimLeft(body[insertAt:], " \t\n")
	}
	return out
}

// augmentWhere wraps the existing WHERE body in parentheses and ANDs the
// predicate in front of it, leaving any trailing clauses exactly as they
// were.
func augmentWhere(body string, whereLoc []int, p *Predicate) string {
	clauseEnd := len(body)
	for _, re := range boundaries {
		if loc := re.FindStringIndex(body[whereLoc[1]:]); loc != nil {
			if whereLoc[1]+loc[0] < clauseEnd {
				clauseEnd = whereLoc[1] + loc[0]
			}
		}
	}

	clause := strings.TrimSpace(body[whereLoc[1]:clauseEnd])
	if clause == "" {
		return ""
	}

	out := body[:whereLoc[1]] + " " + p.SQL + " AND (" + clause + ")"
	if clauseEnd < len(body) {
		out += " " + strings.TrimLeft(body[clauseEnd:], " \t\n")
	}
	return out
}
