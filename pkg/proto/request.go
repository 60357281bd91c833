/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package proto carries the JSON request and response shapes exchanged
// between the sift CLI and server, plus connection-string parsing shared
// by both.
package proto

import (
	"github.com/dburkart/sift/pkg/schema"
	"github.com/dburkart/sift/pkg/sqlfilter"
)

// QueryRequest asks for a query to be time-filtered and, for the query
// endpoint, executed. Column metadata and range endpoints ride along as
// plain strings; unset fields simply leave the query unfiltered.
type QueryRequest struct {
	Query      string `json:"query"`
	Column     string `json:"column,omitempty"`
	ColumnType string `json:"column_type,omitempty"`
	Unit       string `json:"unit,omitempty"`
	From       string `json:"from,omitempty"`
	To         string `json:"to,omitempty"`
	Disabled   bool   `json:"disabled,omitempty"`
}

// TimeColumn assembles the schema triple from the request. An unparseable
// unit is treated as absent rather than rejected; the explicit-unit rule
// only fires on a recognized unit.
func (r QueryRequest) TimeColumn() schema.Column {
	col := schema.Column{Name: r.Column, Type: r.ColumnType}
	if r.Unit != "" {
		if p, err := schema.ParsePrecision(r.Unit); err == nil {
			col.Unit = &p
		}
	}
	return col
}

// TimeRange maps the request window onto the engine's range value. The
// range is enabled only when both endpoints are present and filtering was
// not explicitly switched off.
func (r QueryRequest) TimeRange() sqlfilter.Range {
	if r.Disabled || r.From == "" || r.To == "" {
		return sqlfilter.NoFilter
	}
	return sqlfilter.Range{From: r.From, To: r.To, Enabled: true}
}
