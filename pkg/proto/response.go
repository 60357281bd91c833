/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

// Printable is anything the repl writers can render as a table, CSV
// stream, or JSON document.
type Printable interface {
	Headers() []string
	Values() [][]string
}

// PreviewResponse is the processed query, produced without executing it.
type PreviewResponse struct {
	Query   string `json:"query"`
	Outcome string `json:"outcome"`
}

func (r PreviewResponse) Headers() []string {
	return []string{"outcome", "query"}
}

func (r PreviewResponse) Values() [][]string {
	return [][]string{{r.Outcome, r.Query}}
}

// QueryResponse is an executed query's result set plus the query text that
// actually ran.
type QueryResponse struct {
	ID        string     `json:"id"`
	Query     string     `json:"query"`
	Outcome   string     `json:"outcome"`
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	ElapsedMS int64      `json:"elapsed_ms"`
}

func (r QueryResponse) Headers() []string {
	return r.Columns
}

func (r QueryResponse) Values() [][]string {
	return r.Rows
}

// ColumnInfo is one time-candidate column with its resolved
// representation, for range pickers.
type ColumnInfo struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	Representation string `json:"representation"`
}

type ColumnsResponse struct {
	Columns []ColumnInfo `json:"columns"`
}

func (r ColumnsResponse) Headers() []string {
	return []string{"name", "type", "representation"}
}

func (r ColumnsResponse) Values() [][]string {
	rows := make([][]string, 0, len(r.Columns))
	for _, c := range r.Columns {
		rows = append(rows, []string{c.Name, c.Type, c.Representation})
	}
	return rows
}

// ErrResponse mirrors the HTTP error body.
type ErrResponse struct {
	Code int    `json:"code"`
	Err  string `json:"error"`
}
