/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package store executes SQL against the embedded analytical engine and
// reports table metadata back to the time-filter engine. It is the only
// package that touches the database; everything above it works on strings.
package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/pkg/errors"

	"github.com/dburkart/sift/pkg/schema"
)

type Store struct {
	db *sql.DB
}

// Open opens (or creates) a database file. An empty path opens an
// in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open database")
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Result is a fully materialized result set with every value rendered as
// text, ready for the output writers.
type Result struct {
	Columns []string
	Rows    [][]string
	Elapsed time.Duration
}

func (r *Result) Headers() []string {
	return r.Columns
}

func (r *Result) Values() [][]string {
	return r.Rows
}

// Query runs q and materializes the full result set. Large results are the
// caller's problem; the console is an interactive tool, not a batch
// exporter.
func (s *Store) Query(ctx context.Context, q string) (*Result, error) {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "query failed")
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read result columns")
	}

	result := &Result{Columns: cols}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrap(err, "unable to scan row")
		}
		result.Rows = append(result.Rows, renderRow(values))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating results")
	}

	result.Elapsed = time.Since(start)
	return result, nil
}

// DescribeColumns reports the column metadata of a table, feeding the
// time-candidate detection. The declared types come back verbatim from
// the engine.
func (s *Store) DescribeColumns(ctx context.Context, table string) ([]schema.Column, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT column_name, data_type FROM information_schema.columns WHERE table_name = ? ORDER BY ordinal_position", table)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to describe table %s", table)
	}
	defer rows.Close()

	var cols []schema.Column
	for rows.Next() {
		var c schema.Column
		if err := rows.Scan(&c.Name, &c.Type); err != nil {
			return nil, errors.Wrap(err, "unable to scan column metadata")
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "error describing table %s", table)
	}

	return cols, nil
}

// Tables lists user tables, for console completion.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT table_name FROM information_schema.tables ORDER BY table_name")
	if err != nil {
		return nil, errors.Wrap(err, "unable to list tables")
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "unable to scan table name")
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error listing tables")
	}

	return tables, nil
}

// Exec runs a statement that returns no rows.
func (s *Store) Exec(ctx context.Context, q string, args ...any) error {
	_, err := s.db.ExecContext(ctx, q, args...)
	return errors.Wrap(err, "exec failed")
}
