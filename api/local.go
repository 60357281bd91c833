/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package sift

import (
	"context"

	"github.com/google/uuid"

	"github.com/dburkart/sift/pkg/proto"
	"github.com/dburkart/sift/pkg/schema"
	"github.com/dburkart/sift/pkg/sqlfilter"
	"github.com/dburkart/sift/pkg/store"
)

// LocalClient runs the engine and the database in-process, no server
// involved.
type LocalClient struct {
	target proto.ConnectionString
	db     *store.Store
}

func newLocalClient(target proto.ConnectionString) (*LocalClient, error) {
	db, err := store.Open(target.Path)
	if err != nil {
		return nil, err
	}

	return &LocalClient{target: target, db: db}, nil
}

func (client *LocalClient) Close() error {
	return client.db.Close()
}

func (client *LocalClient) Preview(_ context.Context, req proto.QueryRequest) (proto.PreviewResponse, error) {
	rewritten, outcome, err := sqlfilter.Rewrite(req.Query, req.TimeColumn(), req.TimeRange())
	if err != nil {
		return proto.PreviewResponse{}, err
	}

	return proto.PreviewResponse{Query: rewritten, Outcome: string(outcome)}, nil
}

func (client *LocalClient) Query(ctx context.Context, req proto.QueryRequest) (proto.QueryResponse, error) {
	rewritten, outcome, err := sqlfilter.Rewrite(req.Query, req.TimeColumn(), req.TimeRange())
	if err != nil {
		return proto.QueryResponse{}, err
	}

	result, err := client.db.Query(ctx, rewritten)
	if err != nil {
		return proto.QueryResponse{}, err
	}

	return proto.QueryResponse{
		ID:        uuid.NewString(),
		Query:     rewritten,
		Outcome:   string(outcome),
		Columns:   result.Columns,
		Rows:      result.Rows,
		ElapsedMS: result.Elapsed.Milliseconds(),
	}, nil
}

func (client *LocalClient) TimeColumns(ctx context.Context, table string) ([]schema.Column, error) {
	cols, err := client.db.DescribeColumns(ctx, table)
	if err != nil {
		return nil, err
	}
	return schema.TimeCandidates(cols), nil
}

func (client *LocalClient) Tables(ctx context.Context) ([]string, error) {
	return client.db.Tables(ctx)
}
