/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package sift is the client API used by the CLI and by embedding
// programs. A client either opens a database file in-process or talks to
// a sift server over HTTP; both present the same interface.
package sift

import (
	"context"

	"github.com/dburkart/sift/pkg/proto"
	"github.com/dburkart/sift/pkg/schema"
)

type Client interface {
	Close() error
	// Preview returns the processed query without executing it.
	Preview(context.Context, proto.QueryRequest) (proto.PreviewResponse, error)
	// Query rewrites and executes.
	Query(context.Context, proto.QueryRequest) (proto.QueryResponse, error)
	// TimeColumns lists a table's time-candidate columns.
	TimeColumns(context.Context, string) ([]schema.Column, error)
	// Tables lists queryable tables, for completion.
	Tables(context.Context) ([]string, error)
}

// NewClient creates a Client for the given connection string: a local
// database path yields an in-process client, a sift:// or http:// URL a
// client for a remote server.
func NewClient(connstr string) (Client, error) {
	target, err := proto.ParseConnectionString(connstr)
	if err != nil {
		return nil, err
	}

	if target.Local == true {
		return newLocalClient(target)
	}
	return newRemoteClient(target), nil
}
