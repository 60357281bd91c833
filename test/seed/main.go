/*
 * Copyright (c) 2022, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/dburkart/sift/pkg/store"
	"github.com/google/uuid"
)

/*
 * Seeds a database with an hour of synthetic events, spread over both a
 * DATETIME column and an epoch-millisecond BIGINT column, so every
 * representation path has data to filter.
 */

func main() {
	path := "./sift.db"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	db, err := store.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	err = db.Exec(ctx, `CREATE TABLE IF NOT EXISTS events (
		id VARCHAR,
		service VARCHAR,
		status INTEGER,
		created_at TIMESTAMP,
		ts_ms BIGINT
	)`)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	services := []string{"gateway", "billing", "search", "ingest"}
	now := time.Now().UTC()

	for i := 0; i < 3600; i++ {
		at := now.Add(-time.Duration(i) * time.Second)
		err = db.Exec(ctx,
			"INSERT INTO events VALUES (?, ?, ?, ?, ?)",
			uuid.NewString(),
			services[rand.Intn(len(services))],
			200+10*rand.Intn(31),
			at,
			at.UnixMilli(),
		)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fmt.Printf("seeded %s with 3600 events\n", path)
}
