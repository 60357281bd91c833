/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

import "testing"

func TestParseConnectionString(t *testing.T) {
	tt := []struct {
		test    string
		connStr string
		addr    string
		local   bool
		path    string
	}{
		{
			"Test empty conn string",
			"",
			"local",
			true,
			"./sift.db",
		},
		{
			"Test local file scheme",
			"file:///tmp/analytics.db",
			"local",
			true,
			"/tmp/analytics.db",
		},
		{
			"Test local path no scheme",
			"./local/analytics.db",
			"local",
			true,
			"./local/analytics.db",
		},
		{
			"Test sift scheme",
			"sift://localhost:8001",
			"localhost:8001",
			false,
			"",
		},
		{
			"Test http scheme",
			"http://localhost:8001",
			"localhost:8001",
			false,
			"",
		},
	}

	for _, tc := range tt {
		t.Run(tc.test, func(t *testing.T) {
			cs, err := ParseConnectionString(tc.connStr)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if cs.Local != tc.local {
				t.Errorf("local = %v, want %v", cs.Local, tc.local)
			}
			if cs.Address != tc.addr {
				t.Errorf("address = %s, want %s", cs.Address, tc.addr)
			}
			if cs.Path != tc.path {
				t.Errorf("path = %s, want %s", cs.Path, tc.path)
			}
		})
	}
}

func TestParseConnectionStringRejectsUnknownScheme(t *testing.T) {
	if _, err := ParseConnectionString("postgres://localhost/db"); err == nil {
		t.Error("unknown scheme should be rejected")
	}
}

func TestQueryRequestTimeColumn(t *testing.T) {
	req := QueryRequest{Column: "ts", ColumnType: "BIGINT", Unit: "us"}
	col := req.TimeColumn()
	if col.Name != "ts" || col.Type != "BIGINT" {
		t.Errorf("column = %+v", col)
	}
	if col.Unit == nil || col.Unit.String() != "us" {
		t.Errorf("unit = %v, want us", col.Unit)
	}

	// Unknown units fall back to inference rather than failing the request.
	req.Unit = "fortnights"
	if col := req.TimeColumn(); col.Unit != nil {
		t.Errorf("unknown unit should be dropped, got %v", col.Unit)
	}
}

func TestQueryRequestTimeRange(t *testing.T) {
	req := QueryRequest{From: "now-1h", To: "now"}
	r := req.TimeRange()
	if !r.Enabled || r.From != "now-1h" || r.To != "now" {
		t.Errorf("range = %+v", r)
	}

	for _, req := range []QueryRequest{
		{From: "now-1h", To: "now", Disabled: true},
		{From: "now-1h"},
		{To: "now"},
		{},
	} {
		if r := req.TimeRange(); r.Enabled {
			t.Errorf("request %+v should map to the no-filter sentinel", req)
		}
	}
}
