/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dburkart/sift/pkg/proto"
)

func previewServer() Server {
	// Preview never touches the store, so none is wired up.
	return New(zerolog.Nop(), nil, 0, 0)
}

func postPreview(t *testing.T, srv Server, req proto.QueryRequest) (*httptest.ResponseRecorder, proto.PreviewResponse) {
	t.Helper()

	body, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/preview", bytes.NewReader(body))
	srv.Mux().ServeHTTP(w, r)

	var resp proto.PreviewResponse
	if w.Code == http.StatusOK {
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("unable to decode response: %s", err)
		}
	}
	return w, resp
}

func TestPreviewInjects(t *testing.T) {
	srv := previewServer()

	w, resp := postPreview(t, srv, proto.QueryRequest{
		Query:  "SELECT * FROM events LIMIT 10",
		Column: "event_ms",
		Unit:   "ms",
		From:   "now-1h",
		To:     "now",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if resp.Outcome != "injected" {
		t.Errorf("outcome = %s, want injected", resp.Outcome)
	}

	want := "SELECT * FROM events WHERE event_ms >= EPOCH_MS(NOW() - INTERVAL 1 HOUR) AND event_ms <= EPOCH_MS(NOW()) LIMIT 10"
	if resp.Query != want {
		t.Errorf("query = %q, want %q", resp.Query, want)
	}
}

func TestPreviewSkipsFilteredQuery(t *testing.T) {
	srv := previewServer()

	q := "SELECT * FROM events WHERE ts >= now() - interval '1 hour'"
	w, resp := postPreview(t, srv, proto.QueryRequest{
		Query:  q,
		Column: "ts",
		From:   "now-1h",
		To:     "now",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if resp.Outcome != "skipped" || resp.Query != q {
		t.Errorf("outcome = %s query = %q, wanted the original back", resp.Outcome, resp.Query)
	}
}

func TestPreviewDisabledRange(t *testing.T) {
	srv := previewServer()

	w, resp := postPreview(t, srv, proto.QueryRequest{
		Query:    "SELECT * FROM events",
		Column:   "ts",
		From:     "now-1h",
		To:       "now",
		Disabled: true,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if resp.Outcome != "none" || resp.Query != "SELECT * FROM events" {
		t.Errorf("outcome = %s query = %q, wanted untouched query", resp.Outcome, resp.Query)
	}
}

func TestPreviewBadExpression(t *testing.T) {
	srv := previewServer()

	w, _ := postPreview(t, srv, proto.QueryRequest{
		Query:  "SELECT * FROM events",
		Column: "ts",
		From:   "half past never",
		To:     "now",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var errResp proto.ErrResponse
	if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
		t.Fatalf("unable to decode error response: %s", err)
	}
	if errResp.Code != http.StatusBadRequest || errResp.Err == "" {
		t.Errorf("error response = %+v", errResp)
	}
}

func TestPreviewRejectsGet(t *testing.T) {
	srv := previewServer()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/preview", nil)
	srv.Mux().ServeHTTP(w, r)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}
