/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dburkart/sift/pkg/proto"
	"github.com/dburkart/sift/pkg/schema"
	"github.com/dburkart/sift/pkg/sqlfilter"
)

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("unable to write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, err error) {
	s.writeJSON(w, code, proto.ErrResponse{Code: code, Err: err.Error()})
}

func (s *Server) decodeQueryRequest(w http.ResponseWriter, r *http.Request) (proto.QueryRequest, bool) {
	var req proto.QueryRequest
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return req, false
	}
	return req, true
}

// handlePreview rewrites the query and hands it back without executing
// anything, for display-only "processed query" views.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequests("preview")

	req, ok := s.decodeQueryRequest(w, r)
	if !ok {
		return
	}

	rewritten, outcome, err := sqlfilter.Rewrite(req.Query, req.TimeColumn(), req.TimeRange())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.metrics.IncRewrites(string(outcome))

	s.writeJSON(w, http.StatusOK, proto.PreviewResponse{
		Query:   rewritten,
		Outcome: string(outcome),
	})
}

// handleQuery rewrites and executes. The rewritten text is echoed back so
// clients can show what actually ran.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequests("query")

	req, ok := s.decodeQueryRequest(w, r)
	if !ok {
		return
	}

	rewritten, outcome, err := sqlfilter.Rewrite(req.Query, req.TimeColumn(), req.TimeRange())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.metrics.IncRewrites(string(outcome))

	id := uuid.NewString()
	log := s.log.With().Str("id", id).Logger()
	log.Debug().Str("query", rewritten).Msg("executing query")

	result, err := s.store.Query(r.Context(), rewritten)
	if err != nil {
		log.Error().Err(err).Msg("query failed")
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.metrics.ObserveQueryNS("query", result.Elapsed.Nanoseconds())

	s.writeJSON(w, http.StatusOK, proto.QueryResponse{
		ID:        id,
		Query:     rewritten,
		Outcome:   string(outcome),
		Columns:   result.Columns,
		Rows:      result.Rows,
		ElapsedMS: result.Elapsed.Milliseconds(),
	})
}

// handleColumns reports a table's time-candidate columns, for range pickers
// that need to offer a column choice.
func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequests("columns")

	table := r.URL.Query().Get("table")
	if table == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("missing table parameter"))
		return
	}

	cols, err := s.store.DescribeColumns(r.Context(), table)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}

	resp := proto.ColumnsResponse{}
	for _, c := range schema.TimeCandidates(cols) {
		resp.Columns = append(resp.Columns, proto.ColumnInfo{
			Name:           c.Name,
			Type:           c.Type,
			Representation: schema.Resolve(c).String(),
		})
	}

	s.writeJSON(w, http.StatusOK, resp)
}
