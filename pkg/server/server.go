/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dburkart/sift/pkg/store"
)

type Server struct {
	log     zerolog.Logger
	metrics MetricsStore

	store       *store.Store
	apiPort     int
	metricsPort int
}

func New(log zerolog.Logger, st *store.Store, apiPort, metricsPort int) Server {
	return Server{
		log,
		NewMetricsStore(),
		st,
		apiPort,
		metricsPort,
	}
}

// Mux builds the API routing table. Split out from ServeAPI so tests can
// drive the handlers without a listener.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/preview", s.handlePreview)
	mux.HandleFunc("/api/v1/query", s.handleQuery)
	mux.HandleFunc("/api/v1/columns", s.handleColumns)
	return mux
}

func (s *Server) ServeAPI() {
	s.log.Info().Int("api-port", s.apiPort).Msg("listening for API requests")

	err := http.ListenAndServe(fmt.Sprintf(":%d", s.apiPort), s.Mux())
	if err != nil {
		s.log.Error().Err(err).Msg("error listening and serving")
	}
}

func (s *Server) ServeMetrics() {
	s.log.Info().Int("port", s.metricsPort).Msg("/metrics endpoint started")
	http.Handle("/metrics", s.metrics.Handler())
	http.ListenAndServe(fmt.Sprintf(":%d", s.metricsPort), nil)
}
