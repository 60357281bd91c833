/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsStore interface {
	Registry() *prometheus.Registry
	RegisterCollector(c prometheus.Collector)
	Handler() http.Handler

	// Collection
	IncRequests(endpoint string)
	IncRewrites(outcome string)
	ObserveQueryNS(endpoint string, t int64)
}

type metricsStore struct {
	registry *prometheus.Registry
	Requests *prometheus.CounterVec
	Rewrites *prometheus.CounterVec
	QueryNS  *prometheus.HistogramVec
}

var (
	EndpointLabel = "endpoint"
	OutcomeLabel  = "outcome"
)

func NewMetricsStore() MetricsStore {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.MetricsAll),
		),
	)

	buckets := []float64{}
	for i := 1; i < 20; i++ {
		buckets = append(buckets, float64(2*i*int(time.Millisecond)))
	}

	factory := promauto.With(reg)
	return &metricsStore{
		registry: reg,
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sift_requests",
			Help: "Request counts per API endpoint",
		}, []string{EndpointLabel}),
		Rewrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sift_rewrites",
			Help: "Time-filter rewrite outcomes (injected, skipped, none)",
		}, []string{OutcomeLabel}),
		QueryNS: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sift_query_ns",
			Help:    "Query execution times against the analytical engine",
			Buckets: buckets,
		}, []string{EndpointLabel}),
	}
}

func (ms *metricsStore) Registry() *prometheus.Registry {
	return ms.registry
}

func (ms *metricsStore) RegisterCollector(c prometheus.Collector) {
	ms.registry.MustRegister(c)
}

func (ms *metricsStore) Handler() http.Handler {
	return promhttp.HandlerFor(ms.Registry(), promhttp.HandlerOpts{Registry: ms.Registry()})
}

func (ms *metricsStore) IncRequests(endpoint string) {
	ms.Requests.With(prometheus.Labels{EndpointLabel: endpoint}).Inc()
}

func (ms *metricsStore) IncRewrites(outcome string) {
	ms.Rewrites.With(prometheus.Labels{OutcomeLabel: outcome}).Inc()
}

func (ms *metricsStore) ObserveQueryNS(endpoint string, t int64) {
	ms.QueryNS.
		With(prometheus.Labels{EndpointLabel: endpoint}).
		Observe(float64(t))
}
