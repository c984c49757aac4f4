/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package metrics provides Prometheus metrics for mirror's caches and
// synthesis engine.
//
// A nil *Metrics is valid and records nothing, so components can carry one
// unconditionally.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for mirror.
type Metrics struct {
	// Cache metrics, labelled by cache name
	CacheHitsTotal       *prometheus.CounterVec
	CacheMissesTotal     *prometheus.CounterVec
	CacheEvictionsTotal  *prometheus.CounterVec
	CacheLoadErrorsTotal *prometheus.CounterVec

	// Synthesis metrics
	ContractsBuiltTotal     prometheus.Counter
	ObjectsSynthesizedTotal prometheus.Counter
	InvocationErrorsTotal   *prometheus.CounterVec

	// Walker metrics
	DeclarationsWalkedTotal prometheus.Counter
}

// New creates all metrics and registers them with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	m := &Metrics{}

	m.CacheHitsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mirror_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	m.CacheMissesTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mirror_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	m.CacheEvictionsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mirror_cache_evictions_total",
			Help: "Total number of entries evicted from bounded caches",
		},
		[]string{"cache"},
	)

	m.CacheLoadErrorsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mirror_cache_load_errors_total",
			Help: "Total number of failed cache loads",
		},
		[]string{"cache"},
	)

	m.ContractsBuiltTotal = f.NewCounter(
		prometheus.CounterOpts{
			Name: "mirror_contracts_built_total",
			Help: "Total number of contract dispatch tables built",
		},
	)

	m.ObjectsSynthesizedTotal = f.NewCounter(
		prometheus.CounterOpts{
			Name: "mirror_objects_synthesized_total",
			Help: "Total number of synthesized annotation objects",
		},
	)

	m.InvocationErrorsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mirror_invocation_errors_total",
			Help: "Total number of failed method invocations on synthesized objects",
		},
		[]string{"kind"},
	)

	m.DeclarationsWalkedTotal = f.NewCounter(
		prometheus.CounterOpts{
			Name: "mirror_declarations_walked_total",
			Help: "Total number of declarations whose annotations were collected",
		},
	)

	return m
}

// CacheHit records a hit on the named cache.
func (m *Metrics) CacheHit(cache string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.WithLabelValues(cache).Inc()
}

// CacheMiss records a miss on the named cache.
func (m *Metrics) CacheMiss(cache string) {
	if m == nil {
		return
	}
	m.CacheMissesTotal.WithLabelValues(cache).Inc()
}

// CacheEviction records an eviction from the named cache.
func (m *Metrics) CacheEviction(cache string) {
	if m == nil {
		return
	}
	m.CacheEvictionsTotal.WithLabelValues(cache).Inc()
}

// CacheLoadError records a failed load on the named cache.
func (m *Metrics) CacheLoadError(cache string) {
	if m == nil {
		return
	}
	m.CacheLoadErrorsTotal.WithLabelValues(cache).Inc()
}

// ContractBuilt records a new contract dispatch table.
func (m *Metrics) ContractBuilt() {
	if m == nil {
		return
	}
	m.ContractsBuiltTotal.Inc()
}

// ObjectSynthesized records a new synthesized object.
func (m *Metrics) ObjectSynthesized() {
	if m == nil {
		return
	}
	m.ObjectsSynthesizedTotal.Inc()
}

// InvocationError records a failed invocation by error kind.
func (m *Metrics) InvocationError(kind string) {
	if m == nil {
		return
	}
	m.InvocationErrorsTotal.WithLabelValues(kind).Inc()
}

// DeclarationWalked records a walker cache fill.
func (m *Metrics) DeclarationWalked() {
	if m == nil {
		return
	}
	m.DeclarationsWalkedTotal.Inc()
}
