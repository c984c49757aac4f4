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

package synth

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/mirror/annotation"
	"dirpx.dev/mirror/apis"
	"dirpx.dev/mirror/cache"
	"dirpx.dev/mirror/config"
	merrors "dirpx.dev/mirror/errors"
	"dirpx.dev/mirror/logging"
	"dirpx.dev/mirror/metrics"
	"dirpx.dev/mirror/resolver"
	"dirpx.dev/mirror/strategy"
	ureflect "dirpx.dev/mirror/utils/reflect"
)

// Engine builds contracts and synthesizes objects. Contracts are cached
// per interface type. An Engine is safe for concurrent use.
type Engine struct {
	cfg       apis.Config
	res       apis.Resolver
	handler   Handler
	metrics   *metrics.Metrics
	contracts cache.Cache[reflect.Type, *Contract]
}

// Option configures New.
type Option func(*Engine)

// WithConfig sets the configuration used for naming and caching.
// Defaults to config.DefaultConfig().
func WithConfig(cfg apis.Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithResolver sets the resolver that names contract types.
// Defaults to a Namer -> Reflect chain.
func WithResolver(r apis.Resolver) Option {
	return func(e *Engine) {
		if r != nil {
			e.res = r
		}
	}
}

// WithHandler replaces DefaultHandler for every object the engine builds.
func WithHandler(h Handler) Option {
	return func(e *Engine) {
		if h != nil {
			e.handler = h
		}
	}
}

// WithMetrics records contract, synthesis, invocation and cache counters on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New returns an Engine configured by opts.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:     config.DefaultConfig(),
		handler: DefaultHandler,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.res == nil {
		e.res = resolver.New(
			strategy.NewNamerStrategy(),
			strategy.NewReflectStrategy(),
		)
	}

	c, err := cache.New[reflect.Type, *Contract](e.cfg.CacheStrategy, e.cfg.CacheSize,
		cache.WithName("contracts"),
		cache.WithMetrics(e.metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("synth: %w", err)
	}
	e.contracts = c
	return e, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Engine {
	e, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() apis.Config { return e.cfg }

// Metrics returns the engine metrics, or nil.
func (e *Engine) Metrics() *metrics.Metrics { return e.metrics }

// Contract returns the dispatch table for the interface type t.
// Pointers to interfaces are accepted, so reflect.TypeOf((*C)(nil)) works.
func (e *Engine) Contract(t reflect.Type) (*Contract, error) {
	if t == nil {
		return nil, merrors.NilArgument("synth.Contract", "type")
	}
	t = ureflect.Indirect(t)

	return e.contracts.GetOrLoad(t, func() (*Contract, error) {
		name := e.res.ResolveType(t, e.cfg)
		if name == "" {
			return nil, merrors.InvalidContract("synth.Contract", t.String(), "type cannot be named")
		}
		c, err := NewContract(t, name, e.cfg.ElementCase)
		if err != nil {
			return nil, err
		}
		e.metrics.ContractBuilt()
		logging.Named("synth").Debug("contract built",
			zap.Stringer("type", t),
			zap.String("name", name),
			zap.Int("accessors", len(c.accessors)),
		)
		return c, nil
	})
}

// Synthesize returns an object of contract t answering from values.
//
// Values are not checked against the contract up front; an accessor with
// no stored value fails when called. Use Contract(t).Missing(values) to
// check ahead of time.
func (e *Engine) Synthesize(values *annotation.Values, t reflect.Type) (*Object, error) {
	if values == nil {
		return nil, merrors.NilArgument("synth.Synthesize", "values")
	}
	c, err := e.Contract(t)
	if err != nil {
		return nil, err
	}
	e.metrics.ObjectSynthesized()
	return &Object{
		contract: c,
		values:   values,
		handler:  e.handler,
		metrics:  e.metrics,
	}, nil
}

// For synthesizes an object of contract C, which must be an interface type.
func For[C any](e *Engine, values *annotation.Values) (*Object, error) {
	return e.Synthesize(values, reflect.TypeFor[C]())
}
