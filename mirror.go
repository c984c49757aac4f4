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

package mirror

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/mirror/apis"
	"dirpx.dev/mirror/builder"
	"dirpx.dev/mirror/config"
	"dirpx.dev/mirror/introspect"
	"dirpx.dev/mirror/logging"
	"dirpx.dev/mirror/metrics"
	"dirpx.dev/mirror/synth"
)

// init publishes the default snapshot.
func init() {
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil)
	s.res = b.BuildResolver(s.cfg, s.reg, nil)
	s.bld = b
	publish(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("mirror: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("mirror: builder returned nil resolver")
)

// Name resolves the metadata type name of v.
func Name(v any) string {
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// TypeName resolves the metadata type name of t.
func TypeName(t reflect.Type) string {
	s := st.Load()
	return s.res.ResolveType(t, s.cfg)
}

// RegisterType assigns name to the named type behind t in the global
// registry. Cached contracts and declarations are dropped so the new name
// takes effect.
func RegisterType(t reflect.Type, name string) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	if err := old.reg.Register(t, name); err != nil {
		return err
	}
	publish(&state{
		cfg:  old.cfg,
		reg:  old.reg,
		res:  old.res,
		bld:  old.bld,
		met:  old.met,
		preg: old.preg,
		pres: old.pres,
	})
	return nil
}

// SetAll explicitly sets all global state components.
// Nil arguments leave the corresponding component unchanged; nil reg and
// res are rebuilt by the builder and unpinned.
func SetAll(cfg *apis.Config, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Registry
	nreg := reg
	npreg := false
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg)
	} else {
		npreg = true
	}

	// Resolver
	nres := res
	npres := false
	if nres == nil {
		nres = nbld.BuildResolver(ncfg, nreg, old.res)
	} else {
		npres = true
	}

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	publish(&state{
		cfg:  ncfg,
		reg:  nreg,
		res:  nres,
		bld:  nbld,
		met:  old.met,
		preg: npreg,
		pres: npres,
	})
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration and rebuilds every unpinned
// layer. It panics if cfg selects a bounded cache strategy without a
// positive size; use config.NewConfig to get a normalized value.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg and res based on the new cfg and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(cfg, old.reg)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(cfg, nreg, old.res)
	}

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	publish(&state{
		cfg:  cfg,
		reg:  nreg,
		res:  nres,
		bld:  b,
		met:  old.met,
		preg: old.preg,
		pres: old.pres,
	})
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry pins reg as the global registry and rebuilds the resolver
// unless it is pinned.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new res based on the old cfg and new reg.
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, reg, old.res)
	}

	// Ensure non-nil res.
	if nres == nil {
		panic(ErrNilResolver)
	}

	publish(&state{
		cfg:  old.cfg,
		reg:  reg,
		res:  nres,
		bld:  b,
		met:  old.met,
		preg: true,
		pres: old.pres,
	})
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver pins res as the global resolver.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	publish(&state{
		cfg:  old.cfg,
		reg:  old.reg,
		res:  res,
		bld:  old.bld,
		met:  old.met,
		preg: old.preg,
		pres: true,
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b and rebuilds every unpinned layer.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new reg and res based on the new bld and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, nreg, old.res)
	}

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	publish(&state{
		cfg:  old.cfg,
		reg:  nreg,
		res:  nres,
		bld:  b,
		met:  old.met,
		preg: old.preg,
		pres: old.pres,
	})
}

// Metrics returns the metrics the global engine records on, or nil.
func Metrics() *metrics.Metrics {
	return st.Load().met
}

// SetMetrics makes the global engine and walker record on m. A nil m
// turns recording off. Nothing is recorded until SetMetrics is called.
func SetMetrics(m *metrics.Metrics) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	publish(&state{
		cfg:  old.cfg,
		reg:  old.reg,
		res:  old.res,
		bld:  old.bld,
		met:  m,
		preg: old.preg,
		pres: old.pres,
	})
}

// Engine returns the global synthesis engine.
func Engine() *synth.Engine {
	return st.Load().eng
}

// Walker returns the global declaration walker.
func Walker() *introspect.Walker {
	return st.Load().walk
}

// IsRegistryPinned returns whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops SetConfig and SetBuilder from rebuilding the registry.
func PinRegistry() {
	updatePins(func(s *state) { s.preg = true })
}

// UnpinRegistry lets the registry be rebuilt again.
func UnpinRegistry() {
	updatePins(func(s *state) { s.preg = false })
}

// IsResolverPinned returns whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver stops SetConfig, SetBuilder and SetRegistry from rebuilding
// the resolver.
func PinResolver() {
	updatePins(func(s *state) { s.pres = true })
}

// UnpinResolver lets the resolver be rebuilt again.
func UnpinResolver() {
	updatePins(func(s *state) { s.pres = false })
}

func updatePins(f func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Pins do not affect naming, so the engine and its caches carry over.
	next := *st.Load()
	f(&next)
	st.Store(&next)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// reg is the global registry.
	reg apis.Registry
	// res is the global resolver.
	res apis.Resolver
	// bld is the global builder.
	bld apis.Builder
	// met is where the engine records, or nil.
	met *metrics.Metrics
	// eng and walk are derived from cfg, res and met by publish.
	eng  *synth.Engine
	walk *introspect.Walker
	// preg indicates whether the reg is pinned (immutable).
	preg bool
	// pres indicates whether the res is pinned (immutable).
	pres bool
}

// publish derives the engine and walker for s and stores it.
// Callers hold buildMu, except init.
func publish(s *state) {
	eng, err := synth.New(
		synth.WithConfig(s.cfg),
		synth.WithResolver(s.res),
		synth.WithMetrics(s.met),
	)
	if err != nil {
		panic(fmt.Errorf("mirror: %w", err))
	}
	s.eng = eng
	s.walk = introspect.MustNew(eng)

	st.Store(s)
	logging.Named("mirror").Debug("snapshot published",
		zap.Bool("qualified_names", s.cfg.QualifiedNames),
		zap.Stringer("element_case", s.cfg.ElementCase),
		zap.Stringer("cache_strategy", s.cfg.CacheStrategy),
		zap.Int("cache_size", s.cfg.CacheSize),
		zap.Bool("registry_pinned", s.preg),
		zap.Bool("resolver_pinned", s.pres),
	)
}
