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

// Package cache provides concurrency-safe, strategy-selectable caches for
// values that are expensive to derive and immutable once derived.
//
// All strategies share one front end: GetOrLoad runs the loader outside any
// lock and collapses concurrent loads of the same key into one call, so a
// slow miss never blocks unrelated keys. Failed loads are not cached.
package cache

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"dirpx.dev/mirror/cache/strategy"
	"dirpx.dev/mirror/logging"
	"dirpx.dev/mirror/metrics"
)

// Cache is a concurrency-safe key/value cache.
type Cache[K comparable, V any] interface {
	// Get returns the cached value for key.
	Get(key K) (V, bool)
	// Add caches value under key, possibly evicting another entry.
	Add(key K, value V)
	// GetOrLoad returns the cached value for key, calling load on a miss.
	// Concurrent callers for the same key share one load. An error from
	// load is returned to every waiting caller and nothing is cached.
	GetOrLoad(key K, load func() (V, error)) (V, error)
	// Remove drops key from the cache.
	Remove(key K)
	// Len returns the number of cached entries.
	Len() int
	// Purge drops every entry.
	Purge()
	// Strategy returns the eviction strategy the cache was built with.
	Strategy() strategy.Strategy
}

// Option configures New.
type Option func(*options)

type options struct {
	name    string
	metrics *metrics.Metrics
}

// WithName sets the name used in logs and metric labels.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithMetrics records hits, misses, evictions and load errors on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// New builds a cache using strategy s. Bounded strategies (LRU, ARC,
// TwoQueue) require size > 0; Unbounded and None ignore size.
func New[K comparable, V any](s strategy.Strategy, size int, opts ...Option) (Cache[K, V], error) {
	o := options{name: "default"}
	for _, opt := range opts {
		opt(&o)
	}

	if s.Bounded() && size <= 0 {
		return nil, fmt.Errorf("cache: %s needs a positive size, got %d", s, size)
	}

	var st store
	switch s {
	case LRU:
		c, err := lru.New(size)
		if err != nil {
			return nil, fmt.Errorf("cache: %w", err)
		}
		st = lruStore{c: c}
	case ARC:
		c, err := lru.NewARC(size)
		if err != nil {
			return nil, fmt.Errorf("cache: %w", err)
		}
		st = arcStore{c: c}
	case TwoQueue:
		c, err := lru.New2Q(size)
		if err != nil {
			return nil, fmt.Errorf("cache: %w", err)
		}
		st = twoQueueStore{c: c}
	case Unbounded:
		st = &mapStore{}
	case None:
		st = noneStore{}
	default:
		return nil, fmt.Errorf("cache: unknown strategy %s", s)
	}

	logging.Named("cache").Debug("cache constructed",
		zap.String("name", o.name),
		zap.Stringer("strategy", s),
		zap.Int("size", size),
	)

	return &cache[K, V]{
		st:       st,
		strategy: s,
		name:     o.name,
		metrics:  o.metrics,
	}, nil
}

// MustNew is like New but panics on error.
func MustNew[K comparable, V any](s strategy.Strategy, size int, opts ...Option) Cache[K, V] {
	c, err := New[K, V](s, size, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Re-exported strategies so callers need a single import.
const (
	LRU       = strategy.LRU
	ARC       = strategy.ARC
	TwoQueue  = strategy.TwoQueue
	Unbounded = strategy.Unbounded
	None      = strategy.None
)

// cache is the typed front end over an untyped store.
type cache[K comparable, V any] struct {
	st       store
	strategy strategy.Strategy
	name     string
	metrics  *metrics.Metrics

	group singleflight.Group
	// flights maps keys with a load in progress to their singleflight key.
	flights sync.Map // map[K]string
	seq     atomic.Uint64
}

// Ensure cache implements Cache.
var _ Cache[string, int] = (*cache[string, int])(nil)

func (c *cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.st.get(key)
	if !ok {
		c.metrics.CacheMiss(c.name)
		var zero V
		return zero, false
	}
	c.metrics.CacheHit(c.name)
	out, _ := v.(V)
	return out, true
}

func (c *cache[K, V]) Add(key K, value V) {
	if c.st.add(key, value) {
		c.metrics.CacheEviction(c.name)
	}
}

func (c *cache[K, V]) GetOrLoad(key K, load func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	// singleflight keys are strings; K is only comparable, so each key with
	// a load in flight is assigned a unique token for the flight's duration.
	token := strconv.FormatUint(c.seq.Add(1), 36)
	actual, _ := c.flights.LoadOrStore(key, token)
	id := actual.(string)

	v, err, _ := c.group.Do(id, func() (any, error) {
		defer c.flights.CompareAndDelete(key, id)

		// A flight that finished between our miss and LoadOrStore may
		// already have filled the entry.
		if v, ok := c.st.get(key); ok {
			return v, nil
		}
		v, err := load()
		if err != nil {
			c.metrics.CacheLoadError(c.name)
			return nil, err
		}
		c.Add(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	out, _ := v.(V)
	return out, nil
}

func (c *cache[K, V]) Remove(key K) {
	c.st.remove(key)
}

func (c *cache[K, V]) Len() int {
	return c.st.len()
}

func (c *cache[K, V]) Purge() {
	c.st.purge()
}

func (c *cache[K, V]) Strategy() strategy.Strategy {
	return c.strategy
}
