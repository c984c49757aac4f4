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

package config

import (
	"dirpx.dev/mirror/apis"
	"dirpx.dev/mirror/cache/strategy"
)

const (
	// DefaultQualifiedNames represents the default for QualifiedNames.
	// Names use the package name, e.g. "policy.Retention".
	DefaultQualifiedNames = false
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultElementCase represents the default for ElementCase.
	DefaultElementCase = apis.LowerCamel
	// DefaultCacheStrategy represents the default for CacheStrategy.
	DefaultCacheStrategy = strategy.LRU
	// DefaultCacheSize represents the default for CacheSize.
	DefaultCacheSize = 256
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap is valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	// A bounded cache cannot have zero capacity.
	if cfg.CacheStrategy.Bounded() && cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		QualifiedNames: DefaultQualifiedNames,
		MaxUnwrap:      DefaultMaxUnwrap,
		ElementCase:    DefaultElementCase,
		CacheStrategy:  DefaultCacheStrategy,
		CacheSize:      DefaultCacheSize,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithQualifiedNames sets the QualifiedNames option.
func WithQualifiedNames(qualified bool) Option {
	return func(c *apis.Config) {
		c.QualifiedNames = qualified
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithElementCase sets the ElementCase option.
func WithElementCase(ec apis.ElementCase) Option {
	return func(c *apis.Config) {
		c.ElementCase = ec
	}
}

// WithCacheStrategy sets the CacheStrategy option.
// Unknown strategies are ignored.
func WithCacheStrategy(s strategy.Strategy) Option {
	return func(c *apis.Config) {
		if s.Valid() {
			c.CacheStrategy = s
		}
	}
}

// WithCacheSize sets the CacheSize option.
// A non-positive size resets to the default.
func WithCacheSize(size int) Option {
	return func(c *apis.Config) {
		if size <= 0 {
			c.CacheSize = DefaultCacheSize
			return
		}
		c.CacheSize = size
	}
}
