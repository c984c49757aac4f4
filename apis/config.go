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

package apis

import (
	"dirpx.dev/mirror/cache/strategy"
)

// Config carries read-only knobs for naming metadata types, deriving
// element names and sizing caches.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// QualifiedNames makes names derived from Go types use the full import
	// path ("example.com/policy.Retention") instead of the package name
	// ("policy.Retention").
	QualifiedNames bool

	// MaxUnwrap limits pointer/slice/array unwrapping when looking for the
	// named type behind a Go type.
	// Acts as a safety guard against pathological nesting.
	MaxUnwrap int

	// ElementCase controls how accessor method names map to element names.
	ElementCase ElementCase

	// CacheStrategy selects eviction for the contract and walker caches.
	CacheStrategy strategy.Strategy

	// CacheSize bounds the contract and walker caches for bounded strategies.
	CacheSize int
}
