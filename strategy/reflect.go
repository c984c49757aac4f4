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

package strategy

import (
	"path"
	"reflect"
	"strings"

	"dirpx.dev/mirror/apis"
	"dirpx.dev/mirror/cache"
	uref "dirpx.dev/mirror/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that names types via reflection
// using utils/reflect.Normalize and memoization.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback that computes a stable "pkg.Type"
// (or "import/path.Type" with QualifiedNames). It unwraps pointers, slices
// and arrays via Normalize and strips generic instantiation parameters.
// Predeclared types keep their bare name ("int").
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// cacheKey ensures memoization respects all config knobs that affect resolution.
type cacheKey struct {
	t         reflect.Type
	qualified bool
	maxUnwrap int16
}

// typeNames caches resolved type names by (type, config knobs). The key
// space is the set of types a program names, so it is never evicted.
var typeNames = cache.MustNew[cacheKey, string](cache.Unbounded, 0, cache.WithName("type_names"))

// TryResolve computes the metadata-type name for v's type.
func (reflectStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return byType(reflect.TypeOf(v), cfg), true
}

// TryResolveType computes the metadata-type name for t.
func (reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	return byType(t, cfg), true
}

// byType resolves the name for t with memoization.
func byType(t reflect.Type, cfg apis.Config) string {
	key := cacheKey{
		t:         t,
		qualified: cfg.QualifiedNames,
		maxUnwrap: int16(cfg.MaxUnwrap),
	}
	name, _ := typeNames.GetOrLoad(key, func() (string, error) {
		base, err := uref.Normalize(t, cfg)
		if err != nil || base == nil {
			return "", nil
		}

		name := stripTypeParams(base.Name())
		if p := base.PkgPath(); p != "" {
			if cfg.QualifiedNames {
				name = p + "." + name
			} else {
				name = path.Base(p) + "." + name
			}
		}
		return name, nil
	})
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
