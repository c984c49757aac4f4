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

package builder

import (
	"go.uber.org/zap"

	"dirpx.dev/mirror/apis"
	"dirpx.dev/mirror/logging"
	"dirpx.dev/mirror/registry"
	"dirpx.dev/mirror/resolver"
	"dirpx.dev/mirror/strategy"
)

// New creates and returns the default apis.Builder: a sync.Map registry and
// a Namer -> Registry -> Reflect resolver chain.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds a new apis.Registry for cfg. Entries of prev are
// re-registered; an entry the new configuration rejects (for example
// because MaxUnwrap shrank) is dropped with a warning.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	nreg := registry.New(cfg)
	if prev == nil {
		return nreg
	}
	for _, e := range prev.Entries() {
		if err := nreg.Register(e.Type, e.Name); err != nil {
			logging.Named("builder").Warn("registry entry dropped on rebuild",
				zap.Stringer("type", e.Type),
				zap.String("name", e.Name),
				zap.Error(err),
			)
		}
	}
	return nreg
}

// BuildResolver builds a new apis.Resolver over reg. The chain holds no
// state of its own, so prev is not consulted.
func (b *builder) BuildResolver(_ apis.Config, reg apis.Registry, _ apis.Resolver) apis.Resolver {
	return resolver.New(
		strategy.NewNamerStrategy(),
		strategy.NewRegistryStrategy(reg),
		strategy.NewReflectStrategy(),
	)
}
