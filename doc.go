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

// Package mirror provides a process-wide service for annotation-style
// metadata in Go: typed attribute values attached to declarations, and
// objects that answer a contract interface from those values.
//
// # Design
//
// The package holds a read-mostly global snapshot (state) with:
//
//   - Config: naming rules (qualified names, unwrap depth), the casing
//     that maps accessor methods to element names, and cache sizing.
//
//   - Registry: explicit names for Go types. Metadata types are named by
//     the Go type that declares them, so registering a contract interface
//     fixes the owner name of every element it reads.
//
//   - Resolver: turns a Go value or type into a metadata type name. The
//     default chain tries, in order:
//     1. apis.Namer on the value (AnnotationName()).
//     2. The Registry.
//     3. A reflect-based "pkg.Type" fallback.
//
//   - Builder: the factory for Registry and Resolver. A rebuilt registry
//     keeps the entries of the previous one.
//
//   - Engine and Walker: the synthesis engine and declaration walker,
//     derived from the three above on every publish.
//
// Readers load the snapshot atomically and never lock. Writers take a
// short build mutex, assemble a new snapshot and swap it in:
//
//	mirror.RegisterType(reflect.TypeFor[Retry](), "Retry")
//
//	values := annotation.NewBuilder().
//		Int(mirror.ElementOf[Retry]("maxAttempts"), 3).
//		MustBuild()
//
//	obj, err := mirror.SynthesizeAs[Retry](values)
//	n, err := obj.Invoke("MaxAttempts") // 3
//
// # Pinning
//
// SetRegistry and SetResolver install a layer and pin it: SetConfig and
// SetBuilder stop rebuilding a pinned layer until UnpinRegistry or
// UnpinResolver. Pinning changes nothing else in the snapshot.
//
// # Caches
//
// Contracts and walked declarations are cached by the engine and walker
// of the current snapshot. Any publish (SetConfig, RegisterType, ...)
// starts from empty caches, so cached names never outlive the rules that
// produced them.
//
// # Observability
//
// Logging goes through package logging (zap, silent by default). Metrics
// are off until SetMetrics installs a *metrics.Metrics.
package mirror
