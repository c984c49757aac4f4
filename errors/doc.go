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

// Package errors provides the structured error type shared by the mirror
// packages.
//
// Errors carry a Kind (what went wrong) and an Op (where). Missing values are
// never errors: typed getters report them through an ok flag or an empty
// slice. Everything else fails fast at the point of misuse:
//
//   - KindNilArgument: a required argument is absent.
//   - KindTypeMismatch: a stored value has a different kind than requested,
//     or a builder received a heterogeneous enum slice.
//   - KindArgumentMismatch: a synthesized object was invoked with arguments
//     that do not fit the method.
//   - KindMissingElement: a synthesized accessor has no backing value.
//   - KindInvalidContract: a Go type cannot be used as a contract.
//
// Construct errors with the Builder or the convenience constructors:
//
//	err := errors.New("values.Int", errors.KindTypeMismatch).
//		Element(elem).
//		Want("int").
//		Got("string").
//		Build()
//
// Compare with errors.Is against the sentinels:
//
//	if errors.Is(err, merrors.ErrTypeMismatch) { ... }
package errors
