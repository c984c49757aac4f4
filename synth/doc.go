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

// Package synth materializes annotation values as objects of a contract
// interface.
//
// A contract is a Go interface whose methods are accessors (no arguments,
// one result of a supported kind) plus, optionally, the special methods
// Equal(any) bool, Hash() uint64, String() string and
// AnnotationType() reflect.Type. The Engine turns the interface into a
// dispatch table once and caches it; each Object then answers calls from
// its backing store:
//
//	type Retry interface {
//		MaxAttempts() int
//		Codes() []string
//	}
//
//	obj, err := synth.For[Retry](engine, values)
//	n, err := obj.Invoke("MaxAttempts") // reads the int stored at element maxAttempts of Retry
//
// Slice results are fresh copies on every call. Equality is structural
// and restricted to objects of the same contract.
package synth
