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

// Namer names a metadata type explicitly.
//
// Namer is the zero-reflection fast path of name resolution. When a value
// implements Namer, resolvers MUST use AnnotationName and skip every other
// strategy. The name describes the type, not the instance: it must be
// non-empty, stable across runs and independent of field values.
//
//	type Retention string
//
//	func (Retention) AnnotationName() string { return "java.lang.annotation.Retention" }
type Namer interface {
	// AnnotationName returns the canonical name of the metadata type.
	AnnotationName() string
}

// NamerFunc adapts a plain function to Namer.
type NamerFunc func() string

// AnnotationName calls f.
func (f NamerFunc) AnnotationName() string {
	return f()
}
