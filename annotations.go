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
	"fmt"
	"reflect"

	"dirpx.dev/mirror/annotation"
	"dirpx.dev/mirror/synth"
)

// Element returns the element name of the metadata type t.
func Element(t reflect.Type, name string) annotation.Element {
	return annotation.NewElement(TypeName(t), name)
}

// ElementOf returns the element name of the metadata type C.
func ElementOf[C any](name string) annotation.Element {
	return Element(reflect.TypeFor[C](), name)
}

// ValueElementOf returns the "value" element of the metadata type C.
func ValueElementOf[C any]() annotation.Element {
	return ElementOf[C](annotation.ValueName)
}

// EnumOf returns v as an enum constant: its type names the enum and its
// String method names the constant. A nil v yields the zero Enum.
func EnumOf(v fmt.Stringer) annotation.Enum {
	if v == nil {
		return annotation.Enum{}
	}
	return annotation.EnumOf(Name(v), v.String())
}

// TagType tags b with the metadata type name of t.
func TagType(b *annotation.Builder, t reflect.Type) *annotation.Builder {
	return b.Tag(TypeName(t))
}

// HasType reports whether values carries the metadata type t.
func HasType(values *annotation.Values, t reflect.Type) bool {
	return values.HasTag(TypeName(t))
}

// Contract returns the global engine's dispatch table for the interface t.
func Contract(t reflect.Type) (*synth.Contract, error) {
	return st.Load().eng.Contract(t)
}

// Synthesize returns an object of the contract t backed by values.
func Synthesize(values *annotation.Values, t reflect.Type) (*synth.Object, error) {
	return st.Load().eng.Synthesize(values, t)
}

// SynthesizeAs returns an object of the contract C backed by values.
func SynthesizeAs[C any](values *annotation.Values) (*synth.Object, error) {
	return synth.For[C](st.Load().eng, values)
}

// ValuesOf returns the annotation values of decl.
func ValuesOf(decl any) (*annotation.Values, error) {
	return st.Load().walk.Values(decl)
}
