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

package annotation

import (
	"fmt"
	"reflect"
)

// Kind is the closed set of value kinds a Values store can hold.
//
// Every stored value carries its Kind, so typed reads are a Kind comparison
// rather than a runtime type inspection. Each scalar kind has exactly one
// slice counterpart:
//
//	Int        int                 Ints        []int
//	Byte       int8                Bytes       []int8
//	Short      int16               Shorts      []int16
//	Long       int64               Longs       []int64
//	Float      float32             Floats      []float32
//	Double     float64             Doubles     []float64
//	Bool       bool                Bools       []bool
//	Char       rune                Chars       []rune
//	String     string              Strings     []string
//	EnumKind   Enum                Enums       []Enum
//	Nested     *Values             Nesteds     []*Values
//	TypeRef    reflect.Type        TypeRefs    []reflect.Type
type Kind uint8

const (
	Invalid Kind = iota

	Int
	Byte
	Short
	Long
	Float
	Double
	Bool
	Char
	String
	EnumKind
	Nested
	TypeRef

	Ints
	Bytes
	Shorts
	Longs
	Floats
	Doubles
	Bools
	Chars
	Strings
	Enums
	Nesteds
	TypeRefs
)

// sliceOffset is the distance between a scalar kind and its slice kind.
const sliceOffset = Ints - Int

var kindGoTypes = [...]reflect.Type{
	Int:      reflect.TypeFor[int](),
	Byte:     reflect.TypeFor[int8](),
	Short:    reflect.TypeFor[int16](),
	Long:     reflect.TypeFor[int64](),
	Float:    reflect.TypeFor[float32](),
	Double:   reflect.TypeFor[float64](),
	Bool:     reflect.TypeFor[bool](),
	Char:     reflect.TypeFor[rune](),
	String:   reflect.TypeFor[string](),
	EnumKind: reflect.TypeFor[Enum](),
	Nested:   reflect.TypeFor[*Values](),
	TypeRef:  reflect.TypeFor[reflect.Type](),

	Ints:     reflect.TypeFor[[]int](),
	Bytes:    reflect.TypeFor[[]int8](),
	Shorts:   reflect.TypeFor[[]int16](),
	Longs:    reflect.TypeFor[[]int64](),
	Floats:   reflect.TypeFor[[]float32](),
	Doubles:  reflect.TypeFor[[]float64](),
	Bools:    reflect.TypeFor[[]bool](),
	Chars:    reflect.TypeFor[[]rune](),
	Strings:  reflect.TypeFor[[]string](),
	Enums:    reflect.TypeFor[[]Enum](),
	Nesteds:  reflect.TypeFor[[]*Values](),
	TypeRefs: reflect.TypeFor[[]reflect.Type](),
}

// kindsByType is the inverse of kindGoTypes.
var kindsByType = func() map[reflect.Type]Kind {
	m := make(map[reflect.Type]Kind, len(kindGoTypes))
	for k, t := range kindGoTypes {
		if t != nil {
			m[t] = Kind(k)
		}
	}
	return m
}()

// KindOf classifies a Go type. Only the exact types listed on Kind are
// accepted; named types such as `type Port int` are not.
func KindOf(t reflect.Type) (Kind, bool) {
	if t == nil {
		return Invalid, false
	}
	k, ok := kindsByType[t]
	return k, ok
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k > Invalid && k <= TypeRefs
}

// IsSlice reports whether k is a slice kind.
func (k Kind) IsSlice() bool {
	return k >= Ints && k <= TypeRefs
}

// Elem returns the scalar kind of a slice kind, or k itself.
func (k Kind) Elem() Kind {
	if k.IsSlice() {
		return k - sliceOffset
	}
	return k
}

// SliceOf returns the slice kind of a scalar kind, or k itself.
func (k Kind) SliceOf() Kind {
	if k.Valid() && !k.IsSlice() {
		return k + sliceOffset
	}
	return k
}

// GoType returns the Go type that holds values of kind k, or nil.
func (k Kind) GoType() reflect.Type {
	if !k.Valid() {
		return nil
	}
	return kindGoTypes[k]
}

// String returns the Go spelling of the kind's type, e.g. "[]int8".
func (k Kind) String() string {
	switch k {
	case Char:
		return "rune"
	case Chars:
		return "[]rune"
	case TypeRef:
		return "reflect.Type"
	case TypeRefs:
		return "[]reflect.Type"
	}
	if t := k.GoType(); t != nil {
		return t.String()
	}
	return fmt.Sprintf("Invalid(%d)", uint8(k))
}
