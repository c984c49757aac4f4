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
	"encoding/binary"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// entry is a boxed value tagged with its kind.
// Slice payloads are owned by the store and never handed out directly.
type entry struct {
	kind Kind
	v    any
}

// cloneSlice returns a fresh, non-nil copy of s.
func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// CopyValue returns v with any slice payload copied. Scalars are returned
// as-is. k must be the kind v was stored under.
func CopyValue(k Kind, v any) any {
	switch k {
	case Ints:
		return cloneSlice(v.([]int))
	case Bytes:
		return cloneSlice(v.([]int8))
	case Shorts:
		return cloneSlice(v.([]int16))
	case Longs:
		return cloneSlice(v.([]int64))
	case Floats:
		return cloneSlice(v.([]float32))
	case Doubles:
		return cloneSlice(v.([]float64))
	case Bools:
		return cloneSlice(v.([]bool))
	case Chars:
		return cloneSlice(v.([]rune))
	case Strings:
		return cloneSlice(v.([]string))
	case Enums:
		return cloneSlice(v.([]Enum))
	case Nesteds:
		return cloneSlice(v.([]*Values))
	case TypeRefs:
		return cloneSlice(v.([]reflect.Type))
	default:
		return v
	}
}

// EqualValue compares two values of kind k. Slices compare element-wise,
// floats by bit pattern with every NaN folded into one (so NaN equals
// itself and -0 differs from +0),
// nested stores structurally and type references by identity.
func EqualValue(k Kind, a, b any) bool {
	switch k {
	case Float:
		return float32Bits(a.(float32)) == float32Bits(b.(float32))
	case Double:
		return float64Bits(a.(float64)) == float64Bits(b.(float64))
	case Nested:
		return a.(*Values).Equal(b.(*Values))
	case Ints:
		return slices.Equal(a.([]int), b.([]int))
	case Bytes:
		return slices.Equal(a.([]int8), b.([]int8))
	case Shorts:
		return slices.Equal(a.([]int16), b.([]int16))
	case Longs:
		return slices.Equal(a.([]int64), b.([]int64))
	case Floats:
		return slices.EqualFunc(a.([]float32), b.([]float32), func(x, y float32) bool {
			return float32Bits(x) == float32Bits(y)
		})
	case Doubles:
		return slices.EqualFunc(a.([]float64), b.([]float64), func(x, y float64) bool {
			return float64Bits(x) == float64Bits(y)
		})
	case Bools:
		return slices.Equal(a.([]bool), b.([]bool))
	case Chars:
		return slices.Equal(a.([]rune), b.([]rune))
	case Strings:
		return slices.Equal(a.([]string), b.([]string))
	case Enums:
		return slices.Equal(a.([]Enum), b.([]Enum))
	case Nesteds:
		return slices.EqualFunc(a.([]*Values), b.([]*Values), (*Values).Equal)
	case TypeRefs:
		return slices.Equal(a.([]reflect.Type), b.([]reflect.Type))
	default:
		return a == b
	}
}

// HashValue returns a hash of v consistent with EqualValue.
func HashValue(k Kind, v any) uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 64)
	buf = append(buf, byte(k))
	buf = appendValue(buf, k, v)
	_, _ = d.Write(buf)
	return d.Sum64()
}

// appendValue appends the canonical byte form of v.
func appendValue(buf []byte, k Kind, v any) []byte {
	switch k {
	case Int:
		return binary.LittleEndian.AppendUint64(buf, uint64(v.(int)))
	case Byte:
		return append(buf, byte(v.(int8)))
	case Short:
		return binary.LittleEndian.AppendUint16(buf, uint16(v.(int16)))
	case Long:
		return binary.LittleEndian.AppendUint64(buf, uint64(v.(int64)))
	case Float:
		return binary.LittleEndian.AppendUint32(buf, float32Bits(v.(float32)))
	case Double:
		return binary.LittleEndian.AppendUint64(buf, float64Bits(v.(float64)))
	case Bool:
		if v.(bool) {
			return append(buf, 1)
		}
		return append(buf, 0)
	case Char:
		return binary.LittleEndian.AppendUint32(buf, uint32(v.(rune)))
	case String:
		return appendString(buf, v.(string))
	case EnumKind:
		e := v.(Enum)
		return appendString(appendString(buf, e.Type), e.Name)
	case Nested:
		return binary.LittleEndian.AppendUint64(buf, v.(*Values).Hash())
	case TypeRef:
		return appendString(buf, v.(reflect.Type).String())
	}
	if k.IsSlice() {
		rv := reflect.ValueOf(v)
		n := rv.Len()
		buf = binary.AppendUvarint(buf, uint64(n))
		for i := 0; i < n; i++ {
			buf = appendValue(buf, k.Elem(), rv.Index(i).Interface())
		}
	}
	return buf
}

// float32Bits is math.Float32bits with every NaN mapped to one value.
func float32Bits(f float32) uint32 {
	if f != f {
		return 0x7fc00000
	}
	return math.Float32bits(f)
}

// float64Bits is math.Float64bits with every NaN mapped to one value.
func float64Bits(f float64) uint64 {
	if f != f {
		return 0x7ff8000000000000
	}
	return math.Float64bits(f)
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

// FormatValue renders v in its natural textual form. Slices render as
// "[a, b, c]".
func FormatValue(k Kind, v any) string {
	switch k {
	case Int:
		return strconv.Itoa(v.(int))
	case Byte:
		return strconv.FormatInt(int64(v.(int8)), 10)
	case Short:
		return strconv.FormatInt(int64(v.(int16)), 10)
	case Long:
		return strconv.FormatInt(v.(int64), 10)
	case Float:
		return strconv.FormatFloat(float64(v.(float32)), 'g', -1, 32)
	case Double:
		return strconv.FormatFloat(v.(float64), 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(v.(bool))
	case Char:
		return string(v.(rune))
	case String:
		return v.(string)
	case EnumKind:
		return v.(Enum).String()
	case Nested:
		return v.(*Values).String()
	case TypeRef:
		return v.(reflect.Type).String()
	}
	if !k.IsSlice() {
		return ""
	}

	rv := reflect.ValueOf(v)
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(FormatValue(k.Elem(), rv.Index(i).Interface()))
	}
	b.WriteByte(']')
	return b.String()
}
