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
	"reflect"
	"strings"

	"github.com/cespare/xxhash/v2"

	merrors "dirpx.dev/mirror/errors"
)

// Values is an immutable store of annotation values: a set of tags (the
// metadata types present) and a map from Element to a kind-tagged value.
//
// Values is built only through a Builder and is never mutated afterwards,
// so it is safe for concurrent use without locking. Slice-valued getters
// return a fresh copy on every call. A nil *Values reads like Empty().
type Values struct {
	// tags preserves tag insertion order for rendering.
	tags   []string
	tagSet map[string]struct{}
	// order preserves element insertion order for rendering.
	order []Element
	elems map[Element]entry
}

// empty is the shared store with no tags and no elements.
var empty = &Values{
	tagSet: map[string]struct{}{},
	elems:  map[Element]entry{},
}

// Empty returns the shared store with no tags and no elements.
func Empty() *Values {
	return empty
}

// lookup returns the entry stored under e.
func (s *Values) lookup(e Element) (entry, bool) {
	if s == nil {
		return entry{}, false
	}
	en, ok := s.elems[e]
	return en, ok
}

// HasTag reports whether the metadata type name is present.
// The empty name is never present.
func (s *Values) HasTag(name string) bool {
	if s == nil || name == "" {
		return false
	}
	_, ok := s.tagSet[name]
	return ok
}

// HasElement reports whether a value is stored under e.
func (s *Values) HasElement(e Element) bool {
	_, ok := s.lookup(e)
	return ok
}

// Tags returns the tag names in insertion order.
func (s *Values) Tags() []string {
	if s == nil {
		return []string{}
	}
	return cloneSlice(s.tags)
}

// Elements returns the stored elements in insertion order.
func (s *Values) Elements() []Element {
	if s == nil {
		return []Element{}
	}
	return cloneSlice(s.order)
}

// ElementsOf returns the stored elements owned by owner, in insertion order.
func (s *Values) ElementsOf(owner string) []Element {
	out := []Element{}
	if s == nil {
		return out
	}
	for _, e := range s.order {
		if e.Owner == owner {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of stored elements.
func (s *Values) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// KindAt returns the kind of the value stored under e.
func (s *Values) KindAt(e Element) (Kind, bool) {
	en, ok := s.lookup(e)
	return en.kind, ok
}

// Boxed returns the value stored under e without a kind check.
// Slice payloads are still copied.
func (s *Values) Boxed(e Element) (any, bool, error) {
	if e.IsZero() {
		return nil, false, merrors.NilArgument("values.Boxed", "element")
	}
	en, ok := s.lookup(e)
	if !ok {
		return nil, false, nil
	}
	return CopyValue(en.kind, en.v), true, nil
}

// scalar implements the typed scalar getters.
func scalar[T any](s *Values, op string, e Element, want Kind) (T, bool, error) {
	var zero T
	if e.IsZero() {
		return zero, false, merrors.NilArgument(op, "element")
	}
	en, ok := s.lookup(e)
	if !ok {
		return zero, false, nil
	}
	if en.kind != want {
		return zero, false, merrors.TypeMismatch(op, e, want.String(), en.kind.String())
	}
	return en.v.(T), true, nil
}

// list implements the typed slice getters. An absent element yields an
// empty, non-nil slice.
func list[T any](s *Values, op string, e Element, want Kind) ([]T, error) {
	if e.IsZero() {
		return nil, merrors.NilArgument(op, "element")
	}
	en, ok := s.lookup(e)
	if !ok {
		return []T{}, nil
	}
	if en.kind != want {
		return nil, merrors.TypeMismatch(op, e, want.String(), en.kind.String())
	}
	return cloneSlice(en.v.([]T)), nil
}

// Int returns the int stored under e.
func (s *Values) Int(e Element) (int, bool, error) {
	return scalar[int](s, "values.Int", e, Int)
}

// Byte returns the int8 stored under e.
func (s *Values) Byte(e Element) (int8, bool, error) {
	return scalar[int8](s, "values.Byte", e, Byte)
}

// Short returns the int16 stored under e.
func (s *Values) Short(e Element) (int16, bool, error) {
	return scalar[int16](s, "values.Short", e, Short)
}

// Long returns the int64 stored under e.
func (s *Values) Long(e Element) (int64, bool, error) {
	return scalar[int64](s, "values.Long", e, Long)
}

// Float returns the float32 stored under e.
func (s *Values) Float(e Element) (float32, bool, error) {
	return scalar[float32](s, "values.Float", e, Float)
}

// Double returns the float64 stored under e.
func (s *Values) Double(e Element) (float64, bool, error) {
	return scalar[float64](s, "values.Double", e, Double)
}

// Bool returns the bool stored under e.
func (s *Values) Bool(e Element) (bool, bool, error) {
	return scalar[bool](s, "values.Bool", e, Bool)
}

// Char returns the rune stored under e.
func (s *Values) Char(e Element) (rune, bool, error) {
	return scalar[rune](s, "values.Char", e, Char)
}

// Text returns the string stored under e.
func (s *Values) Text(e Element) (string, bool, error) {
	return scalar[string](s, "values.Text", e, String)
}

// Enum returns the enum constant stored under e.
func (s *Values) Enum(e Element) (Enum, bool, error) {
	return scalar[Enum](s, "values.Enum", e, EnumKind)
}

// Annotation returns the nested store under e.
func (s *Values) Annotation(e Element) (*Values, bool, error) {
	return scalar[*Values](s, "values.Annotation", e, Nested)
}

// Type returns the type reference stored under e.
func (s *Values) Type(e Element) (reflect.Type, bool, error) {
	return scalar[reflect.Type](s, "values.Type", e, TypeRef)
}

// Ints returns a copy of the []int stored under e.
func (s *Values) Ints(e Element) ([]int, error) {
	return list[int](s, "values.Ints", e, Ints)
}

// Bytes returns a copy of the []int8 stored under e.
func (s *Values) Bytes(e Element) ([]int8, error) {
	return list[int8](s, "values.Bytes", e, Bytes)
}

// Shorts returns a copy of the []int16 stored under e.
func (s *Values) Shorts(e Element) ([]int16, error) {
	return list[int16](s, "values.Shorts", e, Shorts)
}

// Longs returns a copy of the []int64 stored under e.
func (s *Values) Longs(e Element) ([]int64, error) {
	return list[int64](s, "values.Longs", e, Longs)
}

// Floats returns a copy of the []float32 stored under e.
func (s *Values) Floats(e Element) ([]float32, error) {
	return list[float32](s, "values.Floats", e, Floats)
}

// Doubles returns a copy of the []float64 stored under e.
func (s *Values) Doubles(e Element) ([]float64, error) {
	return list[float64](s, "values.Doubles", e, Doubles)
}

// Bools returns a copy of the []bool stored under e.
func (s *Values) Bools(e Element) ([]bool, error) {
	return list[bool](s, "values.Bools", e, Bools)
}

// Chars returns a copy of the []rune stored under e.
func (s *Values) Chars(e Element) ([]rune, error) {
	return list[rune](s, "values.Chars", e, Chars)
}

// Texts returns a copy of the []string stored under e.
func (s *Values) Texts(e Element) ([]string, error) {
	return list[string](s, "values.Texts", e, Strings)
}

// Enums returns a copy of the []Enum stored under e.
func (s *Values) Enums(e Element) ([]Enum, error) {
	return list[Enum](s, "values.Enums", e, Enums)
}

// Annotations returns a copy of the nested stores under e.
func (s *Values) Annotations(e Element) ([]*Values, error) {
	return list[*Values](s, "values.Annotations", e, Nesteds)
}

// Types returns a copy of the type references stored under e.
func (s *Values) Types(e Element) ([]reflect.Type, error) {
	return list[reflect.Type](s, "values.Types", e, TypeRefs)
}

// Equal reports whether s and o hold the same tags and the same values.
// Tag and element order do not matter. Slices compare by content.
func (s *Values) Equal(o *Values) bool {
	if s == o {
		return true
	}
	if s == nil {
		s = empty
	}
	if o == nil {
		o = empty
	}
	if len(s.tags) != len(o.tags) || len(s.order) != len(o.order) {
		return false
	}
	for _, t := range s.tags {
		if _, ok := o.tagSet[t]; !ok {
			return false
		}
	}
	for e, a := range s.elems {
		b, ok := o.elems[e]
		if !ok || a.kind != b.kind || !EqualValue(a.kind, a.v, b.v) {
			return false
		}
	}
	return true
}

// Hash returns a hash consistent with Equal. It does not depend on tag or
// element order.
func (s *Values) Hash() uint64 {
	if s == nil {
		s = empty
	}
	var tags, elems uint64
	for _, t := range s.tags {
		tags += xxhash.Sum64String(t)
	}
	for e, en := range s.elems {
		buf := appendString(appendString(nil, e.Owner), e.Name)
		elems += xxhash.Sum64(buf) ^ HashValue(en.kind, en.v)
	}

	buf := make([]byte, 0, 32)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(s.tags)))
	buf = binary.LittleEndian.AppendUint64(buf, tags)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(s.order)))
	buf = binary.LittleEndian.AppendUint64(buf, elems)
	return xxhash.Sum64(buf)
}

// String renders the store as "@Owner(name=value,...)" groups, one per tag
// in tag order, with elements in insertion order.
//
//	@Retention(value=SOURCE)@Target(value=ANNOTATION_TYPE,other_element=other value)
func (s *Values) String() string {
	if s == nil {
		return ""
	}

	groups := make(map[string][]Element, len(s.tags))
	owners := cloneSlice(s.tags)
	for _, e := range s.order {
		if _, ok := groups[e.Owner]; !ok {
			if _, tagged := s.tagSet[e.Owner]; !tagged {
				owners = append(owners, e.Owner)
			}
		}
		groups[e.Owner] = append(groups[e.Owner], e)
	}

	var b strings.Builder
	for _, owner := range owners {
		b.WriteByte('@')
		b.WriteString(owner)
		b.WriteByte('(')
		for i, e := range groups[owner] {
			if i > 0 {
				b.WriteByte(',')
			}
			en := s.elems[e]
			b.WriteString(e.Name)
			b.WriteByte('=')
			b.WriteString(FormatValue(en.kind, en.v))
		}
		b.WriteByte(')')
	}
	return b.String()
}
