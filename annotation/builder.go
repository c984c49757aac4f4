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

	merrors "dirpx.dev/mirror/errors"
)

// Builder accumulates tags and values and produces immutable Values.
//
// Setters chain. The first failing call is recorded and turns every later
// call into a no-op; Err reports it immediately and Build returns it.
// Storing a value under an element overwrites any previous value there
// (last write wins, keeping the first insertion position) and tags the
// element's owner.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	tags   []string
	tagSet map[string]struct{}
	order  []Element
	elems  map[Element]entry
	err    error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		tagSet: make(map[string]struct{}),
		elems:  make(map[Element]entry),
	}
}

// Err returns the first error recorded by a setter, if any.
func (b *Builder) Err() error {
	return b.err
}

// Build snapshots the accumulated state. Later builder calls do not affect
// the returned store. An untouched builder yields Empty().
func (b *Builder) Build() (*Values, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.tags) == 0 && len(b.order) == 0 {
		return empty, nil
	}

	s := &Values{
		tags:   cloneSlice(b.tags),
		tagSet: make(map[string]struct{}, len(b.tagSet)),
		order:  cloneSlice(b.order),
		elems:  make(map[Element]entry, len(b.elems)),
	}
	for t := range b.tagSet {
		s.tagSet[t] = struct{}{}
	}
	// Stored slices are never mutated in place by the builder, so entries
	// can be shared with the snapshot.
	for e, en := range b.elems {
		s.elems[e] = en
	}
	return s, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Values {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Tag marks the metadata type name as present.
func (b *Builder) Tag(name string) *Builder {
	if b.err != nil {
		return b
	}
	if name == "" {
		return b.fail(merrors.NilArgument("builder.Tag", "name"))
	}
	b.tag(name)
	return b
}

func (b *Builder) tag(name string) {
	if _, ok := b.tagSet[name]; ok {
		return
	}
	b.tagSet[name] = struct{}{}
	b.tags = append(b.tags, name)
}

func (b *Builder) fail(err error) *Builder {
	b.err = err
	return b
}

// set stores v under e. v must already be owned by the builder.
func (b *Builder) set(op string, e Element, k Kind, v any) *Builder {
	if b.err != nil {
		return b
	}
	if e.IsZero() {
		return b.fail(merrors.NilArgument(op, "element"))
	}
	if _, ok := b.elems[e]; !ok {
		b.order = append(b.order, e)
	}
	b.elems[e] = entry{kind: k, v: v}
	b.tag(e.Owner)
	return b
}

// Int stores an int.
func (b *Builder) Int(e Element, v int) *Builder { return b.set("builder.Int", e, Int, v) }

// Byte stores an int8.
func (b *Builder) Byte(e Element, v int8) *Builder { return b.set("builder.Byte", e, Byte, v) }

// Short stores an int16.
func (b *Builder) Short(e Element, v int16) *Builder { return b.set("builder.Short", e, Short, v) }

// Long stores an int64.
func (b *Builder) Long(e Element, v int64) *Builder { return b.set("builder.Long", e, Long, v) }

// Float stores a float32.
func (b *Builder) Float(e Element, v float32) *Builder { return b.set("builder.Float", e, Float, v) }

// Double stores a float64.
func (b *Builder) Double(e Element, v float64) *Builder {
	return b.set("builder.Double", e, Double, v)
}

// Bool stores a bool.
func (b *Builder) Bool(e Element, v bool) *Builder { return b.set("builder.Bool", e, Bool, v) }

// Char stores a rune.
func (b *Builder) Char(e Element, v rune) *Builder { return b.set("builder.Char", e, Char, v) }

// Text stores a string.
func (b *Builder) Text(e Element, v string) *Builder { return b.set("builder.Text", e, String, v) }

// Enum stores an enum constant.
func (b *Builder) Enum(e Element, v Enum) *Builder {
	if b.err == nil && v.IsZero() {
		return b.fail(merrors.NilArgument("builder.Enum", "value"))
	}
	return b.set("builder.Enum", e, EnumKind, v)
}

// Annotation stores a nested store.
func (b *Builder) Annotation(e Element, v *Values) *Builder {
	if b.err == nil && v == nil {
		return b.fail(merrors.NilArgument("builder.Annotation", "value"))
	}
	return b.set("builder.Annotation", e, Nested, v)
}

// Type stores a type reference.
func (b *Builder) Type(e Element, v reflect.Type) *Builder {
	if b.err == nil && v == nil {
		return b.fail(merrors.NilArgument("builder.Type", "value"))
	}
	return b.set("builder.Type", e, TypeRef, v)
}

// Ints stores a copy of v.
func (b *Builder) Ints(e Element, v ...int) *Builder {
	return b.set("builder.Ints", e, Ints, cloneSlice(v))
}

// Bytes stores a copy of v.
func (b *Builder) Bytes(e Element, v ...int8) *Builder {
	return b.set("builder.Bytes", e, Bytes, cloneSlice(v))
}

// Shorts stores a copy of v.
func (b *Builder) Shorts(e Element, v ...int16) *Builder {
	return b.set("builder.Shorts", e, Shorts, cloneSlice(v))
}

// Longs stores a copy of v.
func (b *Builder) Longs(e Element, v ...int64) *Builder {
	return b.set("builder.Longs", e, Longs, cloneSlice(v))
}

// Floats stores a copy of v.
func (b *Builder) Floats(e Element, v ...float32) *Builder {
	return b.set("builder.Floats", e, Floats, cloneSlice(v))
}

// Doubles stores a copy of v.
func (b *Builder) Doubles(e Element, v ...float64) *Builder {
	return b.set("builder.Doubles", e, Doubles, cloneSlice(v))
}

// Bools stores a copy of v.
func (b *Builder) Bools(e Element, v ...bool) *Builder {
	return b.set("builder.Bools", e, Bools, cloneSlice(v))
}

// Chars stores a copy of v.
func (b *Builder) Chars(e Element, v ...rune) *Builder {
	return b.set("builder.Chars", e, Chars, cloneSlice(v))
}

// Texts stores a copy of v.
func (b *Builder) Texts(e Element, v ...string) *Builder {
	return b.set("builder.Texts", e, Strings, cloneSlice(v))
}

// Enums stores a copy of v. All constants must share the type of v[0];
// the first one that does not fails with a type mismatch naming its index.
func (b *Builder) Enums(e Element, v ...Enum) *Builder {
	const op = "builder.Enums"
	if b.err != nil {
		return b
	}
	for i, c := range v {
		if c.IsZero() {
			return b.fail(merrors.New(op, merrors.KindNilArgument).
				Element(e).Index(i).Detail("enum constant cannot be nil").Build())
		}
		if c.Type != v[0].Type {
			return b.fail(merrors.New(op, merrors.KindTypeMismatch).
				Element(e).Index(i).Want(v[0].Type).Got(c.Type).
				Detail("enums at index [0] and [%d] differ in type", i).Build())
		}
	}
	return b.set(op, e, Enums, cloneSlice(v))
}

// Annotations stores a copy of v. Nil stores are rejected.
func (b *Builder) Annotations(e Element, v ...*Values) *Builder {
	const op = "builder.Annotations"
	if b.err != nil {
		return b
	}
	for i, s := range v {
		if s == nil {
			return b.fail(merrors.New(op, merrors.KindNilArgument).
				Element(e).Index(i).Detail("nested values cannot be nil").Build())
		}
	}
	return b.set(op, e, Nesteds, cloneSlice(v))
}

// Types stores a copy of v. Nil types are rejected.
func (b *Builder) Types(e Element, v ...reflect.Type) *Builder {
	const op = "builder.Types"
	if b.err != nil {
		return b
	}
	for i, t := range v {
		if t == nil {
			return b.fail(merrors.New(op, merrors.KindNilArgument).
				Element(e).Index(i).Detail("type cannot be nil").Build())
		}
	}
	return b.set(op, e, TypeRefs, cloneSlice(v))
}

// Put stores v under e, choosing the setter from v's dynamic type.
// v must hold one of the Go types listed on Kind.
func (b *Builder) Put(e Element, v any) *Builder {
	const op = "builder.Put"
	if b.err != nil {
		return b
	}

	switch x := v.(type) {
	case nil:
		return b.fail(merrors.NilArgument(op, "value"))
	case int:
		return b.Int(e, x)
	case int8:
		return b.Byte(e, x)
	case int16:
		return b.Short(e, x)
	case int64:
		return b.Long(e, x)
	case float32:
		return b.Float(e, x)
	case float64:
		return b.Double(e, x)
	case bool:
		return b.Bool(e, x)
	case rune:
		return b.Char(e, x)
	case string:
		return b.Text(e, x)
	case Enum:
		return b.Enum(e, x)
	case *Values:
		return b.Annotation(e, x)
	case []int:
		return b.Ints(e, x...)
	case []int8:
		return b.Bytes(e, x...)
	case []int16:
		return b.Shorts(e, x...)
	case []int64:
		return b.Longs(e, x...)
	case []float32:
		return b.Floats(e, x...)
	case []float64:
		return b.Doubles(e, x...)
	case []bool:
		return b.Bools(e, x...)
	case []rune:
		return b.Chars(e, x...)
	case []string:
		return b.Texts(e, x...)
	case []Enum:
		return b.Enums(e, x...)
	case []*Values:
		return b.Annotations(e, x...)
	case []reflect.Type:
		return b.Types(e, x...)
	case reflect.Type:
		return b.Type(e, x)
	default:
		return b.fail(merrors.TypeMismatch(op, e, "supported kind", fmt.Sprintf("%T", v)))
	}
}
