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

package annotation_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/mirror/annotation"
	merrors "dirpx.dev/mirror/errors"
)

func TestBuilder_LastWriteWins(t *testing.T) {
	v := build(t, annotation.NewBuilder().
		Text(key, "first").
		Int(otherKey, 1).
		Text(key, "second"))

	got, ok, err := v.Text(key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", got)
	assert.Equal(t, []annotation.Element{key, otherKey}, v.Elements())
}

func TestBuilder_OverwriteMayChangeKind(t *testing.T) {
	v := build(t, annotation.NewBuilder().Text(key, "first").Long(key, 2))

	_, _, err := v.Text(key)
	assert.ErrorIs(t, err, merrors.ErrTypeMismatch)

	got, ok, err := v.Long(key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), got)
}

func TestBuilder_SetterTagsOwner(t *testing.T) {
	v := build(t, annotation.NewBuilder().Bool(annotation.NewElement("Deprecated", "forRemoval"), true))

	assert.True(t, v.HasTag("Deprecated"))
	assert.Equal(t, []string{"Deprecated"}, v.Tags())
}

func TestBuilder_TagIsIdempotent(t *testing.T) {
	v := build(t, annotation.NewBuilder().Tag("A").Tag("B").Tag("A"))

	assert.Equal(t, []string{"A", "B"}, v.Tags())
	assert.Equal(t, 0, v.Len())
}

func TestBuilder_BuildIsSnapshot(t *testing.T) {
	b := annotation.NewBuilder().Int(key, 1)
	first := build(t, b)

	b.Int(key, 2).Text(otherKey, "late").Tag("Late")
	second := build(t, b)

	got, _, err := first.Int(key)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	assert.False(t, first.HasElement(otherKey))
	assert.False(t, first.HasTag("Late"))

	got, _, err = second.Int(key)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
	assert.False(t, first.Equal(second))
}

func TestBuilder_CopiesInputSlices(t *testing.T) {
	in := []string{"a", "b"}
	v := build(t, annotation.NewBuilder().Texts(key, in...))

	in[0] = "mutated"

	got, err := v.Texts(key)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestBuilder_EmptySliceIsStored(t *testing.T) {
	v := build(t, annotation.NewBuilder().Ints(key))

	assert.True(t, v.HasElement(key))
	got, err := v.Ints(key)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = v.Longs(key)
	assert.ErrorIs(t, err, merrors.ErrTypeMismatch)
}

func TestBuilder_EnumsMustShareType(t *testing.T) {
	b := annotation.NewBuilder().Enums(key,
		annotation.EnumOf("policy.Retention", "SOURCE"),
		annotation.EnumOf("policy.Target", "FIELD"))

	err := b.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, merrors.ErrTypeMismatch)

	var merr *merrors.Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, 1, merr.Index)
	assert.Equal(t, "policy.Retention", merr.Want)
	assert.Equal(t, "policy.Target", merr.Got)
	assert.Contains(t, err.Error(), "[0] and [1]")

	_, err = b.Build()
	assert.ErrorIs(t, err, merrors.ErrTypeMismatch)
}

func TestBuilder_StickyError(t *testing.T) {
	b := annotation.NewBuilder().
		Int(annotation.Element{}, 1).
		Int(key, 2)

	require.ErrorIs(t, b.Err(), merrors.ErrNilArgument)

	v, err := b.Build()
	assert.Nil(t, v)
	assert.ErrorIs(t, err, merrors.ErrNilArgument)
	assert.Panics(t, func() { b.MustBuild() })
}

func TestBuilder_NilArguments(t *testing.T) {
	tests := []struct {
		name string
		fill func(b *annotation.Builder) *annotation.Builder
	}{
		{"empty tag", func(b *annotation.Builder) *annotation.Builder { return b.Tag("") }},
		{"zero element", func(b *annotation.Builder) *annotation.Builder { return b.Text(annotation.Element{}, "x") }},
		{"nil nested", func(b *annotation.Builder) *annotation.Builder { return b.Annotation(key, nil) }},
		{"nil type", func(b *annotation.Builder) *annotation.Builder { return b.Type(key, nil) }},
		{"zero enum", func(b *annotation.Builder) *annotation.Builder { return b.Enum(key, annotation.Enum{}) }},
		{"nil in nested slice", func(b *annotation.Builder) *annotation.Builder {
			return b.Annotations(key, annotation.Empty(), nil)
		}},
		{"nil in type slice", func(b *annotation.Builder) *annotation.Builder { return b.Types(key, nil) }},
		{"nil put", func(b *annotation.Builder) *annotation.Builder { return b.Put(key, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.fill(annotation.NewBuilder())
			assert.ErrorIs(t, b.Err(), merrors.ErrNilArgument)
		})
	}
}

func TestBuilder_NilInSliceReportsIndex(t *testing.T) {
	b := annotation.NewBuilder().Annotations(key, annotation.Empty(), nil)

	var merr *merrors.Error
	require.ErrorAs(t, b.Err(), &merr)
	assert.Equal(t, 1, merr.Index)
}

func TestBuilder_PutDispatch(t *testing.T) {
	nested := annotation.Empty()
	typ := reflect.TypeFor[int]()

	tests := []struct {
		value any
		kind  annotation.Kind
	}{
		{1, annotation.Int},
		{int8(1), annotation.Byte},
		{int16(1), annotation.Short},
		{int64(1), annotation.Long},
		{float32(1), annotation.Float},
		{float64(1), annotation.Double},
		{true, annotation.Bool},
		{'x', annotation.Char},
		{"x", annotation.String},
		{annotation.EnumOf("E", "A"), annotation.EnumKind},
		{nested, annotation.Nested},
		{typ, annotation.TypeRef},
		{[]int{1}, annotation.Ints},
		{[]int8{1}, annotation.Bytes},
		{[]int16{1}, annotation.Shorts},
		{[]int64{1}, annotation.Longs},
		{[]float32{1}, annotation.Floats},
		{[]float64{1}, annotation.Doubles},
		{[]bool{true}, annotation.Bools},
		{[]rune{'x'}, annotation.Chars},
		{[]string{"x"}, annotation.Strings},
		{[]annotation.Enum{annotation.EnumOf("E", "A")}, annotation.Enums},
		{[]*annotation.Values{nested}, annotation.Nesteds},
		{[]reflect.Type{typ}, annotation.TypeRefs},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			v := build(t, annotation.NewBuilder().Put(key, tt.value))

			k, ok := v.KindAt(key)
			require.True(t, ok)
			assert.Equal(t, tt.kind, k)

			boxed, ok, err := v.Boxed(key)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.value, boxed)
		})
	}
}

func TestBuilder_PutRejectsUnsupported(t *testing.T) {
	type port int

	b := annotation.NewBuilder().Put(key, port(80))

	require.ErrorIs(t, b.Err(), merrors.ErrTypeMismatch)
	assert.Contains(t, b.Err().Error(), "annotation_test.port")

	b = annotation.NewBuilder().Put(key, uint(1))
	assert.ErrorIs(t, b.Err(), merrors.ErrTypeMismatch)
}
