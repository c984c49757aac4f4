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

package synth

import (
	"errors"
	"reflect"

	merrors "dirpx.dev/mirror/errors"
)

// TagName is the struct tag Decode reads to map a field to an accessor.
const TagName = "mirror"

// Decode copies accessor results into the struct pointed to by dst.
//
// A field is filled from the accessor named by its `mirror:"Method"` tag,
// or by its own name when untagged; `mirror:"-"` skips the field. Fields
// with no matching accessor and accessors with no stored value are left
// untouched. Values convert to named types of the same kind (an int into
// a `type Port int` field); anything else that is not assignable fails
// with a type mismatch.
func (o *Object) Decode(dst any) error {
	const op = "synth.Decode"

	rv := reflect.ValueOf(dst)
	if dst == nil || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return merrors.NilArgument(op, "destination pointer")
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return merrors.New(op, merrors.KindTypeMismatch).
			Want("pointer to struct").Got(typeName(dst)).Build()
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		method := f.Name
		if tag, ok := f.Tag.Lookup(TagName); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				method = tag
			}
		}
		a, ok := o.contract.Accessor(method)
		if !ok {
			continue
		}

		v, err := o.Invoke(method)
		if errors.Is(err, merrors.ErrMissingElement) {
			continue
		}
		if err != nil {
			return err
		}
		if v == nil {
			continue
		}

		val := reflect.ValueOf(v)
		fv := rv.Field(i)
		switch {
		case val.Type().AssignableTo(f.Type):
			fv.Set(val)
		case val.Kind() == f.Type.Kind() && val.Type().ConvertibleTo(f.Type):
			fv.Set(val.Convert(f.Type))
		default:
			return merrors.New(op, merrors.KindTypeMismatch).
				Element(a.Element).Want(f.Type.String()).Got(val.Type().String()).
				Detail("field %s", f.Name).Build()
		}
	}
	return nil
}
