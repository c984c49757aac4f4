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
	"fmt"
	"reflect"

	merrors "dirpx.dev/mirror/errors"
)

// Handler answers method calls on synthesized objects.
//
// Implementations must be safe for concurrent use. A handler that only
// wants to intercept some methods can delegate the rest to DefaultHandler.
type Handler interface {
	Invoke(o *Object, method string, args []any) (any, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(o *Object, method string, args []any) (any, error)

// Invoke calls f.
func (f HandlerFunc) Invoke(o *Object, method string, args []any) (any, error) {
	return f(o, method, args)
}

// DefaultHandler dispatches special methods to the object's structural
// implementations and accessors to the backing store. Slice values are
// fresh copies on every call.
var DefaultHandler Handler = defaultHandler{}

type defaultHandler struct{}

func (defaultHandler) Invoke(o *Object, method string, args []any) (any, error) {
	const op = "synth.Invoke"

	switch method {
	case MethodEqual:
		if err := arity(op, method, args, 1); err != nil {
			return nil, err
		}
		return o.equal(args[0]), nil
	case MethodHash:
		if err := arity(op, method, args, 0); err != nil {
			return nil, err
		}
		return o.hash(), nil
	case MethodString:
		if err := arity(op, method, args, 0); err != nil {
			return nil, err
		}
		return o.values.String(), nil
	case MethodAnnotationType:
		if err := arity(op, method, args, 0); err != nil {
			return nil, err
		}
		return o.contract.typ, nil
	}

	a, ok := o.contract.Accessor(method)
	if !ok {
		return nil, merrors.ArgumentMismatch(op, method,
			"no such method on "+o.contract.typ.String())
	}
	if err := arity(op, method, args, 0); err != nil {
		return nil, err
	}
	return o.get(op, a)
}

func arity(op, method string, args []any, want int) error {
	if len(args) != want {
		return merrors.ArgumentMismatch(op, method,
			fmt.Sprintf("want %d argument(s), got %d", want, len(args)))
	}
	return nil
}

// typeName renders the dynamic type of v for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
