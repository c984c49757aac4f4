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
	"encoding/binary"
	"errors"
	"reflect"

	"github.com/cespare/xxhash/v2"

	"dirpx.dev/mirror/annotation"
	merrors "dirpx.dev/mirror/errors"
	"dirpx.dev/mirror/metrics"
)

// Object is a synthesized instance of a contract: every method call is
// answered from an immutable Values store.
//
// Go cannot implement an interface at run time, so an Object is driven
// through Invoke with the method name. The typed conveniences below cover
// the special methods, which also makes *Object an apis.Annotation.
//
// Objects hold no mutable state and are safe for concurrent use.
type Object struct {
	contract *Contract
	values   *annotation.Values
	handler  Handler
	metrics  *metrics.Metrics
}

// Contract returns the object's dispatch table.
func (o *Object) Contract() *Contract { return o.contract }

// Values returns the backing store.
func (o *Object) Values() *annotation.Values { return o.values }

// Invoke calls method with args through the object's handler.
func (o *Object) Invoke(method string, args ...any) (any, error) {
	out, err := o.handler.Invoke(o, method, args)
	if err != nil {
		var me *merrors.Error
		if errors.As(err, &me) {
			o.metrics.InvocationError(string(me.Kind))
		} else {
			o.metrics.InvocationError("other")
		}
	}
	return out, err
}

// Equal reports whether other is the same contract with equal values.
// Equal, Hash, String and AnnotationType panic if the handler fails or
// answers with the wrong type.
func (o *Object) Equal(other any) bool {
	return mustInvoke[bool](o, MethodEqual, other)
}

// Hash returns a hash consistent with Equal between objects.
func (o *Object) Hash() uint64 {
	return mustInvoke[uint64](o, MethodHash)
}

// String renders the backing store.
func (o *Object) String() string {
	return mustInvoke[string](o, MethodString)
}

// AnnotationType returns the contract interface type.
func (o *Object) AnnotationType() reflect.Type {
	return mustInvoke[reflect.Type](o, MethodAnnotationType)
}

func mustInvoke[T any](o *Object, method string, args ...any) T {
	out, err := o.Invoke(method, args...)
	if err != nil {
		panic(err)
	}
	v, ok := out.(T)
	if !ok {
		panic(merrors.New("synth.Invoke", merrors.KindTypeMismatch).
			Want(reflect.TypeFor[T]().String()).Got(typeName(out)).
			Detail("handler answered %s with the wrong type", method).Build())
	}
	return v
}

// get reads the value behind a, checking the stored kind.
func (o *Object) get(op string, a Accessor) (any, error) {
	v, ok, err := o.values.Boxed(a.Element)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, merrors.MissingElement(op, a.Element)
	}
	if k, _ := o.values.KindAt(a.Element); k != a.Kind {
		return nil, merrors.TypeMismatch(op, a.Element, a.Kind.String(), k.String())
	}
	return v, nil
}

// equal implements the Equal method.
//
// Between two objects of one contract, every accessor either object can
// answer is compared, so the relation is symmetric. Any other Go value
// implementing the contract interface is compared on the accessors this
// object can answer, by calling its methods.
func (o *Object) equal(other any) bool {
	switch x := other.(type) {
	case nil:
		return false
	case *Object:
		if x == o {
			return true
		}
		if x == nil || x.contract.typ != o.contract.typ {
			return false
		}
		for _, a := range o.contract.accessors {
			ka, oka := o.values.KindAt(a.Element)
			kb, okb := x.values.KindAt(a.Element)
			if !oka && !okb {
				continue
			}
			if oka != okb || ka != kb {
				return false
			}
			va, _, _ := o.values.Boxed(a.Element)
			vb, _, _ := x.values.Boxed(a.Element)
			if !annotation.EqualValue(ka, va, vb) {
				return false
			}
		}
		return true
	}
	return o.equalForeign(other)
}

func (o *Object) equalForeign(other any) (eq bool) {
	rv := reflect.ValueOf(other)
	if !rv.Type().Implements(o.contract.typ) {
		return false
	}
	// A foreign accessor may panic; that only means "not equal".
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()

	for _, a := range o.contract.accessors {
		k, ok := o.values.KindAt(a.Element)
		if !ok {
			continue
		}
		if k != a.Kind {
			return false
		}
		mine, _, _ := o.values.Boxed(a.Element)
		theirs := rv.MethodByName(a.Method).Call(nil)[0].Interface()
		if theirs == nil || !annotation.EqualValue(k, mine, theirs) {
			return false
		}
	}
	return true
}

// hash implements the Hash method over the contract-owned elements.
func (o *Object) hash() uint64 {
	var sum uint64
	n := 0
	for _, a := range o.contract.accessors {
		k, ok := o.values.KindAt(a.Element)
		if !ok {
			continue
		}
		v, _, _ := o.values.Boxed(a.Element)
		sum += xxhash.Sum64String(a.Element.Name) ^ annotation.HashValue(k, v)
		n++
	}

	buf := make([]byte, 0, 16+len(o.contract.name))
	buf = append(buf, o.contract.name...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(n))
	buf = binary.LittleEndian.AppendUint64(buf, sum)
	return xxhash.Sum64(buf)
}
