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
	"reflect"

	"dirpx.dev/mirror/annotation"
	"dirpx.dev/mirror/apis"
	merrors "dirpx.dev/mirror/errors"
	ureflect "dirpx.dev/mirror/utils/reflect"
)

// Names of the methods every synthesized object answers regardless of the
// contract's accessor table.
const (
	MethodEqual          = "Equal"
	MethodHash           = "Hash"
	MethodString         = "String"
	MethodAnnotationType = "AnnotationType"
)

// special maps each special method to its required signature.
var special = map[string]reflect.Type{
	MethodEqual:          reflect.TypeFor[func(any) bool](),
	MethodHash:           reflect.TypeFor[func() uint64](),
	MethodString:         reflect.TypeFor[func() string](),
	MethodAnnotationType: reflect.TypeFor[func() reflect.Type](),
}

// Accessor binds one contract method to the element it reads.
type Accessor struct {
	// Method is the Go method name, e.g. "MaxRetries".
	Method string
	// Element is the key the value is stored under, e.g. {policy.Retry maxRetries}.
	Element annotation.Element
	// Kind is the kind implied by the declared return type.
	Kind annotation.Kind
}

// Contract is the dispatch table for one contract interface.
// It is immutable once built.
type Contract struct {
	typ       reflect.Type
	name      string
	accessors []Accessor
	byMethod  map[string]int
}

// NewContract builds the dispatch table for the interface type t whose
// metadata type name is name. Element names derive from method names
// through ec.
//
// Every method of t must either be one of the special methods with its
// exact signature, or an accessor taking no arguments and returning one
// value of a supported kind.
func NewContract(t reflect.Type, name string, ec apis.ElementCase) (*Contract, error) {
	const op = "synth.NewContract"
	if t == nil {
		return nil, merrors.NilArgument(op, "type")
	}
	if name == "" {
		return nil, merrors.NilArgument(op, "name")
	}
	if !ureflect.IsContract(t) {
		return nil, merrors.InvalidContract(op, t.String(), "not an interface")
	}

	c := &Contract{
		typ:      t,
		name:     name,
		byMethod: make(map[string]int, t.NumMethod()),
	}
	seen := make(map[string]string, t.NumMethod())

	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if !m.IsExported() {
			return nil, merrors.InvalidContract(op, t.String(), "unexported method "+m.Name)
		}
		if sig, ok := special[m.Name]; ok {
			if m.Type != sig {
				return nil, merrors.InvalidContract(op, t.String(),
					m.Name+" must have signature "+sig.String())
			}
			continue
		}
		if m.Type.NumIn() != 0 || m.Type.NumOut() != 1 {
			return nil, merrors.InvalidContract(op, t.String(),
				"accessor "+m.Name+" must take no arguments and return one value")
		}
		k, ok := annotation.KindOf(m.Type.Out(0))
		if !ok {
			return nil, merrors.InvalidContract(op, t.String(),
				"accessor "+m.Name+" returns unsupported type "+m.Type.Out(0).String())
		}

		elem := ec.Apply(m.Name)
		if prev, dup := seen[elem]; dup {
			return nil, merrors.InvalidContract(op, t.String(),
				"accessors "+prev+" and "+m.Name+" both map to element "+elem)
		}
		seen[elem] = m.Name

		c.byMethod[m.Name] = len(c.accessors)
		c.accessors = append(c.accessors, Accessor{
			Method:  m.Name,
			Element: annotation.NewElement(name, elem),
			Kind:    k,
		})
	}
	return c, nil
}

// Type returns the contract interface type.
func (c *Contract) Type() reflect.Type { return c.typ }

// Name returns the metadata type name owning the contract's elements.
func (c *Contract) Name() string { return c.name }

// Accessors returns the accessor table in method order.
func (c *Contract) Accessors() []Accessor {
	out := make([]Accessor, len(c.accessors))
	copy(out, c.accessors)
	return out
}

// Accessor returns the accessor bound to method.
func (c *Contract) Accessor(method string) (Accessor, bool) {
	i, ok := c.byMethod[method]
	if !ok {
		return Accessor{}, false
	}
	return c.accessors[i], true
}

// Element returns the element read by method.
func (c *Contract) Element(method string) (annotation.Element, bool) {
	a, ok := c.Accessor(method)
	return a.Element, ok
}

// Missing returns the accessors values cannot answer: absent elements and
// elements stored under a different kind.
func (c *Contract) Missing(values *annotation.Values) []Accessor {
	var out []Accessor
	for _, a := range c.accessors {
		if k, ok := values.KindAt(a.Element); !ok || k != a.Kind {
			out = append(out, a)
		}
	}
	return out
}
