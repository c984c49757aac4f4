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

package introspect

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/mirror/annotation"
	"dirpx.dev/mirror/apis"
	"dirpx.dev/mirror/cache"
	merrors "dirpx.dev/mirror/errors"
	"dirpx.dev/mirror/logging"
	"dirpx.dev/mirror/synth"
)

// Walker builds Values from annotated declarations. Results are cached by
// declaration identity: pointer declarations by address, other comparable
// ones by value. Declarations that cannot be compared are walked on every
// call. A Walker is safe for concurrent use.
type Walker struct {
	engine *synth.Engine
	decls  cache.Cache[any, *annotation.Values]
}

// New returns a Walker resolving contracts through e. The declaration
// cache follows e's configuration.
func New(e *synth.Engine) (*Walker, error) {
	if e == nil {
		return nil, merrors.NilArgument("introspect.New", "engine")
	}
	cfg := e.Config()
	c, err := cache.New[any, *annotation.Values](cfg.CacheStrategy, cfg.CacheSize,
		cache.WithName("declarations"),
		cache.WithMetrics(e.Metrics()),
	)
	if err != nil {
		return nil, fmt.Errorf("introspect: %w", err)
	}
	return &Walker{engine: e, decls: c}, nil
}

// MustNew is like New but panics on error.
func MustNew(e *synth.Engine) *Walker {
	w, err := New(e)
	if err != nil {
		panic(err)
	}
	return w
}

// Values returns the annotation values of decl. A declaration that does
// not implement apis.Annotated has none and yields annotation.Empty().
func (w *Walker) Values(decl any) (*annotation.Values, error) {
	if decl == nil {
		return nil, merrors.NilArgument("introspect.Values", "declaration")
	}
	ad, ok := decl.(apis.Annotated)
	if !ok {
		return annotation.Empty(), nil
	}

	walk := func() (*annotation.Values, error) {
		v, err := w.Annotations(ad.Annotations()...)
		if err != nil {
			return nil, err
		}
		w.engine.Metrics().DeclarationWalked()
		logging.Named("introspect").Debug("declaration walked",
			zap.Stringer("type", reflect.TypeOf(decl)),
			zap.Int("tags", len(v.Tags())),
			zap.Int("elements", v.Len()),
		)
		return v, nil
	}
	if !cacheable(decl) {
		return walk()
	}
	return w.decls.GetOrLoad(decl, walk)
}

// cacheable reports whether decl can serve as a cache key. A struct whose
// type is comparable may still hold an uncomparable value in an interface
// field, so the check compares decl with itself.
func cacheable(decl any) (ok bool) {
	if !reflect.TypeOf(decl).Comparable() {
		return false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return decl == decl
}

// Annotations builds Values from anns without caching. When two
// annotations share a contract, the later one's values win.
func (w *Walker) Annotations(anns ...apis.Annotation) (*annotation.Values, error) {
	b := annotation.NewBuilder()
	for i, ann := range anns {
		if err := w.put(b, i, ann); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

func (w *Walker) put(b *annotation.Builder, i int, ann apis.Annotation) error {
	const op = "introspect.Annotations"
	if ann == nil {
		return merrors.New(op, merrors.KindNilArgument).Index(i).
			Detail("annotation cannot be nil").Build()
	}

	c, err := w.engine.Contract(ann.AnnotationType())
	if err != nil {
		return err
	}
	b.Tag(c.Name())

	if obj, ok := ann.(*synth.Object); ok {
		for _, a := range c.Accessors() {
			v, err := obj.Invoke(a.Method)
			if errors.Is(err, merrors.ErrMissingElement) {
				continue
			}
			if err != nil {
				return err
			}
			b.Put(a.Element, v)
		}
		return b.Err()
	}

	rv := reflect.ValueOf(ann)
	if !rv.Type().Implements(c.Type()) {
		return merrors.New(op, merrors.KindTypeMismatch).Index(i).
			Want(c.Type().String()).Got(rv.Type().String()).
			Detail("annotation does not implement its AnnotationType").Build()
	}
	for _, a := range c.Accessors() {
		v, err := call(rv, a)
		if err != nil {
			return err
		}
		b.Put(a.Element, v)
	}
	return b.Err()
}

// call invokes the accessor on a live annotation, turning a panic into an
// error.
func call(rv reflect.Value, a synth.Accessor) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = merrors.New("introspect.Annotations", merrors.KindArgumentMismatch).
				Element(a.Element).Detail("%s panicked: %v", a.Method, r).Build()
		}
	}()
	return rv.MethodByName(a.Method).Call(nil)[0].Interface(), nil
}

// Purge drops every cached declaration.
func (w *Walker) Purge() {
	w.decls.Purge()
}
