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

package reflect_test

import (
	"errors"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/mirror/apis"
	uref "dirpx.dev/mirror/utils/reflect"
)

// Local test types.
type A struct{}
type G[T any] struct{}
type Retention interface{ Value() string }
type Named []A

// cfg returns a convenient baseline Config for tests.
func cfg(opts ...func(*apis.Config)) apis.Config {
	c := apis.Config{MaxUnwrap: 8}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func TestNormalize_BasicContainers(t *testing.T) {
	conf := cfg()

	cases := []struct {
		name string
		typ  reflect.Type
		want reflect.Type
	}{
		{"plain", reflect.TypeOf(A{}), reflect.TypeOf(A{})},
		{"ptr", reflect.TypeOf(&A{}), reflect.TypeOf(A{})},
		{"slice", reflect.TypeOf([]A{}), reflect.TypeOf(A{})},
		{"array", reflect.TypeOf([2]A{}), reflect.TypeOf(A{})},
		{"ptr to slice", reflect.TypeOf(&[]*A{}), reflect.TypeOf(A{})},
		{"interface", reflect.TypeFor[Retention](), reflect.TypeFor[Retention]()},
		{"named slice stops early", reflect.TypeFor[Named](), reflect.TypeFor[Named]()},
		{"builtin", reflect.TypeOf(0), reflect.TypeOf(0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.typ, conf)
			if err != nil {
				t.Fatalf("Normalize(%v) returned error: %v", tc.typ, err)
			}
			if got != tc.want {
				t.Fatalf("Normalize(%v) = %v, want %v", tc.typ, got, tc.want)
			}
		})
	}
}

func TestNormalize_GenericInstantiation(t *testing.T) {
	gt, err := uref.Normalize(reflect.TypeOf(&G[int]{}), cfg())
	if err != nil {
		t.Fatalf("Normalize(*G[int]): %v", err)
	}
	if gt != reflect.TypeOf(G[int]{}) {
		t.Fatalf("Normalize(*G[int]) = %v, want G[int]", gt)
	}
}

func TestNormalize_MaxUnwrap(t *testing.T) {
	// **A with low MaxUnwrap should fail, with larger MaxUnwrap should succeed.
	tPP := reflect.TypeFor[**A]()

	if _, err := uref.Normalize(tPP, cfg(func(c *apis.Config) { c.MaxUnwrap = 1 })); err == nil {
		t.Fatalf("MaxUnwrap=1: expected error, got nil")
	}

	if got, err := uref.Normalize(tPP, cfg(func(c *apis.Config) { c.MaxUnwrap = 2 })); err != nil || got != reflect.TypeOf(A{}) {
		t.Fatalf("MaxUnwrap=2: got (%v,%v), want (A,nil)", got, err)
	}

	// Zero falls back to the default depth.
	if got, err := uref.Normalize(tPP, cfg(func(c *apis.Config) { c.MaxUnwrap = 0 })); err != nil || got != reflect.TypeOf(A{}) {
		t.Fatalf("MaxUnwrap=0: got (%v,%v), want (A,nil)", got, err)
	}
}

func TestNormalize_Errors(t *testing.T) {
	if _, err := uref.Normalize(nil, cfg()); !errors.Is(err, uref.ErrReflectNilType) {
		t.Fatalf("nil type: got %v, want ErrReflectNilType", err)
	}

	cases := []reflect.Type{
		reflect.TypeOf(struct{ X int }{}),
		reflect.TypeOf(map[string]A{}),
		reflect.TypeOf((chan A)(nil)),
		reflect.TypeOf(func() {}),
	}
	for _, typ := range cases {
		if _, err := uref.Normalize(typ, cfg()); !errors.Is(err, uref.ErrReflectTypeNotNamed) {
			t.Fatalf("Normalize(%v): got %v, want ErrReflectTypeNotNamed", typ, err)
		}
	}
}

func TestIndirectAndIsContract(t *testing.T) {
	if got := uref.Indirect(reflect.TypeFor[**A]()); got != reflect.TypeOf(A{}) {
		t.Fatalf("Indirect(**A) = %v, want A", got)
	}
	if uref.Indirect(nil) != nil {
		t.Fatalf("Indirect(nil) != nil")
	}

	for _, typ := range []reflect.Type{reflect.TypeFor[Retention](), reflect.TypeFor[any]()} {
		if !uref.IsContract(typ) {
			t.Fatalf("IsContract(%v) = false, want true", typ)
		}
	}
	for _, typ := range []reflect.Type{nil, reflect.TypeOf(A{}), reflect.TypeFor[*Retention]()} {
		if uref.IsContract(typ) {
			t.Fatalf("IsContract(%v) = true, want false", typ)
		}
	}
}

// This test stresses Normalize concurrently to smoke-test thread safety of the logic
// (Normalize should be pure; no shared state is mutated here).
func TestNormalize_Concurrent(t *testing.T) {
	types := []reflect.Type{
		reflect.TypeOf(A{}),
		reflect.TypeOf(&A{}),
		reflect.TypeOf([]A{}),
		reflect.TypeOf(G[int]{}),
		reflect.TypeFor[Retention](),
		reflect.TypeOf(0),
	}
	conf := cfg()

	workers := runtime.GOMAXPROCS(0) * 4
	iters := 2000

	var wg sync.WaitGroup
	wg.Add(workers)

	errCh := make(chan error, workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				tt := types[i%len(types)]
				rt, err := uref.Normalize(tt, conf)
				if err != nil {
					errCh <- err
					return
				}
				if rt == nil || rt.Name() == "" {
					errCh <- errors.New("got unnamed or nil type")
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errCh)
	for e := range errCh {
		t.Fatal(e)
	}
}

func BenchmarkNormalize_ByType(b *testing.B) {
	types := []reflect.Type{
		reflect.TypeOf(A{}),
		reflect.TypeOf(&A{}),
		reflect.TypeOf([]A{}),
		reflect.TypeOf(G[int]{}),
		reflect.TypeOf(0),
	}
	conf := cfg()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = uref.Normalize(types[i%len(types)], conf)
	}
}
