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

package mirror

import (
	"reflect"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"dirpx.dev/mirror/apis"
	"dirpx.dev/mirror/builder"
	"dirpx.dev/mirror/config"
)

// ---------------------- Helpers ----------------------

func boolToChar(b bool) string {
	if b {
		return "T"
	}
	return "F"
}

// Reset to a clean snapshot using b.
// Pins are reset (preg=false, pres=false) because we pass nil reg/res.
func resetWithBuilder(tb testing.TB, b apis.Builder, cfg apis.Config) {
	tb.Helper()
	SetAll(&cfg, nil, nil, b)
	tb.Cleanup(func() {
		Registry().Reset()
		def := config.DefaultConfig()
		SetAll(&def, nil, nil, builder.New())
		SetMetrics(nil)
	})
}

func cfgWith(maxUnwrap int, qualified bool) apis.Config {
	return config.NewConfig(config.WithMaxUnwrap(maxUnwrap), config.WithQualifiedNames(qualified))
}

// ---------------------- Test doubles (mocks) ----------------------

type mockRegistry struct {
	id   string
	mu   sync.Mutex
	data map[reflect.Type]string
}

func newMockRegistry(id string) *mockRegistry {
	return &mockRegistry{id: id, data: make(map[reflect.Type]string)}
}

func (m *mockRegistry) Register(t reflect.Type, name string) error {
	m.mu.Lock()
	m.data[t] = name
	m.mu.Unlock()
	return nil
}
func (m *mockRegistry) Lookup(t reflect.Type) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.data[t]
	return n, ok
}
func (m *mockRegistry) Entries() []apis.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []apis.Entry
	for t, n := range m.data {
		out = append(out, apis.Entry{Type: t, Name: n})
	}
	return out
}
func (m *mockRegistry) Count() int { m.mu.Lock(); defer m.mu.Unlock(); return len(m.data) }
func (m *mockRegistry) Reset()     { m.mu.Lock(); m.data = make(map[reflect.Type]string); m.mu.Unlock() }

type mockResolver struct {
	id string
}

func (r *mockResolver) Resolve(_ any, cfg apis.Config) string {
	return r.id + ":" + boolToChar(cfg.QualifiedNames) + ":" + strconv.Itoa(cfg.MaxUnwrap)
}

func (r *mockResolver) ResolveType(t reflect.Type, cfg apis.Config) string {
	return r.Resolve(nil, cfg) + ":" + t.String()
}

type mockBuilder struct {
	mu            sync.Mutex
	lastCfg       apis.Config
	lastPrevRegID string
	lastPrevResID string
	regCounter    int
	resCounter    int
	nilRegistry   bool
	nilResolver   bool
}

func (b *mockBuilder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg = cfg
	if mr, ok := prev.(*mockRegistry); ok {
		b.lastPrevRegID = mr.id
	}
	if b.nilRegistry {
		return nil
	}
	b.regCounter++
	return newMockRegistry("reg#" + strconv.Itoa(b.regCounter))
}

func (b *mockBuilder) BuildResolver(cfg apis.Config, _ apis.Registry, prev apis.Resolver) apis.Resolver {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg = cfg
	if mr, ok := prev.(*mockResolver); ok {
		b.lastPrevResID = mr.id
	}
	if b.nilResolver {
		return nil
	}
	b.resCounter++
	return &mockResolver{id: "res#" + strconv.Itoa(b.resCounter)}
}

// ---------------------- Tests ----------------------

func TestSetConfig_Rebuilds_Unpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, cfgWith(8, false))

	// snapshot 1
	s1Reg := Registry()
	s1Res := Resolver()
	s1Eng := Engine()

	// change cfg -> both should rebuild (not pinned)
	SetConfig(cfgWith(4, true))

	if s1Reg == Registry() {
		t.Fatalf("registry was not rebuilt on SetConfig (unpinned)")
	}
	if s1Res == Resolver() {
		t.Fatalf("resolver was not rebuilt on SetConfig (unpinned)")
	}
	if s1Eng == Engine() {
		t.Fatalf("engine was not rebuilt on SetConfig")
	}

	b.mu.Lock()
	gotCfg, prevReg, prevRes := b.lastCfg, b.lastPrevRegID, b.lastPrevResID
	b.mu.Unlock()
	if gotCfg.MaxUnwrap != 4 || !gotCfg.QualifiedNames {
		t.Fatalf("builder received wrong cfg: %+v", gotCfg)
	}
	if prevReg != "reg#1" || prevRes != "res#1" {
		t.Fatalf("builder did not receive previous layers: reg=%q res=%q", prevReg, prevRes)
	}
	if got := Config(); got.MaxUnwrap != 4 {
		t.Fatalf("Config() = %+v, want MaxUnwrap 4", got)
	}
}

func TestSetRegistry_PinsRegistry_and_RebuildsResolverIfUnpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, cfgWith(8, false))

	customReg := newMockRegistry("custom")
	SetRegistry(customReg)
	if !IsRegistryPinned() {
		t.Fatalf("SetRegistry did not pin the registry")
	}

	beforeRes := Resolver()
	SetConfig(cfgWith(8, true))

	if Registry() != customReg {
		t.Fatalf("pinned registry was rebuilt unexpectedly")
	}
	if Resolver() == beforeRes {
		t.Fatalf("resolver was not rebuilt when cfg changed and res not pinned")
	}

	SetRegistry(nil)
	if Registry() != customReg {
		t.Fatalf("SetRegistry(nil) replaced the registry")
	}
}

func TestSetResolver_PinsResolver(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, cfgWith(8, false))

	// Pin resolver
	customRes := &mockResolver{id: "custom"}
	SetResolver(customRes)
	if !IsResolverPinned() {
		t.Fatalf("SetResolver did not pin the resolver")
	}

	regBefore := Registry()

	// Change cfg -> expect: registry rebuilt (not pinned), resolver unchanged (pinned)
	SetConfig(cfgWith(8, true))

	if Resolver() != customRes {
		t.Fatalf("pinned resolver was rebuilt unexpectedly")
	}
	if Registry() == regBefore {
		t.Fatalf("registry was not rebuilt on SetConfig when resolver is pinned")
	}
	if got := Name(1); got != "custom:T:8" {
		t.Fatalf("Name(1) = %q, want custom:T:8", got)
	}
}

func TestSetBuilder_Rebuilds_Only_Unpinned(t *testing.T) {
	a := &mockBuilder{}
	resetWithBuilder(t, a, cfgWith(8, false))

	// Pin resolver, leave registry unpinned
	SetResolver(&mockResolver{id: "pinned"})
	regBefore := Registry()
	resBefore := Resolver()

	b := &mockBuilder{}
	SetBuilder(b)

	if Builder() != b {
		t.Fatalf("Builder() did not return the new builder")
	}
	if Registry() == regBefore {
		t.Fatalf("registry did not rebuild after SetBuilder (unpinned)")
	}
	if Resolver() != resBefore {
		t.Fatalf("pinned resolver was rebuilt after SetBuilder")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.regCounter != 1 || b.resCounter != 0 {
		t.Fatalf("new builder calls: reg=%d res=%d, want 1 and 0", b.regCounter, b.resCounter)
	}
}

func TestUnpin_Allows_Rebuild_After(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, cfgWith(8, false))

	PinRegistry()
	PinResolver()

	reg1 := Registry()
	res1 := Resolver()
	SetConfig(cfgWith(4, true))
	if Registry() != reg1 || Resolver() != res1 {
		t.Fatalf("pinned layers should not rebuild on SetConfig")
	}

	UnpinRegistry()
	UnpinResolver()
	if IsRegistryPinned() || IsResolverPinned() {
		t.Fatalf("layers still pinned after Unpin")
	}
	SetConfig(cfgWith(6, false))
	if Registry() == reg1 {
		t.Fatalf("registry should rebuild after UnpinRegistry+SetConfig")
	}
	if Resolver() == res1 {
		t.Fatalf("resolver should rebuild after UnpinResolver+SetConfig")
	}
}

func TestPinning_KeepsEngine(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig())

	eng := Engine()
	walk := Walker()
	PinRegistry()
	UnpinRegistry()
	if Engine() != eng || Walker() != walk {
		t.Fatalf("pinning republished the engine")
	}
}

func TestNilLayers_Panic(t *testing.T) {
	resetWithBuilder(t, &mockBuilder{}, cfgWith(8, false))

	mustPanic := func(want error, f func()) {
		t.Helper()
		defer func() {
			if r := recover(); r != want {
				t.Fatalf("recovered %v, want %v", r, want)
			}
		}()
		f()
	}

	mustPanic(ErrNilRegistry, func() { SetBuilder(&mockBuilder{nilRegistry: true}) })
	mustPanic(ErrNilResolver, func() { SetBuilder(&mockBuilder{nilResolver: true}) })
}

func TestName_Concurrent_With_SetConfig(t *testing.T) {
	resetWithBuilder(t, &mockBuilder{}, cfgWith(8, false))

	type token struct{}
	done := make(chan struct{})
	var wg sync.WaitGroup

	readers := runtime.GOMAXPROCS(0) * 4
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = Name(token{})
				_ = TypeName(reflect.TypeOf(token{}))
				_ = ElementOf[token]("value")
			}
		}()
	}

	go func() {
		for i := 0; i < 20; i++ {
			SetConfig(cfgWith(4+(i%5), i%2 == 0))
			time.Sleep(time.Millisecond)
		}
		close(done)
	}()

	wg.Wait()
	<-done
}
