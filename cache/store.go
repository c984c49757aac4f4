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

package cache

import (
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// store is the untyped backend behind a cache. add reports whether an
// entry was evicted to make room.
type store interface {
	get(key any) (any, bool)
	add(key, value any) bool
	remove(key any)
	len() int
	purge()
}

type lruStore struct {
	c *lru.Cache
}

func (s lruStore) get(key any) (any, bool) { return s.c.Get(key) }
func (s lruStore) add(key, value any) bool { return s.c.Add(key, value) }
func (s lruStore) remove(key any) { s.c.Remove(key) }
func (s lruStore) len() int { return s.c.Len() }
func (s lruStore) purge() { s.c.Purge() }

// arcStore does not report evictions; the ARC cache exposes no signal.
type arcStore struct {
	c *lru.ARCCache
}

func (s arcStore) get(key any) (any, bool) { return s.c.Get(key) }
func (s arcStore) add(key, value any) bool {
	s.c.Add(key, value)
	return false
}
func (s arcStore) remove(key any) { s.c.Remove(key) }
func (s arcStore) len() int { return s.c.Len() }
func (s arcStore) purge() { s.c.Purge() }

// twoQueueStore does not report evictions; the 2Q cache exposes no signal.
type twoQueueStore struct {
	c *lru.TwoQueueCache
}

func (s twoQueueStore) get(key any) (any, bool) { return s.c.Get(key) }
func (s twoQueueStore) add(key, value any) bool {
	s.c.Add(key, value)
	return false
}
func (s twoQueueStore) remove(key any) { s.c.Remove(key) }
func (s twoQueueStore) len() int { return s.c.Len() }
func (s twoQueueStore) purge() { s.c.Purge() }

// mapStore never evicts.
type mapStore struct {
	m sync.Map
	n atomic.Int64
}

func (s *mapStore) get(key any) (any, bool) {
	return s.m.Load(key)
}

func (s *mapStore) add(key, value any) bool {
	if _, loaded := s.m.Swap(key, value); !loaded {
		s.n.Add(1)
	}
	return false
}

func (s *mapStore) remove(key any) {
	if _, ok := s.m.LoadAndDelete(key); ok {
		s.n.Add(-1)
	}
}

func (s *mapStore) len() int {
	return int(s.n.Load())
}

func (s *mapStore) purge() {
	s.m.Range(func(key, _ any) bool {
		s.remove(key)
		return true
	})
}

// noneStore retains nothing.
type noneStore struct{}

func (noneStore) get(any) (any, bool) { return nil, false }
func (noneStore) add(_, _ any) bool { return false }
func (noneStore) remove(any) {}
func (noneStore) len() int { return 0 }
func (noneStore) purge() {}
