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

package strategy

import (
	"fmt"
	"strings"
)

// Strategy selects the eviction policy of a cache.
//
// # Overview
//
// mirror caches values that are expensive to derive but never change once
// derived: contract dispatch tables per Go interface type and collected
// annotation values per declaration. Strategy picks how such a cache
// bounds itself. Capacity is configured separately.
//
// # Values
//
//   - LRU       - evict the least recently used entry.
//   - ARC       - adaptive replacement, balancing recency and frequency.
//   - TwoQueue  - 2Q, which resists scans of one-off keys.
//   - Unbounded - keep every entry; capacity is ignored.
//   - None      - caching disabled, every lookup is a miss.
//
// # Contract
//
//   - The zero value is LRU.
//   - Existing values never change meaning; new values may be added.
//   - Strategy is a plain integer and safe to share across goroutines.
type Strategy int

const (
	// LRU selects least-recently-used eviction. Reads and writes both count
	// as use.
	LRU Strategy = iota

	// ARC selects adaptive replacement. ARC tracks both recently and
	// frequently used entries and shifts capacity between them, at roughly
	// twice the bookkeeping of LRU.
	ARC

	// TwoQueue selects the 2Q algorithm. Entries seen once live in a
	// separate queue, so a single pass over many distinct keys does not
	// flush frequently used ones.
	TwoQueue

	// Unbounded keeps every entry for the life of the cache. It suits key
	// spaces that are small and fixed, such as the set of contract types in
	// a program.
	Unbounded

	// None disables caching. Writes are dropped and reads always miss;
	// loads still run and still deduplicate concurrent callers.
	None
)

// String returns a stable token for s, or "Unknown(<n>)" for values outside
// the enumeration. It never panics.
//
//   - LRU       -> "LRU"
//   - ARC       -> "ARC"
//   - TwoQueue  -> "2Q"
//   - Unbounded -> "Unbounded"
//   - None      -> "None"
func (s Strategy) String() string {
	switch s {
	case LRU:
		return "LRU"
	case ARC:
		return "ARC"
	case TwoQueue:
		return "2Q"
	case Unbounded:
		return "Unbounded"
	case None:
		return "None"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Valid reports whether s is one of the defined strategies.
func (s Strategy) Valid() bool {
	return s >= LRU && s <= None
}

// Bounded reports whether s evicts entries to respect a capacity.
func (s Strategy) Bounded() bool {
	return s == LRU || s == ARC || s == TwoQueue
}

// Parse converts a token into a Strategy. Matching is case-insensitive and
// ignores surrounding whitespace. Besides the String tokens, "TwoQueue" is
// accepted for TwoQueue.
//
// On failure Parse returns None and a non-nil error.
//
//	s, err := strategy.Parse("arc") // ARC, nil
func Parse(s string) (Strategy, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return None, fmt.Errorf("cache: empty strategy")
	}

	switch strings.ToUpper(trimmed) {
	case "LRU":
		return LRU, nil
	case "ARC":
		return ARC, nil
	case "2Q", "TWOQUEUE":
		return TwoQueue, nil
	case "UNBOUNDED":
		return Unbounded, nil
	case "NONE":
		return None, nil
	default:
		return None, fmt.Errorf("cache: unknown strategy %q", s)
	}
}

// MustParse is like Parse but panics on invalid input. Use it for
// hard-coded tokens only.
func MustParse(s string) Strategy {
	strategy, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return strategy
}

// MarshalText implements encoding.TextMarshaler. Unknown values are an
// error so that corrupt configuration is never written out.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cache: cannot marshal unknown strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse. On error
// the receiver is left unchanged.
func (s *Strategy) UnmarshalText(text []byte) error {
	value, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = value
	return nil
}
