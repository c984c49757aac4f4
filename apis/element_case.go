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

package apis

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ElementCase maps an exported Go method name to an element name.
type ElementCase int

const (
	// LowerCamel lowers the leading run of capitals: "Value" -> "value",
	// "MaxSize" -> "maxSize", "URLPath" -> "urlPath", "ID" -> "id".
	LowerCamel ElementCase = iota
	// Exact keeps the method name unchanged.
	Exact
	// Snake converts to lower snake case: "OtherElement" -> "other_element",
	// "URLPath" -> "url_path".
	Snake
)

// String returns the case name.
func (c ElementCase) String() string {
	switch c {
	case LowerCamel:
		return "LowerCamel"
	case Exact:
		return "Exact"
	case Snake:
		return "Snake"
	default:
		return fmt.Sprintf("ElementCase(%d)", int(c))
	}
}

// ParseElementCase parses a case name, ignoring case and surrounding space.
func ParseElementCase(s string) (ElementCase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowercamel", "camel":
		return LowerCamel, nil
	case "exact":
		return Exact, nil
	case "snake":
		return Snake, nil
	default:
		return LowerCamel, fmt.Errorf("mirror: unknown element case %q", s)
	}
}

// Apply converts the method name to an element name.
func (c ElementCase) Apply(method string) string {
	switch c {
	case Exact:
		return method
	case Snake:
		return snake(method)
	default:
		return lowerCamel(method)
	}
}

// lowerCamel lowers the leading capitals, keeping the last one of a run
// upper when it starts the next word ("URLPath" -> "urlPath").
func lowerCamel(s string) string {
	rs := []rune(s)
	n := 0
	for n < len(rs) && unicode.IsUpper(rs[n]) {
		n++
	}
	switch {
	case n == 0:
		return s
	case n > 1 && n < len(rs) && unicode.IsLower(rs[n]):
		n--
	}
	for i := 0; i < n; i++ {
		rs[i] = unicode.ToLower(rs[i])
	}
	return string(rs)
}

func snake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	var prev rune
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				next, _ := utf8.DecodeRuneInString(s[i+utf8.RuneLen(r):])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
					(unicode.IsUpper(prev) && unicode.IsLower(next)) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
		prev = r
	}
	return b.String()
}
