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
	"reflect"

	"dirpx.dev/mirror/apis"
	uref "dirpx.dev/mirror/utils/reflect"
)

// NewNamerStrategy creates an apis.Strategy that uses apis.Namer.
func NewNamerStrategy() apis.Strategy {
	return &namerStrategy{}
}

// namerStrategy is a zero-cost fast path: if v implements apis.Namer,
// return its AnnotationName() and stop the chain.
type namerStrategy struct{}

// Ensure namerStrategy implements apis.Strategy.
var _ apis.Strategy = (*namerStrategy)(nil)

var namerType = reflect.TypeFor[apis.Namer]()

// TryResolve checks if v implements apis.Namer and returns its AnnotationName().
func (*namerStrategy) TryResolve(v any, _ apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	if n, ok := v.(apis.Namer); ok {
		return n.AnnotationName(), true
	}
	return "", false
}

// TryResolveType asks the zero value of t (pointers stripped) for its name
// when the type implements apis.Namer with a value receiver. Interface types
// have no zero instance to ask and always fall through.
func (*namerStrategy) TryResolveType(t reflect.Type, _ apis.Config) (string, bool) {
	t = uref.Indirect(t)
	if t == nil || t.Kind() == reflect.Interface || !t.Implements(namerType) {
		return "", false
	}
	return reflect.Zero(t).Interface().(apis.Namer).AnnotationName(), true
}
