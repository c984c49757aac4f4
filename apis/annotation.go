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

import "reflect"

// Annotation is a live annotation instance. AnnotationType returns the Go
// interface type that declares its elements (its contract).
type Annotation interface {
	AnnotationType() reflect.Type
}

// Annotated is a declaration that carries annotations.
// Implementations should return the same annotations on every call.
type Annotated interface {
	Annotations() []Annotation
}
