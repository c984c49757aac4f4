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

// Package annotation holds annotation-style metadata: named, typed
// attribute values attached to a declaration.
//
// # Model
//
// An Element names one attribute of one metadata type ("owner"). A Values
// store maps elements to values and records which metadata types are
// present (its tags). Each value carries a Kind from a closed set of
// scalars, enum constants, nested stores, type references and their slice
// forms, so reads are checked by kind comparison:
//
//	b := annotation.NewBuilder().
//		Text(annotation.ValueOf("Retention"), "SOURCE").
//		Ints(annotation.NewElement("Limits", "sizes"), 1, 2, 3)
//	values, err := b.Build()
//
//	v, ok, err := values.Text(annotation.ValueOf("Retention")) // "SOURCE", true, nil
//	_, _, err = values.Int(annotation.ValueOf("Retention"))    // ErrTypeMismatch
//	sizes, _ := values.Ints(annotation.ValueOf("Missing"))      // []int{}, nil
//
// # Guarantees
//
//   - Values is immutable and safe for concurrent reads.
//   - Slice getters and Boxed hand out fresh copies; callers may mutate them.
//   - Absent elements are not errors: scalar getters report ok=false and
//     slice getters return an empty slice.
//   - A value of the wrong kind is always an error, never a zero value.
//   - Equal and Hash are structural and ignore insertion order; String
//     renders "@Owner(name=value,...)" groups in tag order.
package annotation
