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

package annotation

// Enum is a name-qualified enum constant.
//
// Go has no enum types, so a constant is identified by the name of its
// declaring type plus its own name. Two constants are equal when both
// parts are equal.
type Enum struct {
	// Type is the name of the declaring enum type, e.g. "policy.Retention".
	Type string
	// Name is the constant name, e.g. "SOURCE".
	Name string
}

// EnumOf returns the constant name of enum type typ.
func EnumOf(typ, name string) Enum {
	return Enum{Type: typ, Name: name}
}

// IsZero reports whether the constant lacks a type or a name.
func (e Enum) IsZero() bool {
	return e.Type == "" || e.Name == ""
}

// String returns the constant name.
func (e Enum) String() string {
	return e.Name
}
