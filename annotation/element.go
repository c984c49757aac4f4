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

// ValueName is the element name of the single-attribute convention.
const ValueName = "value"

// Element identifies one named attribute of one metadata type.
// It is comparable and is used directly as a map key.
type Element struct {
	// Owner is the name of the metadata type that declares the attribute.
	Owner string
	// Name is the attribute name.
	Name string
}

// NewElement returns the element name of owner.
func NewElement(owner, name string) Element {
	return Element{Owner: owner, Name: name}
}

// ValueOf returns the "value" element of owner.
func ValueOf(owner string) Element {
	return Element{Owner: owner, Name: ValueName}
}

// IsZero reports whether e lacks an owner or a name. A zero element is
// treated as an absent key.
func (e Element) IsZero() bool {
	return e.Owner == "" || e.Name == ""
}

// String renders the element as "Owner.Name".
func (e Element) String() string {
	return e.Owner + "." + e.Name
}
