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

// Package introspect reads live annotation values into a Values store.
//
// A declaration advertises its annotations by implementing apis.Annotated.
// Each annotation names its contract interface through AnnotationType();
// the Walker tags the contract's metadata type name, calls every accessor
// and stores the results with Builder.Put. Synthesized objects are read
// through Invoke, so walking an object built by synth reproduces the
// contract-owned part of its backing store.
package introspect
