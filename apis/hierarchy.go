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

// Hierarchy exposes the compatibility primitives every relaxation mode is
// expressed in. Implementations must be pure with respect to a given set of
// declarations and safe for concurrent reads.
type Hierarchy interface {
	// Equivalent returns the boxed/unboxed counterpart of t.
	Equivalent(t reflect.Type) (reflect.Type, bool)
	// Supertype returns the immediate ancestor of t.
	Supertype(t reflect.Type) (reflect.Type, bool)
	// Interfaces returns the directly implemented interfaces of t in a
	// deterministic order. Ancestors are not walked.
	Interfaces(t reflect.Type) []reflect.Type
}
