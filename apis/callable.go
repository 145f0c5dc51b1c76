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
	"reflect"
)

// Kind classifies a callable member.
type Kind uint8

const (
	// Method is bound to a receiver of the owner type.
	Method Kind = iota
	// Function is a free function registered under the owner type.
	Function
	// Constructor is a registered function whose first result is the owner.
	Constructor
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Method:
		return "method"
	case Function:
		return "function"
	case Constructor:
		return "constructor"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Callable is a resolvable member of an owner type, tagged with its declared
// signature. Implementations are immutable and safe for concurrent use.
type Callable interface {
	// Owner is the type the member was enumerated from.
	Owner() reflect.Type
	// Name is the member name.
	Name() string
	// Kind tells whether a receiver is required.
	Kind() Kind
	// Signature is the declared parameter list, without the receiver.
	Signature() Signature
	// Variadic reports whether the last declared parameter is variadic.
	Variadic() bool
	// Call invokes the member with already bound arguments. recv is ignored
	// for functions and constructors.
	Call(recv reflect.Value, args []reflect.Value) ([]reflect.Value, error)
}

// Members lists the declared callables of an owner type by name.
// The returned order must be deterministic.
type Members interface {
	Members(owner reflect.Type, name string) []Callable
}
