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

package member

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/dispatch/apis"
)

var (
	// ErrNoReceiver is returned when a method is called without a receiver.
	ErrNoReceiver = errors.New("dispatch(member): method requires a receiver")
	// ErrNoMethod is returned when the receiver does not carry the method.
	ErrNoMethod = errors.New("dispatch(member): receiver has no such method")
)

// function is a registered free function or constructor.
type function struct {
	owner    reflect.Type
	name     string
	kind     apis.Kind
	sig      apis.Signature
	variadic bool
	fn       reflect.Value
}

// Ensure function implements apis.Callable.
var _ apis.Callable = (*function)(nil)

func (f *function) Owner() reflect.Type       { return f.owner }
func (f *function) Name() string              { return f.name }
func (f *function) Kind() apis.Kind           { return f.kind }
func (f *function) Signature() apis.Signature { return f.sig }
func (f *function) Variadic() bool            { return f.variadic }

// Call ignores recv.
func (f *function) Call(_ reflect.Value, args []reflect.Value) ([]reflect.Value, error) {
	if f.variadic {
		return f.fn.CallSlice(args), nil
	}
	return f.fn.Call(args), nil
}

func (f *function) String() string {
	return fmt.Sprintf("%s %v.%s%v", f.kind, f.owner, f.name, f.sig)
}

// method is a method looked up on the receiver at call time.
type method struct {
	owner    reflect.Type
	name     string
	sig      apis.Signature
	variadic bool
}

// Ensure method implements apis.Callable.
var _ apis.Callable = (*method)(nil)

func (m *method) Owner() reflect.Type       { return m.owner }
func (m *method) Name() string              { return m.name }
func (m *method) Kind() apis.Kind           { return apis.Method }
func (m *method) Signature() apis.Signature { return m.sig }
func (m *method) Variadic() bool            { return m.variadic }

// Call binds the method on recv. A non-pointer receiver is copied into a
// fresh pointer when the method has a pointer receiver.
func (m *method) Call(recv reflect.Value, args []reflect.Value) ([]reflect.Value, error) {
	if !recv.IsValid() {
		return nil, ErrNoReceiver
	}
	fn := recv.MethodByName(m.name)
	if !fn.IsValid() && recv.Kind() != reflect.Pointer && recv.Kind() != reflect.Interface {
		p := reflect.New(recv.Type())
		p.Elem().Set(recv)
		fn = p.MethodByName(m.name)
	}
	if !fn.IsValid() {
		return nil, fmt.Errorf("%w: %v.%s", ErrNoMethod, recv.Type(), m.name)
	}
	if m.variadic {
		return fn.CallSlice(args), nil
	}
	return fn.Call(args), nil
}

func (m *method) String() string {
	return fmt.Sprintf("method %v.%s%v", m.owner, m.name, m.sig)
}
