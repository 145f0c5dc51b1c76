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

package reflect

import (
	"errors"
	"reflect"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectNilPointer is returned when a nil pointer cannot be dereferenced.
	ErrReflectNilPointer = errors.New("reflect: nil pointer")
	// ErrReflectNoAncestor is returned when a value has no leading embedded field.
	ErrReflectNoAncestor = errors.New("reflect: no embedded field")
	// ErrReflectUnexported is returned when the embedded field is not exported.
	ErrReflectUnexported = errors.New("reflect: embedded field is not exported")
)

// IsBasic reports whether t is a boolean, numeric, complex or string kind,
// named or not. Basic types are the ones with a boxed counterpart.
func IsBasic(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether t is an integer or floating point kind.
func IsNumeric(t reflect.Type) bool {
	return IsInteger(t) || IsFloat(t)
}

// IsInteger reports whether t is a signed or unsigned integer kind.
func IsInteger(t reflect.Type) bool {
	return IsSigned(t) || IsUnsigned(t)
}

// IsSigned reports whether t is a signed integer kind.
func IsSigned(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

// IsUnsigned reports whether t is an unsigned integer kind.
func IsUnsigned(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// IsFloat reports whether t is a floating point kind.
func IsFloat(t reflect.Type) bool {
	return t != nil && (t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64)
}

// IsNilable reports whether a nil value can be bound to t.
func IsNilable(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

// Box returns a pointer to a fresh copy of v.
func Box(v reflect.Value) reflect.Value {
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p
}

// Unbox dereferences a pointer value.
func Unbox(v reflect.Value) (reflect.Value, error) {
	if v.Kind() != reflect.Pointer {
		return v, nil
	}
	if v.IsNil() {
		return reflect.Value{}, ErrReflectNilPointer
	}
	return v.Elem(), nil
}

// Embedded returns the type of the leading embedded field of struct type t.
func Embedded(t reflect.Type) (reflect.Type, bool) {
	if t == nil || t.Kind() != reflect.Struct || t.NumField() == 0 {
		return nil, false
	}
	f := t.Field(0)
	if !f.Anonymous {
		return nil, false
	}
	return f.Type, true
}

// Ancestor returns the leading embedded field of v, keeping pointer-ness:
// for a struct it returns the field value, for a pointer to struct it returns
// the field's address (or the field itself when it is a pointer).
func Ancestor(v reflect.Value) (reflect.Value, error) {
	var out reflect.Value
	switch v.Kind() {
	case reflect.Struct:
		if _, ok := Embedded(v.Type()); !ok {
			return reflect.Value{}, ErrReflectNoAncestor
		}
		out = v.Field(0)
	case reflect.Pointer:
		if v.IsNil() {
			return reflect.Value{}, ErrReflectNilPointer
		}
		e := v.Elem()
		if _, ok := Embedded(e.Type()); !ok {
			return reflect.Value{}, ErrReflectNoAncestor
		}
		out = e.Field(0)
		if out.Kind() != reflect.Pointer {
			out = out.Addr()
		}
	default:
		return reflect.Value{}, ErrReflectNoAncestor
	}
	// Unexported embedded fields cannot leave the package through reflection.
	if !out.CanInterface() {
		return reflect.Value{}, ErrReflectUnexported
	}
	return out, nil
}
