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
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotFound reports that no compatible callable or conversion exists.
	// It is an expected outcome, not a defect.
	ErrNotFound = errors.New("dispatch: not found")
	// ErrIncompatibleType reports a conversion with no registered or derivable path.
	ErrIncompatibleType = errors.New("dispatch: incompatible type")
	// ErrInvocation reports that the underlying call failed during execution.
	ErrInvocation = errors.New("dispatch: invocation failed")
	// ErrArity is returned when the number of arguments does not match the
	// number of declared parameters.
	ErrArity = errors.New("dispatch: argument count mismatch")
)

// NotFoundError carries the request that could not be resolved.
type NotFoundError struct {
	Owner     reflect.Type
	Name      string
	Signature Signature
	Relax     Mode
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("dispatch: no member %v.%s compatible with %v under %v",
		e.Owner, e.Name, e.Signature, e.Relax)
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConversionError represents a failed value conversion.
type ConversionError struct {
	FromType reflect.Type
	ToType   reflect.Type
	Value    any
	Reason   string
	Wrapped  error
}

// NewConversionError creates a new conversion error.
func NewConversionError(from, to reflect.Type, value any, reason string, wrapped error) *ConversionError {
	return &ConversionError{
		FromType: from,
		ToType:   to,
		Value:    value,
		Reason:   reason,
		Wrapped:  wrapped,
	}
}

func (e *ConversionError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("dispatch: cannot convert %v (type %v) to %v: %s: %v",
			e.Value, e.FromType, e.ToType, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("dispatch: cannot convert %v (type %v) to %v: %s",
		e.Value, e.FromType, e.ToType, e.Reason)
}

// Unwrap returns the underlying cause.
func (e *ConversionError) Unwrap() error {
	return e.Wrapped
}

// Is makes errors.Is(err, ErrIncompatibleType) hold.
func (e *ConversionError) Is(target error) bool {
	return target == ErrIncompatibleType
}

// InvocationError wraps a failure raised by the invoked member.
type InvocationError struct {
	Callable Callable
	Err      error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("dispatch: %s %v.%s%v failed: %v",
		e.Callable.Kind(), e.Callable.Owner(), e.Callable.Name(), e.Callable.Signature(), e.Err)
}

// Unwrap returns the underlying cause.
func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInvocation) hold.
func (e *InvocationError) Is(target error) bool {
	return target == ErrInvocation
}
