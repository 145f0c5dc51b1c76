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

// Package invoke binds arguments to a resolved callable and calls it,
// converting arguments once when direct binding fails.
package invoke

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"dirpx.dev/dispatch/apis"
	uref "dirpx.dev/dispatch/utils/reflect"
)

// ErrBind is returned when an argument cannot be bound to its parameter.
var ErrBind = errors.New("dispatch(invoke): argument type mismatch")

var errorType = reflect.TypeFor[error]()

// New constructs an apis.Invoker that converts with conv on a bind mismatch.
// A nil logger discards output.
func New(conv apis.Converter, logger *slog.Logger) apis.Invoker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &invoker{conv: conv, log: logger}
}

type invoker struct {
	conv apis.Converter
	log  *slog.Logger
}

// Ensure invoker implements apis.Invoker.
var _ apis.Invoker = (*invoker)(nil)

// Invoke binds args directly; on a type mismatch it converts every argument
// to the declared signature and retries exactly once.
//
// The result is nil for members without non-error results, the single value
// for one result, and []any otherwise. A non-nil trailing error result and a
// panic inside the member are reported as *apis.InvocationError.
func (iv *invoker) Invoke(receiver any, c apis.Callable, args []any) (any, error) {
	sig := c.Signature()
	in, err := bind(sig, args)
	if errors.Is(err, ErrBind) && iv.conv != nil {
		iv.log.Debug("dispatch: converting arguments",
			slog.String("member", c.Name()),
			slog.String("declared", sig.String()),
		)
		converted, cerr := iv.conv.ConvertAll(args, sig, false)
		if cerr != nil {
			return nil, cerr
		}
		in, err = bind(sig, converted)
	}
	if err != nil {
		return nil, err
	}

	var recv reflect.Value
	if c.Kind() == apis.Method {
		recv = reflect.ValueOf(receiver)
	}
	out, err := call(c, recv, in)
	if err != nil {
		return nil, err
	}
	return results(c, out)
}

// bind turns args into reflect values typed for sig.
func bind(sig apis.Signature, args []any) ([]reflect.Value, error) {
	if len(args) != len(sig) {
		return nil, fmt.Errorf("%w: %d arguments for %v", apis.ErrArity, len(args), sig)
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		p := sig[i]
		if a == nil {
			if !uref.IsNilable(p) {
				return nil, fmt.Errorf("%w: nil for %v at %d", ErrBind, p, i)
			}
			in[i] = reflect.Zero(p)
			continue
		}
		v := reflect.ValueOf(a)
		if !v.Type().AssignableTo(p) {
			return nil, fmt.Errorf("%w: %v for %v at %d", ErrBind, v.Type(), p, i)
		}
		if p.Kind() == reflect.Interface {
			// Keep the declared interface type on the value passed in.
			iv := reflect.New(p).Elem()
			iv.Set(v)
			v = iv
		}
		in[i] = v
	}
	return in, nil
}

// call invokes c and turns a panic into an invocation error.
func call(c apis.Callable, recv reflect.Value, in []reflect.Value) (out []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("panic: %v", r)
			}
			err = &apis.InvocationError{Callable: c, Err: cause}
		}
	}()
	out, err = c.Call(recv, in)
	if err != nil {
		return nil, &apis.InvocationError{Callable: c, Err: err}
	}
	return out, nil
}

func results(c apis.Callable, out []reflect.Value) (any, error) {
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if e := out[n-1]; !e.IsNil() {
			return nil, &apis.InvocationError{Callable: c, Err: e.Interface().(error)}
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	}
	vals := make([]any, len(out))
	for i, v := range out {
		vals[i] = v.Interface()
	}
	return vals, nil
}
