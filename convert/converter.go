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

// Package convert performs runtime value conversion between types, using the
// conversion graph for registered and built-in conversions.
package convert

import (
	"fmt"
	"log/slog"
	"reflect"

	"dirpx.dev/dispatch/apis"
	"dirpx.dev/dispatch/compat"
	uref "dirpx.dev/dispatch/utils/reflect"
)

// New constructs an apis.Converter over g and h. A nil logger discards output.
func New(g apis.Graph, h apis.Hierarchy, logger *slog.Logger) apis.Converter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &converter{g: g, h: h, log: logger}
}

type converter struct {
	g   apis.Graph
	h   apis.Hierarchy
	log *slog.Logger
}

// Ensure converter implements apis.Converter.
var _ apis.Converter = (*converter)(nil)

// Convert dispatches in order: identity, boxed/unboxed counterpart, ancestor
// extraction, conversion graph, then the graph again through the unboxed
// source or towards the unboxed target.
func (c *converter) Convert(v any, t reflect.Type) (any, error) {
	if t == nil {
		return nil, apis.NewConversionError(reflect.TypeOf(v), nil, v, "nil target type", nil)
	}
	if v == nil {
		if uref.IsNilable(t) {
			return reflect.Zero(t).Interface(), nil
		}
		return nil, apis.NewConversionError(nil, t, v, "nil value", nil)
	}

	from := reflect.TypeOf(v)
	if from.AssignableTo(t) {
		return v, nil
	}

	rv := reflect.ValueOf(v)
	if eq, ok := c.h.Equivalent(from); ok && eq == t {
		return equivalent(rv, t)
	}
	if compat.IsAncestor(c.h, from, t) {
		return c.upcast(rv, t)
	}
	if out, ok, err := c.viaGraph(v, from, t); ok {
		return out, err
	}

	if from.Kind() == reflect.Pointer && uref.IsBasic(from.Elem()) {
		if rv.IsNil() {
			return nil, apis.NewConversionError(from, t, v, "nil pointer", nil)
		}
		return c.Convert(rv.Elem().Interface(), t)
	}
	if t.Kind() == reflect.Pointer && uref.IsBasic(t.Elem()) {
		inner, err := c.Convert(v, t.Elem())
		if err != nil {
			return nil, err
		}
		return uref.Box(reflect.ValueOf(inner)).Interface(), nil
	}

	return nil, apis.NewConversionError(from, t, v, "no conversion path", nil)
}

// ConvertAll converts vs[i] to ts[i] for every i.
func (c *converter) ConvertAll(vs []any, ts apis.Signature, lenient bool) ([]any, error) {
	if len(vs) != len(ts) {
		return nil, fmt.Errorf("%w: %d values for %d types", apis.ErrArity, len(vs), len(ts))
	}
	out := make([]any, len(vs))
	for i, v := range vs {
		cv, err := c.Convert(v, ts[i])
		if err != nil {
			if lenient {
				c.log.Debug("dispatch: keeping unconverted value",
					slog.Int("index", i),
					slog.Any("error", err),
				)
				out[i] = v
				continue
			}
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = cv
	}
	return out, nil
}

// viaGraph applies the shortest edge chain from -> t. ok is false when t is
// not reachable.
func (c *converter) viaGraph(v any, from, t reflect.Type) (out any, ok bool, err error) {
	if c.g == nil || !c.g.IsReachable(from, t) {
		return nil, false, nil
	}
	path, err := c.g.ShortestPath(from, t)
	if err != nil {
		return nil, true, apis.NewConversionError(from, t, v, "no conversion path", err)
	}
	cur := v
	for _, e := range path {
		next, err := e.Func(cur)
		if err != nil {
			return nil, true, apis.NewConversionError(from, t, v,
				fmt.Sprintf("step %v -> %v failed", e.From, e.To), err)
		}
		cur = next
	}
	if !fits(cur, t) {
		return nil, true, apis.NewConversionError(from, t, v, fmt.Sprintf("converter returned %T", cur), nil)
	}
	return cur, true, nil
}

// fits reports whether v can stand for a value of type t.
func fits(v any, t reflect.Type) bool {
	if v == nil {
		return uref.IsNilable(t)
	}
	return reflect.TypeOf(v).AssignableTo(t)
}

// upcast walks leading embedded fields until the value has type t.
func (c *converter) upcast(rv reflect.Value, t reflect.Type) (any, error) {
	orig := rv
	for rv.Type() != t {
		next, err := uref.Ancestor(rv)
		if err != nil {
			return nil, apis.NewConversionError(orig.Type(), t, orig.Interface(), "cannot reach ancestor", err)
		}
		rv = next
	}
	return rv.Interface(), nil
}

// equivalent boxes or unboxes rv into t.
func equivalent(rv reflect.Value, t reflect.Type) (any, error) {
	if t.Kind() == reflect.Pointer {
		return uref.Box(rv).Interface(), nil
	}
	out, err := uref.Unbox(rv)
	if err != nil {
		return nil, apis.NewConversionError(rv.Type(), t, rv.Interface(), "cannot unbox", err)
	}
	return out.Interface(), nil
}
