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

// Package compat implements the compatibility primitives the expander and the
// resolver are built on: boxed/unboxed equivalence, the ancestor chain formed
// by leading embedded fields, and the set of declared interfaces a type
// implements directly.
package compat

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/dispatch/apis"
	uref "dirpx.dev/dispatch/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is declared.
	ErrNilType = errors.New("dispatch(compat): nil reflect.Type provided")
	// ErrNotInterface is returned when a declared type is not an interface.
	ErrNotInterface = errors.New("dispatch(compat): type is not an interface")
)

// New constructs Rules that know about the given interfaces.
func New(ifaces ...reflect.Type) (*Rules, error) {
	r := &Rules{seen: make(map[reflect.Type]struct{})}
	if err := r.Declare(ifaces...); err != nil {
		return nil, err
	}
	return r, nil
}

// Rules is the default apis.Hierarchy.
//
// Go interfaces are satisfied implicitly, so the set of candidate interfaces
// is whatever has been declared. Declaration order is kept and decides the
// order in which interfaces are substituted.
type Rules struct {
	// mu guards ifaces and seen.
	mu     sync.RWMutex
	ifaces []reflect.Type
	seen   map[reflect.Type]struct{}
	// memo caches Interfaces results per type.
	memo sync.Map // map[reflect.Type][]reflect.Type
}

// Ensure Rules implements apis.Hierarchy.
var _ apis.Hierarchy = (*Rules)(nil)

// Declare adds interfaces to the candidate set. Re-declaring is a no-op.
func (r *Rules) Declare(ifaces ...reflect.Type) error {
	for _, t := range ifaces {
		if t == nil {
			return ErrNilType
		}
		if t.Kind() != reflect.Interface {
			return ErrNotInterface
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range ifaces {
		if _, ok := r.seen[t]; ok {
			continue
		}
		r.seen[t] = struct{}{}
		r.ifaces = append(r.ifaces, t)
	}
	r.memo.Clear()
	return nil
}

// Declared returns the declared interfaces in declaration order.
func (r *Rules) Declared() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]reflect.Type, len(r.ifaces))
	copy(out, r.ifaces)
	return out
}

// Equivalent maps a basic type T to *T and *T back to T.
func (r *Rules) Equivalent(t reflect.Type) (reflect.Type, bool) {
	if t == nil {
		return nil, false
	}
	if uref.IsBasic(t) {
		return reflect.PointerTo(t), true
	}
	if t.Kind() == reflect.Pointer && uref.IsBasic(t.Elem()) {
		return t.Elem(), true
	}
	return nil, false
}

// Supertype returns the type of t's leading embedded field. For a pointer to
// a struct the ancestor is a pointer as well.
func (r *Rules) Supertype(t reflect.Type) (reflect.Type, bool) {
	if t == nil {
		return nil, false
	}
	switch t.Kind() {
	case reflect.Struct:
		return uref.Embedded(t)
	case reflect.Pointer:
		e, ok := uref.Embedded(t.Elem())
		if !ok {
			return nil, false
		}
		if e.Kind() == reflect.Pointer {
			return e, true
		}
		return reflect.PointerTo(e), true
	default:
		return nil, false
	}
}

// Interfaces returns the declared interfaces t implements that its immediate
// supertype does not.
func (r *Rules) Interfaces(t reflect.Type) []reflect.Type {
	if t == nil {
		return nil
	}
	if v, ok := r.memo.Load(t); ok {
		return v.([]reflect.Type)
	}

	super, hasSuper := r.Supertype(t)

	r.mu.RLock()
	var out []reflect.Type
	for _, i := range r.ifaces {
		if i == t || !t.Implements(i) {
			continue
		}
		if hasSuper && super.Implements(i) {
			continue // inherited, re-derived at the ancestor
		}
		out = append(out, i)
	}
	// Stored under the read lock so a concurrent Declare clears it afterwards.
	r.memo.Store(t, out)
	r.mu.RUnlock()
	return out
}

// Supertypes returns the ancestor chain of t, from the immediate supertype to
// the root. The walk stops at the first repeated type.
func Supertypes(h apis.Hierarchy, t reflect.Type) []reflect.Type {
	var chain []reflect.Type
	seen := map[reflect.Type]struct{}{t: {}}
	for {
		s, ok := h.Supertype(t)
		if !ok {
			return chain
		}
		if _, dup := seen[s]; dup {
			return chain
		}
		seen[s] = struct{}{}
		chain = append(chain, s)
		t = s
	}
}

// IsAncestor reports whether a is in the ancestor chain of t.
func IsAncestor(h apis.Hierarchy, t, a reflect.Type) bool {
	for _, s := range Supertypes(h, t) {
		if s == a {
			return true
		}
	}
	return false
}
