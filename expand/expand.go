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

// Package expand enumerates the signatures derivable from an actual argument
// signature under a set of relaxation modes.
//
// The enumeration is a lazy, restartable iterator: every range over the
// returned sequence starts from scratch, and stopping early skips the rest of
// the (exponential) product.
package expand

import (
	"iter"
	"reflect"

	"dirpx.dev/dispatch/apis"
)

// New constructs an Expander. g may be nil when Convert is never requested.
func New(h apis.Hierarchy, g apis.Graph) *Expander {
	return &Expander{h: h, g: g}
}

// Expander derives candidate signatures from compatibility rules and the
// conversion graph.
type Expander struct {
	h apis.Hierarchy
	g apis.Graph
}

// Expand yields sig itself first, then every substitution product in priority
// order. Position 0 varies slowest.
func (e *Expander) Expand(sig apis.Signature, modes apis.Mode) iter.Seq[apis.Signature] {
	return func(yield func(apis.Signature) bool) {
		alts := make([][]reflect.Type, len(sig))
		out := make(apis.Signature, len(sig))
		e.fill(sig, alts, out, 0, modes, yield)
	}
}

func (e *Expander) fill(sig apis.Signature, alts [][]reflect.Type, out apis.Signature, i int, modes apis.Mode, yield func(apis.Signature) bool) bool {
	if i == len(sig) {
		return yield(out.Clone())
	}
	if alts[i] == nil {
		alts[i] = e.Candidates(sig[i], modes)
	}
	for _, t := range alts[i] {
		out[i] = t
		if !e.fill(sig, alts, out, i+1, modes, yield) {
			return false
		}
	}
	return true
}

// Candidates lists the substitutes for a single position, first occurrence
// wins:
//
//  1. t itself;
//  2. its equivalent (Equivalence);
//  3. its directly implemented interfaces (Interface);
//  4. each ancestor, re-running 1-3 at every level (Supertype);
//  5. every type reachable from t in the conversion graph, each followed by
//     its equivalent when Equivalence is set (Convert);
//  6. the empty interface, the implicit root of every ancestor chain
//     (Supertype).
func (e *Expander) Candidates(t reflect.Type, modes apis.Mode) []reflect.Type {
	if t == nil {
		return []reflect.Type{nil}
	}

	var out []reflect.Type
	seen := make(map[reflect.Type]struct{})
	add := func(c reflect.Type) {
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}

	var level func(t reflect.Type)
	level = func(t reflect.Type) {
		add(t)
		if modes.Has(apis.Equivalence) {
			if eq, ok := e.h.Equivalent(t); ok {
				add(eq)
			}
		}
		if modes.Has(apis.Interface) {
			for _, i := range e.h.Interfaces(t) {
				add(i)
			}
		}
		if modes.Has(apis.Supertype) {
			if s, ok := e.h.Supertype(t); ok {
				if _, dup := seen[s]; !dup {
					level(s)
				}
			}
		}
	}
	level(t)

	if modes.Has(apis.Convert) && e.g != nil {
		for _, r := range e.g.ReachableFrom(t) {
			add(r)
			if modes.Has(apis.Equivalence) {
				if eq, ok := e.h.Equivalent(r); ok {
					add(eq)
				}
			}
		}
	}

	if modes.Has(apis.Supertype) {
		add(anyType)
	}
	return out
}

var anyType = reflect.TypeFor[any]()
