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

// Package dispatch resolves and invokes members dynamically by compatible
// signature, and converts values between types along registered conversion
// chains.
//
// Given an owner type, a member name and the types of the actual arguments,
// dispatch finds a function, constructor or method whose declared parameter
// list is compatible with those types under a configurable set of relaxation
// rules, then calls it, converting arguments when an exact type match is not
// available.
//
// # Design
//
// All mutable state lives in a Context, built by New:
//
//   - Hierarchy (package compat): the compatibility primitives. Basic types
//     are equivalent to their pointer ("boxed") form, the leading embedded
//     field of a struct is its supertype, and a declared set of interfaces
//     provides the "implements" relation, which Go cannot enumerate on its own.
//
//   - Members (package member): methods found by reflection, plus functions
//     and constructors registered per owner type. Several functions under
//     one name act as overloads.
//
//   - Graph (package graph): a directed graph of types whose edges are
//     conversion functions. Shortest paths (Dijkstra) give multi-step
//     conversions such as A -> B -> C that were never registered directly.
//
//   - Cache (package cache): remembers which member a request resolved to,
//     together with the signature that actually matched. There is no
//     eviction; ResetCaches clears it.
//
//   - Resolver (packages resolver, strategy, expand): a chain of stages.
//     1. the lookup cache;
//     2. an exact probe of the input signature, looking at the owner's
//     directly implemented interfaces first when configured to;
//     3. relaxation tiers {Equivalence, Supertype}, then adding Interface,
//     then adding Convert. Each tier lazily enumerates candidate
//     signatures in priority order and stops at the first member that
//     declares one of them.
//
//   - Converter (package convert) and Invoker (package invoke): arguments
//     are bound directly first; on a type mismatch every argument is
//     converted to the declared signature and the call is retried once.
//
// # Usage
//
//	ctx := dispatch.MustNew()
//	out, err := ctx.InvokeCompatible(recv, nil, "Foo", 50.0, pear, "g")
//
// The package-level helpers (Resolve, InvokeCompatible, Convert, ...) use a
// default Context held in an atomic pointer; SetDefault swaps it.
//
// # Concurrency model
//
// Everything runs synchronously on the calling goroutine. The cache and the
// graph are guarded by reader/writer locks. Two goroutines resolving the same
// key may both run the full search and both store the result; the entries are
// equivalent because member enumeration order is deterministic. ResetCaches
// should not race with resolutions that depend on the previous state.
//
// Expansion is exponential in signature length under full relaxation. Bound
// it with Config.MaxCandidates or the caller's own deadline.
package dispatch
