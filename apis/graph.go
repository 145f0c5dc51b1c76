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

// ConvertFunc converts a value of an edge's source type to its target type.
type ConvertFunc func(v any) (any, error)

// Edge is a directed conversion between two types.
type Edge struct {
	From   reflect.Type
	To     reflect.Type
	Weight int
	Func   ConvertFunc
}

// Graph is a directed graph of types connected by converter edges.
type Graph interface {
	// Register upserts a unit-weight edge.
	Register(from, to reflect.Type, fn ConvertFunc)
	// RegisterWeighted upserts an edge with an explicit non-negative weight.
	RegisterWeighted(from, to reflect.Type, weight int, fn ConvertFunc) error
	// ReachableFrom lists every type reachable from t through one or more
	// edges, excluding t itself, in discovery order.
	ReachableFrom(t reflect.Type) []reflect.Type
	// IsReachable reports whether to is reachable from from.
	IsReachable(from, to reflect.Type) bool
	// ShortestPath returns the cheapest edge chain from from to to.
	// The path from a type to itself is empty.
	ShortestPath(from, to reflect.Type) ([]Edge, error)
	// Edges returns a snapshot of every edge.
	Edges() []Edge
	// Reset removes every node and edge.
	Reset()
}
