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

// Package graph models value conversions as a directed graph of types and
// computes the cheapest conversion chain between two of them.
package graph

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sync"

	"dirpx.dev/dispatch/apis"
)

var (
	// ErrNilType is returned when an edge endpoint is nil.
	ErrNilType = errors.New("dispatch(graph): nil reflect.Type provided")
	// ErrNilFunc is returned when an edge has no conversion function.
	ErrNilFunc = errors.New("dispatch(graph): nil conversion function")
	// ErrNegativeWeight is returned for edges with a negative weight.
	ErrNegativeWeight = errors.New("dispatch(graph): negative edge weight")
	// ErrNoPath reports that to is not reachable from from.
	ErrNoPath = fmt.Errorf("dispatch(graph): no conversion path: %w", apis.ErrNotFound)
)

// unreachable is the distance of a node not yet reached.
const unreachable = math.MaxInt

// New constructs an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[reflect.Type]*node)}
}

// Graph is the default apis.Graph.
//
// Nodes carry transient distance/predecessor fields used by ShortestPath.
// They are reset at the start of every run, and runs are serialized by the
// write lock, so one run never observes another's state.
type Graph struct {
	mu    sync.RWMutex
	nodes map[reflect.Type]*node
	// order keeps node insertion order for deterministic traversals.
	order []*node
}

// Ensure Graph implements apis.Graph.
var _ apis.Graph = (*Graph)(nil)

type node struct {
	t   reflect.Type
	out []*apis.Edge

	// Shortest-path state.
	distance int
	prev     *apis.Edge
	index    int
}

// Register upserts a unit-weight edge. Nil arguments are ignored.
func (g *Graph) Register(from, to reflect.Type, fn apis.ConvertFunc) {
	_ = g.RegisterWeighted(from, to, 1, fn)
}

// RegisterWeighted upserts an edge. Registering the same pair again replaces
// the previous edge in place.
func (g *Graph) RegisterWeighted(from, to reflect.Type, weight int, fn apis.ConvertFunc) error {
	if from == nil || to == nil {
		return ErrNilType
	}
	if fn == nil {
		return ErrNilFunc
	}
	if weight < 0 {
		return ErrNegativeWeight
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	src := g.nodeLocked(from)
	g.nodeLocked(to)
	e := &apis.Edge{From: from, To: to, Weight: weight, Func: fn}
	for i, old := range src.out {
		if old.To == to {
			src.out[i] = e
			return nil
		}
	}
	src.out = append(src.out, e)
	return nil
}

func (g *Graph) nodeLocked(t reflect.Type) *node {
	n, ok := g.nodes[t]
	if !ok {
		n = &node{t: t, distance: unreachable}
		g.nodes[t] = n
		g.order = append(g.order, n)
	}
	return n
}

// ReachableFrom walks the graph depth-first from t. The origin is excluded
// even when a cycle leads back to it. Unknown types yield nothing.
func (g *Graph) ReachableFrom(t reflect.Type) []reflect.Type {
	g.mu.RLock()
	defer g.mu.RUnlock()

	start, ok := g.nodes[t]
	if !ok {
		return nil
	}
	visited := map[*node]struct{}{start: {}}
	var out []reflect.Type
	var visit func(n *node)
	visit = func(n *node) {
		for _, e := range n.out {
			next := g.nodes[e.To]
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			out = append(out, next.t)
			visit(next)
		}
	}
	visit(start)
	return out
}

// IsReachable reports whether to can be reached from from through one or
// more edges.
func (g *Graph) IsReachable(from, to reflect.Type) bool {
	for _, t := range g.ReachableFrom(from) {
		if t == to {
			return true
		}
	}
	return false
}

// ShortestPath runs Dijkstra from from and returns the edges leading to to,
// in application order. The path from a type to itself is empty.
func (g *Graph) ShortestPath(from, to reflect.Type) ([]apis.Edge, error) {
	if from == to {
		return []apis.Edge{}, nil
	}

	// Write lock: the run mutates per-node state.
	g.mu.Lock()
	defer g.mu.Unlock()

	src, ok := g.nodes[from]
	if !ok {
		return nil, fmt.Errorf("%w: %v is not registered", ErrNoPath, from)
	}
	dst, ok := g.nodes[to]
	if !ok {
		return nil, fmt.Errorf("%w: %v is not registered", ErrNoPath, to)
	}

	for _, n := range g.order {
		n.distance = unreachable
		n.prev = nil
	}
	src.distance = 0

	q := make(queue, len(g.order))
	for i, n := range g.order {
		n.index = i
		q[i] = n
	}
	heap.Init(&q)

	for q.Len() > 0 {
		u := heap.Pop(&q).(*node)
		if u.distance == unreachable {
			break // the rest is unreachable
		}
		if u == dst {
			break
		}
		for _, e := range u.out {
			v := g.nodes[e.To]
			if v.index < 0 {
				continue // settled
			}
			if e.Weight > unreachable-u.distance {
				continue // would overflow
			}
			if d := u.distance + e.Weight; d < v.distance {
				v.distance = d
				v.prev = e
				heap.Fix(&q, v.index)
			}
		}
	}

	if dst.distance == unreachable {
		return nil, fmt.Errorf("%w: %v -> %v", ErrNoPath, from, to)
	}

	var path []apis.Edge
	for n := dst; n.prev != nil; n = g.nodes[n.prev.From] {
		path = append(path, *n.prev)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// Edges returns a snapshot of every edge in registration order.
func (g *Graph) Edges() []apis.Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []apis.Edge
	for _, n := range g.order {
		for _, e := range n.out {
			out = append(out, *e)
		}
	}
	return out
}

// Types returns every registered type in insertion order.
func (g *Graph) Types() []reflect.Type {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]reflect.Type, len(g.order))
	for i, n := range g.order {
		out[i] = n.t
	}
	return out
}

// Reset removes every node and edge.
func (g *Graph) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes = make(map[reflect.Type]*node)
	g.order = nil
}

// queue is a min-heap of unsettled nodes keyed by distance.
type queue []*node

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool { return q[i].distance < q[j].distance }

func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *queue) Push(x any) {
	n := x.(*node)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *queue) Pop() any {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	n.index = -1
	*q = old[:len(old)-1]
	return n
}
