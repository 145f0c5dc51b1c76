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

// Package member enumerates the callables declared on an owner type: methods
// discovered through reflection plus functions and constructors registered
// explicitly.
package member

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/dispatch/apis"
)

var (
	// ErrNilType is returned when a nil owner type is provided.
	ErrNilType = errors.New("dispatch(member): nil reflect.Type provided")
	// ErrEmptyName is returned when an empty member name is provided.
	ErrEmptyName = errors.New("dispatch(member): empty name provided")
	// ErrNotFunc is returned when a registered member is not a function.
	ErrNotFunc = errors.New("dispatch(member): member is not a function")
)

// NewCatalog constructs an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{funcs: make(map[funcKey][]apis.Callable)}
}

// Catalog is the default apis.Members.
//
// Members lists the reflected method first (if any), then registered
// functions in registration order. Method callables are memoized so repeated
// enumeration returns the same references.
type Catalog struct {
	mu    sync.RWMutex
	funcs map[funcKey][]apis.Callable

	methods sync.Map // map[funcKey]apis.Callable; nil value marks "no such method"
}

// Ensure Catalog implements apis.Members.
var _ apis.Members = (*Catalog)(nil)

type funcKey struct {
	owner reflect.Type
	name  string
}

// Register adds fn as a member named name of owner. A function whose first
// result is owner (or *owner) is a constructor.
func (c *Catalog) Register(owner reflect.Type, name string, fn any) (apis.Callable, error) {
	if owner == nil {
		return nil, ErrNilType
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, ErrNotFunc
	}

	ft := v.Type()
	kind := apis.Function
	if ft.NumOut() > 0 {
		if first := ft.Out(0); first == owner || first == reflect.PointerTo(owner) {
			kind = apis.Constructor
		}
	}

	sig := make(apis.Signature, ft.NumIn())
	for i := range sig {
		sig[i] = ft.In(i)
	}
	cl := &function{
		owner:    owner,
		name:     name,
		kind:     kind,
		sig:      sig,
		variadic: ft.IsVariadic(),
		fn:       v,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	k := funcKey{owner: owner, name: name}
	c.funcs[k] = append(c.funcs[k], cl)
	return cl, nil
}

// Members returns the callables named name declared on owner.
func (c *Catalog) Members(owner reflect.Type, name string) []apis.Callable {
	if owner == nil || name == "" {
		return nil
	}
	k := funcKey{owner: owner, name: name}

	var out []apis.Callable
	if m := c.method(k); m != nil {
		out = append(out, m)
	}

	c.mu.RLock()
	out = append(out, c.funcs[k]...)
	c.mu.RUnlock()
	return out
}

// method reflects the method named k.name on k.owner. For a concrete
// non-pointer owner the method set of *owner is used so pointer receivers
// are visible too.
func (c *Catalog) method(k funcKey) apis.Callable {
	if v, ok := c.methods.Load(k); ok {
		if v == nil {
			return nil
		}
		return v.(apis.Callable)
	}

	var cl apis.Callable
	if m, ok := lookupMethod(k.owner, k.name); ok {
		cl = m
	}
	// LoadOrStore keeps the first reference if two goroutines race here.
	v, _ := c.methods.LoadOrStore(k, cl)
	if v == nil {
		return nil
	}
	return v.(apis.Callable)
}

func lookupMethod(owner reflect.Type, name string) (*method, bool) {
	if owner.Kind() == reflect.Interface {
		m, ok := owner.MethodByName(name)
		if !ok {
			return nil, false
		}
		// Interface method types carry no receiver.
		sig := make(apis.Signature, m.Type.NumIn())
		for i := range sig {
			sig[i] = m.Type.In(i)
		}
		return &method{owner: owner, name: name, sig: sig, variadic: m.Type.IsVariadic()}, true
	}

	t := owner
	if t.Kind() != reflect.Pointer {
		t = reflect.PointerTo(t)
	}
	m, ok := t.MethodByName(name)
	if !ok {
		return nil, false
	}
	// Skip the receiver.
	sig := make(apis.Signature, m.Type.NumIn()-1)
	for i := range sig {
		sig[i] = m.Type.In(i + 1)
	}
	return &method{owner: owner, name: name, sig: sig, variadic: m.Type.IsVariadic()}, true
}
