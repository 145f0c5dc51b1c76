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

package dispatch

import (
	"reflect"
	"sync/atomic"

	"dirpx.dev/dispatch/apis"
)

// init publishes the default context.
func init() {
	st.Store(MustNew())
}

// st is the process-wide default context used by the package-level helpers.
var st atomic.Pointer[Context]

// Default returns the default context.
func Default() *Context {
	return st.Load()
}

// SetDefault replaces the default context. Nil is ignored.
func SetDefault(c *Context) {
	if c == nil {
		return
	}
	st.Store(c)
}

// Resolve resolves on the default context.
func Resolve(owner reflect.Type, name string, sig apis.Signature, modes apis.Mode) (apis.Callable, error) {
	return st.Load().Resolve(owner, name, sig, modes)
}

// InvokeCompatible invokes on the default context.
func InvokeCompatible(receiver any, owner reflect.Type, name string, args ...any) (any, error) {
	return st.Load().InvokeCompatible(receiver, owner, name, args...)
}

// RegisterValueConverter registers a conversion on the default context.
func RegisterValueConverter(from, to reflect.Type, fn apis.ConvertFunc) {
	st.Load().RegisterValueConverter(from, to, fn)
}

// Convert converts on the default context.
func Convert(v any, t reflect.Type) (any, error) {
	return st.Load().Convert(v, t)
}

// ResetCaches resets the default context's cache and graph.
func ResetCaches() {
	st.Load().ResetCaches()
}
