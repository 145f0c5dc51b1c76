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

// Query is a single resolution request.
type Query struct {
	Owner     reflect.Type
	Name      string
	Signature Signature
	// Relax caps the relaxation tiers the resolver may use.
	Relax Mode
}

// Key returns the cache key of q.
func (q Query) Key() Key {
	return Key{Owner: q.Owner, Name: q.Name, Relax: q.Relax, Signature: q.Signature}
}

// Match is a successful resolution.
type Match struct {
	// Callable is the resolved member.
	Callable Callable
	// Signature is the candidate signature that matched.
	Signature Signature
	// Cached is set when the match was served from the lookup cache.
	Cached bool
}

// Resolver coordinates strategies to resolve callables.
// Typical chain: cache -> exact probe -> relaxation tiers.
type Resolver interface {
	// Resolve returns the first match, or an error matching ErrNotFound.
	Resolve(q Query) (Match, error)
}
