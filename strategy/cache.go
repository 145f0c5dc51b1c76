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

package strategy

import (
	"dirpx.dev/dispatch/apis"
)

// NewCacheStrategy creates an apis.Strategy that serves previously resolved
// queries from c.
func NewCacheStrategy(c apis.Cache) apis.Strategy {
	return &cacheStrategy{cache: c}
}

// cacheStrategy consults the lookup cache.
type cacheStrategy struct {
	cache apis.Cache
}

// Ensure cacheStrategy implements apis.Strategy.
var _ apis.Strategy = (*cacheStrategy)(nil)

func (*cacheStrategy) Name() string { return "cache" }

// TryResolve looks q up in the cache.
func (s *cacheStrategy) TryResolve(q apis.Query) (apis.Match, bool) {
	if s.cache == nil {
		return apis.Match{}, false
	}
	e, ok := s.cache.Lookup(q.Key())
	if !ok {
		return apis.Match{}, false
	}
	return apis.Match{Callable: e.Callable, Signature: e.Matched, Cached: true}, true
}
