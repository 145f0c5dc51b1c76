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

package resolver

import (
	"log/slog"

	"dirpx.dev/dispatch/apis"
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. Successful non-cached matches are stored in c
// (which may be nil). A nil logger discards output.
func New(c apis.Cache, logger *slog.Logger, strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return chain{strats: out, cache: c, log: logger}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
	cache  apis.Cache
	log    *slog.Logger
}

// Resolve runs strategies in order until one handles the query. Failures are
// not cached: a repeated miss re-runs the whole search.
func (r chain) Resolve(q apis.Query) (apis.Match, error) {
	if q.Owner == nil || q.Name == "" {
		return apis.Match{}, &apis.NotFoundError{Owner: q.Owner, Name: q.Name, Signature: q.Signature, Relax: q.Relax}
	}

	for _, s := range r.strats {
		m, ok := s.TryResolve(q)
		if !ok {
			continue
		}
		if !m.Cached && r.cache != nil {
			r.cache.Store(apis.Entry{Key: q.Key(), Callable: m.Callable, Matched: m.Signature})
		}
		r.log.Debug("dispatch: resolved",
			slog.String("owner", q.Owner.String()),
			slog.String("name", q.Name),
			slog.String("input", q.Signature.String()),
			slog.String("matched", m.Signature.String()),
			slog.String("stage", s.Name()),
		)
		return m, nil
	}

	r.log.Debug("dispatch: no compatible member",
		slog.String("owner", q.Owner.String()),
		slog.String("name", q.Name),
		slog.String("input", q.Signature.String()),
		slog.String("relax", q.Relax.String()),
	)
	return apis.Match{}, &apis.NotFoundError{Owner: q.Owner, Name: q.Name, Signature: q.Signature.Clone(), Relax: q.Relax}
}
