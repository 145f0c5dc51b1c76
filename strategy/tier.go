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
	"dirpx.dev/dispatch/expand"
)

// DefaultTiers are the relaxation tiers tried after the exact probe, in order.
var DefaultTiers = []apis.Mode{
	apis.Equivalence | apis.Supertype,
	apis.Equivalence | apis.Supertype | apis.Interface,
	apis.All,
}

// NewTierStrategies creates one tier strategy per mode set. Each tier knows
// its predecessor so that it can skip itself when the query's relaxation cap
// makes it identical to the previous one.
func NewTierStrategies(p *Prober, e *expand.Expander, maxCandidates int, tiers ...apis.Mode) []apis.Strategy {
	out := make([]apis.Strategy, 0, len(tiers))
	prev := apis.None
	for _, t := range tiers {
		out = append(out, &tierStrategy{probe: p, exp: e, modes: t, prev: prev, max: maxCandidates})
		prev = t
	}
	return out
}

// tierStrategy sweeps expanded signatures at one relaxation level.
type tierStrategy struct {
	probe *Prober
	exp   *expand.Expander
	modes apis.Mode
	prev  apis.Mode
	max   int
}

// Ensure tierStrategy implements apis.Strategy.
var _ apis.Strategy = (*tierStrategy)(nil)

func (s *tierStrategy) Name() string { return "tier(" + s.modes.String() + ")" }

// TryResolve probes every candidate in priority order and stops at the first
// hit.
func (s *tierStrategy) TryResolve(q apis.Query) (apis.Match, bool) {
	eff := s.modes & q.Relax
	if eff == apis.None || eff == s.prev&q.Relax {
		return apis.Match{}, false
	}

	n := 0
	for cand := range s.exp.Expand(q.Signature, eff) {
		if s.max > 0 && n >= s.max {
			break
		}
		n++
		if c, ok := s.probe.Probe(q.Owner, q.Name, cand); ok {
			return apis.Match{Callable: c, Signature: cand}, true
		}
	}
	return apis.Match{}, false
}
