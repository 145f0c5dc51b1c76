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

// NewExactStrategy creates an apis.Strategy that probes the input signature
// verbatim.
func NewExactStrategy(p *Prober) apis.Strategy {
	return &exactStrategy{probe: p}
}

type exactStrategy struct {
	probe *Prober
}

// Ensure exactStrategy implements apis.Strategy.
var _ apis.Strategy = (*exactStrategy)(nil)

func (*exactStrategy) Name() string { return "exact" }

// TryResolve probes q.Signature without relaxation.
func (s *exactStrategy) TryResolve(q apis.Query) (apis.Match, bool) {
	c, ok := s.probe.Probe(q.Owner, q.Name, q.Signature)
	if !ok {
		return apis.Match{}, false
	}
	return apis.Match{Callable: c, Signature: q.Signature.Clone()}, true
}
