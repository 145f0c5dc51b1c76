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
	"reflect"

	"dirpx.dev/dispatch/apis"
	uref "dirpx.dev/dispatch/utils/reflect"
)

// NewProber creates a Prober over members. With interfacesFirst set, the
// owner's directly implemented interfaces are probed before the owner.
func NewProber(m apis.Members, h apis.Hierarchy, interfacesFirst bool) *Prober {
	return &Prober{members: m, hier: h, interfacesFirst: interfacesFirst}
}

// Prober asks the member enumerator for a member declared with a given
// signature verbatim.
type Prober struct {
	members         apis.Members
	hier            apis.Hierarchy
	interfacesFirst bool
}

// Probe returns the first member of owner named name whose declared
// signature accepts sig exactly.
func (p *Prober) Probe(owner reflect.Type, name string, sig apis.Signature) (apis.Callable, bool) {
	if p.interfacesFirst && p.hier != nil {
		for _, i := range p.hier.Interfaces(owner) {
			if c, ok := p.probeOwner(i, name, sig); ok {
				return c, true
			}
		}
	}
	return p.probeOwner(owner, name, sig)
}

func (p *Prober) probeOwner(owner reflect.Type, name string, sig apis.Signature) (apis.Callable, bool) {
	for _, c := range p.members.Members(owner, name) {
		if Accepts(c.Signature(), sig) {
			return c, true
		}
	}
	return nil, false
}

// Accepts reports whether declared equals actual position by position. A nil
// actual position is accepted by any nilable declared type.
func Accepts(declared, actual apis.Signature) bool {
	if len(declared) != len(actual) {
		return false
	}
	for i, t := range actual {
		if t == nil {
			if !uref.IsNilable(declared[i]) {
				return false
			}
			continue
		}
		if t != declared[i] {
			return false
		}
	}
	return true
}
