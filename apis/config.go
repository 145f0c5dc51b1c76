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

// Config carries read-only resolution knobs that influence the resolver,
// the converter and the built-in conversion set.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Relax is the widest relaxation set a resolution may use when the caller
	// does not pass an explicit one. Tiers are intersected with it.
	Relax Mode

	// ProbeInterfacesFirst makes the exact probe look for the member on the
	// owner's directly implemented interfaces before the owner itself.
	ProbeInterfacesFirst bool

	// IncludeBuiltins installs the built-in converter set (numeric, textual,
	// boolean) into the conversion graph on construction and after reset.
	IncludeBuiltins bool

	// MaxCandidates bounds the number of expanded signatures probed per tier.
	// Zero means unbounded.
	MaxCandidates int
}
