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

// Key identifies a resolution request.
//
// Signature is compared structurally; Relax is the relaxation cap the request
// was resolved under, so a match found with wide relaxation is never served
// to a narrower request.
type Key struct {
	Owner     reflect.Type
	Name      string
	Relax     Mode
	Signature Signature
}

// Equal reports structural equality of two keys.
func (k Key) Equal(o Key) bool {
	return k.Owner == o.Owner && k.Name == o.Name && k.Relax == o.Relax && k.Signature.Equal(o.Signature)
}

// Entry is a single cached resolution.
type Entry struct {
	Key
	// Callable is the resolved member.
	Callable Callable
	// Matched is the candidate signature that matched the member. It may
	// differ from Key.Signature and drives later argument conversion.
	Matched Signature
}

// Cache maps resolution keys to previously resolved callables.
// There is no eviction: entries live until Reset.
// Concurrent Store calls for the same key are last-write-wins.
type Cache interface {
	// Lookup returns the entry stored under k.
	Lookup(k Key) (Entry, bool)
	// Store upserts e.
	Store(e Entry)
	// Entries returns a snapshot for diagnostics (order is unspecified).
	Entries() []Entry
	// Count returns the number of stored entries.
	Count() int
	// Reset drops every entry.
	Reset()
}
