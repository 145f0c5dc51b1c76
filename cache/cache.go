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

// Package cache implements the lookup cache that remembers which callable a
// (owner, name, relaxation, signature) request resolved to.
package cache

import (
	"reflect"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"

	"dirpx.dev/dispatch/apis"
)

// New constructs an empty apis.Cache.
func New() apis.Cache {
	return &cache{buckets: make(map[uint64][]apis.Entry)}
}

// cache buckets entries by an xxhash of the key. Type names are not unique
// (two packages may both declare "model.User"), so the hash only narrows the
// search: entries inside a bucket are matched with apis.Key.Equal.
type cache struct {
	mu      sync.RWMutex
	buckets map[uint64][]apis.Entry
	count   int
}

// Ensure cache implements apis.Cache.
var _ apis.Cache = (*cache)(nil)

// Lookup returns the entry stored under k.
func (c *cache) Lookup(k apis.Key) (apis.Entry, bool) {
	h := hashKey(k)

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.buckets[h] {
		if e.Key.Equal(k) {
			return e, true
		}
	}
	return apis.Entry{}, false
}

// Store upserts e. The key and matched signatures are copied so later
// mutation of the caller's slices cannot corrupt the entry.
func (c *cache) Store(e apis.Entry) {
	e.Key.Signature = e.Key.Signature.Clone()
	e.Matched = e.Matched.Clone()
	h := hashKey(e.Key)

	c.mu.Lock()
	defer c.mu.Unlock()
	b := c.buckets[h]
	for i := range b {
		if b[i].Key.Equal(e.Key) {
			b[i] = e // last write wins
			return
		}
	}
	c.buckets[h] = append(b, e)
	c.count++
}

// Entries returns a snapshot for diagnostics (order is unspecified).
func (c *cache) Entries() []apis.Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]apis.Entry, 0, c.count)
	for _, b := range c.buckets {
		out = append(out, b...)
	}
	return out
}

// Count returns the number of stored entries.
func (c *cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.count
}

// Reset drops every entry.
func (c *cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buckets = make(map[uint64][]apis.Entry)
	c.count = 0
}

// hashKey digests the printable identity of k.
func hashKey(k apis.Key) uint64 {
	d := xxhash.New()
	writeType(d, k.Owner)
	_, _ = d.WriteString(k.Name)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(strconv.Itoa(int(k.Relax)))
	for _, t := range k.Signature {
		writeType(d, t)
	}
	return d.Sum64()
}

func writeType(d *xxhash.Digest, t reflect.Type) {
	if t == nil {
		_, _ = d.WriteString("<nil>\x00")
		return
	}
	_, _ = d.WriteString(t.PkgPath())
	_, _ = d.WriteString(".")
	_, _ = d.WriteString(t.String())
	_, _ = d.WriteString("\x00")
}
