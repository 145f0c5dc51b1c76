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

import (
	"reflect"
	"strings"
)

// Signature is an ordered, fixed-length list of parameter types.
//
// Two signatures are equal iff every position holds the identical
// reflect.Type. Independently built signatures compare equal, which is what
// lets them serve as lookup keys. A nil position stands for an untyped nil
// argument.
type Signature []reflect.Type

// SignatureOf returns the dynamic types of args. Nil arguments yield nil
// positions.
func SignatureOf(args ...any) Signature {
	sig := make(Signature, len(args))
	for i, a := range args {
		sig[i] = reflect.TypeOf(a)
	}
	return sig
}

// TypesOf builds a signature from representative values' types, using
// (*T)(nil) to name interface types.
func TypesOf(ptrs ...any) Signature {
	sig := make(Signature, len(ptrs))
	for i, p := range ptrs {
		t := reflect.TypeOf(p)
		if t != nil && t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Interface {
			t = t.Elem()
		}
		sig[i] = t
	}
	return sig
}

// Equal reports structural equality.
func (s Signature) Equal(o Signature) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that does not alias s.
func (s Signature) Clone() Signature {
	if s == nil {
		return nil
	}
	out := make(Signature, len(s))
	copy(out, s)
	return out
}

// String renders the signature as "(T1, T2, ...)".
func (s Signature) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, t := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		if t == nil {
			b.WriteString("nil")
			continue
		}
		b.WriteString(t.String())
	}
	b.WriteByte(')')
	return b.String()
}
