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
	"fmt"
	"strings"
)

// Mode is a set of relaxation rules that permit a non-exact type match
// while expanding a signature.
//
// # Priority
//
// The flags are not independent: the expander always tries an unchanged
// type first, then its equivalent, then its directly implemented interfaces,
// then its ancestors, and finally conversion targets. That order decides which
// overload wins when several are reachable, so it is part of the contract.
//
// Mode values are plain integers and safe to share between goroutines.
type Mode uint8

const (
	// Equivalence permits the boxed/unboxed counterpart of a basic type
	// (T <-> *T).
	Equivalence Mode = 1 << iota
	// Supertype permits ancestors reached through leading embedded fields.
	Supertype
	// Interface permits declared interfaces the type implements directly.
	Interface
	// Convert permits any type reachable in the conversion graph.
	Convert
)

const (
	// None disables every relaxation: only exact signatures are probed.
	None Mode = 0
	// All enables every relaxation.
	All = Equivalence | Supertype | Interface | Convert
)

// modeNames lists flags in priority order.
var modeNames = [...]struct {
	m    Mode
	name string
}{
	{Equivalence, "Equivalence"},
	{Supertype, "Supertype"},
	{Interface, "Interface"},
	{Convert, "Convert"},
}

// Has reports whether every flag of f is set in m.
func (m Mode) Has(f Mode) bool {
	return m&f == f
}

// String renders the set as flag names joined by "|", or "None".
func (m Mode) String() string {
	if m == None {
		return "None"
	}
	var parts []string
	for _, n := range modeNames {
		if m.Has(n.m) {
			parts = append(parts, n.name)
		}
	}
	if rest := m &^ All; rest != 0 {
		parts = append(parts, fmt.Sprintf("Unknown(%d)", uint8(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseMode parses a case-insensitive list of flag names separated by "|"
// or ",". "none" and "all" are accepted as shorthands.
func ParseMode(s string) (Mode, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool { return r == '|' || r == ',' })
	if len(fields) == 0 {
		return None, fmt.Errorf("dispatch: empty relaxation mode %q", s)
	}

	var out Mode
	for _, f := range fields {
		switch strings.ToUpper(strings.TrimSpace(f)) {
		case "NONE":
		case "ALL":
			out |= All
		case "EQUIVALENCE":
			out |= Equivalence
		case "SUPERTYPE":
			out |= Supertype
		case "INTERFACE":
			out |= Interface
		case "CONVERT":
			out |= Convert
		default:
			return None, fmt.Errorf("dispatch: unknown relaxation mode %q", f)
		}
	}
	return out, nil
}

// MustParseMode is like ParseMode but panics on error.
func MustParseMode(s string) Mode {
	m, err := ParseMode(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m&^All != 0 {
		return nil, fmt.Errorf("dispatch: cannot marshal unknown relaxation mode %d", uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
