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

package convert

import (
	"errors"
	"maps"
	"reflect"
	"slices"
	"strconv"

	"golang.org/x/exp/constraints"

	"dirpx.dev/dispatch/apis"
)

// ErrNoMembers is returned when an enumerated type is registered without members.
var ErrNoMembers = errors.New("dispatch(convert): enum has no members")

// Enum registers conversions for the enumerated type E on g: string -> E by
// exact, case-sensitive member name; E -> string by member name (unknown
// values render as their number); E <-> int64.
//
// When several names share a value, the lexicographically smallest one is
// used for E -> string.
func Enum[E constraints.Integer](g apis.Graph, members map[string]E) error {
	if len(members) == 0 {
		return ErrNoMembers
	}
	byName := maps.Clone(members)
	byValue := make(map[E]string, len(byName))
	for _, name := range slices.Sorted(maps.Keys(byName)) {
		if _, dup := byValue[byName[name]]; !dup {
			byValue[byName[name]] = name
		}
	}

	et := reflect.TypeFor[E]()
	g.Register(stringType, et, func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, apis.NewConversionError(reflect.TypeOf(v), et, v, "not a string", nil)
		}
		if e, ok := byName[s]; ok {
			return e, nil
		}
		return nil, apis.NewConversionError(stringType, et, v, "unknown enum member", nil)
	})
	g.Register(et, stringType, func(v any) (any, error) {
		e, ok := v.(E)
		if !ok {
			return nil, apis.NewConversionError(reflect.TypeOf(v), stringType, v, "not an enum value", nil)
		}
		if name, ok := byValue[e]; ok {
			return name, nil
		}
		if reflect.ValueOf(e).CanInt() {
			return strconv.FormatInt(reflect.ValueOf(e).Int(), 10), nil
		}
		return strconv.FormatUint(reflect.ValueOf(e).Uint(), 10), nil
	})
	g.Register(et, int64Type, numeric(int64Type))
	g.Register(int64Type, et, numeric(et))
	return nil
}
