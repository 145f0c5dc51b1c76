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
	"reflect"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"dirpx.dev/dispatch/apis"
	uref "dirpx.dev/dispatch/utils/reflect"
)

var (
	stringType = reflect.TypeFor[string]()
	boolType   = reflect.TypeFor[bool]()
	int64Type  = reflect.TypeFor[int64]()
)

// NumericTypes are the numeric types covered by the built-in set.
var NumericTypes = []reflect.Type{
	reflect.TypeFor[int](),
	reflect.TypeFor[int8](),
	reflect.TypeFor[int16](),
	reflect.TypeFor[int32](),
	reflect.TypeFor[int64](),
	reflect.TypeFor[uint](),
	reflect.TypeFor[uint8](),
	reflect.TypeFor[uint16](),
	reflect.TypeFor[uint32](),
	reflect.TypeFor[uint64](),
	reflect.TypeFor[float32](),
	reflect.TypeFor[float64](),
}

// InstallBuiltins registers the built-in converter set on g:
//
//   - every ordered pair of distinct numeric types, with Go's native
//     conversion semantics (truncation, never rounding);
//   - numeric <-> string with strconv's canonical forms;
//   - bool <-> numeric (false <-> 0, non-zero -> true);
//   - bool <-> string ("true"/"false", case-folded).
func InstallBuiltins(g apis.Graph) {
	for _, from := range NumericTypes {
		for _, to := range NumericTypes {
			if from != to {
				g.Register(from, to, numeric(to))
			}
		}
	}
	for _, t := range NumericTypes {
		g.Register(t, stringType, formatNumber)
		g.Register(stringType, t, parseNumber(t))
		g.Register(boolType, t, boolToNumber(t))
		g.Register(t, boolType, numberToBool)
	}
	g.Register(boolType, stringType, formatBool)
	g.Register(stringType, boolType, parseBool)
}

func numeric(to reflect.Type) apis.ConvertFunc {
	return func(v any) (any, error) {
		rv := reflect.ValueOf(v)
		if !rv.IsValid() || !rv.Type().ConvertibleTo(to) {
			return nil, apis.NewConversionError(reflect.TypeOf(v), to, v, "numeric types not convertible", nil)
		}
		return rv.Convert(to).Interface(), nil
	}
}

func formatNumber(v any) (any, error) {
	rv := reflect.ValueOf(v)
	t := rv.Type()
	switch {
	case uref.IsSigned(t):
		return strconv.FormatInt(rv.Int(), 10), nil
	case uref.IsUnsigned(t):
		return strconv.FormatUint(rv.Uint(), 10), nil
	case uref.IsFloat(t):
		return strconv.FormatFloat(rv.Float(), 'g', -1, t.Bits()), nil
	}
	return nil, apis.NewConversionError(t, stringType, v, "not a number", nil)
}

// parseNumber parses base-10 text. For int32 (rune) a one-rune string that is
// not an integer yields the rune itself, which is how character text reaches
// rune parameters.
func parseNumber(to reflect.Type) apis.ConvertFunc {
	return func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, apis.NewConversionError(reflect.TypeOf(v), to, v, "not a string", nil)
		}
		switch {
		case uref.IsSigned(to):
			n, err := strconv.ParseInt(s, 10, to.Bits())
			if err != nil {
				if r, ok := singleRune(s); ok && to.Kind() == reflect.Int32 {
					return reflect.ValueOf(r).Convert(to).Interface(), nil
				}
				return nil, apis.NewConversionError(stringType, to, v, "invalid integer", err)
			}
			return reflect.ValueOf(n).Convert(to).Interface(), nil
		case uref.IsUnsigned(to):
			n, err := strconv.ParseUint(s, 10, to.Bits())
			if err != nil {
				return nil, apis.NewConversionError(stringType, to, v, "invalid unsigned integer", err)
			}
			return reflect.ValueOf(n).Convert(to).Interface(), nil
		default:
			f, err := strconv.ParseFloat(s, to.Bits())
			if err != nil {
				return nil, apis.NewConversionError(stringType, to, v, "invalid float", err)
			}
			return reflect.ValueOf(f).Convert(to).Interface(), nil
		}
	}
}

func singleRune(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, false
	}
	return r, true
}

func boolToNumber(to reflect.Type) apis.ConvertFunc {
	return func(v any) (any, error) {
		b, ok := v.(bool)
		if !ok {
			return nil, apis.NewConversionError(reflect.TypeOf(v), to, v, "not a bool", nil)
		}
		n := 0
		if b {
			n = 1
		}
		return reflect.ValueOf(n).Convert(to).Interface(), nil
	}
}

func numberToBool(v any) (any, error) {
	rv := reflect.ValueOf(v)
	t := rv.Type()
	switch {
	case uref.IsSigned(t):
		return rv.Int() != 0, nil
	case uref.IsUnsigned(t):
		return rv.Uint() != 0, nil
	case uref.IsFloat(t):
		return rv.Float() != 0, nil
	}
	return nil, apis.NewConversionError(t, boolType, v, "not a number", nil)
}

func formatBool(v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, apis.NewConversionError(reflect.TypeOf(v), stringType, v, "not a bool", nil)
	}
	return strconv.FormatBool(b), nil
}

// parseBool accepts "true" and "false" in any letter case and nothing else.
func parseBool(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, apis.NewConversionError(reflect.TypeOf(v), boolType, v, "not a string", nil)
	}
	switch cases.Fold().String(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return nil, apis.NewConversionError(stringType, boolType, v, "invalid boolean", nil)
}
