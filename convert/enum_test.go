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

package convert_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dispatch/apis"
	"dirpx.dev/dispatch/convert"
	"dirpx.dev/dispatch/graph"
)

type Color uint8

const (
	Red Color = iota + 1
	Green
	Blue
)

type Level int16

func TestEnum(t *testing.T) {
	c, g := newConverter(t)
	require.NoError(t, convert.Enum(g, map[string]Color{"Red": Red, "Green": Green, "Blue": Blue}))
	colorType := reflect.TypeFor[Color]()

	out, err := c.Convert("Green", colorType)
	require.NoError(t, err)
	assert.Equal(t, Green, out)

	_, err = c.Convert("green", colorType)
	assert.ErrorIs(t, err, apis.ErrIncompatibleType, "member names are case-sensitive")

	out, err = c.Convert(Blue, reflect.TypeFor[string]())
	require.NoError(t, err)
	assert.Equal(t, "Blue", out)

	out, err = c.Convert(Color(9), reflect.TypeFor[string]())
	require.NoError(t, err)
	assert.Equal(t, "9", out)

	out, err = c.Convert(Red, reflect.TypeFor[int64]())
	require.NoError(t, err)
	assert.Equal(t, int64(1), out)

	out, err = c.Convert(int64(3), colorType)
	require.NoError(t, err)
	assert.Equal(t, Blue, out)
}

func TestEnum_SharedValuesUseSmallestName(t *testing.T) {
	c, g := newConverter(t)
	require.NoError(t, convert.Enum(g, map[string]Level{"Warn": 2, "Warning": 2, "Error": -1}))

	out, err := c.Convert(Level(2), reflect.TypeFor[string]())
	require.NoError(t, err)
	assert.Equal(t, "Warn", out)

	out, err = c.Convert(Level(7), reflect.TypeFor[string]())
	require.NoError(t, err)
	assert.Equal(t, "7", out)

	out, err = c.Convert("Error", reflect.TypeFor[Level]())
	require.NoError(t, err)
	assert.Equal(t, Level(-1), out)
}

func TestEnum_NoMembers(t *testing.T) {
	assert.ErrorIs(t, convert.Enum[Color](graph.New(), nil), convert.ErrNoMembers)
}
