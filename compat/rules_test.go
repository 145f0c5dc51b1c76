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

package compat_test

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dispatch/compat"
)

type Named interface{ Label() string }

type Sweet interface{ Sugar() int }

type Fruit struct{ Name string }

func (f Fruit) Label() string { return f.Name }

type Pear struct {
	Fruit
	Ripe bool
}

func (Pear) Sugar() int { return 10 }

type Bartlett struct{ Pear }

type Crate struct{ *Fruit }

type Candy struct{}

func (Candy) Label() string { return "candy" }

func (Candy) Sugar() int { return 90 }

type Plain struct{ N int }

var (
	namedType    = reflect.TypeFor[Named]()
	sweetType    = reflect.TypeFor[Sweet]()
	fruitType    = reflect.TypeFor[Fruit]()
	pearType     = reflect.TypeFor[Pear]()
	bartlettType = reflect.TypeFor[Bartlett]()
)

func newRules(t *testing.T) *compat.Rules {
	t.Helper()
	r, err := compat.New(namedType, sweetType)
	require.NoError(t, err)
	return r
}

func TestEquivalent(t *testing.T) {
	r := newRules(t)

	got, ok := r.Equivalent(reflect.TypeFor[float64]())
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[*float64](), got)

	got, ok = r.Equivalent(reflect.TypeFor[*int32]())
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[int32](), got)

	_, ok = r.Equivalent(fruitType)
	assert.False(t, ok)
	_, ok = r.Equivalent(reflect.TypeFor[*Fruit]())
	assert.False(t, ok)
	_, ok = r.Equivalent(nil)
	assert.False(t, ok)
}

func TestSupertype(t *testing.T) {
	r := newRules(t)

	got, ok := r.Supertype(pearType)
	require.True(t, ok)
	assert.Equal(t, fruitType, got)

	got, ok = r.Supertype(reflect.TypeFor[*Pear]())
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[*Fruit](), got, "pointer-ness is kept")

	got, ok = r.Supertype(reflect.TypeFor[*Crate]())
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[*Fruit](), got)

	_, ok = r.Supertype(fruitType)
	assert.False(t, ok)
	_, ok = r.Supertype(reflect.TypeFor[Plain]())
	assert.False(t, ok, "a named leading field is not an ancestor")
	_, ok = r.Supertype(reflect.TypeFor[int]())
	assert.False(t, ok)
}

func TestSupertypes_Chain(t *testing.T) {
	r := newRules(t)
	assert.Equal(t, []reflect.Type{pearType, fruitType}, compat.Supertypes(r, bartlettType))
	assert.Empty(t, compat.Supertypes(r, fruitType))

	assert.True(t, compat.IsAncestor(r, bartlettType, fruitType))
	assert.False(t, compat.IsAncestor(r, fruitType, pearType))
	assert.False(t, compat.IsAncestor(r, pearType, pearType))
}

func TestInterfaces_DirectOnly(t *testing.T) {
	r := newRules(t)

	// Named is inherited from Fruit through promotion, so it belongs to Fruit.
	assert.Equal(t, []reflect.Type{namedType}, r.Interfaces(fruitType))
	assert.Equal(t, []reflect.Type{sweetType}, r.Interfaces(pearType))
	assert.Empty(t, r.Interfaces(bartlettType))
	assert.Empty(t, r.Interfaces(reflect.TypeFor[int]()))
	assert.Nil(t, r.Interfaces(nil))
}

func TestInterfaces_DeclarationOrder(t *testing.T) {
	candy := reflect.TypeFor[Candy]()

	r, err := compat.New(sweetType, namedType)
	require.NoError(t, err)
	assert.Equal(t, []reflect.Type{sweetType, namedType}, r.Interfaces(candy))

	assert.Equal(t, []reflect.Type{namedType, sweetType}, newRules(t).Interfaces(candy))
}

func TestDeclare_InvalidatesMemo(t *testing.T) {
	r, err := compat.New()
	require.NoError(t, err)

	assert.Empty(t, r.Interfaces(pearType))
	require.NoError(t, r.Declare(sweetType))
	assert.Equal(t, []reflect.Type{sweetType}, r.Interfaces(pearType))

	// Re-declaring keeps the set unchanged.
	require.NoError(t, r.Declare(sweetType))
	assert.Equal(t, []reflect.Type{sweetType}, r.Declared())
}

func TestDeclare_Errors(t *testing.T) {
	r, err := compat.New()
	require.NoError(t, err)

	assert.ErrorIs(t, r.Declare(nil), compat.ErrNilType)
	assert.ErrorIs(t, r.Declare(fruitType), compat.ErrNotInterface)

	_, err = compat.New(fruitType)
	assert.ErrorIs(t, err, compat.ErrNotInterface)
}

func TestInterfaces_Concurrent(t *testing.T) {
	r := newRules(t)
	types := []reflect.Type{fruitType, pearType, bartlettType, reflect.TypeFor[*Pear]()}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				_ = r.Interfaces(types[(i+id)%len(types)])
				if i%100 == 0 {
					_ = r.Declare(namedType)
				}
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, []reflect.Type{sweetType}, r.Interfaces(pearType))
}
