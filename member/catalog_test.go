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

package member_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dispatch/apis"
	"dirpx.dev/dispatch/member"
)

type Counter struct{ N int }

func (c Counter) Add(d int) int { return c.N + d }

func (c *Counter) Inc() { c.N++ }

func (Counter) Join(sep string, parts ...string) string { return strings.Join(parts, sep) }

type Greeter interface{ Greet(name string) string }

type english struct{}

func (english) Greet(name string) string { return "hello " + name }

var counterType = reflect.TypeFor[Counter]()

func TestMembers_Method(t *testing.T) {
	c := member.NewCatalog()

	ms := c.Members(counterType, "Add")
	require.Len(t, ms, 1)
	m := ms[0]
	assert.Equal(t, apis.Method, m.Kind())
	assert.Equal(t, "Add", m.Name())
	assert.Equal(t, counterType, m.Owner())
	assert.True(t, m.Signature().Equal(apis.TypesOf(0)))

	out, err := m.Call(reflect.ValueOf(Counter{N: 2}), []reflect.Value{reflect.ValueOf(3)})
	require.NoError(t, err)
	assert.Equal(t, 5, out[0].Interface())

	// Memoized: same reference on every enumeration.
	assert.Same(t, m, c.Members(counterType, "Add")[0])
}

func TestMembers_PointerReceiverOnValueOwner(t *testing.T) {
	c := member.NewCatalog()
	ms := c.Members(counterType, "Inc")
	require.Len(t, ms, 1)
	assert.Empty(t, ms[0].Signature())

	cnt := &Counter{}
	_, err := ms[0].Call(reflect.ValueOf(cnt), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cnt.N)

	// A value receiver is copied, so the original stays untouched.
	val := Counter{N: 5}
	_, err = ms[0].Call(reflect.ValueOf(val), nil)
	require.NoError(t, err)
	assert.Equal(t, 5, val.N)
}

func TestMembers_Variadic(t *testing.T) {
	c := member.NewCatalog()
	ms := c.Members(counterType, "Join")
	require.Len(t, ms, 1)
	assert.True(t, ms[0].Variadic())

	out, err := ms[0].Call(reflect.ValueOf(Counter{}), []reflect.Value{
		reflect.ValueOf("-"), reflect.ValueOf([]string{"a", "b"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "a-b", out[0].Interface())
}

func TestMembers_InterfaceOwner(t *testing.T) {
	c := member.NewCatalog()
	gt := reflect.TypeFor[Greeter]()
	ms := c.Members(gt, "Greet")
	require.Len(t, ms, 1)
	assert.True(t, ms[0].Signature().Equal(apis.TypesOf("")))

	var g Greeter = english{}
	out, err := ms[0].Call(reflect.ValueOf(g), []reflect.Value{reflect.ValueOf("bob")})
	require.NoError(t, err)
	assert.Equal(t, "hello bob", out[0].Interface())
}

func TestMembers_Missing(t *testing.T) {
	c := member.NewCatalog()
	assert.Empty(t, c.Members(counterType, "Nope"))
	assert.Empty(t, c.Members(counterType, "Nope"))
	assert.Nil(t, c.Members(nil, "Add"))
	assert.Nil(t, c.Members(counterType, ""))
}

func TestRegister_OrderAndKinds(t *testing.T) {
	c := member.NewCatalog()

	ctor, err := c.Register(counterType, "Add", func(n int) Counter { return Counter{N: n} })
	require.NoError(t, err)
	assert.Equal(t, apis.Constructor, ctor.Kind())

	fn, err := c.Register(counterType, "Add", func(a, b string) string { return a + b })
	require.NoError(t, err)
	assert.Equal(t, apis.Function, fn.Kind())

	ptrCtor, err := c.Register(counterType, "New", func() *Counter { return &Counter{} })
	require.NoError(t, err)
	assert.Equal(t, apis.Constructor, ptrCtor.Kind())

	ms := c.Members(counterType, "Add")
	require.Len(t, ms, 3)
	assert.Equal(t, apis.Method, ms[0].Kind(), "the reflected method comes first")
	assert.Same(t, ctor, ms[1])
	assert.Same(t, fn, ms[2])

	out, err := fn.Call(reflect.Value{}, []reflect.Value{reflect.ValueOf("a"), reflect.ValueOf("b")})
	require.NoError(t, err)
	assert.Equal(t, "ab", out[0].Interface())
}

func TestRegister_Errors(t *testing.T) {
	c := member.NewCatalog()
	_, err := c.Register(nil, "f", func() {})
	assert.ErrorIs(t, err, member.ErrNilType)
	_, err = c.Register(counterType, "", func() {})
	assert.ErrorIs(t, err, member.ErrEmptyName)
	_, err = c.Register(counterType, "f", 42)
	assert.ErrorIs(t, err, member.ErrNotFunc)
	_, err = c.Register(counterType, "f", (func())(nil))
	assert.ErrorIs(t, err, member.ErrNotFunc)
	_, err = c.Register(counterType, "f", nil)
	assert.ErrorIs(t, err, member.ErrNotFunc)
}

func TestMethodCall_Errors(t *testing.T) {
	c := member.NewCatalog()
	m := c.Members(counterType, "Add")[0]

	_, err := m.Call(reflect.Value{}, []reflect.Value{reflect.ValueOf(1)})
	assert.ErrorIs(t, err, member.ErrNoReceiver)

	_, err = m.Call(reflect.ValueOf(english{}), []reflect.Value{reflect.ValueOf(1)})
	assert.ErrorIs(t, err, member.ErrNoMethod)
}

func TestCallable_String(t *testing.T) {
	c := member.NewCatalog()
	m := c.Members(counterType, "Add")[0]
	assert.Equal(t, "method member_test.Counter.Add(int)", fmt.Sprint(m))
}
