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

package invoke_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dispatch/apis"
	"dirpx.dev/dispatch/compat"
	"dirpx.dev/dispatch/convert"
	"dirpx.dev/dispatch/graph"
	"dirpx.dev/dispatch/invoke"
	"dirpx.dev/dispatch/member"
)

type Fruit struct{ Name string }

type Pear struct{ Fruit }

type Stringer interface{ String() string }

type label string

func (l label) String() string { return string(l) }

type Shop struct{ Prefix string }

func (s Shop) Foo(w *float64, f Fruit, c rune) string {
	return fmt.Sprintf("%s%s %.1f %c", s.Prefix, f.Name, *w, c)
}

func (Shop) Pair(a, b int) (int, int) { return b, a }

func (Shop) Nothing() {}

func (Shop) Fail(msg string) (string, error) {
	if msg == "" {
		return "", errors.New("empty message")
	}
	return msg, nil
}

func (Shop) Boom() int { panic("kaboom") }

func (Shop) BoomErr() int { panic(errors.New("typed boom")) }

func (Shop) Show(s Stringer) string { return "<" + s.String() + ">" }

func (Shop) Ptr(f *Fruit) bool { return f == nil }

var shopType = reflect.TypeFor[Shop]()

func newInvoker(t *testing.T) (apis.Invoker, *member.Catalog) {
	t.Helper()
	rules, err := compat.New()
	require.NoError(t, err)
	g := graph.New()
	convert.InstallBuiltins(g)
	return invoke.New(convert.New(g, rules, nil), nil), member.NewCatalog()
}

func callable(t *testing.T, c *member.Catalog, name string) apis.Callable {
	t.Helper()
	ms := c.Members(shopType, name)
	require.NotEmpty(t, ms, name)
	return ms[0]
}

func TestInvoke_ConvertsOnMismatch(t *testing.T) {
	iv, cat := newInvoker(t)

	out, err := iv.Invoke(Shop{Prefix: "#"}, callable(t, cat, "Foo"), []any{50.0, Pear{Fruit{Name: "pear"}}, "g"})
	require.NoError(t, err)
	assert.Equal(t, "#pear 50.0 g", out)
}

func TestInvoke_DirectBinding(t *testing.T) {
	iv, cat := newInvoker(t)
	w := 2.0

	out, err := iv.Invoke(Shop{}, callable(t, cat, "Foo"), []any{&w, Fruit{Name: "fig"}, 'x'})
	require.NoError(t, err)
	assert.Equal(t, "fig 2.0 x", out)
}

func TestInvoke_ConversionFailure(t *testing.T) {
	iv, cat := newInvoker(t)

	_, err := iv.Invoke(Shop{}, callable(t, cat, "Foo"), []any{50.0, Pear{}, "not a rune"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apis.ErrIncompatibleType)
	assert.False(t, errors.Is(err, apis.ErrInvocation))
}

func TestInvoke_Results(t *testing.T) {
	iv, cat := newInvoker(t)

	out, err := iv.Invoke(Shop{}, callable(t, cat, "Pair"), []any{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []any{2, 1}, out)

	out, err = iv.Invoke(Shop{}, callable(t, cat, "Nothing"), nil)
	require.NoError(t, err)
	assert.Nil(t, out)

	out, err = iv.Invoke(Shop{}, callable(t, cat, "Fail"), []any{"ok"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestInvoke_ErrorResult(t *testing.T) {
	iv, cat := newInvoker(t)

	_, err := iv.Invoke(Shop{}, callable(t, cat, "Fail"), []any{""})
	require.Error(t, err)
	assert.ErrorIs(t, err, apis.ErrInvocation)

	var ie *apis.InvocationError
	require.ErrorAs(t, err, &ie)
	assert.EqualError(t, ie.Err, "empty message")
	assert.Equal(t, "Fail", ie.Callable.Name())
}

func TestInvoke_Panic(t *testing.T) {
	iv, cat := newInvoker(t)

	_, err := iv.Invoke(Shop{}, callable(t, cat, "Boom"), nil)
	assert.ErrorIs(t, err, apis.ErrInvocation)
	assert.Contains(t, err.Error(), "kaboom")

	_, err = iv.Invoke(Shop{}, callable(t, cat, "BoomErr"), nil)
	assert.ErrorIs(t, err, apis.ErrInvocation)
	assert.Contains(t, err.Error(), "typed boom")
}

func TestInvoke_InterfaceParameter(t *testing.T) {
	iv, cat := newInvoker(t)

	out, err := iv.Invoke(Shop{}, callable(t, cat, "Show"), []any{label("x")})
	require.NoError(t, err)
	assert.Equal(t, "<x>", out)
}

func TestInvoke_NilArgument(t *testing.T) {
	iv, cat := newInvoker(t)

	out, err := iv.Invoke(Shop{}, callable(t, cat, "Ptr"), []any{nil})
	require.NoError(t, err)
	assert.Equal(t, true, out)

	_, err = iv.Invoke(Shop{}, callable(t, cat, "Pair"), []any{nil, 1})
	assert.ErrorIs(t, err, apis.ErrIncompatibleType)
}

func TestInvoke_Arity(t *testing.T) {
	iv, cat := newInvoker(t)
	_, err := iv.Invoke(Shop{}, callable(t, cat, "Pair"), []any{1})
	assert.ErrorIs(t, err, apis.ErrArity)
}

func TestInvoke_FunctionsIgnoreReceiver(t *testing.T) {
	iv, cat := newInvoker(t)
	ctor, err := cat.Register(shopType, "New", func(prefix string) Shop { return Shop{Prefix: prefix} })
	require.NoError(t, err)

	out, err := iv.Invoke(nil, ctor, []any{7})
	require.NoError(t, err)
	assert.Equal(t, Shop{Prefix: "7"}, out)
}

func TestInvoke_NoConverter(t *testing.T) {
	iv := invoke.New(nil, nil)
	cat := member.NewCatalog()

	_, err := iv.Invoke(Shop{}, cat.Members(shopType, "Pair")[0], []any{"1", 2})
	assert.ErrorIs(t, err, invoke.ErrBind)
}
