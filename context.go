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

package dispatch

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/google/uuid"
	"golang.org/x/exp/constraints"

	"dirpx.dev/dispatch/apis"
	"dirpx.dev/dispatch/builder"
	"dirpx.dev/dispatch/compat"
	"dirpx.dev/dispatch/config"
	"dirpx.dev/dispatch/convert"
	"dirpx.dev/dispatch/member"
)

var (
	// ErrNilGraph is returned when a builder returns a nil graph.
	ErrNilGraph = errors.New("dispatch: builder returned nil graph")
	// ErrNilCache is returned when a builder returns a nil cache.
	ErrNilCache = errors.New("dispatch: builder returned nil cache")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("dispatch: builder returned nil resolver")
	// ErrNilConverter is returned when a builder returns a nil converter.
	ErrNilConverter = errors.New("dispatch: builder returned nil converter")
	// ErrNilInvoker is returned when a builder returns a nil invoker.
	ErrNilInvoker = errors.New("dispatch: builder returned nil invoker")
	// ErrNoOwner is returned when neither an owner type nor a receiver is given.
	ErrNoOwner = errors.New("dispatch: no owner type")
)

// Option configures a Context.
type Option func(*options)

type options struct {
	cfg    apis.Config
	bld    apis.Builder
	log    *slog.Logger
	ifaces []reflect.Type
}

// WithConfig sets the configuration. Defaults to config.DefaultConfig().
func WithConfig(cfg apis.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithBuilder replaces the component builder.
func WithBuilder(b apis.Builder) Option {
	return func(o *options) {
		if b != nil {
			o.bld = b
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithInterfaces declares interfaces for Interface relaxation up front.
func WithInterfaces(ts ...reflect.Type) Option {
	return func(o *options) { o.ifaces = append(o.ifaces, ts...) }
}

// Context owns every piece of mutable resolution state: the lookup cache, the
// conversion graph, the declared interfaces and the member catalog. Contexts
// are independent, so tests build a fresh one instead of resetting globals.
//
// A Context is safe for concurrent use. Racing resolutions of the same key
// may each run the full search; the cache keeps the last write.
type Context struct {
	id  uuid.UUID
	cfg apis.Config
	bld apis.Builder
	log *slog.Logger

	rules   *compat.Rules
	members *member.Catalog
	graph   apis.Graph
	cache   apis.Cache
	conv    apis.Converter
	res     apis.Resolver
	inv     apis.Invoker
}

// New builds a Context.
func New(opts ...Option) (*Context, error) {
	o := options{
		cfg: config.DefaultConfig(),
		bld: builder.New(),
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	rules, err := compat.New(o.ifaces...)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	c := &Context{
		id:      id,
		cfg:     o.cfg,
		bld:     o.bld,
		log:     o.log.With(slog.String("ctx", id.String())),
		rules:   rules,
		members: member.NewCatalog(),
	}

	if c.graph = c.bld.BuildGraph(c.cfg); c.graph == nil {
		return nil, ErrNilGraph
	}
	if c.cache = c.bld.BuildCache(c.cfg); c.cache == nil {
		return nil, ErrNilCache
	}
	env := c.env()
	if c.res = c.bld.BuildResolver(c.cfg, env); c.res == nil {
		return nil, ErrNilResolver
	}
	if c.conv = c.bld.BuildConverter(c.cfg, env); c.conv == nil {
		return nil, ErrNilConverter
	}
	if c.inv = c.bld.BuildInvoker(c.cfg, c.conv, env); c.inv == nil {
		return nil, ErrNilInvoker
	}
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Context {
	c, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Context) env() apis.Env {
	return apis.Env{
		Hierarchy: c.rules,
		Members:   c.members,
		Graph:     c.graph,
		Cache:     c.cache,
		Logger:    c.log,
	}
}

// ID returns the context identifier attached to its log records.
func (c *Context) ID() string { return c.id.String() }

// Config returns the configuration the context was built with.
func (c *Context) Config() apis.Config { return c.cfg }

// Logger returns the context logger.
func (c *Context) Logger() *slog.Logger { return c.log }

// Hierarchy returns the compatibility rules.
func (c *Context) Hierarchy() apis.Hierarchy { return c.rules }

// Graph returns the conversion graph.
func (c *Context) Graph() apis.Graph { return c.graph }

// Cache returns the lookup cache.
func (c *Context) Cache() apis.Cache { return c.cache }

// DeclareInterfaces makes interfaces available to Interface relaxation.
// Cached resolutions are kept; declare before resolving.
func (c *Context) DeclareInterfaces(ts ...reflect.Type) error {
	return c.rules.Declare(ts...)
}

// RegisterMember registers fn as a function or constructor named name on
// owner. Several functions under one name act as overloads, probed in
// registration order.
func (c *Context) RegisterMember(owner reflect.Type, name string, fn any) (apis.Callable, error) {
	return c.members.Register(owner, name, fn)
}

// Resolve finds a member of owner named name compatible with sig under modes.
func (c *Context) Resolve(owner reflect.Type, name string, sig apis.Signature, modes apis.Mode) (apis.Callable, error) {
	m, err := c.ResolveMatch(owner, name, sig, modes)
	if err != nil {
		return nil, err
	}
	return m.Callable, nil
}

// ResolveMatch is like Resolve but also reports the matched signature.
func (c *Context) ResolveMatch(owner reflect.Type, name string, sig apis.Signature, modes apis.Mode) (apis.Match, error) {
	return c.res.Resolve(apis.Query{Owner: owner, Name: name, Signature: sig, Relax: modes})
}

// InvokeCompatible resolves name on owner for the dynamic types of args under
// the configured relaxation, then invokes it on receiver. A nil owner means
// the receiver's type.
func (c *Context) InvokeCompatible(receiver any, owner reflect.Type, name string, args ...any) (any, error) {
	if owner == nil {
		if receiver == nil {
			return nil, ErrNoOwner
		}
		owner = reflect.TypeOf(receiver)
	}
	m, err := c.ResolveMatch(owner, name, apis.SignatureOf(args...), c.cfg.Relax)
	if err != nil {
		return nil, err
	}
	return c.inv.Invoke(receiver, m.Callable, args)
}

// RegisterValueConverter upserts a conversion edge from -> to.
func (c *Context) RegisterValueConverter(from, to reflect.Type, fn apis.ConvertFunc) {
	c.graph.Register(from, to, fn)
}

// Convert converts v to t.
func (c *Context) Convert(v any, t reflect.Type) (any, error) {
	return c.conv.Convert(v, t)
}

// ConvertAll converts vs element-wise to ts.
func (c *Context) ConvertAll(vs []any, ts apis.Signature, lenient bool) ([]any, error) {
	return c.conv.ConvertAll(vs, ts, lenient)
}

// ResetCaches clears the lookup cache and the conversion graph, then reseeds
// the built-in converter set if configured. It must not run concurrently
// with resolutions that expect the previous state.
func (c *Context) ResetCaches() {
	c.cache.Reset()
	c.graph.Reset()
	c.bld.SeedGraph(c.cfg, c.graph)
	c.log.Debug("dispatch: caches reset")
}

// RegisterConverter registers a typed conversion F -> T on c.
func RegisterConverter[F, T any](c *Context, fn func(F) (T, error)) {
	c.RegisterValueConverter(reflect.TypeFor[F](), reflect.TypeFor[T](), func(v any) (any, error) {
		f, ok := v.(F)
		if !ok {
			return nil, apis.NewConversionError(reflect.TypeOf(v), reflect.TypeFor[T](), v, "unexpected source type", nil)
		}
		return fn(f)
	})
}

// RegisterEnum registers the enumerated type E with its member names.
func RegisterEnum[E constraints.Integer](c *Context, members map[string]E) error {
	return convert.Enum(c.graph, members)
}

// ConvertTo converts v to T.
func ConvertTo[T any](c *Context, v any) (T, error) {
	var zero T
	out, err := c.Convert(v, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}
	res, ok := out.(T)
	if !ok {
		return zero, apis.NewConversionError(reflect.TypeOf(v), reflect.TypeFor[T](), v, fmt.Sprintf("converted to %T", out), nil)
	}
	return res, nil
}
