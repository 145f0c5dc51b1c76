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

package builder

import (
	"dirpx.dev/dispatch/apis"
	"dirpx.dev/dispatch/cache"
	"dirpx.dev/dispatch/convert"
	"dirpx.dev/dispatch/expand"
	"dirpx.dev/dispatch/graph"
	"dirpx.dev/dispatch/invoke"
	"dirpx.dev/dispatch/resolver"
	"dirpx.dev/dispatch/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildGraph builds an empty conversion graph and seeds it per cfg.
func (b *builder) BuildGraph(cfg apis.Config) apis.Graph {
	g := graph.New()
	b.SeedGraph(cfg, g)
	return g
}

// SeedGraph installs the built-in converter set when cfg asks for it.
func (b *builder) SeedGraph(cfg apis.Config, g apis.Graph) {
	if cfg.IncludeBuiltins {
		convert.InstallBuiltins(g)
	}
}

// BuildCache builds an empty lookup cache.
func (b *builder) BuildCache(_ apis.Config) apis.Cache {
	return cache.New()
}

// BuildResolver builds the staged resolver: cache, exact probe, then the
// default relaxation tiers.
func (b *builder) BuildResolver(cfg apis.Config, env apis.Env) apis.Resolver {
	p := strategy.NewProber(env.Members, env.Hierarchy, cfg.ProbeInterfacesFirst)
	e := expand.New(env.Hierarchy, env.Graph)

	strats := []apis.Strategy{
		strategy.NewCacheStrategy(env.Cache),
		strategy.NewExactStrategy(p),
	}
	strats = append(strats, strategy.NewTierStrategies(p, e, cfg.MaxCandidates, strategy.DefaultTiers...)...)
	return resolver.New(env.Cache, env.Logger, strats...)
}

// BuildConverter builds the graph-backed converter.
func (b *builder) BuildConverter(_ apis.Config, env apis.Env) apis.Converter {
	return convert.New(env.Graph, env.Hierarchy, env.Logger)
}

// BuildInvoker builds an invoker that falls back to conv.
func (b *builder) BuildInvoker(_ apis.Config, conv apis.Converter, env apis.Env) apis.Invoker {
	return invoke.New(conv, env.Logger)
}
