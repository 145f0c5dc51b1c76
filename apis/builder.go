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

import "log/slog"

// Env bundles the collaborators a Builder wires together.
type Env struct {
	Hierarchy Hierarchy
	Members   Members
	Graph     Graph
	Cache     Cache
	Logger    *slog.Logger
}

// Builder composes the resolution components from a Config.
// Implementations may be swapped to change strategies or conversion rules.
type Builder interface {
	// BuildGraph constructs the conversion graph, seeded as cfg requires.
	BuildGraph(cfg Config) Graph
	// SeedGraph installs the configured built-in edges into g.
	SeedGraph(cfg Config, g Graph)
	// BuildCache constructs the lookup cache.
	BuildCache(cfg Config) Cache
	// BuildResolver constructs a Resolver over env.
	BuildResolver(cfg Config, env Env) Resolver
	// BuildConverter constructs a Converter over env.
	BuildConverter(cfg Config, env Env) Converter
	// BuildInvoker constructs an Invoker that falls back to conv.
	BuildInvoker(cfg Config, conv Converter, env Env) Invoker
}
