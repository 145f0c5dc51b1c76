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

package config

import (
	"dirpx.dev/dispatch/apis"
)

const (
	// DefaultRelax represents the default for Relax: every tier is allowed.
	DefaultRelax = apis.All
	// DefaultProbeInterfacesFirst represents the default for ProbeInterfacesFirst.
	DefaultProbeInterfacesFirst = true
	// DefaultIncludeBuiltins represents the default for IncludeBuiltins.
	// When true, numeric, textual and boolean conversions are available.
	DefaultIncludeBuiltins = true
	// DefaultMaxCandidates represents the default for MaxCandidates (unbounded).
	DefaultMaxCandidates = 0
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxCandidates is valid.
	if cfg.MaxCandidates < 0 {
		cfg.MaxCandidates = DefaultMaxCandidates
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Relax:                DefaultRelax,
		ProbeInterfacesFirst: DefaultProbeInterfacesFirst,
		IncludeBuiltins:      DefaultIncludeBuiltins,
		MaxCandidates:        DefaultMaxCandidates,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithRelax sets the Relax option.
func WithRelax(m apis.Mode) Option {
	return func(c *apis.Config) {
		c.Relax = m & apis.All
	}
}

// WithProbeInterfacesFirst sets the ProbeInterfacesFirst option.
func WithProbeInterfacesFirst(first bool) Option {
	return func(c *apis.Config) {
		c.ProbeInterfacesFirst = first
	}
}

// WithIncludeBuiltins sets the IncludeBuiltins option.
func WithIncludeBuiltins(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeBuiltins = include
	}
}

// WithMaxCandidates sets the MaxCandidates option.
// A negative value resets to the default.
func WithMaxCandidates(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxCandidates = DefaultMaxCandidates
			return
		}
		c.MaxCandidates = max
	}
}
