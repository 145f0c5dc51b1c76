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
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"dirpx.dev/dispatch/apis"
)

// Environment variables that override file values.
const (
	EnvRelax                = "DISPATCH_RELAX"
	EnvProbeInterfacesFirst = "DISPATCH_PROBE_INTERFACES_FIRST"
	EnvIncludeBuiltins      = "DISPATCH_INCLUDE_BUILTINS"
	EnvMaxCandidates        = "DISPATCH_MAX_CANDIDATES"
)

// File is the YAML shape of a configuration file. Absent keys keep their
// defaults.
type File struct {
	Relax                *apis.Mode `yaml:"relax"`
	ProbeInterfacesFirst *bool      `yaml:"probe_interfaces_first"`
	IncludeBuiltins      *bool      `yaml:"include_builtins"`
	MaxCandidates        *int       `yaml:"max_candidates"`
}

// Options turns the present keys into options.
func (f File) Options() []Option {
	var opts []Option
	if f.Relax != nil {
		opts = append(opts, WithRelax(*f.Relax))
	}
	if f.ProbeInterfacesFirst != nil {
		opts = append(opts, WithProbeInterfacesFirst(*f.ProbeInterfacesFirst))
	}
	if f.IncludeBuiltins != nil {
		opts = append(opts, WithIncludeBuiltins(*f.IncludeBuiltins))
	}
	if f.MaxCandidates != nil {
		opts = append(opts, WithMaxCandidates(*f.MaxCandidates))
	}
	return opts
}

// Parse decodes YAML configuration on top of the defaults.
func Parse(data []byte) (apis.Config, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return apis.Config{}, fmt.Errorf("dispatch(config): %w", err)
	}
	return NewConfig(f.Options()...), nil
}

// Load reads the YAML file at path (an empty path means defaults only), then
// loads .env if present and applies environment overrides.
func Load(path string) (apis.Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return apis.Config{}, fmt.Errorf("dispatch(config): %w", err)
		}
		if cfg, err = Parse(data); err != nil {
			return apis.Config{}, err
		}
	}

	// A missing .env file is not an error.
	_ = godotenv.Load()

	opts, err := FromEnv(os.Getenv)
	if err != nil {
		return apis.Config{}, err
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, nil
}

// FromEnv builds options from the DISPATCH_* variables reported by getenv.
func FromEnv(getenv func(string) string) ([]Option, error) {
	var opts []Option
	if v := getenv(EnvRelax); v != "" {
		m, err := apis.ParseMode(v)
		if err != nil {
			return nil, fmt.Errorf("dispatch(config): %s: %w", EnvRelax, err)
		}
		opts = append(opts, WithRelax(m))
	}
	if v := getenv(EnvProbeInterfacesFirst); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("dispatch(config): %s: %w", EnvProbeInterfacesFirst, err)
		}
		opts = append(opts, WithProbeInterfacesFirst(b))
	}
	if v := getenv(EnvIncludeBuiltins); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("dispatch(config): %s: %w", EnvIncludeBuiltins, err)
		}
		opts = append(opts, WithIncludeBuiltins(b))
	}
	if v := getenv(EnvMaxCandidates); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("dispatch(config): %s: %w", EnvMaxCandidates, err)
		}
		opts = append(opts, WithMaxCandidates(n))
	}
	return opts, nil
}
