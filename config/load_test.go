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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dispatch/apis"
	"dirpx.dev/dispatch/config"
)

func TestParse(t *testing.T) {
	cfg, err := config.Parse([]byte(`
relax: Equivalence|Supertype
probe_interfaces_first: false
max_candidates: 16
`))
	require.NoError(t, err)

	assert.Equal(t, apis.Equivalence|apis.Supertype, cfg.Relax)
	assert.False(t, cfg.ProbeInterfacesFirst)
	assert.Equal(t, 16, cfg.MaxCandidates)
	// Absent keys keep their defaults.
	assert.Equal(t, config.DefaultIncludeBuiltins, cfg.IncludeBuiltins)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestParse_BadMode(t *testing.T) {
	_, err := config.Parse([]byte("relax: sideways\n"))
	require.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		config.EnvRelax:                "none",
		config.EnvProbeInterfacesFirst: "false",
		config.EnvIncludeBuiltins:      "0",
		config.EnvMaxCandidates:        "4",
	}
	opts, err := config.FromEnv(func(k string) string { return env[k] })
	require.NoError(t, err)

	cfg := config.NewConfig(opts...)
	assert.Equal(t, apis.None, cfg.Relax)
	assert.False(t, cfg.ProbeInterfacesFirst)
	assert.False(t, cfg.IncludeBuiltins)
	assert.Equal(t, 4, cfg.MaxCandidates)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]string{
		config.EnvRelax:                "bogus",
		config.EnvProbeInterfacesFirst: "maybe",
		config.EnvIncludeBuiltins:      "maybe",
		config.EnvMaxCandidates:        "many",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			_, err := config.FromEnv(func(k string) string {
				if k == key {
					return val
				}
				return ""
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dispatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("relax: all\nmax_candidates: 8\n"), 0o600))

	t.Chdir(dir)
	t.Setenv(config.EnvMaxCandidates, "2")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, apis.All, cfg.Relax)
	assert.Equal(t, 2, cfg.MaxCandidates)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
