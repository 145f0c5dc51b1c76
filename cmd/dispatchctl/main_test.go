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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestPath(t *testing.T) {
	code, out, _ := runCmd(t, "path", "int", "string")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "int -> string")
	assert.Contains(t, out, "1 step(s)")

	code, out, _ = runCmd(t, "path", "rune", "int32")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "identity")
}

func TestReach(t *testing.T) {
	code, out, _ := runCmd(t, "reach", "bool")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "string")
	assert.Contains(t, out, "type(s) reachable from bool")
}

func TestConvert(t *testing.T) {
	code, out, _ := runCmd(t, "convert", "g", "rune")
	assert.Equal(t, 0, code)
	assert.Equal(t, "103 int32\n", out)

	code, out, _ = runCmd(t, "convert", "FALSE", "bool")
	assert.Equal(t, 0, code)
	assert.Equal(t, "false bool\n", out)

	code, _, errOut := runCmd(t, "convert", "yes", "bool")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid boolean")
}

func TestResolve(t *testing.T) {
	code, out, _ := runCmd(t, "resolve")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "matched (*float64, main.Fruit, int32)")
	assert.Contains(t, out, "result  pear 50.0 g")
}

func TestResolve_NarrowConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dispatch.yaml")
	if err := os.WriteFile(path, []byte("relax: Equivalence|Supertype\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	code, _, errOut := runCmd(t, "resolve", "--config", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "no member")
}

func TestVerboseLogsResolution(t *testing.T) {
	code, _, errOut := runCmd(t, "resolve", "-v")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "dispatch: resolved")
}

func TestHelp(t *testing.T) {
	code, out, _ := runCmd(t)
	assert.Equal(t, 0, code)
	for _, sub := range []string{"path", "reach", "convert", "resolve"} {
		assert.Contains(t, out, sub)
	}
}

func TestUsageErrors(t *testing.T) {
	code, _, errOut := runCmd(t, "bogus")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown command")

	code, _, errOut = runCmd(t, "path", "int", "complex128")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `unknown type "complex128"`)

	code, _, errOut = runCmd(t, "reach")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "accepts 1 arg(s)")

	code, _, _ = runCmd(t, "convert", "1", "int", "extra")
	assert.Equal(t, 1, code)

	code, _, _ = runCmd(t, "resolve", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Equal(t, 1, code)
}
