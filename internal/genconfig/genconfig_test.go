// Copyright 2025 AxonFlow
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package genconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sagagen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: "1"
source_dirs:
  - ./workflows
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ".", cfg.OutputDir)
	require.Equal(t, 8, cfg.MaxConcurrency)
}

func TestLoadExpandsEnvVarsWithDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sagagen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: "1"
source_dirs:
  - ./workflows
output_dir: ${SAGAGEN_OUT:-./generated}
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "./generated", cfg.OutputDir)
}

func TestLoadExpandsEnvVarsFromEnvironment(t *testing.T) {
	t.Setenv("SAGAGEN_OUT", "./custom-out")
	dir := t.TempDir()
	path := filepath.Join(dir, "sagagen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: "1"
source_dirs:
  - ./workflows
output_dir: ${SAGAGEN_OUT:-./generated}
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "./custom-out", cfg.OutputDir)
}

func TestValidateRejectsNoSourceDirs(t *testing.T) {
	err := Validate(&Config{OutputDir: "."})
	require.Error(t, err)
}
