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

package generate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axonflow/sagagen/internal/cache"
	"github.com/axonflow/sagagen/internal/oracle"
)

func processOrderPaths(t *testing.T) []string {
	t.Helper()
	dir := filepath.Join("..", "..", "examples", "processorder")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".go" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	require.NotEmpty(t, paths, "expected processorder example files")
	return paths
}

func loadProcessOrderOracle(t *testing.T) oracle.SyntaxOracle {
	t.Helper()
	o, err := oracle.Load(processOrderPaths(t)...)
	require.NoError(t, err)
	return o
}

func TestRunGeneratesArtifactsForProcessOrder(t *testing.T) {
	o := loadProcessOrderOracle(t)

	results, err := Run(context.Background(), o)
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	require.Equal(t, "process-order", res.WorkflowName)
	require.False(t, res.Skipped, "unexpected diagnostics: %+v", res.Diagnostics)
	require.NoError(t, res.Err)
	require.NotEmpty(t, res.Artifacts)

	names := make(map[string]bool, len(res.Artifacts))
	for _, a := range res.Artifacts {
		names[a.FileName] = true
		require.NotEmpty(t, a.Content)
	}
	require.True(t, names["ProcessOrderPhase.g.go"])
	require.True(t, names["ProcessOrderCommands.g.go"])
	require.True(t, names["ProcessOrderSaga.g.go"])
	require.True(t, names["OrderStateReducer.g.go"])
}

func TestRunWithCacheHitsOnSecondRun(t *testing.T) {
	o := loadProcessOrderOracle(t)
	store := cache.NewMemStore()
	ctx := context.Background()

	first, err := RunWithCache(ctx, o, store)
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.NotEmpty(t, first[0].Artifacts)

	second, err := RunWithCache(ctx, o, store)
	require.NoError(t, err)
	require.Len(t, second, 1)
	require.ElementsMatch(t, first[0].Artifacts, second[0].Artifacts)
}

func TestWriteArtifactsWritesFiles(t *testing.T) {
	o := loadProcessOrderOracle(t)
	results, err := Run(context.Background(), o)
	require.NoError(t, err)
	require.Len(t, results, 1)

	dir := t.TempDir()
	require.NoError(t, WriteArtifacts(dir, results[0]))

	for _, a := range results[0].Artifacts {
		content, err := os.ReadFile(filepath.Join(dir, a.FileName))
		require.NoError(t, err)
		require.Equal(t, a.Content, string(content))
	}
}

func TestWriteArtifactsNoopOnSkipped(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteArtifacts(dir, Result{WorkflowName: "skipped", Skipped: true}))

	_, err := os.Stat(dir)
	require.NoError(t, err, "WriteArtifacts must not fail even though it writes nothing")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
