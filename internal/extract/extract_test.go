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

package extract

import (
	"context"
	"go/ast"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axonflow/sagagen/internal/oracle"
	"github.com/axonflow/sagagen/internal/parsectx"
)

// loadProcessOrder parses the processorder example workflow and builds
// its parsectx.Context exactly as the generator driver would, so the
// extractors are exercised against a real, full-featured declaration
// rather than hand-rolled fixtures.
func loadProcessOrder(t *testing.T) *parsectx.Context {
	t.Helper()
	dir := filepath.Join("..", "..", "examples", "processorder")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var paths []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".go" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	require.NotEmpty(t, paths)

	o, err := oracle.Load(paths...)
	require.NoError(t, err)

	decls := o.TypesWithAttribute("workflow")
	require.Len(t, decls, 1)
	decl := decls[0]

	body, ok := findDefineBody(decl)
	require.True(t, ok, "ProcessOrderWorkflow must declare a Define method")

	return parsectx.Create(context.Background(), o, decl, body)
}

func findDefineBody(decl oracle.TypeDeclaration) (*ast.BlockStmt, bool) {
	if decl.File == nil {
		return nil, false
	}
	for _, d := range decl.File.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok || fn.Name.Name != "Define" || fn.Recv == nil || len(fn.Recv.List) == 0 {
			continue
		}
		if ident, ok := fn.Recv.List[0].Type.(*ast.Ident); ok && ident.Name == decl.Name {
			return fn.Body, true
		}
	}
	return nil, false
}

func TestStepsCoversEveryPhaseIncludingSharedStepType(t *testing.T) {
	ctx := loadProcessOrder(t)
	dedup, raw := Steps(ctx)

	require.NotEmpty(t, dedup)
	require.Greater(t, len(raw), len(dedup), "Analyze is invoked twice across both fork paths and should only appear once in dedup")

	names := make(map[string]bool, len(dedup))
	for _, s := range dedup {
		names[s.EffectiveName()] = true
	}
	require.True(t, names["ValidateOrder"])
	require.True(t, names["RefineOrder"])
	require.True(t, names["ManagerApprover"])
	require.True(t, names["Complete"])
}

func TestStepsCarriesValidationOnValidateOrder(t *testing.T) {
	ctx := loadProcessOrder(t)
	dedup, _ := Steps(ctx)

	var validateOrder = false
	for _, s := range dedup {
		if s.EffectiveName() == "ValidateOrder" && s.HasValidation() {
			validateOrder = true
		}
	}
	require.True(t, validateOrder, "ValidateState immediately follows StartWith(Step[ValidateOrder]())")
}

func TestLoopsExtractsRefinementLoop(t *testing.T) {
	ctx := loadProcessOrder(t)
	loops := Loops(ctx)
	require.Len(t, loops, 1)
	require.Equal(t, "Refinement", loops[0].LoopName)
	require.Equal(t, 5, loops[0].MaxIterations)
}

func TestBranchesExtractsTypeDiscriminatedBranch(t *testing.T) {
	ctx := loadProcessOrder(t)
	o, err := oracle.Load(mustPaths(t)...)
	require.NoError(t, err)

	branches := Branches(ctx, o)
	require.Len(t, branches, 1)
	require.Len(t, branches[0].Cases, 3, "Auto, Manual, and the Otherwise fallback")
}

func TestForksExtractsTwoFanOutPaths(t *testing.T) {
	ctx := loadProcessOrder(t)
	forks := Forks(ctx)
	require.Len(t, forks, 1)
	require.Len(t, forks[0].Paths, 2)
}

func TestApprovalsExtractsRejectionHandler(t *testing.T) {
	ctx := loadProcessOrder(t)
	approvals := Approvals(ctx)
	require.Len(t, approvals, 1)
	require.NotEmpty(t, approvals[0].RejectionSteps)
}

func TestFailureHandlersExtractsWorkflowScopedHandler(t *testing.T) {
	ctx := loadProcessOrder(t)
	handlers := FailureHandlers(ctx)
	require.NotEmpty(t, handlers)
}

func TestStateTypeNameResolvesToOrderState(t *testing.T) {
	ctx := loadProcessOrder(t)
	require.Equal(t, "OrderState", StateTypeName(ctx))
}

func TestStatePropertiesReadsStructTagMarkers(t *testing.T) {
	ctx := loadProcessOrder(t)
	o, err := oracle.Load(mustPaths(t)...)
	require.NoError(t, err)

	props := StateProperties(o, StateTypeName(ctx))
	require.NotEmpty(t, props)

	byName := make(map[string]string, len(props))
	for _, p := range props {
		byName[p.Name] = p.Name
	}
	require.Contains(t, byName, "Items")
	require.Contains(t, byName, "Metadata")
}

func mustPaths(t *testing.T) []string {
	t.Helper()
	dir := filepath.Join("..", "..", "examples", "processorder")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".go" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths
}
