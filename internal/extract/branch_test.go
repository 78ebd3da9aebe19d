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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axonflow/sagagen/internal/oracle"
	"github.com/axonflow/sagagen/internal/parsectx"
)

const enumDiscriminatorSource = `package riskorder

import "github.com/axonflow/sagagen/dsl"

type RiskLevel string

const (
	RiskLow  RiskLevel = "Low"
	RiskHigh RiskLevel = "High"
)

type RiskState struct {
	Risk RiskLevel
}

// sagagen:workflow name="risk-order" version=1
type RiskOrderWorkflow struct{}

func (RiskOrderWorkflow) Define() *dsl.Builder[RiskState] {
	return dsl.Create[RiskState]("risk-order").
		StartWith(dsl.Step[AssessRisk]()).
		Branch(func(s RiskState) any { return s.Risk },
			dsl.When[RiskState]("Low", func(p *dsl.PathBuilder[RiskState]) {
				p.Then(dsl.Step[AutoApprove]())
			}),
			dsl.Otherwise[RiskState](func(p *dsl.PathBuilder[RiskState]) {
				p.Then(dsl.Step[ManualApprove]())
			}),
		).
		Finally(dsl.Step[Complete]())
}
`

func loadEnumDiscriminatorFixture(t *testing.T) (*parsectx.Context, oracle.SyntaxOracle) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "workflow.go")
	require.NoError(t, os.WriteFile(path, []byte(enumDiscriminatorSource), 0o644))

	o, err := oracle.Load(path)
	require.NoError(t, err)

	decls := o.TypesWithAttribute("workflow")
	require.Len(t, decls, 1)
	body, ok := findDefineBody(decls[0])
	require.True(t, ok)

	return parsectx.Create(context.Background(), o, decls[0], body), o
}

func TestBranchesResolvesEnumDiscriminatorFromStatePropertyPath(t *testing.T) {
	ctx, o := loadEnumDiscriminatorFixture(t)
	branches := Branches(ctx, o)
	require.Len(t, branches, 1)
	require.Equal(t, "Risk", branches[0].DiscriminatorPropertyPath)
	require.True(t, branches[0].IsEnumDiscriminator, "RiskLevel is declared via a const block and must resolve as an enum")
}

func TestBranchesNonEnumPropertyPathDiscriminatorIsNotEnum(t *testing.T) {
	ctx := loadProcessOrder(t)
	o, err := oracle.Load(mustPaths(t)...)
	require.NoError(t, err)

	branches := Branches(ctx, o)
	require.Len(t, branches, 1)
	require.Equal(t, "Type", branches[0].DiscriminatorPropertyPath)
	require.False(t, branches[0].IsEnumDiscriminator, "OrderState.Type is a plain string, not a const-block enum")
}
