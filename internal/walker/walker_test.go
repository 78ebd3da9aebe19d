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

package walker

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

const loopSource = `package sample

type LoadBatch struct{}
type SendItem struct{}
type AwaitAck struct{}
type Complete struct{}

// sagagen:workflow name="retry-batch" version=1
type RetryBatchWorkflow struct{}

func (RetryBatchWorkflow) Define() *Builder {
	return Create("retry-batch").
		StartWith(Step[LoadBatch]()).
		RepeatUntil(func(s State) bool { return s.Done }, "RetryLoop", func(l *LoopBuilder) {
			l.Then(Step[SendItem]()).
				Then(Step[AwaitAck]())
		}, 5).
		Finally(Step[Complete]())
}
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func findDefineBody(t *testing.T, o *oracle.GoOracle) *ast.BlockStmt {
	t.Helper()
	decls := o.TypesWithAttribute("workflow")
	require.Len(t, decls, 1)

	var body *ast.BlockStmt
	ast.Inspect(decls[0].File, func(n ast.Node) bool {
		fd, ok := n.(*ast.FuncDecl)
		if ok && fd.Name.Name == "Define" {
			body = fd.Body
		}
		return true
	})
	require.NotNil(t, body)
	return body
}

func TestWalkAnnotatesLoopPrefix(t *testing.T) {
	path := writeTemp(t, loopSource)
	o, err := oracle.Load(path)
	require.NoError(t, err)

	decls := o.TypesWithAttribute("workflow")
	body := findDefineBody(t, o)
	pc := parsectx.Create(context.Background(), o, decls[0], body)
	require.NotNil(t, pc.Finally)

	nodes := Walk(pc)
	require.NotEmpty(t, nodes)

	var loadBatch, sendItem, awaitAck, complete *Node
	for i := range nodes {
		n := &nodes[i]
		if n.Invocation.MethodName == "Step" {
			// the nested Step[T]() call carries the same type argument as
			// the step method wrapping it
			continue
		}
		typ := firstTypeArg(n.Invocation)
		switch typ {
		case "LoadBatch":
			loadBatch = n
		case "SendItem":
			sendItem = n
		case "AwaitAck":
			awaitAck = n
		case "Complete":
			complete = n
		}
	}

	require.NotNil(t, loadBatch)
	require.Equal(t, "", loadBatch.LoopPrefix)
	require.True(t, loadBatch.IsStepMethod)

	require.NotNil(t, sendItem)
	require.Equal(t, "RetryLoop", sendItem.LoopPrefix)
	require.True(t, sendItem.IsStepMethod)

	require.NotNil(t, awaitAck)
	require.Equal(t, "RetryLoop", awaitAck.LoopPrefix)

	require.NotNil(t, complete)
	require.Equal(t, "", complete.LoopPrefix)
}

// firstTypeArg returns the step type name carried by a nested
// dsl.Step[T]() call, surfaced onto inv.TypeArguments per the oracle's
// nested-generic-call unwrapping.
func firstTypeArg(inv oracle.Invocation) string {
	if len(inv.TypeArguments) == 0 {
		return ""
	}
	return inv.TypeArguments[0]
}
