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

package oracle

import (
	"go/ast"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleSource = `package sample

// sagagen:workflow name="process-order" version=1
type ProcessOrderWorkflow struct{}

func (ProcessOrderWorkflow) Define() *Builder {
	return Create("process-order").
		StartWith(Step("ValidateOrder")).
		Then(Step("ProcessPayment")).
		Finally(Step("Complete"))
}
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTypesWithAttribute(t *testing.T) {
	path := writeTemp(t, sampleSource)
	o, err := Load(path)
	require.NoError(t, err)

	decls := o.TypesWithAttribute("workflow")
	require.Len(t, decls, 1)
	require.Equal(t, "ProcessOrderWorkflow", decls[0].Name)
	require.Equal(t, "process-order", decls[0].Directive.Args["name"])
	require.Equal(t, "1", decls[0].Directive.Args["version"])

	ns, ok := o.EnclosingNamespace(decls[0])
	require.True(t, ok)
	require.Equal(t, "sample", ns)
}

func TestInvocationsAndReceiverChain(t *testing.T) {
	path := writeTemp(t, sampleSource)
	o, err := Load(path)
	require.NoError(t, err)

	var defineBody ast.Node
	for _, f := range o.files {
		ast.Inspect(f.file, func(n ast.Node) bool {
			fd, ok := n.(*ast.FuncDecl)
			if ok && fd.Name.Name == "Define" {
				defineBody = fd.Body
			}
			return true
		})
	}
	require.NotNil(t, defineBody)

	invs := o.Invocations(defineBody)
	names := make([]string, len(invs))
	for i, inv := range invs {
		names[i] = inv.MethodName
	}
	require.Contains(t, names, "Create")
	require.Contains(t, names, "StartWith")
	require.Contains(t, names, "Then")
	require.Contains(t, names, "Finally")

	var startWith, create Invocation
	for _, inv := range invs {
		if inv.MethodName == "StartWith" {
			startWith = inv
		}
		if inv.MethodName == "Create" {
			create = inv
		}
	}
	require.NotNil(t, startWith.Call)
	require.True(t, o.IsReceiverOf(create, startWith))
}
