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

/*
Package parsectx builds the per-declaration ParseContext of spec §4.2:
the flat, ordered list of invocations inside one workflow declaration's
Define method, and the unique Finally anchor the walker starts from.
*/
package parsectx

import (
	"context"
	"go/ast"

	"github.com/axonflow/sagagen/internal/oracle"
)

// Context holds everything the walker and extractors need for one
// workflow declaration.
type Context struct {
	Declaration oracle.TypeDeclaration
	DefineBody  *ast.BlockStmt
	Invocations []oracle.Invocation
	Finally     *oracle.Invocation // nil if absent (AGWF010)

	// Cancel is observed at every extractor loop and lambda recursion
	// boundary per spec §5.
	Cancel context.Context
}

// Create precomputes the Context for one workflow type declaration.
// defineBody is the body of the declaration's marked Define method.
func Create(ctx context.Context, o oracle.SyntaxOracle, decl oracle.TypeDeclaration, defineBody *ast.BlockStmt) *Context {
	invs := o.Invocations(defineBody)
	c := &Context{
		Declaration: decl,
		DefineBody:  defineBody,
		Invocations: invs,
		Cancel:      ctx,
	}
	for i := range invs {
		if invs[i].MethodName == "Finally" {
			c.Finally = &invs[i]
			break
		}
	}
	return c
}

// Cancelled reports whether the context's cancellation signal has fired.
func (c *Context) Cancelled() bool {
	select {
	case <-c.Cancel.Done():
		return true
	default:
		return false
	}
}
