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
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"

	"github.com/axonflow/sagagen/internal/oracle"
)

// pendingValidation carries one ValidateState(predicate, message) call
// forward until the next step invocation claims it (spec §4.4's
// Validation Parser: "a pending validation pair is attached to the next
// step encountered").
type pendingValidation struct {
	predicate string
	message   string
}

// validationFromInvocation extracts a ValidateState call's predicate
// source text and string-literal error message. The predicate is
// captured as only the lambda's returned expression (e.g. "s.Total >
// 0"), not the surrounding "func(s State) bool { return ... }" —
// emitters splice this text directly into a saga handler's own if
// condition, so the lambda wrapper itself must not survive extraction.
func validationFromInvocation(inv oracle.Invocation) pendingValidation {
	v := pendingValidation{}
	if len(inv.LambdaArguments) > 0 {
		v.predicate = lambdaReturnExprText(inv.LambdaArguments[0])
	}
	if len(inv.LiteralArguments) > 0 {
		v.message = inv.LiteralArguments[0]
	}
	return v
}

// lambdaReturnExprText renders the source text of a single-expression
// lambda's returned value, e.g. "func(s State) bool { return s.Total >
// 0 }" -> "s.Total > 0". Falls back to the whole lambda's text if the
// body isn't a single return statement.
func lambdaReturnExprText(fn *ast.FuncLit) string {
	if fn.Body == nil || len(fn.Body.List) == 0 {
		return exprSourceText(fn)
	}
	rs, ok := fn.Body.List[len(fn.Body.List)-1].(*ast.ReturnStmt)
	if !ok || len(rs.Results) != 1 {
		return exprSourceText(fn)
	}
	return exprSourceText(rs.Results[0])
}

// exprSourceText renders an AST node back to Go source text using a
// throwaway FileSet — the predicate body has no meaningful line/column
// relationship to the rest of the declaration once reproduced in a
// generated handler, so a fresh FileSet is sufficient.
func exprSourceText(n ast.Node) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, token.NewFileSet(), n); err != nil {
		return ""
	}
	return buf.String()
}
