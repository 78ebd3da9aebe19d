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
	"go/ast"

	"github.com/axonflow/sagagen/internal/ir"
	"github.com/axonflow/sagagen/internal/oracle"
	"github.com/axonflow/sagagen/internal/parsectx"
	"github.com/axonflow/sagagen/internal/walker"
)

// Contexts runs the Context Extractor of spec §4.4: for each
// WithContext(config) call, walks receivers to the preceding step and
// parses the configuration lambda's Literal/FromState/FromRetrieval
// calls into source sub-models.
func Contexts(ctx *parsectx.Context, o oracle.SyntaxOracle) []ir.ContextModel {
	nodes := walker.Walk(ctx)

	var out []ir.ContextModel
	for _, inv := range ctx.Invocations {
		if inv.MethodName != "WithContext" || len(inv.LambdaArguments) == 0 {
			continue
		}
		out = append(out, ir.ContextModel{
			PrecedingStepName: precedingStepName(ctx.Invocations, nodes, inv),
			Sources:           contextSources(o, ctx.Invocations, inv.LambdaArguments[0]),
		})
	}
	return out
}

func contextSources(o oracle.SyntaxOracle, all []oracle.Invocation, lambda *ast.FuncLit) []ir.ContextSourceModel {
	var out []ir.ContextSourceModel
	for _, inv := range invocationsIn(all, lambda) {
		switch inv.MethodName {
		case "Literal":
			out = append(out, ir.ContextSourceModel{
				Key:          literalArg(inv, 0),
				Kind:         ir.LiteralSource,
				LiteralValue: literalArg(inv, 1),
			})
		case "FromState":
			path := ""
			if len(inv.LambdaArguments) > 0 {
				if p, ok := o.ResolvePropertyPath(inv.LambdaArguments[0]); ok {
					path = p
				}
			}
			out = append(out, ir.ContextSourceModel{
				Key:       literalArg(inv, 0),
				Kind:      ir.StateSource,
				StatePath: path,
			})
		case "FromRetrieval":
			config := ""
			if len(inv.RawArgs) > 1 {
				config = exprSourceText(inv.RawArgs[1])
			}
			out = append(out, ir.ContextSourceModel{
				Key:             literalArg(inv, 0),
				Kind:            ir.RetrievalSource,
				RetrievalConfig: config,
			})
		}
	}
	return out
}

// literalArg returns the i-th entry of inv's unquoted literal arguments,
// or "" if absent. Literal's (key, value) pair is two positional string
// arguments; config args of other kinds are read from RawArgs directly
// since they are not always literals.
func literalArg(inv oracle.Invocation, i int) string {
	if i >= len(inv.LiteralArguments) {
		return ""
	}
	return inv.LiteralArguments[i]
}
