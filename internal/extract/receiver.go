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
Package extract implements the nine pure extractors of spec §4.4: each
is a function from a precomputed ParseContext to a slice of IR models.
This file holds the one mechanism shared by seven of them — the
"token-by-token receiver walk" that locates the step preceding a
non-step construct, with the "BranchPath" sentinel for constructs that
sit directly on a branch-lambda parameter.
*/
package extract

import (
	"go/ast"
	"go/token"
	"strconv"

	"github.com/axonflow/sagagen/internal/oracle"
	"github.com/axonflow/sagagen/internal/walker"
)

// branchPathSentinel is the placeholder previous_step_name/
// preceding_step_name value used when a construct's receiver chain
// bottoms out at a branch-lambda parameter instead of another step.
const branchPathSentinel = "BranchPath"

var stepMethodNames = map[string]bool{
	"StartWith": true,
	"Then":      true,
	"Finally":   true,
	"Join":      true,
}

// precedingStepName walks inv's receiver chain backward until it finds a
// step-method invocation, returning that step's loop-prefixed phase
// name. It returns branchPathSentinel if the chain bottoms out (no
// further receiver) before a step is found.
func precedingStepName(all []oracle.Invocation, nodes []walker.Node, inv oracle.Invocation) string {
	cur := inv
	for {
		recv, ok := cur.Receiver.(*ast.CallExpr)
		if !ok {
			return branchPathSentinel
		}
		found, ok := findByPos(all, recv)
		if !ok {
			return branchPathSentinel
		}
		if stepMethodNames[found.MethodName] {
			return phaseNameFor(nodes, found)
		}
		cur = found
	}
}

// findByPos locates the invocation whose call expression is the node pos.
func findByPos(all []oracle.Invocation, pos ast.Node) (oracle.Invocation, bool) {
	for _, inv := range all {
		if inv.Call == pos {
			return inv, true
		}
	}
	return oracle.Invocation{}, false
}

// phaseNameFor resolves a step invocation's walker-assigned loop prefix
// and combines it with the step's effective name into a phase name.
func phaseNameFor(nodes []walker.Node, inv oracle.Invocation) string {
	name := stepEffectiveName(inv)
	for _, n := range nodes {
		if n.Invocation.Call == inv.Call {
			if n.LoopPrefix == "" {
				return name
			}
			return n.LoopPrefix + "_" + name
		}
	}
	return name
}

// stepTypeName is a step invocation's host type simple name (the
// dsl.Step[T]() type argument).
func stepTypeName(inv oracle.Invocation) string {
	if len(inv.TypeArguments) > 0 {
		return inv.TypeArguments[0]
	}
	return ""
}

// stepInstanceName is a step invocation's optional explicit override,
// the string literal passed to dsl.Step[T](instanceName).
func stepInstanceName(inv oracle.Invocation) string {
	if len(inv.LiteralArguments) > 0 {
		return inv.LiteralArguments[0]
	}
	return ""
}

// stepEffectiveName is instance_name if present, else step_type_name.
func stepEffectiveName(inv oracle.Invocation) string {
	if n := stepInstanceName(inv); n != "" {
		return n
	}
	return stepTypeName(inv)
}

// invocationsIn returns the invocations directly inside lambda (not in
// any further-nested lambda), in source order.
func invocationsIn(all []oracle.Invocation, lambda *ast.FuncLit) []oracle.Invocation {
	var out []oracle.Invocation
	for _, inv := range all {
		if inv.EnclosingLambda == lambda {
			out = append(out, inv)
		}
	}
	sortByPos(out)
	return out
}

func sortByPos(invs []oracle.Invocation) {
	for i := 1; i < len(invs); i++ {
		for j := i; j > 0 && invs[j].Pos < invs[j-1].Pos; j-- {
			invs[j], invs[j-1] = invs[j-1], invs[j]
		}
	}
}

// nestedCallInvocation resolves a raw argument expression to the
// Invocation entry the oracle independently produced for it (When(...),
// Otherwise(...), EscalateTo[...](...), and similar calls nested as
// arguments rather than chained as a receiver).
func nestedCallInvocation(all []oracle.Invocation, arg ast.Expr) (oracle.Invocation, bool) {
	call, ok := arg.(*ast.CallExpr)
	if !ok {
		return oracle.Invocation{}, false
	}
	return findByPos(all, call)
}

// caseValueLiteral renders a Branch case's value expression in the
// literal form spec §4.4 requires: enum member access as "Type.Member",
// basic literals by their source text, identifiers by name.
func caseValueLiteral(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.SelectorExpr:
		if pkgOrType, ok := e.X.(*ast.Ident); ok {
			return pkgOrType.Name + "." + e.Sel.Name
		}
		return e.Sel.Name
	case *ast.BasicLit:
		if e.Kind == token.STRING {
			if s, err := strconv.Unquote(e.Value); err == nil {
				return s
			}
		}
		return e.Value
	case *ast.Ident:
		return e.Name
	default:
		return ""
	}
}
