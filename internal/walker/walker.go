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
Package walker implements the Invocation-Chain Walker of spec §4.3: it
starts at the Finally anchor, walks receiver-wards through the fluent
chain, tracks RepeatUntil loop nesting, and yields InvocationNode values
in source order with each node's hierarchical loop prefix attached.
*/
package walker

import (
	"go/ast"
	"sort"

	"github.com/axonflow/sagagen/internal/oracle"
	"github.com/axonflow/sagagen/internal/parsectx"
)

// stepMethods identifies phase-defining calls (spec §4.3).
var stepMethods = map[string]bool{
	"StartWith": true,
	"Then":      true,
	"Finally":   true,
	"Join":      true,
}

// Node is one annotated invocation yielded by the walker.
type Node struct {
	Invocation            oracle.Invocation
	LoopPrefix            string
	IsStepMethod          bool
	IsValidateStateMethod bool
}

// Walk produces the ordered, loop-annotated invocation sequence for one
// workflow declaration.
func Walk(ctx *parsectx.Context) []Node {
	if ctx.Finally == nil {
		return nil
	}
	top := topLevelInvocations(ctx.Invocations)
	var out []Node
	for _, inv := range top {
		if ctx.Cancelled() {
			return out
		}
		if inv.MethodName == "RepeatUntil" {
			out = append(out, collectLoopBody(ctx, inv, "")...)
			continue
		}
		out = append(out, node(inv, ""))
	}
	return out
}

// topLevelInvocations returns invocations not nested in any lambda
// (EnclosingLambda == nil), sorted by source position — the top-level
// fluent chain a Finally anchor terminates.
func topLevelInvocations(all []oracle.Invocation) []oracle.Invocation {
	var out []oracle.Invocation
	for _, inv := range all {
		if inv.EnclosingLambda == nil {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pos < out[j].Pos })
	return out
}

// collectLoopBody implements collect_invocations_in_lambda: invocations
// directly inside loopInv's body lambda, excluding anything inside a
// strictly nested lambda (handled recursively for nested RepeatUntil,
// or left to the Branch/Fork/Approval extractors otherwise).
func collectLoopBody(ctx *parsectx.Context, loopInv oracle.Invocation, parentPrefix string) []Node {
	loopName := loopNameOf(loopInv)
	if loopName == "" {
		// Unnamed loop: spec §4.3 step 1 — skip the loop entirely.
		return nil
	}
	effectivePrefix := loopName
	if parentPrefix != "" {
		effectivePrefix = parentPrefix + "_" + loopName
	}

	body := bodyLambda(loopInv)
	if body == nil {
		return nil
	}

	var direct []oracle.Invocation
	for _, inv := range ctx.Invocations {
		if inv.EnclosingLambda == body {
			direct = append(direct, inv)
		}
	}
	sort.Slice(direct, func(i, j int) bool { return direct[i].Pos < direct[j].Pos })

	var out []Node
	for _, inv := range direct {
		if ctx.Cancelled() {
			return out
		}
		if inv.MethodName == "RepeatUntil" {
			out = append(out, collectLoopBody(ctx, inv, effectivePrefix)...)
			continue
		}
		out = append(out, node(inv, effectivePrefix))
	}
	return out
}

// loopNameOf extracts RepeatUntil's loop name: its second argument, the
// first of its literal arguments.
func loopNameOf(inv oracle.Invocation) string {
	if len(inv.LiteralArguments) == 0 {
		return ""
	}
	return inv.LiteralArguments[0]
}

// bodyLambda is the body func literal argument of a RepeatUntil call:
// RepeatUntil(cond, loopName, body, maxIterations) — cond is the first
// lambda argument, body the second.
func bodyLambda(inv oracle.Invocation) *ast.FuncLit {
	if len(inv.LambdaArguments) < 2 {
		return nil
	}
	return inv.LambdaArguments[1]
}

func node(inv oracle.Invocation, loopPrefix string) Node {
	return Node{
		Invocation:            inv,
		LoopPrefix:            loopPrefix,
		IsStepMethod:          stepMethods[inv.MethodName],
		IsValidateStateMethod: inv.MethodName == "ValidateState",
	}
}
