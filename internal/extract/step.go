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
	"github.com/axonflow/sagagen/internal/ir"
	"github.com/axonflow/sagagen/internal/parsectx"
	"github.com/axonflow/sagagen/internal/walker"
)

// Steps runs the Step Extractor of spec §4.4: it returns the
// deduplicated step list (for phase naming) and the raw list, including
// duplicates, that AGWF003 consumes.
func Steps(ctx *parsectx.Context) (dedup []ir.StepModel, raw []ir.StepModel) {
	nodes := walker.Walk(ctx)
	var pending *pendingValidation

	for _, n := range nodes {
		switch {
		case n.IsValidateStateMethod:
			v := validationFromInvocation(n.Invocation)
			pending = &v

		case n.IsStepMethod:
			sm := stepModelFromNode(n, ir.Linear)
			sm = applyPending(sm, &pending)
			raw = append(raw, sm)

		case n.Invocation.MethodName == "Fork":
			raw = append(raw, forkPathSteps(ctx, n)...)

		case n.Invocation.MethodName == "Branch":
			raw = append(raw, branchCaseSteps(ctx, n)...)
		}
	}

	// Dedup by phase_name, first occurrence wins. BranchPath phase names
	// may legitimately collide across sibling cases (spec §3.2 invariant,
	// "exclusive execution" — the cases never run at the same time, so
	// they share one phase value).
	seen := map[string]bool{}
	for _, sm := range raw {
		key := sm.PhaseName()
		if seen[key] {
			continue
		}
		seen[key] = true
		dedup = append(dedup, sm)
	}
	return dedup, raw
}

func stepModelFromNode(n walker.Node, context ir.StepContext) ir.StepModel {
	return ir.StepModel{
		StepName:     stepTypeName(n.Invocation),
		StepTypeName: stepTypeName(n.Invocation),
		InstanceName: stepInstanceName(n.Invocation),
		LoopName:     n.LoopPrefix,
		Context:      context,
	}
}

func applyPending(sm ir.StepModel, pending **pendingValidation) ir.StepModel {
	if *pending == nil {
		return sm
	}
	sm.ValidationPredicate = (*pending).predicate
	sm.ValidationErrorMessage = (*pending).message
	*pending = nil
	return sm
}

// forkPathSteps collects every path's top-level Then<T> calls (and the
// steps inside any OnFailure handler lambda), tagged ForkPath.
func forkPathSteps(ctx *parsectx.Context, n walker.Node) []ir.StepModel {
	var out []ir.StepModel
	for _, pathLambda := range n.Invocation.LambdaArguments {
		for _, inv := range invocationsIn(ctx.Invocations, pathLambda) {
			switch inv.MethodName {
			case "Then":
				out = append(out, ir.StepModel{
					StepName:     stepTypeName(inv),
					StepTypeName: stepTypeName(inv),
					InstanceName: stepInstanceName(inv),
					LoopName:     n.LoopPrefix,
					Context:      ir.ForkPath,
				})
			case "OnFailure":
				if len(inv.LambdaArguments) == 0 {
					continue
				}
				for _, hinv := range invocationsIn(ctx.Invocations, inv.LambdaArguments[0]) {
					if hinv.MethodName != "Then" {
						continue
					}
					out = append(out, ir.StepModel{
						StepName:     stepTypeName(hinv),
						StepTypeName: stepTypeName(hinv),
						InstanceName: stepInstanceName(hinv),
						LoopName:     n.LoopPrefix,
						Context:      ir.ForkPath,
					})
				}
			}
		}
	}
	return out
}

// branchCaseSteps collects every When/Otherwise case's top-level Then<T>
// calls, tagged BranchPath.
func branchCaseSteps(ctx *parsectx.Context, n walker.Node) []ir.StepModel {
	var out []ir.StepModel
	for _, arg := range n.Invocation.RawArgs[1:] {
		caseInv, ok := nestedCallInvocation(ctx.Invocations, arg)
		if !ok || len(caseInv.LambdaArguments) == 0 {
			continue
		}
		for _, inv := range invocationsIn(ctx.Invocations, caseInv.LambdaArguments[0]) {
			if inv.MethodName != "Then" {
				continue
			}
			out = append(out, ir.StepModel{
				StepName:     stepTypeName(inv),
				StepTypeName: stepTypeName(inv),
				InstanceName: stepInstanceName(inv),
				LoopName:     n.LoopPrefix,
				Context:      ir.BranchPath,
			})
		}
	}
	return out
}
