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
	"strconv"

	"github.com/axonflow/sagagen/internal/ir"
	"github.com/axonflow/sagagen/internal/oracle"
	"github.com/axonflow/sagagen/internal/parsectx"
)

const defaultMaxIterations = 1

// Loops runs the Loop Extractor of spec §4.4: one LoopModel per
// RepeatUntil anywhere in the declaration, recursively, nested loops
// carrying parent_loop_name.
func Loops(ctx *parsectx.Context) []ir.LoopModel {
	var repeats []oracle.Invocation
	for _, inv := range ctx.Invocations {
		if inv.MethodName == "RepeatUntil" {
			repeats = append(repeats, inv)
		}
	}

	var out []ir.LoopModel
	for _, inv := range repeats {
		name := loopName(inv)
		if name == "" {
			continue
		}
		out = append(out, ir.LoopModel{
			LoopName:             name,
			ConditionID:          conditionID(inv),
			MaxIterations:        maxIterations(inv),
			FirstBodyStepName:    firstBodyStep(ctx.Invocations, inv),
			LastBodyStepName:     lastBodyStep(ctx.Invocations, inv),
			ContinuationStepName: continuationStep(ctx.Invocations, inv),
			ParentLoopName:       parentLoopName(repeats, inv),
		})
	}
	return out
}

func loopName(inv oracle.Invocation) string {
	if len(inv.LiteralArguments) == 0 {
		return ""
	}
	return inv.LiteralArguments[0]
}

func conditionID(inv oracle.Invocation) string {
	if len(inv.LambdaArguments) == 0 {
		return ""
	}
	return exprSourceText(inv.LambdaArguments[0])
}

func maxIterations(inv oracle.Invocation) int {
	if len(inv.LiteralArguments) < 2 {
		return defaultMaxIterations
	}
	n, err := strconv.Atoi(inv.LiteralArguments[1])
	if err != nil || n < 1 {
		return defaultMaxIterations
	}
	return n
}

// loopBody returns the RepeatUntil call's body lambda — the second of
// its two func-literal arguments (cond, body).
func loopBody(inv oracle.Invocation) *ast.FuncLit {
	if len(inv.LambdaArguments) < 2 {
		return nil
	}
	return inv.LambdaArguments[1]
}

func firstBodyStep(all []oracle.Invocation, inv oracle.Invocation) string {
	body := loopBody(inv)
	if body == nil {
		return ""
	}
	for _, bi := range invocationsIn(all, body) {
		if bi.MethodName == "Then" {
			return stepEffectiveName(bi)
		}
	}
	return ""
}

func lastBodyStep(all []oracle.Invocation, inv oracle.Invocation) string {
	body := loopBody(inv)
	if body == nil {
		return ""
	}
	last := ""
	for _, bi := range invocationsIn(all, body) {
		if bi.MethodName == "Then" {
			last = stepEffectiveName(bi)
		}
	}
	return last
}

// continuationStep finds the invocation chained immediately after the
// RepeatUntil call (its immediate syntactic receiver is the RepeatUntil
// call itself) and, if that successor is a step method, returns its
// effective name — the step the workflow proceeds to once the loop
// exits.
func continuationStep(all []oracle.Invocation, inv oracle.Invocation) string {
	for _, cand := range all {
		recv, ok := cand.Receiver.(*ast.CallExpr)
		if !ok || recv != inv.Call {
			continue
		}
		if stepMethodNames[cand.MethodName] {
			return stepEffectiveName(cand)
		}
	}
	return ""
}

// parentLoopName returns the full loop prefix of the enclosing
// RepeatUntil, if any, whose body lambda contains inv: that loop's name,
// preceded by the names of the loops enclosing it.
func parentLoopName(repeats []oracle.Invocation, inv oracle.Invocation) string {
	if inv.EnclosingLambda == nil {
		return ""
	}
	for _, outer := range repeats {
		if outer.Call.Pos() == inv.Call.Pos() {
			continue
		}
		if loopBody(outer) == inv.EnclosingLambda {
			if p := parentLoopName(repeats, outer); p != "" {
				return p + "_" + loopName(outer)
			}
			return loopName(outer)
		}
	}
	return ""
}
