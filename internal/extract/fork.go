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
	"fmt"
	"go/ast"

	"github.com/axonflow/sagagen/internal/ir"
	"github.com/axonflow/sagagen/internal/oracle"
	"github.com/axonflow/sagagen/internal/parsectx"
	"github.com/axonflow/sagagen/internal/walker"
)

// Forks runs the Fork Extractor of spec §4.4.
func Forks(ctx *parsectx.Context) []ir.ForkModel {
	nodes := walker.Walk(ctx)

	var out []ir.ForkModel
	for i, inv := range ctx.Invocations {
		if inv.MethodName != "Fork" {
			continue
		}
		out = append(out, ir.ForkModel{
			ForkID:           fmt.Sprintf("fork_%d", i),
			PreviousStepName: precedingStepName(ctx.Invocations, nodes, inv),
			Paths:            forkPaths(ctx.Invocations, inv),
			JoinStepName:     forkJoinStep(ctx.Invocations, inv),
		})
	}
	return out
}

func forkPaths(all []oracle.Invocation, forkInv oracle.Invocation) []ir.ForkPathModel {
	var paths []ir.ForkPathModel
	for idx, lambda := range forkInv.LambdaArguments {
		var stepNames []string
		hasFailure := false
		isTerminal := false
		var handlerSteps []string

		for _, inv := range invocationsIn(all, lambda) {
			switch inv.MethodName {
			case "Then":
				stepNames = append(stepNames, stepEffectiveName(inv))
			case "OnFailure":
				hasFailure = true
				if len(inv.LambdaArguments) == 0 {
					continue
				}
				for _, hinv := range invocationsIn(all, inv.LambdaArguments[0]) {
					switch hinv.MethodName {
					case "Then":
						handlerSteps = append(handlerSteps, stepEffectiveName(hinv))
					case "Complete":
						isTerminal = true
					}
				}
			}
		}

		paths = append(paths, ir.ForkPathModel{
			PathIndex:               idx,
			StepNames:               stepNames,
			HasFailureHandler:       hasFailure,
			IsTerminalOnFailure:     isTerminal,
			FailureHandlerStepNames: handlerSteps,
		})
	}
	return paths
}

func forkJoinStep(all []oracle.Invocation, forkInv oracle.Invocation) string {
	for _, cand := range all {
		recv, ok := cand.Receiver.(*ast.CallExpr)
		if ok && recv == forkInv.Call && cand.MethodName == "Join" {
			return stepEffectiveName(cand)
		}
	}
	return ""
}
