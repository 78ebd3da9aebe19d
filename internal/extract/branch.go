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
	"strings"

	"github.com/axonflow/sagagen/internal/ir"
	"github.com/axonflow/sagagen/internal/oracle"
	"github.com/axonflow/sagagen/internal/parsectx"
	"github.com/axonflow/sagagen/internal/walker"
)

// Branches runs the Branch Extractor of spec §4.4.
func Branches(ctx *parsectx.Context, o oracle.SyntaxOracle) []ir.BranchModel {
	nodes := walker.Walk(ctx)

	var raw []oracle.Invocation
	for _, inv := range ctx.Invocations {
		if inv.MethodName == "Branch" {
			raw = append(raw, inv)
		}
	}
	sortByPos(raw)

	var models []ir.BranchModel
	for i, inv := range raw {
		if receiverIsRepeatUntil(ctx.Invocations, inv) {
			// Loop-exit branch — handled by the loop emitter, not here.
			continue
		}

		loopPrefix := loopPrefixFor(nodes, inv)
		models = append(models, ir.BranchModel{
			BranchID:                  fmt.Sprintf("branch_%d", i),
			PreviousStepName:          branchPreviousStep(ctx.Invocations, nodes, inv),
			DiscriminatorPropertyPath: discriminatorPath(o, inv),
			DiscriminatorTypeName:     discriminatorTypeName(o, inv),
			DiscriminatorMethodName:   discriminatorMethodName(o, inv),
			IsEnumDiscriminator:       isEnumDiscriminator(ctx, o, inv),
			IsMethodDiscriminator:     isMethodDiscriminator(inv),
			Cases:                     branchCases(ctx.Invocations, inv, loopPrefix),
			RejoinStepName:            branchRejoinStep(ctx.Invocations, inv),
			LoopPrefix:                loopPrefix,
		})
	}

	linkConsecutiveBranches(models)
	return models
}

func receiverIsRepeatUntil(all []oracle.Invocation, inv oracle.Invocation) bool {
	recv, ok := inv.Receiver.(*ast.CallExpr)
	if !ok {
		return false
	}
	found, ok := findByPos(all, recv)
	return ok && found.MethodName == "RepeatUntil"
}

func loopPrefixFor(nodes []walker.Node, inv oracle.Invocation) string {
	for _, n := range nodes {
		if n.Invocation.Call == inv.Call {
			return n.LoopPrefix
		}
	}
	return ""
}

// branchPreviousStep returns "" for a consecutive branch (its immediate
// receiver is another Branch call), otherwise the preceding step's
// phase-qualified name.
func branchPreviousStep(all []oracle.Invocation, nodes []walker.Node, inv oracle.Invocation) string {
	recv, ok := inv.Receiver.(*ast.CallExpr)
	if !ok {
		return branchPathSentinel
	}
	found, ok := findByPos(all, recv)
	if !ok {
		return branchPathSentinel
	}
	if found.MethodName == "Branch" {
		return ""
	}
	return precedingStepName(all, nodes, inv)
}

// branchRejoinStep walks forward across chained calls, skipping any
// subsequent Branch calls in a consecutive run, until a step invocation
// is found.
func branchRejoinStep(all []oracle.Invocation, inv oracle.Invocation) string {
	cur := inv
	for {
		next, ok := immediateSuccessor(all, cur)
		if !ok {
			return ""
		}
		if next.MethodName == "Branch" {
			cur = next
			continue
		}
		if stepMethodNames[next.MethodName] {
			return stepEffectiveName(next)
		}
		return ""
	}
}

// immediateSuccessor finds the invocation whose receiver is inv's call
// expression.
func immediateSuccessor(all []oracle.Invocation, inv oracle.Invocation) (oracle.Invocation, bool) {
	for _, cand := range all {
		recv, ok := cand.Receiver.(*ast.CallExpr)
		if ok && recv == inv.Call {
			return cand, true
		}
	}
	return oracle.Invocation{}, false
}

func discriminatorPath(o oracle.SyntaxOracle, inv oracle.Invocation) string {
	if len(inv.RawArgs) == 0 {
		return ""
	}
	if path, ok := o.ResolvePropertyPath(inv.RawArgs[0]); ok {
		return path
	}
	return ""
}

func discriminatorTypeName(o oracle.SyntaxOracle, inv oracle.Invocation) string {
	if len(inv.RawArgs) == 0 {
		return ""
	}
	if ref, ok := o.ResolveMethodReference(inv.RawArgs[0]); ok {
		return ref.ReturnType
	}
	return ""
}

func discriminatorMethodName(o oracle.SyntaxOracle, inv oracle.Invocation) string {
	if len(inv.RawArgs) == 0 {
		return ""
	}
	if ref, ok := o.ResolveMethodReference(inv.RawArgs[0]); ok {
		return ref.Name
	}
	return ""
}

// isEnumDiscriminator resolves the discriminator's declared type —
// either a bare-method reference's return type, or the state struct
// field named by the property-path form — and reports whether that
// type is an enum.
func isEnumDiscriminator(ctx *parsectx.Context, o oracle.SyntaxOracle, inv oracle.Invocation) bool {
	if len(inv.RawArgs) == 0 {
		return false
	}
	if ref, ok := o.ResolveMethodReference(inv.RawArgs[0]); ok {
		if ref.ReturnType == "" {
			return false
		}
		return o.ResolveType(&ast.Ident{Name: ref.ReturnType}).IsEnum
	}

	path, ok := o.ResolvePropertyPath(inv.RawArgs[0])
	if !ok || path == "" {
		return false
	}
	fieldName := path
	if i := strings.Index(path, "."); i >= 0 {
		fieldName = path[:i]
	}

	stateType := StateTypeName(ctx)
	if stateType == "" {
		return false
	}
	for _, f := range o.StructFields(stateType) {
		if f.Name == fieldName {
			return o.ResolveType(&ast.Ident{Name: f.TypeName}).IsEnum
		}
	}
	return false
}

func isMethodDiscriminator(inv oracle.Invocation) bool {
	if len(inv.RawArgs) == 0 {
		return false
	}
	_, isIdent := inv.RawArgs[0].(*ast.Ident)
	return isIdent
}

func branchCases(all []oracle.Invocation, inv oracle.Invocation, loopPrefix string) []ir.BranchCaseModel {
	var cases []ir.BranchCaseModel
	for _, arg := range inv.RawArgs[1:] {
		caseInv, ok := nestedCallInvocation(all, arg)
		if !ok {
			continue
		}
		valueLiteral := "default"
		if caseInv.MethodName == "When" {
			call, _ := arg.(*ast.CallExpr)
			if call != nil && len(call.Args) > 0 {
				valueLiteral = caseValueLiteral(call.Args[0])
			}
		}

		var stepNames []string
		isTerminal := true
		if len(caseInv.LambdaArguments) > 0 {
			for _, bi := range invocationsIn(all, caseInv.LambdaArguments[0]) {
				if bi.MethodName == "Then" {
					stepNames = append(stepNames, stepEffectiveName(bi))
					isTerminal = false
				}
			}
		}

		cases = append(cases, ir.BranchCaseModel{
			CaseValueLiteral: valueLiteral,
			BranchPathPrefix: loopPrefix,
			StepNames:        stepNames,
			IsTerminal:       isTerminal,
		})
	}
	return cases
}

// linkConsecutiveBranches attaches NextConsecutiveBranch (by BranchID)
// right-to-left: a branch with empty PreviousStepName immediately
// following a head branch is attached as that head's next link.
func linkConsecutiveBranches(models []ir.BranchModel) {
	for i := 0; i < len(models)-1; i++ {
		if models[i+1].PreviousStepName == "" {
			models[i].NextConsecutiveBranch = models[i+1].BranchID
		}
	}
}
