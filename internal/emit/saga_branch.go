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

package emit

import (
	"fmt"
	"strings"

	"github.com/axonflow/sagagen/internal/ir"
)

// sagaBranchRouting is sub-emitter 5 of spec §4.6's Saga: for each
// branch's predecessor step, a switch over the discriminator expression
// that dispatches the first step of the matching case. Consecutive
// branches (no intervening step) chain as nested switches evaluated
// within the selected outer case, per the "consecutive branches"
// glossary entry.
func sagaBranchRouting(m ir.WorkflowModel) string {
	saga := m.SagaClassName()
	byID := map[string]ir.BranchModel{}
	for _, br := range m.Branches {
		byID[br.BranchID] = br
	}

	var b strings.Builder
	for _, br := range m.Branches {
		if !br.IsConsecutive() {
			emitBranchMethod(&b, saga, m, br, byID)
		}
	}
	return b.String()
}

func emitBranchMethod(b *strings.Builder, saga string, m ir.WorkflowModel, br ir.BranchModel, byID map[string]ir.BranchModel) {
	fmt.Fprintf(b, "func (s *%s) route%sBranch() []any {\n", saga, pascal(br.BranchID))
	discriminator := discriminatorExpr(br)
	fmt.Fprintf(b, "\tswitch %s {\n", discriminator)
	chained := br.NextConsecutiveBranch != ""
	for _, c := range br.Cases {
		if c.CaseValueLiteral == "default" {
			continue
		}
		fmt.Fprintf(b, "\tcase %s:\n", c.CaseValueLiteral)
		emitBranchCaseBody(b, br, c, chained)
	}
	b.WriteString("\tdefault:\n")
	for _, c := range br.Cases {
		if c.CaseValueLiteral == "default" {
			emitBranchCaseBody(b, br, c, chained)
		}
	}
	b.WriteString("\t}\n")
	b.WriteString("\treturn nil\n")
	b.WriteString("}\n\n")

	if next, ok := byID[br.NextConsecutiveBranch]; ok {
		emitBranchMethod(b, saga, m, next, byID)
	}
}

// emitBranchCaseBody dispatches the case's first step when it has one;
// an empty case with a chained consecutive branch instead evaluates
// that branch within the selected case, per the "consecutive branches"
// glossary entry.
func emitBranchCaseBody(b *strings.Builder, br ir.BranchModel, c ir.BranchCaseModel, chained bool) {
	if len(c.StepNames) == 0 {
		if chained {
			fmt.Fprintf(b, "\t\treturn s.route%sBranch()\n", pascal(br.NextConsecutiveBranch))
			return
		}
		b.WriteString("\t\treturn nil\n")
		return
	}
	fmt.Fprintf(b, "\t\treturn []any{Start%sCommand{WorkflowID: s.WorkflowID}}\n", pascal(c.StepNames[0]))
}

// discriminatorExpr resolves a branch's discriminator to a saga-scoped
// Go expression. A property-path discriminator (the common case, a
// lambda like s => s.Type) resolves to "State.<path>" directly — unlike
// a validation predicate's source text, the extractor already strips
// the lambda parameter from a property path, so no further rewrite is
// needed. A bare-identifier discriminator names a package-level
// function taking the state and returning the discriminant, so it's
// emitted as a call against State rather than a field access.
func discriminatorExpr(br ir.BranchModel) string {
	if br.DiscriminatorPropertyPath != "" {
		return "State." + br.DiscriminatorPropertyPath
	}
	if br.IsMethodDiscriminator && br.DiscriminatorMethodName != "" {
		return br.DiscriminatorMethodName + "(State)"
	}
	return "State"
}
