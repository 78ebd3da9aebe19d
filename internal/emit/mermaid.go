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

// Mermaid emits the PascalName+"Diagram" stateDiagram-v2 artifact of
// spec §4.6. Unlike the other emitters this one is Markdown, not Go, so
// it is not passed through go/format.
func Mermaid(m ir.WorkflowModel) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# Code generated by %s. DO NOT EDIT.\n\n", buildVersion)
	b.WriteString("```mermaid\nstateDiagram-v2\n")

	linear := linearSteps(m)
	if len(linear) > 0 {
		fmt.Fprintf(&b, "\t[*] --> %s\n", linear[0].PhaseName())
	}

	loopLast := map[string]ir.LoopModel{}
	for _, l := range m.Loops {
		loopLast[l.FullPrefix()+"_"+l.LastBodyStepName] = l
	}
	branchPred := map[string]ir.BranchModel{}
	for _, br := range m.Branches {
		branchPred[br.PreviousStepName] = br
	}

	for i, s := range linear {
		name := s.PhaseName()
		fmt.Fprintf(&b, "\t%s --> Failed\n", name)
		if s.HasValidation() {
			fmt.Fprintf(&b, "\t%s --> ValidationFailed : guard failed\n", name)
		}
		switch {
		case hasKey(loopLast, name):
			// loop edges emitted below, once per loop
		case hasBranch(branchPred, name):
			br := branchPred[name]
			fmt.Fprintf(&b, "\tstate %s <<choice>>\n", pascal(br.BranchID))
			fmt.Fprintf(&b, "\t%s --> %s\n", name, pascal(br.BranchID))
			for _, c := range br.Cases {
				if len(c.StepNames) == 0 {
					continue
				}
				fmt.Fprintf(&b, "\t%s --> %s : %s\n", pascal(br.BranchID), c.StepNames[0], c.CaseValueLiteral)
			}
		case i+1 < len(linear):
			fmt.Fprintf(&b, "\t%s --> %s\n", name, linear[i+1].PhaseName())
		default:
			fmt.Fprintf(&b, "\t%s --> [*]\n", name)
		}
	}

	for _, l := range m.Loops {
		first := l.FullPrefix() + "_" + l.FirstBodyStepName
		last := l.FullPrefix() + "_" + l.LastBodyStepName
		fmt.Fprintf(&b, "\tnote right of %s : Loop: %s (max %d)\n", first, l.FullPrefix(), l.MaxIterations)
		fmt.Fprintf(&b, "\t%s --> %s : continue\n", last, first)
		if l.ContinuationStepName != "" {
			fmt.Fprintf(&b, "\t%s --> %s : exit\n", last, l.ContinuationStepName)
		} else {
			fmt.Fprintf(&b, "\t%s --> [*] : exit\n", last)
		}
	}

	b.WriteString("\tstate Failed\n")
	if m.HasAnyValidation {
		b.WriteString("\tstate ValidationFailed\n")
	}
	b.WriteString("```\n")
	return b.String(), nil
}
