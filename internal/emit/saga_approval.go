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

// sagaApprovals is sub-emitter 8 of spec §4.6's Saga: a
// Handle(ApprovalReceivedEvent) per approval point, routing on outcome
// to continuation, rejection sub-path, or escalation sub-path (itself
// possibly a nested approval).
func sagaApprovals(m ir.WorkflowModel) string {
	saga := m.SagaClassName()
	var b strings.Builder
	for _, a := range m.Approvals {
		emitApproval(&b, saga, m, a)
	}
	return b.String()
}

func emitApproval(b *strings.Builder, saga string, m ir.WorkflowModel, a ir.ApprovalModel) {
	name := pascal(a.ApprovalPointName)
	fmt.Fprintf(b, "func (s *%s) Handle%sApprovalReceived(event %sApprovalReceivedEvent) []any {\n", saga, name, name)
	b.WriteString("\tswitch event.Outcome {\n")
	b.WriteString("\tcase ApprovalOutcomeApproved:\n")
	fmt.Fprintf(b, "\t\ts.Phase = %s\n", phaseConst(m, name+"Approved"))
	b.WriteString("\t\treturn nil\n")

	b.WriteString("\tcase ApprovalOutcomeRejected:\n")
	fmt.Fprintf(b, "\t\ts.Phase = %s\n", phaseConst(m, name+"Rejected"))
	if len(a.RejectionSteps) > 0 {
		fmt.Fprintf(b, "\t\treturn []any{Start%sCommand{WorkflowID: s.WorkflowID}}\n", pascal(a.RejectionSteps[0]))
	} else if a.IsRejectionTerminal {
		b.WriteString("\t\treturn s.markCompleted()\n")
	} else {
		b.WriteString("\t\treturn nil\n")
	}

	if a.HasEscalation() {
		b.WriteString("\tcase ApprovalOutcomeEscalated:\n")
		fmt.Fprintf(b, "\t\ts.Phase = %s\n", phaseConst(m, name+"Escalated"))
		if len(a.EscalationSteps) > 0 {
			fmt.Fprintf(b, "\t\treturn []any{Start%sCommand{WorkflowID: s.WorkflowID}}\n", pascal(a.EscalationSteps[0]))
		} else {
			fmt.Fprintf(b, "\t\treturn []any{Start%sApprovalCommand{WorkflowID: s.WorkflowID}}\n", pascal(a.NestedEscalation[0].ApprovalPointName))
		}
	}

	b.WriteString("\tcase ApprovalOutcomeTimedOut:\n")
	fmt.Fprintf(b, "\t\ts.Phase = %s\n", phaseConst(m, name+"TimedOut"))
	if len(a.TimedOutSteps) > 0 {
		fmt.Fprintf(b, "\t\treturn []any{Start%sCommand{WorkflowID: s.WorkflowID}}\n", pascal(a.TimedOutSteps[0]))
	} else if a.IsTimedOutTerminal {
		b.WriteString("\t\treturn s.markCompleted()\n")
	} else {
		b.WriteString("\t\treturn nil\n")
	}
	b.WriteString("\t}\n")
	b.WriteString("\treturn nil\n")
	b.WriteString("}\n\n")

	for _, nested := range a.NestedEscalation {
		emitApproval(b, saga, m, nested)
	}
}
