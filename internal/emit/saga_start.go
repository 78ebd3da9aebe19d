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

// sagaStart is sub-emitter 2 of spec §4.6's Saga: constructs the saga
// from its initiating command and returns the first dispatch atomically
// alongside it, per the Message Tripling contract.
func sagaStart(m ir.WorkflowModel) string {
	linear := linearSteps(m)
	saga := m.SagaClassName()
	var b strings.Builder
	fmt.Fprintf(&b, "func Start%s(cmd Start%sCommand) (*%s, ", m.PascalName(), m.PascalName(), saga)
	if len(linear) == 0 {
		b.WriteString("struct{}) {\n")
	} else {
		fmt.Fprintf(&b, "Start%sCommand) {\n", pascal(linear[0].PhaseName()))
	}
	fmt.Fprintf(&b, "\tsaga := &%s{\n", saga)
	b.WriteString("\t\tWorkflowID: cmd.WorkflowID,\n")
	b.WriteString("\t\tVersion:    0,\n")
	fmt.Fprintf(&b, "\t\tPhase:      %s,\n", phaseConst(m, "NotStarted"))
	b.WriteString("\t\tState:      cmd.InitialState,\n")
	b.WriteString("\t\tStartedAt:  time.Now(),\n")
	if hasForks(m) {
		b.WriteString("\t\tOutstandingForkPaths: map[string]int{},\n")
	}
	b.WriteString("\t}\n")
	if len(linear) == 0 {
		b.WriteString("\treturn saga, struct{}{}\n")
	} else {
		fmt.Fprintf(&b, "\treturn saga, Start%sCommand{WorkflowID: cmd.WorkflowID}\n", pascal(linear[0].PhaseName()))
	}
	b.WriteString("}\n")
	return b.String()
}
