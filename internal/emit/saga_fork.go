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

// sagaForkJoin is sub-emitter 7 of spec §4.6's Saga: the predecessor
// step dispatches every path's first step concurrently; each path's
// last step decrements an outstanding-paths counter, and the join step
// dispatches once it reaches zero. Path-level failure handlers either
// complete their path (decrement, as if the path succeeded) or mark the
// workflow terminally failed.
func sagaForkJoin(m ir.WorkflowModel) string {
	saga := m.SagaClassName()
	var b strings.Builder
	for _, f := range m.Forks {
		id := pascal(f.ForkID)
		fmt.Fprintf(&b, "func (s *%s) dispatch%sFork() []any {\n", saga, id)
		fmt.Fprintf(&b, "\ts.OutstandingForkPaths[%q] = %d\n", f.ForkID, len(f.Paths))
		b.WriteString("\tmsgs := []any{}\n")
		for _, p := range f.Paths {
			if len(p.StepNames) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\tmsgs = append(msgs, Start%sCommand{WorkflowID: s.WorkflowID})\n", pascal(p.StepNames[0]))
		}
		b.WriteString("\treturn msgs\n")
		b.WriteString("}\n\n")

		for _, p := range f.Paths {
			fmt.Fprintf(&b, "func (s *%s) join%sPath%d() []any {\n", saga, id, p.PathIndex)
			fmt.Fprintf(&b, "\ts.OutstandingForkPaths[%q]--\n", f.ForkID)
			fmt.Fprintf(&b, "\tif s.OutstandingForkPaths[%q] > 0 {\n", f.ForkID)
			b.WriteString("\t\treturn nil\n")
			b.WriteString("\t}\n")
			fmt.Fprintf(&b, "\treturn []any{Start%sCommand{WorkflowID: s.WorkflowID}}\n", pascal(f.JoinStepName))
			b.WriteString("}\n\n")

			if p.HasFailureHandler {
				fmt.Fprintf(&b, "func (s *%s) fail%sPath%d() []any {\n", saga, id, p.PathIndex)
				if len(p.FailureHandlerStepNames) > 0 {
					fmt.Fprintf(&b, "\treturn []any{Start%sCommand{WorkflowID: s.WorkflowID}}\n", pascal(p.FailureHandlerStepNames[0]))
				} else if p.IsTerminalOnFailure {
					fmt.Fprintf(&b, "\ts.Phase = %s\n", phaseConst(m, "Failed"))
					b.WriteString("\treturn s.markCompleted()\n")
				} else {
					fmt.Fprintf(&b, "\treturn s.join%sPath%d()\n", id, p.PathIndex)
				}
				b.WriteString("}\n\n")
			}
		}
	}
	return b.String()
}
