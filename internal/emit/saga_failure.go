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

// sagaFailureHandlers is sub-emitter 10 of spec §4.6's Saga:
// workflow-scope failure handling returns the handler's first step's
// start command; terminality follows the handler's is_terminal flag.
func sagaFailureHandlers(m ir.WorkflowModel) string {
	saga := m.SagaClassName()
	var b strings.Builder
	for i, h := range m.FailureHandlers {
		if h.Scope != ir.WorkflowScope {
			continue
		}
		fmt.Fprintf(&b, "func (s *%s) handleFailure%d(err error) []any {\n", saga, i)
		fmt.Fprintf(&b, "\ts.Phase = %s\n", phaseConst(m, "Failed"))
		switch {
		case len(h.StepNames) > 0:
			fmt.Fprintf(&b, "\treturn []any{Start%sCommand{WorkflowID: s.WorkflowID}}\n", pascal(h.StepNames[0]))
		case h.IsTerminal:
			b.WriteString("\treturn s.markCompleted()\n")
		default:
			b.WriteString("\treturn nil\n")
		}
		b.WriteString("}\n\n")
	}
	return b.String()
}
