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

// sagaNotFound is sub-emitter 9 of spec §4.6's Saga: a static NotFound
// handler per start-command and per step-completed event, logging the
// orphan message and returning normally on the assumption the saga
// instance was already archived.
func sagaNotFound(m ir.WorkflowModel) string {
	saga := m.SagaClassName()
	var b strings.Builder
	for _, s := range m.Steps {
		x := pascal(s.PhaseName())
		fmt.Fprintf(&b, "func NotFoundOnStart%sCommand(cmd Start%sCommand) {\n", x, x)
		fmt.Fprintf(&b, "\tsagaLog.Warn(%q, cmd.WorkflowID, \"received %s for an archived or unknown workflow instance\", nil)\n", saga, x)
		b.WriteString("}\n\n")

		fmt.Fprintf(&b, "func NotFoundOn%sCompleted(event %sCompleted) {\n", x, x)
		fmt.Fprintf(&b, "\tsagaLog.Warn(%q, event.WorkflowID, \"received %sCompleted for an archived or unknown workflow instance\", nil)\n", saga, x)
		b.WriteString("}\n\n")
	}
	return b.String()
}
