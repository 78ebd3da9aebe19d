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

// sagaProperties is sub-emitter 1 of spec §4.6's Saga: the saga's
// durable, versioned identity plus one iteration counter per loop.
func sagaProperties(m ir.WorkflowModel) string {
	state := m.StateTypeName
	if state == "" {
		state = "any"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "type %s struct {\n", m.SagaClassName())
	b.WriteString("\tWorkflowID string\n")
	b.WriteString("\tVersion int\n")
	fmt.Fprintf(&b, "\tPhase %sPhase\n", m.PascalName())
	fmt.Fprintf(&b, "\tState %s\n", state)
	b.WriteString("\tStartedAt time.Time\n")
	if hasForks(m) {
		b.WriteString("\tOutstandingForkPaths map[string]int\n")
	}
	for _, l := range m.Loops {
		fmt.Fprintf(&b, "\t%sIterationCount int\n", pascal(l.FullPrefix()))
	}
	b.WriteString("}\n")
	return b.String()
}

func hasForks(m ir.WorkflowModel) bool {
	return len(m.Forks) > 0
}
