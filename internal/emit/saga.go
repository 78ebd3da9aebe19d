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

// Saga emits the PascalName+"Saga" artifact of spec §4.6 by composing
// the twelve saga sub-emitters into one file. Each sub-emitter is a
// pure function contributing independent top-level declarations; this
// function only concatenates and formats once, so a malformed fragment
// surfaces as a single clear go/format error rather than twelve.
func Saga(m ir.WorkflowModel) (string, error) {
	state := m.StateTypeName
	if state == "" {
		state = "any"
	}

	var b strings.Builder
	b.WriteString(header(m.Namespace))
	b.WriteString("\n")
	b.WriteString("import (\n\t\"time\"\n\n\t\"github.com/axonflow/sagagen/runtime/genlog\"\n\t\"github.com/axonflow/sagagen/runtime/sagaruntime\"\n)\n\n")
	fmt.Fprintf(&b, "var sagaLog = genlog.New(%q)\n\n", strings.ToLower(m.PascalName())+"-saga")

	if c := sagaNamingComment(m); c != "" {
		b.WriteString(c)
	}
	b.WriteString(sagaProperties(m))
	b.WriteString("\n")
	b.WriteString(sagaStart(m))
	b.WriteString("\n")
	b.WriteString(sagaStepHandlersStart(m))
	b.WriteString(sagaStepHandlersComplete(m))
	b.WriteString(sagaBranchRouting(m))
	b.WriteString(sagaLoopCompletion(m))
	b.WriteString(sagaForkJoin(m))
	b.WriteString(sagaApprovals(m))
	b.WriteString(sagaNotFound(m))
	b.WriteString(sagaFailureHandlers(m))
	b.WriteString(sagaMarkCompleted(m))

	return formatFinal(b.String())
}
