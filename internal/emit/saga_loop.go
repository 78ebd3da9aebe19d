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

// sagaLoopCompletion is sub-emitter 6 of spec §4.6's Saga: ordered
// max-iteration guard, then exit-condition check via a virtual
// should_exit hook defaulting to false, then increment-and-continue.
// Nested loops check innermost first; an inner loop's exit cascades
// into its parent's own guard and exit check rather than jumping
// straight to the outermost continuation.
func sagaLoopCompletion(m ir.WorkflowModel) string {
	saga := m.SagaClassName()
	parent := map[string]ir.LoopModel{}
	for _, l := range m.Loops {
		parent[l.FullPrefix()] = l
	}

	var b strings.Builder
	for _, l := range m.Loops {
		emitLoopCompletion(&b, saga, l, parent)
	}
	return b.String()
}

func emitLoopCompletion(b *strings.Builder, saga string, l ir.LoopModel, parentLookup map[string]ir.LoopModel) {
	prefix := pascal(l.FullPrefix())
	counter := prefix + "IterationCount"
	fmt.Fprintf(b, "func (s *%s) complete%sLoop() []any {\n", saga, prefix)
	fmt.Fprintf(b, "\tif s.%s >= %d {\n", counter, l.MaxIterations)
	b.WriteString("\t\treturn s.exitLoop" + prefix + "()\n")
	b.WriteString("\t}\n")
	fmt.Fprintf(b, "\tif s.shouldExit%sLoop() {\n", prefix)
	b.WriteString("\t\treturn s.exitLoop" + prefix + "()\n")
	b.WriteString("\t}\n")
	fmt.Fprintf(b, "\ts.%s++\n", counter)
	fmt.Fprintf(b, "\treturn []any{Start%sCommand{WorkflowID: s.WorkflowID}}\n", pascal(l.FullPrefix()+"_"+l.FirstBodyStepName))
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "// shouldExit%sLoop is a host extension point; override in a partial\n", prefix)
	b.WriteString("// declaration to supply the loop's real exit condition.\n")
	fmt.Fprintf(b, "func (s *%s) shouldExit%sLoop() bool {\n", saga, prefix)
	b.WriteString("\treturn false\n")
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "func (s *%s) exitLoop%s() []any {\n", saga, prefix)
	if l.ParentLoopName != "" {
		if outer, ok := parentLookup[l.ParentLoopName]; ok {
			fmt.Fprintf(b, "\treturn s.complete%sLoop()\n", pascal(outer.FullPrefix()))
		} else if l.ContinuationStepName != "" {
			fmt.Fprintf(b, "\treturn []any{Start%sCommand{WorkflowID: s.WorkflowID}}\n", pascal(l.ContinuationStepName))
		} else {
			b.WriteString("\treturn s.markCompleted()\n")
		}
	} else if l.ContinuationStepName != "" {
		fmt.Fprintf(b, "\treturn []any{Start%sCommand{WorkflowID: s.WorkflowID}}\n", pascal(l.ContinuationStepName))
	} else {
		b.WriteString("\treturn s.markCompleted()\n")
	}
	b.WriteString("}\n\n")
}
