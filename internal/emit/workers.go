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
	"sort"

	"github.com/axonflow/sagagen/internal/ir"
)

const workersTmpl = `{{.Header}}

import "context"

{{range .Types}}
// {{.}}Handler executes the {{.}} step. It is shared across every phase
// that routes to a {{.}} instance, since handler identity follows step
// type, not the instance-named phase.
type {{.}}Handler struct {
	Step {{.}}
}

// Handle runs {{.}} against the command's carried state and returns the
// state it produces; it emits no completion event itself.
func (h {{.}}Handler) Handle(ctx context.Context, cmd Execute{{.}}WorkerCommand) ({{$.State}}, error) {
	return h.Step.Execute(ctx, cmd.State)
}
{{end}}
`

// Workers emits the PascalName+"Handlers" set of spec §4.6: one
// handler class per distinct step type, not per phase.
func Workers(m ir.WorkflowModel) (string, error) {
	state := m.StateTypeName
	if state == "" {
		state = "any"
	}
	seen := map[string]bool{}
	var types []string
	for _, s := range m.Steps {
		if seen[s.StepTypeName] {
			continue
		}
		seen[s.StepTypeName] = true
		types = append(types, s.StepTypeName)
	}
	sort.Strings(types)

	type data struct {
		Header string
		State  string
		Types  []string
	}
	return render("workers", workersTmpl, data{
		Header: header(m.Namespace),
		State:  state,
		Types:  types,
	})
}
