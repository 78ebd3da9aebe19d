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

const commandsTmpl = `{{.Header}}

// Start{{.Workflow}}Command initiates the {{.Workflow}} saga.
type Start{{.Workflow}}Command struct {
	WorkflowID string
	InitialState {{.State}}
}

{{range .Phases}}
// Start{{.}}Command routes {{.}} through the saga.
type Start{{.}}Command struct {
	WorkflowID string
}

// Execute{{.}}Command is the legacy, non-worker-routed form.
type Execute{{.}}Command struct {
	WorkflowID string
	StepExecutionID string
}
{{end}}

{{range .Types}}
// Execute{{.}}WorkerCommand is routed to the {{.}} worker and carries
// state. Shared across every phase that instantiates a {{.}} step.
type Execute{{.}}WorkerCommand struct {
	WorkflowID string
	StepExecutionID string
	State {{$.State}}
	{{- if $.HasContexts}}
	Context map[string]any
	{{- end}}
}
{{end}}

{{range .Approvals}}
// Start{{.}}ApprovalCommand requests a decision at the {{.}} approval point.
type Start{{.}}ApprovalCommand struct {
	WorkflowID string
}
{{end}}
`

// Commands emits the PascalName+"Commands" message-tripling set of spec
// §4.6. StartXCommand/ExecuteXCommand are one per phase (distinct
// instance-named steps dispatch independently); ExecuteXWorkerCommand
// is one per distinct step type, shared across every phase that
// instantiates that type, per spec boundary scenario 6.
func Commands(m ir.WorkflowModel) (string, error) {
	type data struct {
		Header      string
		Workflow    string
		State       string
		Phases      []string
		Types       []string
		Approvals   []string
		HasContexts bool
	}
	state := m.StateTypeName
	if state == "" {
		state = "any"
	}
	var phases []string
	for _, s := range m.Steps {
		phases = append(phases, pascal(s.PhaseName()))
	}
	seenType := map[string]bool{}
	var types []string
	for _, s := range m.Steps {
		if seenType[s.StepTypeName] {
			continue
		}
		seenType[s.StepTypeName] = true
		types = append(types, s.StepTypeName)
	}
	sort.Strings(types)

	return render("commands", commandsTmpl, data{
		Header:      header(m.Namespace),
		Workflow:    m.PascalName(),
		State:       state,
		Phases:      phases,
		Types:       types,
		Approvals:   flattenApprovalNames(m.Approvals),
		HasContexts: len(m.Contexts) > 0,
	})
}
