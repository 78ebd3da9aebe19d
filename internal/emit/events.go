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

import "github.com/axonflow/sagagen/internal/ir"

const eventsTmpl = `{{.Header}}

// {{.Workflow}}Event is the marker interface every {{.Workflow}} saga
// event implements.
type {{.Workflow}}Event interface {
	is{{.Workflow}}Event()
}

// {{.Workflow}}Started fires once the saga accepts its initial state.
type {{.Workflow}}Started struct {
	WorkflowID string
	InitialState {{.State}}
}

func ({{.Workflow}}Started) is{{.Workflow}}Event() {}

{{range .Steps}}
// {{.}}Completed fires once {{.}} reports success.
type {{.}}Completed struct {
	WorkflowID string
	StepExecutionID string
	State {{$.State}}
}

func ({{.}}Completed) is{{$.Workflow}}Event() {}
{{end}}

// {{.Workflow}}Completed fires once every step in the saga has completed.
type {{.Workflow}}Completed struct {
	WorkflowID string
	FinalState {{.State}}
}

func ({{.Workflow}}Completed) is{{.Workflow}}Event() {}

{{if .HasValidation}}
// {{.Workflow}}ValidationFailed fires when a step guard predicate rejects
// the current state.
type {{.Workflow}}ValidationFailed struct {
	WorkflowID string
	StepExecutionID string
	Message string
}

func ({{.Workflow}}ValidationFailed) is{{.Workflow}}Event() {}
{{end}}

{{if .Approvals}}
// ApprovalOutcome is the disposition of a received approval decision.
type ApprovalOutcome int

const (
	ApprovalOutcomeApproved ApprovalOutcome = iota
	ApprovalOutcomeRejected
	ApprovalOutcomeEscalated
	ApprovalOutcomeTimedOut
)
{{range .Approvals}}
// {{.}}ApprovalReceivedEvent carries a decision for the {{.}} approval point.
type {{.}}ApprovalReceivedEvent struct {
	WorkflowID string
	Outcome ApprovalOutcome
}
{{end}}
{{end}}
`

// Events emits the PascalName+"Events" set of spec §4.6.
func Events(m ir.WorkflowModel) (string, error) {
	type data struct {
		Header        string
		Workflow      string
		State         string
		Steps         []string
		HasValidation bool
		Approvals     []string
	}
	state := m.StateTypeName
	if state == "" {
		state = "any"
	}
	var names []string
	for _, s := range m.Steps {
		names = append(names, pascal(s.PhaseName()))
	}
	return render("events", eventsTmpl, data{
		Header:        header(m.Namespace),
		Workflow:      m.PascalName(),
		State:         state,
		Steps:         names,
		HasValidation: m.HasAnyValidation,
		Approvals:     flattenApprovalNames(m.Approvals),
	})
}
