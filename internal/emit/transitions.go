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

const transitionsTmpl = `{{.Header}}

// {{.TableType}} maps a {{.PhaseType}} to the phases it may legally move to.
var {{.TableType}} = map[{{.PhaseType}}][]{{.PhaseType}}{
{{- range .Edges}}
	{{.From}}: { {{join .To ", "}} },
{{- end}}
}

// IsValidTransition reports whether moving from one phase to another is
// permitted by {{.TableType}}.
func IsValidTransition(from, to {{.PhaseType}}) bool {
	for _, candidate := range {{.TableType}}[from] {
		if candidate == to {
			return true
		}
	}
	return false
}
`

type edge struct {
	From string
	To   []string
}

// Transitions emits the PascalName+"Transitions" table of spec §4.6.
func Transitions(m ir.WorkflowModel) (string, error) {
	edges := buildEdges(m)

	type edgeData struct {
		From string
		To   []string
	}
	var data []edgeData
	for _, e := range edges {
		data = append(data, edgeData{From: phaseConst(m, e.From), To: mapPhases(m, e.To)})
	}

	type tdata struct {
		Header    string
		PhaseType string
		TableType string
		Edges     []edgeData
	}
	return render("transitions", transitionsTmpl, tdata{
		Header:    header(m.Namespace),
		PhaseType: m.PascalName() + "Phase",
		TableType: m.PascalName() + "Transitions",
		Edges:     data,
	})
}

func mapPhases(m ir.WorkflowModel, names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = phaseConst(m, n)
	}
	return out
}

// buildEdges assembles the phase→phase adjacency described in spec
// §4.6's Transitions Table paragraph.
func buildEdges(m ir.WorkflowModel) []edge {
	var edges []edge
	linear := linearSteps(m)

	if len(linear) > 0 {
		edges = append(edges, edge{From: "NotStarted", To: []string{linear[0].PhaseName()}})
	}

	loopLast := map[string]ir.LoopModel{}
	for _, l := range m.Loops {
		loopLast[l.FullPrefix()+"_"+l.LastBodyStepName] = l
	}
	branchPred := map[string]ir.BranchModel{}
	for _, b := range m.Branches {
		branchPred[b.PreviousStepName] = b
	}
	forkPred := map[string]ir.ForkModel{}
	for _, f := range m.Forks {
		forkPred[f.PreviousStepName] = f
	}

	for i, s := range linear {
		to := []string{"Failed"}
		if s.HasValidation() {
			to = append(to, "ValidationFailed")
		}
		if l, ok := loopLast[s.PhaseName()]; ok {
			to = append(to, l.FullPrefix()+"_"+l.FirstBodyStepName)
			if l.ContinuationStepName != "" {
				to = append(to, l.ContinuationStepName)
			}
		} else if b, ok := branchPred[s.PhaseName()]; ok {
			for _, c := range b.Cases {
				if len(c.StepNames) > 0 {
					to = append(to, c.StepNames[0])
				}
			}
		} else if f, ok := forkPred[s.PhaseName()]; ok {
			for _, p := range f.Paths {
				if len(p.StepNames) > 0 {
					to = append(to, p.StepNames[0])
				}
			}
		} else if i+1 < len(linear) {
			to = append(to, linear[i+1].PhaseName())
		} else {
			to = append(to, "Completed")
		}
		edges = append(edges, edge{From: s.PhaseName(), To: to})
	}

	for _, a := range m.Approvals {
		var to []string
		to = append(to, a.ApprovalPointName+"Approved", a.ApprovalPointName+"Rejected")
		if a.HasEscalation() {
			to = append(to, a.ApprovalPointName+"Escalated")
		}
		to = append(to, a.ApprovalPointName+"TimedOut")
		edges = append(edges, edge{From: a.PrecedingStepName, To: to})

		edges = append(edges, edge{From: a.ApprovalPointName + "Approved", To: nil})

		var rejectedTo []string
		if len(a.RejectionSteps) > 0 {
			rejectedTo = append(rejectedTo, a.RejectionSteps[0])
		} else if a.IsRejectionTerminal {
			rejectedTo = append(rejectedTo, "Completed")
		}
		edges = append(edges, edge{From: a.ApprovalPointName + "Rejected", To: rejectedTo})

		if a.HasEscalation() {
			var escalatedTo []string
			if len(a.EscalationSteps) > 0 {
				escalatedTo = append(escalatedTo, a.EscalationSteps[0])
			}
			edges = append(edges, edge{From: a.ApprovalPointName + "Escalated", To: escalatedTo})
		}

		var timedOutTo []string
		if len(a.TimedOutSteps) > 0 {
			timedOutTo = append(timedOutTo, a.TimedOutSteps[0])
		} else if a.IsTimedOutTerminal {
			timedOutTo = append(timedOutTo, "Completed")
		}
		edges = append(edges, edge{From: a.ApprovalPointName + "TimedOut", To: timedOutTo})
	}

	edges = append(edges, edge{From: "Completed", To: nil})
	edges = append(edges, edge{From: "Failed", To: nil})
	if m.HasAnyValidation {
		edges = append(edges, edge{From: "ValidationFailed", To: nil})
	}
	return edges
}

func linearSteps(m ir.WorkflowModel) []ir.StepModel {
	var out []ir.StepModel
	for _, s := range m.Steps {
		if s.Context == ir.Linear {
			out = append(out, s)
		}
	}
	return out
}
