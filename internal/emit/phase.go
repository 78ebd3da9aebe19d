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

const phaseTmpl = `{{.Header}}

// {{.PhaseType}} is {{.Workflow}}'s saga phase enumeration.
type {{.PhaseType}} int

const (
{{- range $i, $c := .Consts}}
	{{$c}}{{if eq $i 0}} {{$.PhaseType}} = iota{{end}}
{{- end}}
)

func (p {{.PhaseType}}) String() string {
	switch p {
{{- range $i, $c := .Consts}}
	case {{$c}}:
		return "{{index $.Names $i}}"
{{- end}}
	default:
		return "Unknown"
	}
}
`

// Phase emits the PascalName+"Phase" enum of spec §4.6.
func Phase(m ir.WorkflowModel) (string, error) {
	type data struct {
		Header    string
		Workflow  string
		PhaseType string
		Names     []string
		Consts    []string
	}
	names := allPhaseNames(m)
	consts := make([]string, len(names))
	for i, n := range names {
		consts[i] = phaseConst(m, n)
	}
	return render("phase", phaseTmpl, data{
		Header:    header(m.Namespace),
		Workflow:  m.PascalName(),
		PhaseType: m.PascalName() + "Phase",
		Names:     names,
		Consts:    consts,
	})
}
