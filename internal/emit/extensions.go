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

const extensionsTmpl = `{{.Header}}

import "github.com/axonflow/sagagen/runtime/registry"

// Add{{.Workflow}}Workflow registers every {{.Workflow}} step type and
// its worker handler as transient-scope services.
func Add{{.Workflow}}Workflow(r *registry.Registry) {
{{- range .Types}}
	registry.AddTransient[{{.}}](r)
	registry.AddTransient[{{.}}Handler](r)
{{- end}}
}
`

// Extensions emits the PascalName+"Extensions" DI registration helper
// of spec §4.6.
func Extensions(m ir.WorkflowModel) (string, error) {
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
		Header   string
		Workflow string
		Types    []string
	}
	return render("extensions", extensionsTmpl, data{
		Header:   header(m.Namespace),
		Workflow: m.PascalName(),
		Types:    types,
	})
}
