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

package generate

import (
	"fmt"

	"github.com/axonflow/sagagen/internal/emit"
	"github.com/axonflow/sagagen/internal/ir"
)

// emitAll runs every emitter of spec §4.6 against one workflow model and
// names each artifact the way the generated tree lays them out on disk.
func emitAll(m ir.WorkflowModel, properties []ir.StatePropertyModel) ([]Artifact, error) {
	pascal := m.PascalName()
	var out []Artifact

	steps := []struct {
		file string
		fn   func(ir.WorkflowModel) (string, error)
	}{
		{pascal + "Phase.g.go", emit.Phase},
		{pascal + "Transitions.g.go", emit.Transitions},
		{pascal + "Commands.g.go", emit.Commands},
		{pascal + "Events.g.go", emit.Events},
		{pascal + "Saga.g.go", emit.Saga},
		{pascal + "Handlers.g.go", emit.Workers},
		{pascal + "Extensions.g.go", emit.Extensions},
	}
	for _, s := range steps {
		content, err := s.fn(m)
		if err != nil {
			return nil, fmt.Errorf("generate: emit %s: %w", s.file, err)
		}
		out = append(out, Artifact{FileName: s.file, Content: content})
	}

	diagram, err := emit.Mermaid(m)
	if err != nil {
		return nil, fmt.Errorf("generate: emit %sDiagram.g.md: %w", pascal, err)
	}
	out = append(out, Artifact{FileName: pascal + "Diagram.g.md", Content: diagram})

	if m.StateTypeName != "" {
		sm := ir.StateModel{
			TypeName:   m.StateTypeName,
			Namespace:  m.Namespace,
			Properties: properties,
		}
		reducer, err := emit.Reducer(sm)
		if err != nil {
			return nil, fmt.Errorf("generate: emit %sReducer.g.go: %w", m.StateTypeName, err)
		}
		out = append(out, Artifact{FileName: m.StateTypeName + "Reducer.g.go", Content: reducer})
	}

	return out, nil
}
