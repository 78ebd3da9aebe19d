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

package diag

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axonflow/sagagen/internal/ir"
)

func TestCheckWorkflowNameEmpty(t *testing.T) {
	in := Input{Model: ir.WorkflowModel{WorkflowName: "  "}, HasNamespace: true, HasFinally: true}
	ds := Run(in)
	require.True(t, containsCode(ds, AGWF001))
}

func TestCheckDuplicateNamesAcrossLinearContext(t *testing.T) {
	raw := []ir.StepModel{
		{StepName: "ValidateOrder", StepTypeName: "ValidateOrder", Context: ir.Linear},
		{StepName: "ValidateOrder", StepTypeName: "ValidateOrder", Context: ir.Linear},
	}
	in := Input{
		Model:      ir.WorkflowModel{WorkflowName: "process-order", Steps: raw},
		RawSteps:   raw,
		HasNamespace: true,
		HasFinally: true,
	}
	ds := Run(in)
	require.True(t, containsCode(ds, AGWF003))
}

func TestCheckForkWithoutJoin(t *testing.T) {
	in := Input{
		Model: ir.WorkflowModel{
			WorkflowName: "process-order",
			Steps:        []ir.StepModel{{StepName: "A", Context: ir.Linear}},
			Forks:        []ir.ForkModel{{ForkID: "fork_0"}},
		},
		RawSteps:   []ir.StepModel{{StepName: "A", Context: ir.Linear}},
		HasNamespace: true,
		HasFinally: true,
	}
	ds := Run(in)
	require.True(t, containsCode(ds, AGWF012))
}

func TestCheckAppendOnNonCollection(t *testing.T) {
	in := Input{
		Model:      ir.WorkflowModel{WorkflowName: "process-order", Steps: []ir.StepModel{{StepName: "A"}}},
		RawSteps:   []ir.StepModel{{StepName: "A"}},
		HasNamespace: true,
		HasFinally: true,
		Properties: []ir.StatePropertyModel{{Name: "Total", TypeName: "int", Kind: ir.Append}},
	}
	ds := Run(in)
	require.True(t, containsCode(ds, AGSR001))
}

func containsCode(ds []Diagnostic, code Code) bool {
	for _, d := range ds {
		if d.Code == code {
			return true
		}
	}
	return false
}
