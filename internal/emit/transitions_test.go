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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axonflow/sagagen/internal/ir"
)

// containsFrom reports whether a phase appears as a From key in edges.
func containsFrom(edges []edge, from string) bool {
	for _, e := range edges {
		if e.From == from {
			return true
		}
	}
	return false
}

func TestBuildEdgesLoopContinuationTargetsLoopPrefixedPhase(t *testing.T) {
	m := ir.WorkflowModel{
		WorkflowName: "process-order",
		Steps: []ir.StepModel{
			{StepName: "RefineOrder", LoopName: "Refinement", Context: ir.Linear},
		},
		Loops: []ir.LoopModel{
			{
				LoopName:          "Refinement",
				FirstBodyStepName: "Critique",
				LastBodyStepName:  "RefineOrder",
			},
		},
	}

	edges := buildEdges(m)
	for _, e := range edges {
		if e.From == "Refinement_RefineOrder" {
			require.Contains(t, e.To, "Refinement_Critique", "loop continuation must target the loop-prefixed phase, not the bare step name")
			return
		}
	}
	t.Fatal("no edge found for Refinement_RefineOrder")
}

func TestBuildEdgesApprovalOutcomesAreTransitionKeysOrSinks(t *testing.T) {
	m := ir.WorkflowModel{
		WorkflowName: "process-order",
		Approvals: []ir.ApprovalModel{
			{
				ApprovalPointName:   "Manager",
				PrecedingStepName:   "CombineAnalysis",
				IsRejectionTerminal: true,
				TimedOutSteps:       []string{"EscalateOrder"},
			},
		},
	}

	edges := buildEdges(m)
	for _, outcome := range []string{"ManagerApproved", "ManagerRejected", "ManagerTimedOut"} {
		require.True(t, containsFrom(edges, outcome), "%s must be a transitions-table key", outcome)
	}
}
