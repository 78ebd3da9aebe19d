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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axonflow/sagagen/internal/ir"
)

func TestSagaApprovalsPlainTimeoutEmitsOwnPhaseAndCase(t *testing.T) {
	m := ir.WorkflowModel{
		WorkflowName: "process-order",
		Approvals: []ir.ApprovalModel{
			{
				ApprovalPointName: "Manager",
				PrecedingStepName: "CombineAnalysis",
				TimedOutSteps:     []string{"EscalateOrder"},
			},
		},
	}

	out := sagaApprovals(m)
	require.Contains(t, out, "case ApprovalOutcomeTimedOut:")
	require.NotContains(t, out, "case ApprovalOutcomeEscalated:", "a plain OnTimeout with no EscalateTo must not emit an Escalated case")
	require.Contains(t, out, "ProcessOrderPhaseManagerTimedOut")
	require.Contains(t, out, "StartEscalateOrderCommand")
}

func TestSagaApprovalsEscalationEmitsBothCasesWithDistinctPhases(t *testing.T) {
	m := ir.WorkflowModel{
		WorkflowName: "process-order",
		Approvals: []ir.ApprovalModel{
			{
				ApprovalPointName: "Manager",
				PrecedingStepName: "CombineAnalysis",
				EscalationSteps:   []string{"NotifyDirector"},
			},
		},
	}

	out := sagaApprovals(m)
	require.Contains(t, out, "case ApprovalOutcomeEscalated:")
	require.Contains(t, out, "ProcessOrderPhaseManagerEscalated")
	require.Contains(t, out, "case ApprovalOutcomeTimedOut:")
	require.Contains(t, out, "ProcessOrderPhaseManagerTimedOut")
	require.True(t, strings.Count(out, "case ApprovalOutcomeTimedOut:") == 1)
}
