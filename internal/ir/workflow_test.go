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

package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkflowModelDerivedNames(t *testing.T) {
	m := WorkflowModel{WorkflowName: "process-order", Version: 1, StateTypeName: "OrderState"}
	assert.Equal(t, "ProcessOrder", m.PascalName())
	assert.Equal(t, "ProcessOrderSaga", m.SagaClassName())
	assert.Equal(t, "OrderStateReducer", m.ReducerTypeName())

	m.Version = 2
	assert.Equal(t, "ProcessOrderSagaV2", m.SagaClassName())
}

func TestStepModelPhaseName(t *testing.T) {
	s := StepModel{StepName: "Critique", LoopName: "Refinement"}
	assert.Equal(t, "Refinement_Critique", s.PhaseName())
	assert.False(t, s.HasValidation())

	s2 := StepModel{StepName: "A", InstanceName: "Custom"}
	assert.Equal(t, "Custom", s2.EffectiveName())
	assert.Equal(t, "Custom", s2.PhaseName())
}

func TestLoopFullPrefix(t *testing.T) {
	l := LoopModel{LoopName: "Inner", ParentLoopName: "Outer"}
	assert.Equal(t, "Outer_Inner", l.FullPrefix())

	l2 := LoopModel{LoopName: "Outer"}
	assert.Equal(t, "Outer", l2.FullPrefix())
}

func TestBranchIsConsecutive(t *testing.T) {
	b := BranchModel{}
	assert.True(t, b.IsConsecutive())
	b.PreviousStepName = "Assess"
	assert.False(t, b.IsConsecutive())
}
