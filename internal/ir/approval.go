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

// ApprovalModel is one AwaitApproval<TApprover>(...) construct.
type ApprovalModel struct {
	ApprovalPointName    string // derived by stripping trailing "Approver"
	ApproverTypeName     string
	PrecedingStepName    string // literal "BranchPath" inside a branch lambda
	EscalationSteps      []string
	RejectionSteps       []string
	// TimedOutSteps holds an OnTimeout handler's Then<T> steps when the
	// handler never calls EscalateTo — a plain timeout, distinct from an
	// escalation, per spec §4.4.
	TimedOutSteps        []string
	NestedEscalation     []ApprovalModel // EscalateTo<TApprover> nested points
	IsEscalationTerminal bool
	IsRejectionTerminal  bool
	IsTimedOutTerminal   bool
}

// HasEscalation reports whether this approval's OnTimeout handler
// escalates to another step or approver, as opposed to handling the
// timeout directly.
func (a ApprovalModel) HasEscalation() bool {
	return len(a.EscalationSteps) > 0 || len(a.NestedEscalation) > 0
}
