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

// BranchCaseModel is one When/Otherwise arm of a Branch.
type BranchCaseModel struct {
	CaseValueLiteral string // the literal "default" for Otherwise
	BranchPathPrefix string
	StepNames        []string
	IsTerminal       bool
}

// BranchModel is one Branch(...) construct. Consecutive branches (no
// intervening step) link via NextConsecutiveBranch by name, not by
// pointer identity, per the "indices and names, not pointers" IR note.
type BranchModel struct {
	BranchID                  string
	PreviousStepName          string // empty => consecutive branch
	DiscriminatorPropertyPath string
	DiscriminatorTypeName     string
	DiscriminatorMethodName   string // set when IsMethodDiscriminator — the referenced function's name
	IsEnumDiscriminator       bool
	IsMethodDiscriminator     bool
	Cases                     []BranchCaseModel
	RejoinStepName            string // empty if none resolved
	LoopPrefix                string
	NextConsecutiveBranch     string // BranchID of the next branch in a consecutive chain, empty if none
}

// IsConsecutive reports whether this branch chains directly off another
// branch with no intervening step.
func (b BranchModel) IsConsecutive() bool {
	return b.PreviousStepName == ""
}
