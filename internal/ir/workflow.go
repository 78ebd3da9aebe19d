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

/*
Package ir defines the workflow intermediate representation: immutable
value types recovered from a workflow declaration's fluent call chain.
None of these types are mutated after construction; emitters consume
them by shared reference (see package emit). The variants are peers
composed by inclusion in WorkflowModel, not a subtype hierarchy — see
the "Polymorphic IR" design note this package is built against.
*/
package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// WorkflowModel is the aggregated, value-equal representation of one
// workflow declaration.
type WorkflowModel struct {
	WorkflowName     string
	Namespace        string
	Version          int
	StateTypeName    string
	Steps            []StepModel
	Loops            []LoopModel
	Branches         []BranchModel
	Forks            []ForkModel
	Approvals        []ApprovalModel
	FailureHandlers  []FailureHandlerModel
	Contexts         []ContextModel
	HasAnyValidation bool
}

// PascalName is the derived, identifier-safe form of WorkflowName.
func (m WorkflowModel) PascalName() string {
	return pascalCase(m.WorkflowName)
}

// ReducerTypeName is the reducer generated for StateTypeName.
func (m WorkflowModel) ReducerTypeName() string {
	if m.StateTypeName == "" {
		return ""
	}
	return m.StateTypeName + "Reducer"
}

// SagaClassName is the saga type name, versioned per spec §6.
func (m WorkflowModel) SagaClassName() string {
	if m.Version <= 1 {
		return m.PascalName() + "Saga"
	}
	return m.PascalName() + "SagaV" + strconv.Itoa(m.Version)
}

// pascalCase converts a kebab/snake/space-separated workflow name into
// an identifier-safe PascalCase form, e.g. "process-order" -> "ProcessOrder".
func pascalCase(name string) string {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	var b strings.Builder
	for _, f := range fields {
		if f == "" {
			continue
		}
		b.WriteString(strings.ToUpper(f[:1]))
		b.WriteString(f[1:])
	}
	if b.Len() == 0 {
		return "Workflow"
	}
	return b.String()
}

// String summarizes the model as its workflow name, version and step
// count.
func (m WorkflowModel) String() string {
	return fmt.Sprintf("WorkflowModel{%s v%d, %d steps}", m.WorkflowName, m.Version, len(m.Steps))
}
