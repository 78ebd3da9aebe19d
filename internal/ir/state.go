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

// PropertyKind is a state property's reduce semantics.
type PropertyKind int

const (
	// Standard properties are overwritten by the update's value.
	Standard PropertyKind = iota
	// Append properties are concatenated (collections only).
	Append
	// Merge properties are dictionary-merged, last-write-wins (maps only).
	Merge
)

func (k PropertyKind) String() string {
	switch k {
	case Append:
		return "Append"
	case Merge:
		return "Merge"
	default:
		return "Standard"
	}
}

// StatePropertyModel is one field of a workflow's state type.
type StatePropertyModel struct {
	Name     string
	TypeName string
	Kind     PropertyKind
}

// StateModel is the separately declared state type a reducer is
// generated for.
type StateModel struct {
	TypeName   string
	Namespace  string
	Properties []StatePropertyModel
}

// ReducerTypeName is the generated reducer's type name.
func (s StateModel) ReducerTypeName() string {
	return s.TypeName + "Reducer"
}
