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

func TestReducerGeneratesAppendAndMergeAssignments(t *testing.T) {
	sm := ir.StateModel{
		TypeName:  "OrderState",
		Namespace: "processorder",
		Properties: []ir.StatePropertyModel{
			{Name: "Total", TypeName: "float64", Kind: ir.Standard},
			{Name: "Items", TypeName: "[]string", Kind: ir.Append},
			{Name: "Metadata", TypeName: "map[string]string", Kind: ir.Merge},
		},
	}

	out, err := Reducer(sm)
	require.NoError(t, err)
	require.Contains(t, out, "type OrderStateReducer struct{}")
	require.Contains(t, out, "result.Total = update.Total")
	require.Contains(t, out, "result.Items = append(append([]string{}, current.Items...), update.Items...)")
	require.Contains(t, out, "result.Metadata = mergeDictionaries(current.Metadata, update.Metadata)")
	require.Contains(t, out, "func mergeDictionaries[K comparable, V any]")
}

func TestReducerOmitsMergeHelperWhenNoMergeProperties(t *testing.T) {
	sm := ir.StateModel{
		TypeName:  "SimpleState",
		Namespace: "simple",
		Properties: []ir.StatePropertyModel{
			{Name: "Count", TypeName: "int", Kind: ir.Standard},
		},
	}

	out, err := Reducer(sm)
	require.NoError(t, err)
	require.NotContains(t, out, "mergeDictionaries")
}

func TestElementTypeOfStripsSliceBrackets(t *testing.T) {
	require.Equal(t, "string", elementTypeOf("[]string"))
	require.Equal(t, "int", elementTypeOf("[]int"))
}
