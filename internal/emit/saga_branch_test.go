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

func TestDiscriminatorExprPropertyPath(t *testing.T) {
	br := ir.BranchModel{DiscriminatorPropertyPath: "Type"}
	require.Equal(t, "State.Type", discriminatorExpr(br))
}

func TestDiscriminatorExprMethodReference(t *testing.T) {
	br := ir.BranchModel{
		IsMethodDiscriminator:   true,
		DiscriminatorMethodName: "ClassifyOrder",
	}
	require.Equal(t, "ClassifyOrder(State)", discriminatorExpr(br))
}
