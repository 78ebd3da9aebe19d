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

package extract

import (
	"github.com/axonflow/sagagen/internal/ir"
	"github.com/axonflow/sagagen/internal/oracle"
	"github.com/axonflow/sagagen/internal/parsectx"
)

// StateTypeName runs the State-Type Extractor of spec §4.4: it resolves
// the workflow's state type from the single generic type argument of
// the dsl.Create[TState](name) call that anchors the fluent chain.
func StateTypeName(ctx *parsectx.Context) string {
	for _, inv := range ctx.Invocations {
		if inv.MethodName == "Create" && inv.IsGeneric && len(inv.TypeArguments) > 0 {
			return inv.TypeArguments[0]
		}
	}
	return ""
}

// StateProperties reads stateTypeName's declared fields and classifies
// each by its sagagen struct tag: `sagagen:"append"` or
// `sagagen:"merge"`, defaulting to Standard when absent. This is the Go
// stand-in for the `[Append]`/`[Merge]` marker attributes of spec §6 —
// Go has no field attributes, so the struct tag is the idiomatic
// carrier for the same per-property metadata.
func StateProperties(o oracle.SyntaxOracle, stateTypeName string) []ir.StatePropertyModel {
	var out []ir.StatePropertyModel
	for _, f := range o.StructFields(stateTypeName) {
		kind := ir.Standard
		switch f.Tag {
		case "append":
			kind = ir.Append
		case "merge":
			kind = ir.Merge
		}
		out = append(out, ir.StatePropertyModel{Name: f.Name, TypeName: f.TypeName, Kind: kind})
	}
	return out
}
