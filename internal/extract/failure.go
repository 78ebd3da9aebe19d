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
	"fmt"

	"github.com/axonflow/sagagen/internal/ir"
	"github.com/axonflow/sagagen/internal/parsectx"
)

// FailureHandlers runs the Failure-Handler Extractor of spec §4.4:
// workflow-scoped OnFailure(handler) calls, i.e. those chained directly
// off the top-level Builder rather than off a fork path's PathBuilder
// (a fork path's OnFailure always sits inside the path's lambda, so it
// is excluded here by the EnclosingLambda == nil check and owned
// instead by the Fork Extractor). Step-scoped handling
// (.Compensate/.WithRetry/.WithTimeout) attaches to step configuration
// rather than producing a standalone model, so it is not collected here.
func FailureHandlers(ctx *parsectx.Context) []ir.FailureHandlerModel {
	var out []ir.FailureHandlerModel
	count := 0
	for _, inv := range ctx.Invocations {
		if inv.MethodName != "OnFailure" || inv.EnclosingLambda != nil {
			continue
		}
		count++
		steps, terminal := handlerSteps(ctx.Invocations, inv)
		out = append(out, ir.FailureHandlerModel{
			HandlerID:  fmt.Sprintf("failure_%d", count),
			Scope:      ir.WorkflowScope,
			StepNames:  steps,
			IsTerminal: terminal,
		})
	}
	return out
}
