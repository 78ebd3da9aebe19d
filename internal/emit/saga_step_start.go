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
	"fmt"
	"strings"

	"github.com/axonflow/sagagen/internal/ir"
)

// sagaStepHandlersStart is sub-emitter 3 of spec §4.6's Saga: one
// start-phase handler per step. A guarded step returns a slice of
// messages rather than a single value, so the validation-failure path
// can yield a ValidationFailed event and terminate emission without a
// worker command ever being appended — yield-based early exit, never a
// panic or error return, per spec §4.6 item 3 and §7's domain-validation
// contract.
func sagaStepHandlersStart(m ir.WorkflowModel) string {
	saga := m.SagaClassName()
	contextsByStep := map[string]ir.ContextModel{}
	for _, c := range m.Contexts {
		contextsByStep[c.PrecedingStepName] = c
	}

	var b strings.Builder
	for _, s := range allOrderedSteps(m) {
		x := pascal(s.PhaseName())
		fmt.Fprintf(&b, "func (s *%s) HandleStart%sCommand(cmd Start%sCommand) []any {\n", saga, x, x)
		fmt.Fprintf(&b, "\ts.Phase = %s\n", phaseConst(m, s.PhaseName()))
		if s.HasValidation() {
			predicate := rewriteStateSelector(s.ValidationPredicate)
			fmt.Fprintf(&b, "\tif !(%s) {\n", predicate)
			fmt.Fprintf(&b, "\t\ts.Phase = %s\n", phaseConst(m, "ValidationFailed"))
			fmt.Fprintf(&b, "\t\treturn []any{%sValidationFailed{WorkflowID: s.WorkflowID, StepExecutionID: cmd.WorkflowID, Message: %q}}\n", m.PascalName(), s.ValidationErrorMessage)
			b.WriteString("\t}\n")
		}
		if c, ok := contextsByStep[s.PhaseName()]; ok && len(m.Contexts) > 0 {
			fmt.Fprintf(&b, "\treturn []any{Execute%sWorkerCommand{WorkflowID: cmd.WorkflowID, StepExecutionID: cmd.WorkflowID, State: s.State, Context: %s}}\n", s.StepTypeName, contextMapLiteral(c))
		} else {
			fmt.Fprintf(&b, "\treturn []any{Execute%sWorkerCommand{WorkflowID: cmd.WorkflowID, StepExecutionID: cmd.WorkflowID, State: s.State}}\n", s.StepTypeName)
		}
		b.WriteString("}\n\n")
	}
	return b.String()
}

// contextMapLiteral renders a WithContext construct's source entries as
// a map literal: Literal entries splice their value text verbatim,
// FromState entries resolve to the saga's own State field, and
// FromRetrieval entries splice the captured retrieval-config expression
// text verbatim (the generator never evaluates it, only relocates it).
func contextMapLiteral(c ir.ContextModel) string {
	var b strings.Builder
	b.WriteString("map[string]any{")
	for _, src := range c.Sources {
		switch src.Kind {
		case ir.LiteralSource:
			fmt.Fprintf(&b, "%q: %q, ", src.Key, src.LiteralValue)
		case ir.StateSource:
			fmt.Fprintf(&b, "%q: s.State.%s, ", src.Key, src.StatePath)
		case ir.RetrievalSource:
			fmt.Fprintf(&b, "%q: %s, ", src.Key, src.RetrievalConfig)
		}
	}
	b.WriteString("}")
	return b.String()
}

// rewriteStateSelector rewrites a captured lambda-parameter-prefixed
// expression (e.g. "s.Total > 0") onto the saga's State field, per
// spec §9's lexical lambda-parameter substitution note.
func rewriteStateSelector(expr string) string {
	fields := strings.Fields(expr)
	if len(fields) == 0 {
		return expr
	}
	// Heuristic token-boundary rewrite: replace "<param>." with "State."
	// wherever the captured parameter identifier is the receiver of a
	// selector expression. The oracle hands us source text, not an AST,
	// so this is a textual substitution per spec §9. The parameter
	// identifier is read off the expression's leading selector; an
	// expression that does not begin with one is returned unchanged.
	dot := strings.IndexByte(expr, '.')
	if dot <= 0 {
		return expr
	}
	param := expr[:dot]
	if !isIdent(param) {
		return expr
	}
	var b strings.Builder
	for i := 0; i < len(expr); {
		prev := byte(' ')
		if i > 0 {
			prev = expr[i-1]
		}
		if strings.HasPrefix(expr[i:], param+".") && prev != '.' && !isIdent("x"+string(prev)) {
			b.WriteString("State.")
			i += len(param) + 1
			continue
		}
		b.WriteByte(expr[i])
		i++
	}
	return b.String()
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9') {
			continue
		}
		return false
	}
	return true
}

// allOrderedSteps flattens linear, fork-path, and branch-path steps in
// source order, for handlers that are emitted once per step regardless
// of structural context.
func allOrderedSteps(m ir.WorkflowModel) []ir.StepModel {
	return m.Steps
}
