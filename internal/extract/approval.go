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
	"strconv"
	"strings"

	"github.com/axonflow/sagagen/internal/ir"
	"github.com/axonflow/sagagen/internal/oracle"
	"github.com/axonflow/sagagen/internal/parsectx"
	"github.com/axonflow/sagagen/internal/walker"
)

// Approvals runs the Approval Extractor of spec §4.4.
func Approvals(ctx *parsectx.Context) []ir.ApprovalModel {
	nodes := walker.Walk(ctx)

	var out []ir.ApprovalModel
	count := 0
	for _, inv := range ctx.Invocations {
		if inv.MethodName != "AwaitApproval" {
			continue
		}
		count++
		out = append(out, approvalModel(ctx.Invocations, nodes, inv, count))
	}
	return out
}

func approvalModel(all []oracle.Invocation, nodes []walker.Node, inv oracle.Invocation, ordinal int) ir.ApprovalModel {
	approverType := stepTypeName(inv)
	name := strings.TrimSuffix(approverType, "Approver")
	if name == "" {
		name = "Approval" + strconv.Itoa(ordinal)
	}

	m := ir.ApprovalModel{
		ApprovalPointName: name,
		ApproverTypeName:  approverType,
		PrecedingStepName: precedingStepName(all, nodes, inv),
	}

	if len(inv.LambdaArguments) == 0 {
		return m
	}
	for _, cfg := range invocationsIn(all, inv.LambdaArguments[0]) {
		switch cfg.MethodName {
		case "OnRejection":
			m.RejectionSteps, m.IsRejectionTerminal = handlerSteps(all, cfg)
		case "OnTimeout":
			esc, terminal := handlerEscalation(all, cfg)
			if len(esc.nested) > 0 {
				m.EscalationSteps = append(m.EscalationSteps, esc.steps...)
				m.NestedEscalation = append(m.NestedEscalation, esc.nested...)
				m.IsEscalationTerminal = m.IsEscalationTerminal || terminal
			} else {
				m.TimedOutSteps = append(m.TimedOutSteps, esc.steps...)
				m.IsTimedOutTerminal = m.IsTimedOutTerminal || terminal
			}
		}
	}
	return m
}

// handlerSteps gathers an OnRejection/OnTimeout handler's top-level
// Then<T> calls and reports whether it calls Complete().
func handlerSteps(all []oracle.Invocation, wrapper oracle.Invocation) ([]string, bool) {
	if len(wrapper.LambdaArguments) == 0 {
		return nil, false
	}
	var steps []string
	terminal := false
	for _, inv := range invocationsIn(all, wrapper.LambdaArguments[0]) {
		switch inv.MethodName {
		case "Then":
			steps = append(steps, stepEffectiveName(inv))
		case "Complete":
			terminal = true
		}
	}
	return steps, terminal
}

type escalationResult struct {
	steps  []string
	nested []ir.ApprovalModel
}

// handlerEscalation gathers an escalation handler's Then<T>/EscalateTo
// calls, recursing into EscalateTo<TApprover> as a nested ApprovalModel
// whose PrecedingStepName is the literal "Escalation" (spec §4.4).
func handlerEscalation(all []oracle.Invocation, wrapper oracle.Invocation) (escalationResult, bool) {
	res := escalationResult{}
	terminal := false
	if len(wrapper.LambdaArguments) == 0 {
		return res, terminal
	}
	for _, inv := range invocationsIn(all, wrapper.LambdaArguments[0]) {
		switch inv.MethodName {
		case "Then":
			res.steps = append(res.steps, stepEffectiveName(inv))
		case "Complete":
			terminal = true
		case "EscalateTo":
			nested := ir.ApprovalModel{
				ApprovalPointName: strings.TrimSuffix(stepTypeName(inv), "Approver"),
				ApproverTypeName:  stepTypeName(inv),
				PrecedingStepName: "Escalation",
			}
			res.nested = append(res.nested, nested)
		}
	}
	return res, terminal
}
