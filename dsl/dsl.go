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
Package dsl is the fluent workflow-definition surface that sagagen's
generator statically analyzes. A workflow declaration is an ordinary
Go type whose marked "Define" method returns a chain of Builder calls:

	// sagagen:workflow name="process-order" version=1
	type ProcessOrderWorkflow struct{}

	func (ProcessOrderWorkflow) Define() *dsl.Builder[OrderState] {
		return dsl.Create[OrderState]("process-order").
			StartWith(dsl.Step[ValidateOrder]()).
			Then(dsl.Step[ProcessPayment]()).
			Then(dsl.Step[SendConfirmation]()).
			Finally(dsl.Step[Complete]())
	}

The generator never executes this chain: it reads the chain's own
source text through go/ast. Builder's methods are implemented here only
so that workflow declarations compile and can, if a caller chooses, be
interpreted directly (useful for unit-testing a workflow's shape without
running the generator) — execution semantics are a convenience, not the
source of truth; the generated saga is.
*/
package dsl

import "reflect"

// StepRef identifies a step type, optionally overriding its effective
// name (the Go form of Then[T]("instance-name")).
type StepRef struct {
	Type         reflect.Type
	InstanceName string
}

// Step captures a type argument as a StepRef, the Go substitute for a
// method-level generic type argument (see package doc).
func Step[T any](instanceName ...string) StepRef {
	name := ""
	if len(instanceName) > 0 {
		name = instanceName[0]
	}
	return StepRef{Type: reflect.TypeFor[T](), InstanceName: name}
}

// Builder accumulates a workflow's fluent call chain. TState is the
// workflow's state type, resolved by the oracle from Create's type
// argument.
type Builder[TState any] struct {
	calls []call
}

type call struct {
	kind string
	args []any
}

// Create begins a new workflow declaration named name.
func Create[TState any](name string) *Builder[TState] {
	b := &Builder[TState]{}
	b.calls = append(b.calls, call{kind: "Create", args: []any{name}})
	return b
}

func (b *Builder[TState]) StartWith(step StepRef) *Builder[TState] {
	b.calls = append(b.calls, call{kind: "StartWith", args: []any{step}})
	return b
}

func (b *Builder[TState]) Then(step StepRef) *Builder[TState] {
	b.calls = append(b.calls, call{kind: "Then", args: []any{step}})
	return b
}

func (b *Builder[TState]) Finally(step StepRef) *Builder[TState] {
	b.calls = append(b.calls, call{kind: "Finally", args: []any{step}})
	return b
}

func (b *Builder[TState]) Join(step StepRef) *Builder[TState] {
	b.calls = append(b.calls, call{kind: "Join", args: []any{step}})
	return b
}

// ValidateState attaches a guard to the step that follows it in the chain.
func (b *Builder[TState]) ValidateState(predicate func(TState) bool, errorMessage string) *Builder[TState] {
	b.calls = append(b.calls, call{kind: "ValidateState", args: []any{predicate, errorMessage}})
	return b
}

// LoopBuilder accumulates the body of a RepeatUntil loop.
type LoopBuilder[TState any] struct {
	inner *Builder[TState]
}

func (lb *LoopBuilder[TState]) Then(step StepRef) *LoopBuilder[TState] {
	lb.inner.Then(step)
	return lb
}

// RepeatUntil repeats body until cond(state) is true, or maxIterations
// is reached. loopName must be non-empty for the loop to be recognized.
func (b *Builder[TState]) RepeatUntil(cond func(TState) bool, loopName string, body func(*LoopBuilder[TState]), maxIterations int) *Builder[TState] {
	lb := &LoopBuilder[TState]{inner: &Builder[TState]{}}
	if body != nil {
		body(lb)
	}
	b.calls = append(b.calls, call{kind: "RepeatUntil", args: []any{cond, loopName, lb.inner.calls, maxIterations}})
	return b
}

// CaseOption is one arm of a Branch (When or Otherwise).
type CaseOption[TState any] struct {
	Value    any
	IsOther  bool
	pathFunc func(*PathBuilder[TState])
}

// When matches a discriminator value to a path.
func When[TState any](value any, path func(*PathBuilder[TState])) CaseOption[TState] {
	return CaseOption[TState]{Value: value, pathFunc: path}
}

// Otherwise is the default branch arm.
func Otherwise[TState any](path func(*PathBuilder[TState])) CaseOption[TState] {
	return CaseOption[TState]{IsOther: true, pathFunc: path}
}

// PathBuilder accumulates one Branch/Fork path's steps.
type PathBuilder[TState any] struct {
	inner *Builder[TState]
}

func (pb *PathBuilder[TState]) Then(step StepRef) *PathBuilder[TState] {
	pb.inner.Then(step)
	return pb
}

func (pb *PathBuilder[TState]) OnFailure(handler func(*FailureBuilder[TState])) *PathBuilder[TState] {
	fb := &FailureBuilder[TState]{inner: &Builder[TState]{}}
	if handler != nil {
		handler(fb)
	}
	pb.inner.calls = append(pb.inner.calls, call{kind: "OnFailure", args: []any{fb.inner.calls, fb.terminal}})
	return pb
}

// Branch dispatches on discriminator to one of cases.
func (b *Builder[TState]) Branch(discriminator func(TState) any, cases ...CaseOption[TState]) *Builder[TState] {
	compiled := make([]compiledCase, len(cases))
	for i, c := range cases {
		pb := &PathBuilder[TState]{inner: &Builder[TState]{}}
		if c.pathFunc != nil {
			c.pathFunc(pb)
		}
		compiled[i] = compiledCase{value: c.Value, isOther: c.IsOther, calls: pb.inner.calls}
	}
	b.calls = append(b.calls, call{kind: "Branch", args: []any{discriminator, compiled}})
	return b
}

type compiledCase struct {
	value   any
	isOther bool
	calls   []call
}

// Fork runs paths concurrently; each path is joined by the Join that
// follows in the chain.
func (b *Builder[TState]) Fork(paths ...func(*PathBuilder[TState])) *Builder[TState] {
	compiled := make([][]call, len(paths))
	for i, p := range paths {
		pb := &PathBuilder[TState]{inner: &Builder[TState]{}}
		if p != nil {
			p(pb)
		}
		compiled[i] = pb.inner.calls
	}
	b.calls = append(b.calls, call{kind: "Fork", args: []any{compiled}})
	return b
}

// FailureBuilder accumulates the steps of a failure handler.
type FailureBuilder[TState any] struct {
	inner    *Builder[TState]
	terminal bool
}

func (fb *FailureBuilder[TState]) Then(step StepRef) *FailureBuilder[TState] {
	fb.inner.Then(step)
	return fb
}

func (fb *FailureBuilder[TState]) Complete() *FailureBuilder[TState] {
	fb.terminal = true
	return fb
}

// OnFailure attaches a workflow-scoped failure handler.
func (b *Builder[TState]) OnFailure(handler func(*FailureBuilder[TState])) *Builder[TState] {
	fb := &FailureBuilder[TState]{inner: &Builder[TState]{}}
	if handler != nil {
		handler(fb)
	}
	b.calls = append(b.calls, call{kind: "OnFailure", args: []any{fb.inner.calls, fb.terminal}})
	return b
}

// ApprovalBuilder configures an AwaitApproval point.
type ApprovalBuilder[TState any] struct {
	rejection  *FailureBuilder[TState]
	escalation *EscalationBuilder[TState]
}

func (ab *ApprovalBuilder[TState]) OnRejection(handler func(*FailureBuilder[TState])) *ApprovalBuilder[TState] {
	fb := &FailureBuilder[TState]{inner: &Builder[TState]{}}
	if handler != nil {
		handler(fb)
	}
	ab.rejection = fb
	return ab
}

func (ab *ApprovalBuilder[TState]) OnTimeout(handler func(*EscalationBuilder[TState])) *ApprovalBuilder[TState] {
	eb := &EscalationBuilder[TState]{inner: &Builder[TState]{}}
	if handler != nil {
		handler(eb)
	}
	ab.escalation = eb
	return ab
}

// EscalationBuilder accumulates an escalation/timeout handler's steps,
// including nested EscalateTo calls.
type EscalationBuilder[TState any] struct {
	inner    *Builder[TState]
	escalate *StepRef
	terminal bool
}

func (eb *EscalationBuilder[TState]) Then(step StepRef) *EscalationBuilder[TState] {
	eb.inner.Then(step)
	return eb
}

func (eb *EscalationBuilder[TState]) EscalateTo(approver StepRef) *EscalationBuilder[TState] {
	eb.escalate = &approver
	return eb
}

func (eb *EscalationBuilder[TState]) Complete() *EscalationBuilder[TState] {
	eb.terminal = true
	return eb
}

// AwaitApproval pauses the workflow for an out-of-band decision by approver.
func (b *Builder[TState]) AwaitApproval(approver StepRef, configure func(*ApprovalBuilder[TState])) *Builder[TState] {
	ab := &ApprovalBuilder[TState]{}
	if configure != nil {
		configure(ab)
	}
	b.calls = append(b.calls, call{kind: "AwaitApproval", args: []any{approver, ab}})
	return b
}

// ContextBuilder configures per-step context sources (WithContext).
type ContextBuilder[TState any] struct {
	sources []contextSource[TState]
}

type contextSource[TState any] struct {
	kind     string // literal | state | retrieval
	key      string
	value    any
	selector func(TState) any
}

func (cb *ContextBuilder[TState]) Literal(key string, value any) *ContextBuilder[TState] {
	cb.sources = append(cb.sources, contextSource[TState]{kind: "literal", key: key, value: value})
	return cb
}

func (cb *ContextBuilder[TState]) FromState(key string, selector func(TState) any) *ContextBuilder[TState] {
	cb.sources = append(cb.sources, contextSource[TState]{kind: "state", key: key, selector: selector})
	return cb
}

func (cb *ContextBuilder[TState]) FromRetrieval(key string, config any) *ContextBuilder[TState] {
	cb.sources = append(cb.sources, contextSource[TState]{kind: "retrieval", key: key, value: config})
	return cb
}

// WithContext attaches context sources to the preceding step.
func (b *Builder[TState]) WithContext(configure func(*ContextBuilder[TState])) *Builder[TState] {
	cb := &ContextBuilder[TState]{}
	if configure != nil {
		configure(cb)
	}
	b.calls = append(b.calls, call{kind: "WithContext", args: []any{cb.sources}})
	return b
}
