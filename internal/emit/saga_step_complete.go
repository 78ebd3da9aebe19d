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

// successorKind classifies what a step's completion handler dispatches
// to next.
type successorKind int

const (
	successorNext successorKind = iota
	successorLoop
	successorBranch
	successorForkJoin
	successorForkDispatch
	successorTerminal
)

type successor struct {
	kind      successorKind
	nextPhase string // successorNext
	loopID    string // successorLoop: pascal(FullPrefix)
	branchID  string // successorBranch
	forkID    string
	pathIndex int
}

// sagaStepHandlersComplete is sub-emitter 4 of spec §4.6's Saga: one
// completion-phase handler per step, applying the reducer and then
// dispatching to whichever structural successor the step has —
// linear, branch routing, loop completion, fork join, or MarkCompleted.
func sagaStepHandlersComplete(m ir.WorkflowModel) string {
	saga := m.SagaClassName()
	successors := buildSuccessors(m)

	var b strings.Builder
	for _, s := range m.Steps {
		x := pascal(s.PhaseName())
		fmt.Fprintf(&b, "func (s *%s) Handle%sCompleted(event %sCompleted) []any {\n", saga, x, x)
		fmt.Fprintf(&b, "\ts.State = (%s{}).Reduce(s.State, event.State)\n", m.ReducerTypeName())

		next := successors[s.PhaseName()]
		switch next.kind {
		case successorLoop:
			fmt.Fprintf(&b, "\treturn s.complete%sLoop()\n", next.loopID)
		case successorBranch:
			fmt.Fprintf(&b, "\treturn s.route%sBranch()\n", next.branchID)
		case successorForkJoin:
			fmt.Fprintf(&b, "\treturn s.join%sPath%d()\n", next.forkID, next.pathIndex)
		case successorForkDispatch:
			fmt.Fprintf(&b, "\treturn s.dispatch%sFork()\n", next.forkID)
		case successorNext:
			fmt.Fprintf(&b, "\treturn []any{Start%sCommand{WorkflowID: s.WorkflowID}}\n", next.nextPhase)
		default:
			b.WriteString("\treturn s.markCompleted()\n")
		}
		b.WriteString("}\n\n")
	}
	return b.String()
}

// buildSuccessors computes, for every step's phase name, what its
// completion handler dispatches to — threading through linear chains,
// fork-path interiors, and branch-case interiors alike.
func buildSuccessors(m ir.WorkflowModel) map[string]successor {
	out := map[string]successor{}

	loopLast := map[string]ir.LoopModel{}
	for _, l := range m.Loops {
		loopLast[l.FullPrefix()+"_"+l.LastBodyStepName] = l
	}
	branchPred := map[string]ir.BranchModel{}
	for _, br := range m.Branches {
		branchPred[br.PreviousStepName] = br
	}
	forkPred := map[string]ir.ForkModel{}
	for _, f := range m.Forks {
		forkPred[f.PreviousStepName] = f
	}

	chain := func(names []string) {
		for i, name := range names {
			if _, ok := out[name]; ok {
				continue
			}
			switch {
			case hasKey(loopLast, name):
				l := loopLast[name]
				out[name] = successor{kind: successorLoop, loopID: pascal(l.FullPrefix())}
			case hasBranch(branchPred, name):
				br := branchPred[name]
				out[name] = successor{kind: successorBranch, branchID: pascal(br.BranchID)}
			case hasForkPred(forkPred, name):
				f := forkPred[name]
				out[name] = successor{kind: successorForkDispatch, forkID: pascal(f.ForkID)}
			case i+1 < len(names):
				out[name] = successor{kind: successorNext, nextPhase: pascal(names[i+1])}
			default:
				out[name] = successor{kind: successorTerminal}
			}
		}
	}

	var linearNames []string
	for _, s := range linearSteps(m) {
		linearNames = append(linearNames, s.PhaseName())
	}
	chain(linearNames)

	for _, br := range m.Branches {
		for _, c := range br.Cases {
			chain(c.StepNames)
			if len(c.StepNames) > 0 {
				last := c.StepNames[len(c.StepNames)-1]
				if s, ok := out[last]; !ok || s.kind == successorTerminal {
					if br.RejoinStepName != "" {
						out[last] = successor{kind: successorNext, nextPhase: pascal(br.RejoinStepName)}
					}
				}
			}
		}
	}

	for _, f := range m.Forks {
		for _, p := range f.Paths {
			chain(p.StepNames)
			if len(p.StepNames) == 0 {
				continue
			}
			last := p.StepNames[len(p.StepNames)-1]
			out[last] = successor{kind: successorForkJoin, forkID: pascal(f.ForkID), pathIndex: p.PathIndex}
		}
	}

	return out
}

func hasKey(m map[string]ir.LoopModel, k string) bool {
	_, ok := m[k]
	return ok
}

func hasBranch(m map[string]ir.BranchModel, k string) bool {
	_, ok := m[k]
	return ok
}

func hasForkPred(m map[string]ir.ForkModel, k string) bool {
	_, ok := m[k]
	return ok
}
