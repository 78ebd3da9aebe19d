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
Package diag implements the non-aborting diagnostics subsystem of spec
§4.5/§7.1: ten checks that run after extraction and report structural
problems without failing the generation pass, except AGWF001 and
AGWF004 which cause the whole workflow to be skipped.
*/
package diag

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/axonflow/sagagen/internal/ir"
)

// Severity is a diagnostic's urgency.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "Error"
	}
	return "Warning"
}

// Code is one of the ten diagnostic codes of spec §4.5.
type Code string

const (
	AGWF001 Code = "AGWF001" // workflow name empty/whitespace
	AGWF002 Code = "AGWF002" // no step invocations found
	AGWF003 Code = "AGWF003" // duplicate effective_name in Linear/ForkPath, same loop prefix
	AGWF004 Code = "AGWF004" // workflow type declared outside any namespace
	AGWF009 Code = "AGWF009" // no StartWith as first step method
	AGWF010 Code = "AGWF010" // no Finally terminator
	AGWF012 Code = "AGWF012" // Fork without matching Join
	AGWF014 Code = "AGWF014" // RepeatUntil body has no step method
	AGSR001 Code = "AGSR001" // Append attribute on non-collection property
	AGSR002 Code = "AGSR002" // Merge attribute on non-dictionary property
)

// Diagnostic is one reported finding, correlated by a generated ID for
// structured log lookups.
type Diagnostic struct {
	ID       string
	Code     Code
	Severity Severity
	Message  string
	Location string
}

func newDiagnostic(code Code, sev Severity, location, format string, args ...any) Diagnostic {
	return Diagnostic{
		ID:       uuid.NewString(),
		Code:     code,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		Location: location,
	}
}

// Fatal reports whether d should cause the entire workflow to be
// skipped rather than merely flagged (spec §7.1).
func (d Diagnostic) Fatal() bool {
	return d.Code == AGWF001 || d.Code == AGWF004
}

// Input bundles everything a diagnostic check needs: the assembled
// model plus the extractors' raw (pre-dedup) step list AGWF003 requires.
type Input struct {
	Model        ir.WorkflowModel
	RawSteps     []ir.StepModel
	Namespace    string
	HasNamespace bool
	HasFinally   bool
	Properties   []ir.StatePropertyModel
}

// Run executes every check and returns the full diagnostic set.
func Run(in Input) []Diagnostic {
	var out []Diagnostic
	out = append(out, checkWorkflowName(in)...)
	out = append(out, checkNoSteps(in)...)
	out = append(out, checkDuplicateNames(in)...)
	out = append(out, checkNamespace(in)...)
	out = append(out, checkFirstStepIsStartWith(in)...)
	out = append(out, checkFinallyPresent(in)...)
	out = append(out, checkForkJoin(in)...)
	out = append(out, checkLoopHasSteps(in)...)
	out = append(out, checkStateProperties(in)...)
	return out
}

func checkWorkflowName(in Input) []Diagnostic {
	if strings.TrimSpace(in.Model.WorkflowName) == "" {
		return []Diagnostic{newDiagnostic(AGWF001, Error, in.Model.WorkflowName,
			"workflow name is empty or whitespace")}
	}
	return nil
}

func checkNoSteps(in Input) []Diagnostic {
	if len(in.Model.Steps) == 0 {
		return []Diagnostic{newDiagnostic(AGWF002, Warning, in.Model.WorkflowName,
			"no step invocations found in workflow %q", in.Model.WorkflowName)}
	}
	return nil
}

func checkDuplicateNames(in Input) []Diagnostic {
	type key struct {
		name   string
		prefix string
	}
	seen := map[key]bool{}
	var out []Diagnostic
	for _, s := range in.RawSteps {
		if s.Context != ir.Linear && s.Context != ir.ForkPath {
			continue
		}
		k := key{name: s.EffectiveName(), prefix: s.LoopName}
		if seen[k] {
			out = append(out, newDiagnostic(AGWF003, Error, s.PhaseName(),
				"duplicate step name %q in loop prefix %q", s.EffectiveName(), s.LoopName))
			continue
		}
		seen[k] = true
	}
	return out
}

func checkNamespace(in Input) []Diagnostic {
	if !in.HasNamespace || strings.TrimSpace(in.Namespace) == "" {
		return []Diagnostic{newDiagnostic(AGWF004, Error, in.Model.WorkflowName,
			"workflow type declared outside any namespace")}
	}
	return nil
}

// checkFirstStepIsStartWith reports AGWF009 only when the model has no
// Linear step at all. The IR does not record which DSL method introduced
// a step, so a chain whose first step method is not StartWith is not
// reported.
func checkFirstStepIsStartWith(in Input) []Diagnostic {
	for _, s := range in.RawSteps {
		if s.Context == ir.Linear {
			return nil
		}
	}
	return []Diagnostic{newDiagnostic(AGWF009, Error, in.Model.WorkflowName,
		"no StartWith as first step method")}
}

func checkFinallyPresent(in Input) []Diagnostic {
	if in.HasFinally {
		return nil
	}
	return []Diagnostic{newDiagnostic(AGWF010, Warning, in.Model.WorkflowName,
		"no Finally terminator")}
}

func checkForkJoin(in Input) []Diagnostic {
	var out []Diagnostic
	for _, f := range in.Model.Forks {
		if f.JoinStepName == "" {
			out = append(out, newDiagnostic(AGWF012, Error, f.ForkID,
				"fork %q has no matching Join", f.ForkID))
		}
	}
	return out
}

func checkLoopHasSteps(in Input) []Diagnostic {
	var out []Diagnostic
	for _, l := range in.Model.Loops {
		if l.FirstBodyStepName == "" {
			out = append(out, newDiagnostic(AGWF014, Error, l.LoopName,
				"loop %q body has no step method", l.LoopName))
		}
	}
	return out
}

func checkStateProperties(in Input) []Diagnostic {
	var out []Diagnostic
	for _, p := range in.Properties {
		switch p.Kind {
		case ir.Append:
			if !isCollectionType(p.TypeName) {
				out = append(out, newDiagnostic(AGSR001, Error, p.Name,
					"append property %q is not a collection type (%s)", p.Name, p.TypeName))
			}
		case ir.Merge:
			if !isMapType(p.TypeName) {
				out = append(out, newDiagnostic(AGSR002, Error, p.Name,
					"merge property %q is not a dictionary type (%s)", p.Name, p.TypeName))
			}
		}
	}
	return out
}

func isCollectionType(typeName string) bool {
	return strings.HasPrefix(typeName, "[]")
}

func isMapType(typeName string) bool {
	return strings.HasPrefix(typeName, "map[")
}
