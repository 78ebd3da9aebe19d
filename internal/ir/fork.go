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

// ForkPathModel is one concurrent arm of a Fork.
type ForkPathModel struct {
	PathIndex               int
	StepNames               []string
	HasFailureHandler       bool
	IsTerminalOnFailure     bool
	FailureHandlerStepNames []string // nil if HasFailureHandler is false
}

// ForkModel is one Fork(...).Join<T>() construct.
type ForkModel struct {
	ForkID           string
	PreviousStepName string
	Paths            []ForkPathModel
	JoinStepName     string
}
