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

// FailureScope is the scope a failure handler applies to.
type FailureScope int

const (
	// WorkflowScope handlers run for any unhandled step failure.
	WorkflowScope FailureScope = iota
	// StepScope handlers are attached via step configuration
	// (.Compensate<T>()/.WithRetry/.WithTimeout) rather than standalone.
	StepScope
)

// FailureHandlerModel is one OnFailure(...) construct.
type FailureHandlerModel struct {
	HandlerID       string
	Scope           FailureScope
	StepNames       []string
	IsTerminal      bool
	TriggerStepName string // empty unless Scope == StepScope
}
