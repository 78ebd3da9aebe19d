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

// LoopModel is one RepeatUntil construct.
type LoopModel struct {
	LoopName             string
	ConditionID          string
	MaxIterations        int
	FirstBodyStepName    string
	LastBodyStepName     string
	ContinuationStepName string // empty if none
	ParentLoopName       string // full prefix of the enclosing loop; empty if top-level
}

// FullPrefix is the hierarchical loop-name prefix for steps in this loop.
func (l LoopModel) FullPrefix() string {
	if l.ParentLoopName == "" {
		return l.LoopName
	}
	return l.ParentLoopName + "_" + l.LoopName
}
