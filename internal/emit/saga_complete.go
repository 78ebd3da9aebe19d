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

	"github.com/axonflow/sagagen/internal/ir"
)

// sagaMarkCompleted is sub-emitter 12 of spec §4.6's Saga: it leaves a
// Failed phase as it is, sets any other phase to Completed, and in both
// cases returns the runtime's completion sentinel.
func sagaMarkCompleted(m ir.WorkflowModel) string {
	saga := m.SagaClassName()
	return fmt.Sprintf(`func (s *%s) markCompleted() []any {
	if s.Phase != %s {
		s.Phase = %s
	}
	return []any{sagaruntime.Complete(s.WorkflowID)}
}

`, saga, phaseConst(m, "Failed"), phaseConst(m, "Completed"))
}
