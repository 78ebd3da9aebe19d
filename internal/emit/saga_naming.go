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

// sagaNamingComment is sub-emitter 11 of spec §4.6's Saga: versioned
// naming itself is carried by ir.WorkflowModel.SagaClassName, so this
// sub-emitter contributes only the doc comment explaining why two
// versions can coexist side by side with no migration.
func sagaNamingComment(m ir.WorkflowModel) string {
	if m.Version <= 1 {
		return ""
	}
	return fmt.Sprintf("// %s is version %d of the %s saga; it coexists\n// with any other emitted version, with no migration between them.\n",
		m.SagaClassName(), m.Version, m.PascalName())
}
