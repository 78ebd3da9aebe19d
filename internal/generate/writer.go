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

package generate

import (
	"os"
	"path/filepath"
)

// WriteArtifacts writes a Result's artifacts under dir, creating it if
// necessary. A skipped or errored Result has no artifacts and is a
// no-op.
func WriteArtifacts(dir string, res Result) error {
	if len(res.Artifacts) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, a := range res.Artifacts {
		path := filepath.Join(dir, a.FileName)
		if err := os.WriteFile(path, []byte(a.Content), 0o644); err != nil {
			return err
		}
	}
	return nil
}
