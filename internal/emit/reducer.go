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

const reducerTmpl = `{{.Header}}

// {{.ReducerType}} merges two {{.StateType}} values property-wise per
// their declared kind: Standard overwrites, Append concatenates,
// Merge dictionary-merges with the update's entries taking precedence.
type {{.ReducerType}} struct{}

// Reduce returns the result of applying update onto current.
func ({{.ReducerType}}) Reduce(current, update {{.StateType}}) {{.StateType}} {
	result := current
{{- range .Assignments}}
	{{.}}
{{- end}}
	return result
}
{{if .HasMerge}}
// mergeDictionaries overlays update's entries onto a copy of current,
// with update's values winning on key collision.
func mergeDictionaries[K comparable, V any](current, update map[K]V) map[K]V {
	out := make(map[K]V, len(current)+len(update))
	for k, v := range current {
		out[k] = v
	}
	for k, v := range update {
		out[k] = v
	}
	return out
}
{{end}}
`

// Reducer emits the state type's reducer of spec §4.6, named by
// sm.ReducerTypeName() (the state type name plus "Reducer").
func Reducer(sm ir.StateModel) (string, error) {
	var assignments []string
	hasMerge := false
	for _, p := range sm.Properties {
		switch p.Kind {
		case ir.Append:
			assignments = append(assignments, fmt.Sprintf(
				"result.%s = append(append([]%s{}, current.%s...), update.%s...)",
				p.Name, elementTypeOf(p.TypeName), p.Name, p.Name))
		case ir.Merge:
			hasMerge = true
			assignments = append(assignments, fmt.Sprintf("result.%s = mergeDictionaries(current.%s, update.%s)", p.Name, p.Name, p.Name))
		default:
			assignments = append(assignments, fmt.Sprintf("result.%s = update.%s", p.Name, p.Name))
		}
	}

	type data struct {
		Header      string
		ReducerType string
		StateType   string
		Assignments []string
		HasMerge    bool
	}
	return render("reducer", reducerTmpl, data{
		Header:      header(sm.Namespace),
		ReducerType: sm.ReducerTypeName(),
		StateType:   sm.TypeName,
		Assignments: assignments,
		HasMerge:    hasMerge,
	})
}

// elementTypeOf strips a collection type name down to its element type
// for an append-kind property, e.g. "[]string" -> "string".
func elementTypeOf(collectionType string) string {
	return strings.TrimPrefix(collectionType, "[]")
}
