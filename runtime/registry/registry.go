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
Package registry is the minimal transient-scope service registry a
generated Add<Workflow>Workflow helper registers step types and worker
handlers against. No example in the retrieval pack carries a DI
container library (google/wire, uber-go/dig, uber-go/fx all require
either code generation of their own or reflection-based graph building
that doesn't fit a generator-emitted call site), so this is a deliberate
stdlib-only exception: a map keyed by reflect.Type is the simplest
mechanism that still lets emitted code look like DI registration rather
than hand-wired constructors.
*/
package registry

import "reflect"

// Registry holds transient-scope factories keyed by the service type
// they construct.
type Registry struct {
	factories map[reflect.Type]func() any
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{factories: make(map[reflect.Type]func() any)}
}

// AddTransient registers T's zero value as a fresh instance for every
// resolution — "transient" in the sense that no instance is shared.
func AddTransient[T any](r *Registry) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	r.factories[t] = func() any {
		var v T
		return v
	}
}

// Resolve returns a new T, panicking if T was never registered — a
// resolve against an unregistered type is a wiring bug, not a runtime
// condition to recover from.
func Resolve[T any](r *Registry) T {
	t := reflect.TypeOf((*T)(nil)).Elem()
	factory, ok := r.factories[t]
	if !ok {
		panic("registry: no transient registered for " + t.String())
	}
	return factory().(T)
}
