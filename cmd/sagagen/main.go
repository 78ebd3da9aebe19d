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

// Package main implements the sagagen CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "sagagen",
		Short:   "sagagen compiles declarative workflow definitions into saga code",
		Long:    `sagagen scans Go source for sagagen:workflow-marked declarations and emits the phase, command, event, transition, saga, handler, extension, reducer, and diagram artifacts for each one.`,
		Version: version,
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(diagnosticsCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
