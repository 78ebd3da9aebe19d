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

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"

	"github.com/axonflow/sagagen/internal/cache"
	"github.com/axonflow/sagagen/internal/diag"
	"github.com/axonflow/sagagen/internal/genconfig"
	"github.com/axonflow/sagagen/internal/generate"
	"github.com/axonflow/sagagen/internal/oracle"
)

// openCacheStore builds the incremental build cache store a config
// requests: a Redis-backed store when cache_dir names a Redis address,
// or nil (no caching) when left empty.
func openCacheStore(cfg *genconfig.Config) cache.Store {
	if cfg.CacheDir == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.CacheDir})
	return cache.NewRedisStore(client, "sagagen")
}

func generateCmd() *cobra.Command {
	var configPath string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate saga artifacts for every marked workflow declaration",
		Long: `generate scans the configured source directories for sagagen:workflow
declarations and writes each one's Phase, Commands, Events, Transitions,
Saga, Handlers, Extensions, Reducer, and Diagram artifacts to the
configured output directory.

Examples:
  sagagen generate --config sagagen.yaml
  sagagen generate --config sagagen.yaml --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := genconfig.Load(configPath)
			if err != nil {
				return err
			}

			paths, err := collectGoFiles(cfg.SourceDirs)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("generate: no Go source files found under %v", cfg.SourceDirs)
			}

			o, err := oracle.Load(paths...)
			if err != nil {
				return err
			}

			if cfg.MaxConcurrency > 0 {
				generate.MaxConcurrency = cfg.MaxConcurrency
			}

			results, err := generate.RunWithCache(context.Background(), o, openCacheStore(cfg))
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}

			var failed bool
			for _, res := range results {
				printDiagnostics(res.WorkflowName, res.Diagnostics)
				if res.Err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", res.WorkflowName, res.Err)
					failed = true
					continue
				}
				if res.Skipped {
					fmt.Printf("%s: skipped (fatal diagnostics)\n", res.WorkflowName)
					continue
				}
				if dryRun {
					for _, a := range res.Artifacts {
						fmt.Printf("%s: would write %s\n", res.WorkflowName, a.FileName)
					}
					continue
				}
				if err := generate.WriteArtifacts(cfg.OutputDir, res); err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", res.WorkflowName, err)
					failed = true
					continue
				}
				fmt.Printf("%s: wrote %d artifacts to %s\n", res.WorkflowName, len(res.Artifacts), cfg.OutputDir)
			}
			if failed {
				return fmt.Errorf("generate: one or more workflows failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "sagagen.yaml", "path to the sagagen config file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the artifacts that would be written without writing them")
	return cmd
}

func diagnosticsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "diagnostics",
		Short: "Run diagnostics without writing artifacts",
		Long:  `diagnostics extracts and diagnoses every marked workflow declaration and reports findings without emitting any files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := genconfig.Load(configPath)
			if err != nil {
				return err
			}

			paths, err := collectGoFiles(cfg.SourceDirs)
			if err != nil {
				return err
			}

			o, err := oracle.Load(paths...)
			if err != nil {
				return err
			}

			results, err := generate.Run(context.Background(), o)
			if err != nil {
				return err
			}

			var anyFindings bool
			for _, res := range results {
				if len(res.Diagnostics) > 0 {
					anyFindings = true
				}
				printDiagnostics(res.WorkflowName, res.Diagnostics)
			}
			if !anyFindings {
				fmt.Println("no diagnostics reported")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "sagagen.yaml", "path to the sagagen config file")
	return cmd
}

func printDiagnostics(workflow string, diagnostics []diag.Diagnostic) {
	for _, d := range diagnostics {
		fmt.Printf("%s: [%s] %s: %s (%s)\n", workflow, d.Severity, d.Code, d.Message, d.Location)
	}
}

// collectGoFiles walks every source directory and returns its .go
// files, excluding tests and previously generated (*.g.go) artifacts so
// a generate run never re-analyzes its own output.
func collectGoFiles(dirs []string) ([]string, error) {
	var out []string
	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			if !strings.HasSuffix(path, ".go") {
				return nil
			}
			if strings.HasSuffix(path, "_test.go") || strings.HasSuffix(path, ".g.go") {
				return nil
			}
			out = append(out, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("collectGoFiles: %w", err)
		}
	}
	return out, nil
}
