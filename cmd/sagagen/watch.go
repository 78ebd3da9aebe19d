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
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/axonflow/sagagen/internal/genconfig"
	"github.com/axonflow/sagagen/internal/generate"
	"github.com/axonflow/sagagen/internal/oracle"
	"github.com/axonflow/sagagen/internal/watchserver"
)

func watchCmd() *cobra.Command {
	var configPath string
	var jwtSecretEnv string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run sagagen as a long-lived service with a regeneration webhook",
		Long: `watch starts an HTTP server exposing /healthz, /metrics, and a
JWT-authenticated /notify endpoint that triggers a full regeneration
pass, so a source control webhook can drive generation without
re-invoking the CLI for every push.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := genconfig.Load(configPath)
			if err != nil {
				return err
			}
			if cfg.WatchAddr == "" {
				return fmt.Errorf("watch: watch_addr must be set in %s", configPath)
			}

			secret := os.Getenv(jwtSecretEnv)
			if secret == "" {
				return fmt.Errorf("watch: %s must be set to a JWT signing secret", jwtSecretEnv)
			}

			genFn := watchserver.GenerateFuncFromOracle(
				func() (oracle.SyntaxOracle, error) {
					paths, err := collectGoFiles(cfg.SourceDirs)
					if err != nil {
						return nil, err
					}
					return oracle.Load(paths...)
				},
				func(ctx context.Context, o oracle.SyntaxOracle) (int, int, error) {
					results, err := generate.RunWithCache(ctx, o, openCacheStore(cfg))
					if err != nil {
						return 0, 0, err
					}
					var failed int
					for _, res := range results {
						if res.Err != nil || res.Skipped {
							failed++
							continue
						}
						if err := generate.WriteArtifacts(cfg.OutputDir, res); err != nil {
							failed++
							continue
						}
					}
					return len(results), failed, nil
				},
			)

			srv := watchserver.New(genFn, []byte(secret))
			fmt.Printf("sagagen watch listening on %s\n", cfg.WatchAddr)
			return http.ListenAndServe(cfg.WatchAddr, srv.Router())
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "sagagen.yaml", "path to the sagagen config file")
	cmd.Flags().StringVar(&jwtSecretEnv, "jwt-secret-env", "SAGAGEN_JWT_SECRET", "environment variable naming the /notify JWT signing secret")
	return cmd
}
