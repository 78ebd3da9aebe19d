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
Package genconfig loads the generator's own configuration: which
package directories to scan for sagagen:workflow declarations, where to
write generated artifacts, and how much concurrency to allow across
independent declarations. Config files may reference environment
variables with ${VAR_NAME} or ${VAR_NAME:-default} syntax.
*/
package genconfig

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root structure of a sagagen.yaml config file.
type Config struct {
	Version        string   `yaml:"version"`
	SourceDirs     []string `yaml:"source_dirs"`
	OutputDir      string   `yaml:"output_dir"`
	MaxConcurrency int      `yaml:"max_concurrency,omitempty"`
	// CacheDir is the Redis address (host:port) backing the incremental
	// build cache. Left empty, generation never caches across runs.
	CacheDir  string `yaml:"cache_dir,omitempty"`
	WatchAddr string `yaml:"watch_addr,omitempty"`
}

// Load reads and parses a sagagen config file at path, expanding
// environment variable references before unmarshalling.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("genconfig: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("genconfig: parse %s: %w", path, err)
	}

	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 8
	}
}

// Validate checks that cfg is usable before a generation run starts.
func Validate(cfg *Config) error {
	if len(cfg.SourceDirs) == 0 {
		return fmt.Errorf("genconfig: source_dirs must name at least one directory")
	}
	if cfg.OutputDir == "" {
		return fmt.Errorf("genconfig: output_dir must not be empty")
	}
	return nil
}

// envVarRegex matches ${VAR_NAME} or ${VAR_NAME:-default}.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		inner := match[2 : len(match)-1]
		varName, defaultVal, hasDefault := strings.Cut(inner, ":-")
		if value := os.Getenv(varName); value != "" {
			return value
		}
		if hasDefault {
			return defaultVal
		}
		return ""
	})
}

// ExampleConfig returns an annotated example config file to start from.
func ExampleConfig() string {
	return `# sagagen generator configuration
version: "1"

source_dirs:
  - ./workflows

output_dir: ./internal/generated

max_concurrency: 8

# optional: enable incremental generation against a Redis-backed cache
cache_dir: ${SAGAGEN_CACHE_DIR:-}

# optional: address for the watch server's /healthz, /metrics, /notify
watch_addr: ${SAGAGEN_WATCH_ADDR:-:8090}
`
}
