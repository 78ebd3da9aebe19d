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
Package genlog is structured JSON logging shared by the sagagen
compiler and the saga code it emits. It trades the per-tenant
(client_id, request_id) correlation of a multi-tenant service log for
per-workflow-instance (workflow, run_id) correlation, since neither
sagagen itself nor a generated saga has a tenant concept. It lives
under runtime/ rather than internal/ because generated sagas import it
from whatever consumer module sagagen was run against — Go's internal/
visibility rule would make that import illegal for any module but
sagagen's own.
*/
package genlog

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// Level is the severity of a log entry.
type Level string

const (
	INFO  Level = "INFO"
	WARN  Level = "WARN"
	ERROR Level = "ERROR"
)

// Logger emits structured, single-line JSON log entries to stdout.
type Logger struct {
	Component  string
	InstanceID string
}

// Entry is one structured log record.
type Entry struct {
	Timestamp string                 `json:"timestamp"`
	Level     Level                  `json:"level"`
	Component string                 `json:"component"`
	Instance  string                 `json:"instance_id"`
	Workflow  string                 `json:"workflow,omitempty"`
	RunID     string                 `json:"run_id,omitempty"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// New creates a Logger for the named component. InstanceID comes from
// the INSTANCE_ID environment variable set at deployment, the same
// convention sagagen's other emitted artifacts assume for correlating
// log lines back to a running replica.
func New(component string) *Logger {
	instanceID := os.Getenv("INSTANCE_ID")
	if instanceID == "" {
		instanceID = "unknown"
	}
	return &Logger{Component: component, InstanceID: instanceID}
}

func (l *Logger) log(level Level, workflow, runID, message string, fields map[string]interface{}) {
	entry := Entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Component: l.Component,
		Instance:  l.InstanceID,
		Workflow:  workflow,
		RunID:     runID,
		Message:   message,
		Fields:    fields,
	}
	b, err := json.Marshal(entry)
	if err != nil {
		log.Printf("ERROR: genlog: failed to marshal entry: %v", err)
		return
	}
	log.Println(string(b))
}

// Info logs an informational message.
func (l *Logger) Info(workflow, runID, message string, fields map[string]interface{}) {
	l.log(INFO, workflow, runID, message, fields)
}

// Error logs an error message.
func (l *Logger) Error(workflow, runID, message string, fields map[string]interface{}) {
	l.log(ERROR, workflow, runID, message, fields)
}

// Warn logs a warning message.
func (l *Logger) Warn(workflow, runID, message string, fields map[string]interface{}) {
	l.log(WARN, workflow, runID, message, fields)
}
