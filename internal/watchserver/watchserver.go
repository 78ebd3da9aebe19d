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
Package watchserver runs sagagen as a long-lived process: a source
control webhook or file watcher can POST to /notify to trigger a
regeneration pass without re-invoking the CLI, while /healthz and
/metrics let an operator monitor it the way any other AxonFlow service
is monitored.
*/
package watchserver

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/axonflow/sagagen/runtime/genlog"
	"github.com/axonflow/sagagen/internal/oracle"
)

var watchLog = genlog.New("sagagen-watch")

// GenerateFunc runs one full generation pass and reports how many
// declarations were processed and how many failed.
type GenerateFunc func(ctx context.Context) (processed int, failed int, err error)

// Server exposes health, metrics, and a JWT-authenticated regeneration
// trigger over HTTP.
type Server struct {
	generate  GenerateFunc
	jwtSecret []byte

	mu        sync.RWMutex
	lastRunAt time.Time
	lastErr   error
}

// New builds a Server that calls generate whenever /notify receives a
// validly-signed request. jwtSecret verifies the bearer token's HMAC
// signature; /notify is otherwise unreachable.
func New(generate GenerateFunc, jwtSecret []byte) *Server {
	return &Server{generate: generate, jwtSecret: jwtSecret}
}

// Router builds the mux.Router the caller listens with, wrapped in a
// permissive CORS policy suitable for a webhook-triggered internal tool.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	r.HandleFunc("/healthz", s.handleHealthz).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/notify", s.handleNotify).Methods("POST")

	return c.Handler(r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	lastRunAt, lastErr := s.lastRunAt, s.lastErr
	s.mu.RUnlock()

	status := "healthy"
	if lastErr != nil {
		status = "degraded"
	}

	body := map[string]interface{}{
		"status":      status,
		"service":     "sagagen-watch",
		"last_run_at": lastRunAt,
	}
	if lastErr != nil {
		body["last_error"] = lastErr.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	processed, failed, err := s.generate(r.Context())

	s.mu.Lock()
	s.lastRunAt = time.Now().UTC()
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		watchLog.Error("", "", "notify-triggered generation failed: "+err.Error(), nil)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	watchLog.Info("", "", "notify-triggered generation completed", map[string]interface{}{
		"processed": processed,
		"failed":    failed,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"processed": processed,
		"failed":    failed,
	})
}

// authorized validates the request's Bearer token against jwtSecret.
// A Server with no configured secret rejects every /notify call, since
// an unauthenticated regeneration trigger would let any caller force
// work on the host running it.
func (s *Server) authorized(r *http.Request) bool {
	if len(s.jwtSecret) == 0 {
		return false
	}
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return false
	}
	tokenString := header[len(prefix):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	return err == nil && token.Valid
}

// GenerateFuncFromOracle adapts a SyntaxOracle load step plus the
// generate package's Run into the GenerateFunc shape the server calls.
func GenerateFuncFromOracle(loadOracle func() (oracle.SyntaxOracle, error), run func(context.Context, oracle.SyntaxOracle) (processed, failed int, err error)) GenerateFunc {
	return func(ctx context.Context) (int, int, error) {
		o, err := loadOracle()
		if err != nil {
			return 0, 0, err
		}
		return run(ctx, o)
	}
}
