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

package watchserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret []byte, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "ci", "exp": time.Now().Add(expiresIn).Unix()}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func TestHealthzReportsHealthyBeforeAnyRun(t *testing.T) {
	srv := New(func(ctx context.Context) (int, int, error) { return 0, 0, nil }, []byte("secret"))
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestNotifyRejectsMissingToken(t *testing.T) {
	called := false
	srv := New(func(ctx context.Context) (int, int, error) { called = true; return 1, 0, nil }, []byte("secret"))
	req := httptest.NewRequest(http.MethodPost, "/notify", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)
}

func TestNotifyRejectsWhenNoSecretConfigured(t *testing.T) {
	srv := New(func(ctx context.Context) (int, int, error) { return 1, 0, nil }, nil)
	req := httptest.NewRequest(http.MethodPost, "/notify", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []byte("irrelevant"), time.Minute))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNotifyTriggersGenerateOnValidToken(t *testing.T) {
	secret := []byte("watch-secret")
	var got bool
	srv := New(func(ctx context.Context) (int, int, error) { got = true; return 3, 1, nil }, secret)

	req := httptest.NewRequest(http.MethodPost, "/notify", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, secret, time.Minute))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, got)
	require.Contains(t, rec.Body.String(), `"processed":3`)
	require.Contains(t, rec.Body.String(), `"failed":1`)
}

func TestNotifyReportsFailureAndDegradesHealthz(t *testing.T) {
	secret := []byte("watch-secret")
	srv := New(func(ctx context.Context) (int, int, error) { return 0, 0, context.DeadlineExceeded }, secret)

	req := httptest.NewRequest(http.MethodPost, "/notify", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, secret, time.Minute))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	healthReq := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	healthRec := httptest.NewRecorder()
	srv.Router().ServeHTTP(healthRec, healthReq)
	require.Contains(t, healthRec.Body.String(), `"status":"degraded"`)
}

func TestMetricsEndpointServesPrometheusFormat(t *testing.T) {
	srv := New(func(ctx context.Context) (int, int, error) { return 0, 0, nil }, []byte("secret"))
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
