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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordDiagnosticsIncrementsByCodeAndSeverity(t *testing.T) {
	DiagnosticsTotal.Reset()

	RecordDiagnostics([][2]string{
		{"AGWF001", "fatal"},
		{"AGWF001", "fatal"},
		{"AGWF010", "warning"},
	})

	require.Equal(t, float64(2), testutil.ToFloat64(DiagnosticsTotal.WithLabelValues("AGWF001", "fatal")))
	require.Equal(t, float64(1), testutil.ToFloat64(DiagnosticsTotal.WithLabelValues("AGWF010", "warning")))
}

func TestGenerationsTotalLabelsByOutcome(t *testing.T) {
	GenerationsTotal.Reset()

	GenerationsTotal.WithLabelValues("process-order", "generated").Inc()
	GenerationsTotal.WithLabelValues("process-order", "cached").Inc()
	GenerationsTotal.WithLabelValues("process-order", "cached").Inc()

	require.Equal(t, float64(1), testutil.ToFloat64(GenerationsTotal.WithLabelValues("process-order", "generated")))
	require.Equal(t, float64(2), testutil.ToFloat64(GenerationsTotal.WithLabelValues("process-order", "cached")))
}

func TestArtifactsAndCacheCountersAccumulate(t *testing.T) {
	before := testutil.ToFloat64(ArtifactsWrittenTotal)
	ArtifactsWrittenTotal.Add(3)
	require.Equal(t, before+3, testutil.ToFloat64(ArtifactsWrittenTotal))

	beforeHits := testutil.ToFloat64(CacheHitsTotal)
	CacheHitsTotal.Inc()
	require.Equal(t, beforeHits+1, testutil.ToFloat64(CacheHitsTotal))
}
