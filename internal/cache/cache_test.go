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

package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func TestFingerprintStableOnUnchangedInput(t *testing.T) {
	a := Fingerprint("process-order", 1, "StartWith(...)")
	b := Fingerprint("process-order", 1, "StartWith(...)")
	require.Equal(t, a, b)
}

func TestFingerprintChangesOnSourceEdit(t *testing.T) {
	a := Fingerprint("process-order", 1, "StartWith(ValidateOrder)")
	b := Fingerprint("process-order", 1, "StartWith(ReserveInventory)")
	require.NotEqual(t, a, b)
}

func TestMemStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	entry := Entry{Fingerprint: "abc", Artifacts: map[string]string{"Foo.g.go": "package foo"}}
	require.NoError(t, store.Put(ctx, "abc", entry))

	got, ok, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entry, got)
}

func setupMiniredisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, "sagagen-test")
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := setupMiniredisStore(t)

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	entry := Entry{Fingerprint: "abc", Artifacts: map[string]string{"Foo.g.go": "package foo"}}
	require.NoError(t, store.Put(ctx, "abc", entry))

	got, ok, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entry, got)
}

func TestRedisStoreNamespacesKeysByPrefix(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	a := NewRedisStore(client, "projectA")
	b := NewRedisStore(client, "projectB")

	require.NoError(t, a.Put(ctx, "key", Entry{Fingerprint: "key"}))
	_, ok, err := b.Get(ctx, "key")
	require.NoError(t, err)
	require.False(t, ok, "a different prefix must not see another project's entries")
}
