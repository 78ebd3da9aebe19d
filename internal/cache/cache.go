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
Package cache implements the generator's incremental build cache: a
declaration whose Define method's source text hasn't changed since the
last run can skip re-extraction and re-emission entirely, returning its
previously written artifacts instead. The cache is keyed by a
fingerprint of the declaration's name, version, and source text, so any
edit anywhere in its chain invalidates the entry.
*/
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
)

// Entry is one cached declaration's artifact set, keyed by fingerprint.
type Entry struct {
	Fingerprint string            `json:"fingerprint"`
	Artifacts   map[string]string `json:"artifacts"`
}

// Store persists generation results keyed by declaration fingerprint.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, key string, entry Entry) error
}

// Fingerprint hashes a declaration's identity and source text into a
// cache key stable across runs on unchanged source, but sensitive to
// any change in name, version, or body.
func Fingerprint(workflowName string, version int, sourceText string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s:%d:%s", workflowName, version, sourceText)
	return hex.EncodeToString(h.Sum(nil))
}

// MemStore is an in-process cache whose entries last only as long as the
// process.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemStore returns an empty in-memory Store.
func NewMemStore() *MemStore {
	return &MemStore{entries: map[string]Entry{}}
}

func (m *MemStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e, ok, nil
}

func (m *MemStore) Put(ctx context.Context, key string, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry
	return nil
}

// RedisStore persists cache entries in Redis, so an incremental build
// cache can be shared across CI runners or watch-server instances.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an already-connected Redis client. keyPrefix
// namespaces cache keys so multiple sagagen configs can share one
// Redis instance without colliding.
func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{client: client, prefix: keyPrefix}
}

func (r *RedisStore) redisKey(key string) string {
	return r.prefix + ":" + key
}

func (r *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	data, err := r.client.Get(ctx, r.redisKey(key)).Bytes()
	if err == redis.Nil {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("cache: redis get %s: %w", key, err)
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false, fmt.Errorf("cache: decode entry %s: %w", key, err)
	}
	return entry, true, nil
}

func (r *RedisStore) Put(ctx context.Context, key string, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("cache: encode entry %s: %w", key, err)
	}
	if err := r.client.Set(ctx, r.redisKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("cache: redis set %s: %w", key, err)
	}
	return nil
}
