/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"testing"
	"time"
)

func readSchema(t *testing.T, ctx context.Context, c *Cache) int {
	t.Helper()
	var schema int
	if err := c.db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&schema); err != nil {
		t.Fatalf("read schema: %v", err)
	}
	return schema
}

func TestMigrations_FreshCacheIsLatest(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	c, err := OpenCache(ctx, t.TempDir(), 0)
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	defer c.Close()
	if got := readSchema(t, ctx, c); got != latestSchema() || got != 1 {
		t.Fatalf("schema = %d, want 1", got)
	}
}

// TestMigrations_AppliesPendingSteps opens a schema 1 cache after a step was added.
func TestMigrations_AppliesPendingSteps(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	dir := t.TempDir()
	c, err := OpenCache(ctx, dir, 0)
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	if err := c.Put(ctx, ThumbKey{Type: "input", Content: "Input", W: 10, H: 10, Rev: 1}, []byte{1}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	c.Close()

	prev := migrations
	migrations = [][]string{{`CREATE INDEX IF NOT EXISTS idx_thumbs_size ON thumbs(size);`}}
	t.Cleanup(func() { migrations = prev })

	c, err = OpenCache(ctx, dir, 0)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c.Close()
	if got := readSchema(t, ctx, c); got != 2 {
		t.Fatalf("schema = %d, want 2", got)
	}
	var name string
	if err := c.db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type='index' AND name='idx_thumbs_size'`).Scan(&name); err != nil {
		t.Fatalf("migration index missing: %v", err)
	}
	if n, _ := c.Len(ctx); n != 1 {
		t.Fatalf("rows lost during migration: %d", n)
	}
}

func TestMigrations_NewerSchemaLeftAlone(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	dir := t.TempDir()
	c, err := OpenCache(ctx, dir, 0)
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	if _, err := c.db.ExecContext(ctx, `UPDATE version SET schema=7 WHERE id=1`); err != nil {
		t.Fatalf("stamp schema: %v", err)
	}
	c.Close()

	c, err = OpenCache(ctx, dir, 0)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c.Close()
	if got := readSchema(t, ctx, c); got != 7 {
		t.Fatalf("schema = %d, want 7", got)
	}
}
