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
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOpenCache_RebuildsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(CachePath(dir), []byte("THIS IS NOT SQLITE"), 0o644); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c, err := OpenCache(ctx, dir, 4)
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	defer c.Close()
	if err := c.Put(ctx, ThumbKey{Type: "input", W: 1, H: 1, Rev: 1}, []byte("x")); err != nil {
		t.Fatalf("rebuilt cache not writable: %v", err)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "backups"))
	if len(entries) == 0 {
		t.Fatalf("expected a backup of the corrupt file")
	}
}

func TestOpenCache_RequiresDir(t *testing.T) {
	if _, err := OpenCache(context.Background(), "  ", 0); err == nil {
		t.Fatalf("expected error for blank dir")
	}
}

func TestOpenCache_ReopenKeepsRows(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	c, err := OpenCache(ctx, dir, 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	k := ThumbKey{Type: "button", Content: "Button", W: 8, H: 8, Rev: 1}
	if err := c.Put(ctx, k, []byte("png")); err != nil {
		t.Fatalf("put: %v", err)
	}
	_ = c.Close()
	c2, err := OpenCache(ctx, dir, 0)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c2.Close()
	if _, ok, _ := c2.Get(ctx, k); !ok {
		t.Fatalf("row lost across reopen")
	}
	if c2.Path() != CachePath(dir) {
		t.Fatalf("unexpected path %q", c2.Path())
	}
}
