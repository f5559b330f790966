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
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

func openTestCache(t *testing.T, max int) *Cache {
	t.Helper()
	c, err := OpenCache(context.Background(), t.TempDir(), max)
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func key(typ string, w int) ThumbKey {
	return ThumbKey{Type: typ, Content: typ + " content", W: w, H: 40, Rev: 1}
}

func TestThumbsPutGet(t *testing.T) {
	c := openTestCache(t, 10)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, ok, err := c.Get(ctx, key("button", 80)); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if err := c.Put(ctx, key("button", 80), []byte("png-a")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := c.Get(ctx, key("button", 80))
	if err != nil || !ok || !bytes.Equal(got, []byte("png-a")) {
		t.Fatalf("get: %q ok=%v err=%v", got, ok, err)
	}
	// a different revision is a different variant
	k2 := key("button", 80)
	k2.Rev = 2
	if _, ok, _ := c.Get(ctx, k2); ok {
		t.Fatalf("revision must be part of the key")
	}
	// upsert replaces
	if err := c.Put(ctx, key("button", 80), []byte("png-b")); err != nil {
		t.Fatalf("put again: %v", err)
	}
	if n, _ := c.Len(ctx); n != 1 {
		t.Fatalf("expected 1 row after upsert, got %d", n)
	}
	if total, _ := c.TotalBytes(ctx); total != 5 {
		t.Fatalf("expected 5 bytes, got %d", total)
	}
}

func TestThumbsRejectBadKeys(t *testing.T) {
	c := openTestCache(t, 10)
	ctx := context.Background()
	if err := c.Put(ctx, ThumbKey{W: 10, H: 10}, []byte("x")); err == nil {
		t.Fatalf("expected error for empty type")
	}
	if err := c.Put(ctx, ThumbKey{Type: "input"}, []byte("x")); err == nil {
		t.Fatalf("expected error for zero size")
	}
	if err := c.Put(ctx, key("input", 10), nil); err == nil {
		t.Fatalf("expected error for empty blob")
	}
}

func TestThumbsLRUEviction(t *testing.T) {
	c := openTestCache(t, 2)
	ctx := context.Background()
	for _, w := range []int{10, 20} {
		if err := c.Put(ctx, key("input", w), []byte("x")); err != nil {
			t.Fatalf("put %d: %v", w, err)
		}
	}
	// touch the oldest so the 20px variant becomes the victim
	if _, ok, _ := c.Get(ctx, key("input", 10)); !ok {
		t.Fatalf("expected hit")
	}
	if err := c.Put(ctx, key("input", 30), []byte("x")); err != nil {
		t.Fatalf("put 30: %v", err)
	}
	if n, _ := c.Len(ctx); n != 2 {
		t.Fatalf("expected cap of 2 rows, got %d", n)
	}
	if _, ok, _ := c.Get(ctx, key("input", 20)); ok {
		t.Fatalf("least recently used entry survived")
	}
	for _, w := range []int{10, 30} {
		if _, ok, _ := c.Get(ctx, key("input", w)); !ok {
			t.Fatalf("entry %d evicted", w)
		}
	}
	if n, err := c.Evict(ctx, 0); err != nil || n != 2 {
		t.Fatalf("evict all: n=%d err=%v", n, err)
	}
}

func TestGetOrCreate(t *testing.T) {
	c := openTestCache(t, 10)
	ctx := context.Background()
	calls := 0
	gen := func(context.Context) ([]byte, error) {
		calls++
		return []byte("rendered"), nil
	}
	for i := 0; i < 3; i++ {
		b, err := c.GetOrCreate(ctx, key("slider", 50), gen)
		if err != nil || string(b) != "rendered" {
			t.Fatalf("GetOrCreate: %q %v", b, err)
		}
	}
	if calls != 1 {
		t.Fatalf("generator should run once, ran %d times", calls)
	}
	boom := errors.New("boom")
	if _, err := c.GetOrCreate(ctx, key("slider", 60), func(context.Context) ([]byte, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected generator error, got %v", err)
	}
	if b, err := c.GetOrCreate(ctx, key("slider", 70), nil); err != nil || b != nil {
		t.Fatalf("nil generator should yield nil, got %q %v", b, err)
	}
}

func TestInvalidateType(t *testing.T) {
	c := openTestCache(t, 10)
	ctx := context.Background()
	_ = c.Put(ctx, key("input", 10), []byte("a"))
	_ = c.Put(ctx, key("input", 20), []byte("b"))
	_ = c.Put(ctx, key("button", 10), []byte("c"))
	n, err := c.InvalidateType(ctx, "input")
	if err != nil || n != 2 {
		t.Fatalf("invalidate: n=%d err=%v", n, err)
	}
	if left, _ := c.Len(ctx); left != 1 {
		t.Fatalf("expected 1 row left, got %d", left)
	}
}
