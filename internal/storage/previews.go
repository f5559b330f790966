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
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ThumbKey identifies one rendered thumbnail variant.
type ThumbKey struct {
	Type    string
	Content string
	W, H    int
	Rev     int
}

func (k ThumbKey) valid() error {
	if k.Type == "" {
		return errors.New("thumb key: type is required")
	}
	if k.W <= 0 || k.H <= 0 {
		return fmt.Errorf("thumb key: invalid size %dx%d", k.W, k.H)
	}
	return nil
}

// Get returns the cached blob for k and marks it most recently used.
// A miss returns (nil, false, nil).
func (c *Cache) Get(ctx context.Context, k ThumbKey) ([]byte, bool, error) {
	if err := k.valid(); err != nil {
		return nil, false, err
	}
	var blob []byte
	err := c.db.QueryRowContext(ctx, `SELECT blob FROM thumbs WHERE type=? AND content=? AND w=? AND h=? AND rev=?`,
		k.Type, k.Content, k.W, k.H, k.Rev).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query thumb: %w", err)
	}
	// touch
	_, _ = c.db.ExecContext(ctx, `UPDATE thumbs SET last_access=(SELECT COALESCE(MAX(last_access),0)+1 FROM thumbs)
		WHERE type=? AND content=? AND w=? AND h=? AND rev=?`, k.Type, k.Content, k.W, k.H, k.Rev)
	return blob, true, nil
}

// Put upserts a thumbnail and evicts least recently used rows beyond the entry cap.
func (c *Cache) Put(ctx context.Context, k ThumbKey, blob []byte) error {
	if err := k.valid(); err != nil {
		return err
	}
	if len(blob) == 0 {
		return errors.New("thumb blob is empty")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := c.db.ExecContext(ctx, `INSERT INTO thumbs(type,content,w,h,rev,blob,size,updated_at,last_access)
		VALUES(?,?,?,?,?,?,?,?,(SELECT COALESCE(MAX(last_access),0)+1 FROM thumbs))
		ON CONFLICT(type,content,w,h,rev) DO UPDATE SET blob=excluded.blob, size=excluded.size, updated_at=excluded.updated_at, last_access=excluded.last_access`,
		k.Type, k.Content, k.W, k.H, k.Rev, blob, len(blob), now)
	if err != nil {
		return fmt.Errorf("upsert thumb: %w", err)
	}
	n, err := c.Evict(ctx, c.maxEntries)
	if err != nil {
		return err
	}
	if n > 0 {
		c.log.Debug("evicted thumbnails", slog.Int("count", n))
	}
	return nil
}

// GetOrCreate fetches a thumbnail or renders it with gen and stores the result.
func (c *Cache) GetOrCreate(ctx context.Context, k ThumbKey, gen func(context.Context) ([]byte, error)) ([]byte, error) {
	if b, ok, err := c.Get(ctx, k); err != nil {
		return nil, err
	} else if ok {
		return b, nil
	}
	if gen == nil {
		return nil, nil
	}
	data, err := gen(ctx)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	if err := c.Put(ctx, k, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Evict deletes least recently used rows until at most max remain.
// It returns the number of rows removed.
func (c *Cache) Evict(ctx context.Context, max int) (int, error) {
	if max < 0 {
		max = 0
	}
	total, err := c.Len(ctx)
	if err != nil {
		return 0, err
	}
	if total <= max {
		return 0, nil
	}
	rows, err := c.db.QueryContext(ctx, `SELECT id FROM thumbs ORDER BY last_access ASC, id ASC LIMIT ?`, total-max)
	if err != nil {
		return 0, fmt.Errorf("select victims: %w", err)
	}
	victims := make([]any, 0, total-max)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return 0, err
		}
		victims = append(victims, id)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, err
	}
	// close the cursor before writing
	if err := rows.Close(); err != nil {
		return 0, err
	}
	if len(victims) == 0 {
		return 0, nil
	}
	q := `DELETE FROM thumbs WHERE id IN (` + strings.TrimSuffix(strings.Repeat("?,", len(victims)), ",") + `)`
	res, err := c.db.ExecContext(ctx, q, victims...)
	if err != nil {
		return 0, fmt.Errorf("evict delete: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// InvalidateType drops every cached variant of a component type.
func (c *Cache) InvalidateType(ctx context.Context, typ string) (int, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM thumbs WHERE type=?`, typ)
	if err != nil {
		return 0, fmt.Errorf("invalidate %s: %w", typ, err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// Len reports the number of cached thumbnails.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM thumbs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count thumbs: %w", err)
	}
	return n, nil
}

// TotalBytes returns the summed blob size of all cached thumbnails.
func (c *Cache) TotalBytes(ctx context.Context) (int64, error) {
	var total int64
	if err := c.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(size),0) FROM thumbs`).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum thumbs: %w", err)
	}
	return total, nil
}
