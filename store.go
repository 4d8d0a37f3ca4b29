package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// errRecordNotFound is returned by loadRecord when the key has no record.
var errRecordNotFound = errors.New("record not found")

// recordStore is the opaque per-user key-value store holding assessment and
// plan records as JSON documents.
type recordStore interface {
	// get returns ok=false, with no error, when the key is absent.
	get(ctx context.Context, key string) (record []byte, ok bool, err error)
	// setAll replaces every key in records, or none of them.
	setAll(ctx context.Context, records map[string][]byte) error
}

func assessmentKey(userID int) string {
	return fmt.Sprintf("assessment_%d", userID)
}

func planKey(userID int) string {
	return fmt.Sprintf("nutrition_plan_%d", userID)
}

// loadRecord fetches key and decodes it into T.
func loadRecord[T any](ctx context.Context, s recordStore, key string) (T, error) {
	var zero T
	raw, ok, err := s.get(ctx, key)
	if err != nil {
		return zero, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return zero, errRecordNotFound
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, nil
}

// saveRecord encodes v and replaces whatever was stored under key.
func saveRecord(ctx context.Context, s recordStore, key string, v any) error {
	return saveRecords(ctx, s, map[string]any{key: v})
}

// saveRecords encodes every value and writes them in one step: after an
// error none of the keys has changed.
func saveRecords(ctx context.Context, s recordStore, values map[string]any) error {
	raw := make(map[string][]byte, len(values))
	for key, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		raw[key] = b
	}
	if err := s.setAll(ctx, raw); err != nil {
		return fmt.Errorf("set %s: %w", strings.Join(slices.Sorted(maps.Keys(raw)), ", "), err)
	}
	return nil
}

/* ─── Postgres implementation ───────────────────────────────────────── */

// pgRecordStore keeps records in the user_records table (key text primary
// key, record jsonb).
type pgRecordStore struct {
	pool *pgxpool.Pool
}

func (s *pgRecordStore) get(ctx context.Context, key string) ([]byte, bool, error) {
	var record string
	err := s.pool.QueryRow(ctx,
		"SELECT record::text FROM user_records WHERE key = @key",
		pgx.NamedArgs{"key": key}).Scan(&record)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(record), true, nil
}

// setAll upserts the records in one transaction, in key order. Values are
// sent as text and cast server-side because the pool runs in simple-protocol
// mode, which would encode []byte as bytea.
func (s *pgRecordStore) setAll(ctx context.Context, records map[string][]byte) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		for _, key := range slices.Sorted(maps.Keys(records)) {
			_, err := tx.Exec(ctx,
				`INSERT INTO user_records (key, record)
				 VALUES (@key, @record::jsonb)
				 ON CONFLICT (key) DO UPDATE SET record = EXCLUDED.record, updated_at = now()`,
				pgx.NamedArgs{"key": key, "record": string(records[key])})
			if err != nil {
				return err
			}
		}
		return nil
	})
}
