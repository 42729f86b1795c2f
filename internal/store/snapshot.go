package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo on the ent SQL driver.
type snapshotRepo struct {
	drv *entsql.Driver
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	b, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}
	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := builder().Insert(tableSnapshots).
		Columns("sequence", "created_at", "data").
		Values(snap.Sequence, ts.UnixMilli(), string(b)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	query, args := builder().Select("id", "sequence", "created_at", "data").
		From(entsql.Table(tableSnapshots)).
		OrderBy(entsql.Desc("id")).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var (
		snap      Snapshot
		createdAt int64
		data      string
	)
	if err := rows.Scan(&snap.ID, &snap.Sequence, &createdAt, &data); err != nil {
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	snap.Timestamp = time.UnixMilli(createdAt)
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// Find the ID threshold: the Nth most recent snapshot.
	query, args := builder().Select("id").
		From(entsql.Table(tableSnapshots)).
		OrderBy(entsql.Desc("id")).
		Offset(keep).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}
	var threshold int64
	found := rows.Next()
	if found {
		if err := rows.Scan(&threshold); err != nil {
			rows.Close()
			return fmt.Errorf("scan prune threshold: %w", err)
		}
	}
	rows.Close()
	if !found {
		return nil // fewer than keep snapshots exist
	}

	query, args = builder().Delete(tableSnapshots).
		Where(entsql.LTE("id", threshold)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
