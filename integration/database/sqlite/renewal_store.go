package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sitecert/core/renewal"
)

var _ renewal.Store = (*RenewalStore)(nil)

// RenewalStore implements renewal.Store backed by SQLite.
type RenewalStore struct {
	db *sql.DB
}

func NewRenewalStore(db *sql.DB) *RenewalStore {
	return &RenewalStore{db: db}
}

func (s *RenewalStore) Save(ctx context.Context, r *renewal.Renewal) error {
	if err := r.Validate(); err != nil {
		return err
	}
	tgt, err := renewal.EncodeTarget(r)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO renewals (id, target, store_plugin, store_options, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			target = excluded.target,
			store_plugin = excluded.store_plugin,
			store_options = excluded.store_options,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`,
		r.ID.String(), string(tgt), r.StorePlugin, nullString(r.StoreOptions),
		r.CreatedAt.UnixMicro(), r.UpdatedAt.UnixMicro(),
	)
	if err != nil {
		return fmt.Errorf("save renewal: %w", err)
	}
	return nil
}

func (s *RenewalStore) Get(ctx context.Context, id uuid.UUID) (*renewal.Renewal, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, target, store_plugin, store_options, created_at, updated_at
		FROM renewals WHERE id = ?`, id.String())

	r, err := scanRenewal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("renewal %s: %w", id, renewal.ErrNotFound)
	}
	return r, err
}

func (s *RenewalStore) List(ctx context.Context) ([]*renewal.Renewal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, target, store_plugin, store_options, created_at, updated_at
		FROM renewals ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list renewals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*renewal.Renewal
	for rows.Next() {
		r, err := scanRenewal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *RenewalStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM renewals WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete renewal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete renewal: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("renewal %s: %w", id, renewal.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRenewal(s scanner) (*renewal.Renewal, error) {
	var (
		id, tgt, storePlugin string
		storeOptions         sql.NullString
		created, updated     int64
	)
	if err := s.Scan(&id, &tgt, &storePlugin, &storeOptions, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan renewal: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("scan renewal id: %w", err)
	}
	r := &renewal.Renewal{
		ID:          parsed,
		StorePlugin: storePlugin,
		CreatedAt:   time.UnixMicro(created).UTC(),
		UpdatedAt:   time.UnixMicro(updated).UTC(),
	}
	if storeOptions.Valid {
		r.StoreOptions = []byte(storeOptions.String)
	}
	if err := renewal.DecodeTarget(r, []byte(tgt)); err != nil {
		return nil, err
	}
	return r, nil
}

func nullString(b []byte) sql.NullString {
	if len(b) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}
