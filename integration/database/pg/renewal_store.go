package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/sitecert/core/renewal"
)

var _ renewal.Store = (*RenewalStore)(nil)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RenewalStore implements renewal.Store backed by PostgreSQL.
// Statements join the transaction attached with WithTx, if any.
type RenewalStore struct {
	pool *pgxpool.Pool
}

func NewRenewalStore(pool *pgxpool.Pool) *RenewalStore {
	return &RenewalStore{pool: pool}
}

func (s *RenewalStore) q(ctx context.Context) querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return s.pool
}

func (s *RenewalStore) Save(ctx context.Context, r *renewal.Renewal) error {
	if err := r.Validate(); err != nil {
		return err
	}
	tgt, err := renewal.EncodeTarget(r)
	if err != nil {
		return err
	}

	var storeOptions any
	if len(r.StoreOptions) > 0 {
		storeOptions = string(r.StoreOptions)
	}

	_, err = s.q(ctx).Exec(ctx, `
		INSERT INTO renewals (id, target, store_plugin, store_options, created_at, updated_at)
		VALUES ($1, $2::jsonb, $3, $4::jsonb, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			target = EXCLUDED.target,
			store_plugin = EXCLUDED.store_plugin,
			store_options = EXCLUDED.store_options,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at`,
		r.ID, string(tgt), r.StorePlugin, storeOptions, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save renewal: %w", err)
	}
	return nil
}

func (s *RenewalStore) Get(ctx context.Context, id uuid.UUID) (*renewal.Renewal, error) {
	row := s.q(ctx).QueryRow(ctx, `
		SELECT id, target::text, store_plugin, store_options::text, created_at, updated_at
		FROM renewals WHERE id = $1`, id)

	r, err := scanRenewal(row)
	if IsNotFoundError(err) {
		return nil, fmt.Errorf("renewal %s: %w", id, renewal.ErrNotFound)
	}
	return r, err
}

func (s *RenewalStore) List(ctx context.Context) ([]*renewal.Renewal, error) {
	rows, err := s.q(ctx).Query(ctx, `
		SELECT id, target::text, store_plugin, store_options::text, created_at, updated_at
		FROM renewals ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list renewals: %w", err)
	}
	defer rows.Close()

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
	tag, err := s.q(ctx).Exec(ctx, `DELETE FROM renewals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete renewal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("renewal %s: %w", id, renewal.ErrNotFound)
	}
	return nil
}

func scanRenewal(row pgx.Row) (*renewal.Renewal, error) {
	var (
		r                renewal.Renewal
		tgt              string
		storeOptions     *string
		created, updated time.Time
	)
	if err := row.Scan(&r.ID, &tgt, &r.StorePlugin, &storeOptions, &created, &updated); err != nil {
		if IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("scan renewal: %w", err)
	}
	r.CreatedAt = created.UTC()
	r.UpdatedAt = updated.UTC()
	if storeOptions != nil {
		r.StoreOptions = []byte(*storeOptions)
	}
	if err := renewal.DecodeTarget(&r, []byte(tgt)); err != nil {
		return nil, err
	}
	return &r, nil
}
