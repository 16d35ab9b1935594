package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sitecert/core/renewal"
)

const DefaultKeyPrefix = "sitecert"

var _ renewal.Store = (*RenewalStore)(nil)

// RenewalStore implements renewal.Store backed by Redis.
type RenewalStore struct {
	client redis.UniversalClient
	prefix string
}

type StoreOption func(*RenewalStore)

// WithKeyPrefix namespaces every key used by the store.
func WithKeyPrefix(prefix string) StoreOption {
	return func(s *RenewalStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

func NewRenewalStore(client redis.UniversalClient, opts ...StoreOption) *RenewalStore {
	s := &RenewalStore{client: client, prefix: DefaultKeyPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RenewalStore) recordKey(id string) string { return s.prefix + ":renewal:" + id }
func (s *RenewalStore) indexKey() string          { return s.prefix + ":renewals" }

func (s *RenewalStore) Save(ctx context.Context, r *renewal.Renewal) error {
	if err := r.Validate(); err != nil {
		return err
	}
	data, err := renewal.Marshal(r)
	if err != nil {
		return err
	}

	id := r.ID.String()
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.recordKey(id), data, 0)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(r.CreatedAt.UnixMicro()), Member: id})
		return nil
	})
	if err != nil {
		return fmt.Errorf("save renewal: %w", err)
	}
	return nil
}

func (s *RenewalStore) Get(ctx context.Context, id uuid.UUID) (*renewal.Renewal, error) {
	data, err := s.client.Get(ctx, s.recordKey(id.String())).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("renewal %s: %w", id, renewal.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get renewal: %w", err)
	}
	return renewal.Unmarshal(data)
}

func (s *RenewalStore) List(ctx context.Context) ([]*renewal.Renewal, error) {
	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list renewals: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.recordKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list renewals: %w", err)
	}

	out := make([]*renewal.Renewal, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			// index entry without record; removed by a concurrent delete
			continue
		}
		r, err := renewal.Unmarshal([]byte(str))
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *RenewalStore) Delete(ctx context.Context, id uuid.UUID) error {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.recordKey(id.String()))
		pipe.ZRem(ctx, s.indexKey(), id.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete renewal: %w", err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("renewal %s: %w", id, renewal.ErrNotFound)
	}
	return nil
}
