package renewal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sitecert/core/target"
)

// Renewal is a scheduled certificate target.
type Renewal struct {
	ID           uuid.UUID       `json:"id"`
	Target       *target.Target  `json:"target"`
	StorePlugin  string          `json:"store_plugin,omitempty"`
	StoreOptions json.RawMessage `json:"store_options,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// New schedules t with a fresh id.
func New(t *target.Target) *Renewal {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &Renewal{
		ID:        uuid.New(),
		Target:    t,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the fields every store relies on.
func (r *Renewal) Validate() error {
	switch {
	case r == nil:
		return fmt.Errorf("%w: nil renewal", ErrInvalidRenewal)
	case r.ID == uuid.Nil:
		return fmt.Errorf("%w: missing id", ErrInvalidRenewal)
	case r.Target == nil:
		return fmt.Errorf("%w: missing target", ErrInvalidRenewal)
	}
	return nil
}

// Clone returns a deep copy of r.
func (r *Renewal) Clone() *Renewal {
	if r == nil {
		return nil
	}
	c := *r
	c.Target = r.Target.Clone()
	c.StoreOptions = bytes.Clone(r.StoreOptions)
	return &c
}

// Store persists renewals. Implementations must be safe for concurrent use.
type Store interface {
	// Save inserts or replaces the renewal with the same id.
	Save(ctx context.Context, r *Renewal) error
	// Get returns ErrNotFound when no renewal has the id.
	Get(ctx context.Context, id uuid.UUID) (*Renewal, error)
	// List returns every renewal ordered by creation time.
	List(ctx context.Context) ([]*Renewal, error)
	// Delete returns ErrNotFound when no renewal has the id.
	Delete(ctx context.Context, id uuid.UUID) error
}
