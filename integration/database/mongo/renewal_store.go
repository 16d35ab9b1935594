package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/sitecert/core/renewal"
)

var _ renewal.Store = (*RenewalStore)(nil)

type renewalDocument struct {
	ID           string `bson:"_id"`
	Target       string `bson:"target"`
	StorePlugin  string `bson:"store_plugin"`
	StoreOptions string `bson:"store_options,omitempty"`
	CreatedAtUS  int64  `bson:"created_at_us"`
	UpdatedAtUS  int64  `bson:"updated_at_us"`
}

// RenewalStore implements renewal.Store backed by a MongoDB collection.
type RenewalStore struct {
	coll *mongo.Collection
}

// NewRenewalStore wraps coll and ensures the creation-order index exists.
func NewRenewalStore(ctx context.Context, coll *mongo.Collection) (*RenewalStore, error) {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at_us", Value: 1}, {Key: "_id", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("create renewal index: %w", err)
	}
	return &RenewalStore{coll: coll}, nil
}

func (s *RenewalStore) Save(ctx context.Context, r *renewal.Renewal) error {
	if err := r.Validate(); err != nil {
		return err
	}
	tgt, err := renewal.EncodeTarget(r)
	if err != nil {
		return err
	}

	doc := renewalDocument{
		ID:           r.ID.String(),
		Target:       string(tgt),
		StorePlugin:  r.StorePlugin,
		StoreOptions: string(r.StoreOptions),
		CreatedAtUS:  r.CreatedAt.UnixMicro(),
		UpdatedAtUS:  r.UpdatedAt.UnixMicro(),
	}
	_, err = s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.ID}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save renewal: %w", err)
	}
	return nil
}

func (s *RenewalStore) Get(ctx context.Context, id uuid.UUID) (*renewal.Renewal, error) {
	var doc renewalDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("renewal %s: %w", id, renewal.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get renewal: %w", err)
	}
	return doc.renewal()
}

func (s *RenewalStore) List(ctx context.Context) ([]*renewal.Renewal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at_us", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list renewals: %w", err)
	}

	var docs []renewalDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list renewals: %w", err)
	}

	out := make([]*renewal.Renewal, 0, len(docs))
	for _, doc := range docs {
		r, err := doc.renewal()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *RenewalStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return fmt.Errorf("delete renewal: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("renewal %s: %w", id, renewal.ErrNotFound)
	}
	return nil
}

func (d renewalDocument) renewal() (*renewal.Renewal, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("decode renewal id: %w", err)
	}
	r := &renewal.Renewal{
		ID:          id,
		StorePlugin: d.StorePlugin,
		CreatedAt:   time.UnixMicro(d.CreatedAtUS).UTC(),
		UpdatedAt:   time.UnixMicro(d.UpdatedAtUS).UTC(),
	}
	if d.StoreOptions != "" {
		r.StoreOptions = []byte(d.StoreOptions)
	}
	if err := renewal.DecodeTarget(r, []byte(d.Target)); err != nil {
		return nil, err
	}
	return r, nil
}
