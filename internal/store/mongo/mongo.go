// Package mongo stores transactions as documents in a single flat collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"moneytracker/internal/core"
	applog "moneytracker/internal/log"
	"moneytracker/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var _ store.Store = (*Store)(nil)

// document is the stored shape of a transaction.
type document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	DateTime    string             `bson:"dateTime"`
	Price       *float64           `bson:"price"`
}

func (d document) toTransaction() core.Transaction {
	return core.Transaction{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		DateTime:    d.DateTime,
		Price:       d.Price,
	}
}

type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *applog.Logger
}

// Connect dials the server at uri and verifies it with a ping.
func Connect(ctx context.Context, uri, database, collection string, logger *applog.Logger) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return NewWithClient(client, database, collection, logger), nil
}

// NewWithClient wraps an already connected client.
func NewWithClient(client *mongo.Client, database, collection string, logger *applog.Logger) *Store {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Store{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.WithComponent(applog.ComponentStorage),
	}
}

// Create inserts one document. The ObjectID assigned on insert becomes the ID.
func (s *Store) Create(ctx context.Context, nt core.NewTransaction) (core.Transaction, error) {
	if s.collection == nil {
		return core.Transaction{}, store.ErrNotInitialized
	}
	doc := document{
		Name:        nt.Name,
		Description: nt.Description,
		DateTime:    nt.DateTime,
		Price:       nt.Price,
	}
	res, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return core.Transaction{}, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = oid

	t := doc.toTransaction()
	s.logger.DebugContext(ctx, "Transaction saved to MongoDB",
		applog.NewFields().
			WithOperation(applog.OpCreate).
			WithTransaction(t.ID, t.Name, t.Price, t.DateTime).
			ToSlice()...)
	return t, nil
}

// List returns every document sorted by _id, which follows insertion order.
func (s *Store) List(ctx context.Context) ([]core.Transaction, error) {
	if s.collection == nil {
		return nil, store.ErrNotInitialized
	}
	cur, err := s.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	out := make([]core.Transaction, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toTransaction())
	}
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return store.ErrNotInitialized
	}
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		return err
	}
	return nil
}
