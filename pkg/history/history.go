// Package history persists one document per partition run when the
// HTTP service is configured with a Mongo URI — the audit trail a
// long-running service needs that the bare CLI driver has no use for.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hgpart/fm-partitioner/pkg/writer"
)

// Record is one partition run's audit entry.
type Record struct {
	ID        string    `bson:"_id"`
	Digest    string    `bson:"digest"`
	Balance   float64   `bson:"balance"`
	Cutsize   int       `bson:"cutsize"`
	SideA     int       `bson:"sideA"`
	SideB     int       `bson:"sideB"`
	PassCount int       `bson:"passCount"`
	CreatedAt time.Time `bson:"createdAt"`
}

// Store wraps the "runs" collection of a single Mongo database.
type Store struct {
	coll *mongo.Collection
}

// Connect dials uri and returns a Store backed by database db's "runs"
// collection. ctx bounds the initial connection handshake only.
func Connect(ctx context.Context, uri, db string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "history: connect")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "history: ping")
	}
	return &Store{coll: client.Database(db).Collection("runs")}, nil
}

// Insert records one completed run under a freshly minted UUID and
// returns that ID. The HTTP layer's POST /partitions handler discards
// it; its response carries only the summary.
func (s *Store) Insert(ctx context.Context, digest string, balance float64, sum writer.Summary) (string, error) {
	id := uuid.NewString()
	rec := Record{
		ID:        id,
		Digest:    digest,
		Balance:   balance,
		Cutsize:   sum.Cutsize,
		SideA:     len(sum.G1),
		SideB:     len(sum.G2),
		PassCount: sum.PassCount,
		CreatedAt: time.Now(),
	}
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return "", errors.Wrap(err, "history: insert")
	}
	return id, nil
}

// Get looks up a previously inserted run by ID.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "history: get")
	}
	return &rec, nil
}
