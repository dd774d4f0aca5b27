// Package mongoaudit persists construction [pdagerr.Error] records for
// later review. It is not a [cache.Cache]: nothing here is ever read
// back to short-circuit a later build, only written, because a log of
// past failures is exactly the kind of small non-reconstructible record
// the "persistence of the PDAG" non-goal permits, distinct in purpose
// from the construction-outcome cache in [cache.ConstructionOutcome].
package mongoaudit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openpra/pdag/pkg/pdagerr"
)

// Config configures the audit store's MongoDB connection.
type Config struct {
	// URI is the MongoDB connection string, e.g. "mongodb://localhost:27017".
	URI string

	// Database names the database holding the audit collection.
	Database string

	// Collection names the collection audit records are written to.
	// Defaults to "construction_errors" when empty.
	Collection string
}

// Record is one audited construction failure.
type Record struct {
	ModelHash string    `bson:"model_hash"`
	Code      string    `bson:"code"`
	Message   string    `bson:"message"`
	Cause     string    `bson:"cause,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}

// AuditStore writes construction-error records to MongoDB.
type AuditStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewAuditStore connects to MongoDB and returns a ready-to-use AuditStore.
func NewAuditStore(ctx context.Context, cfg Config) (*AuditStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	name := cfg.Collection
	if name == "" {
		name = "construction_errors"
	}
	return &AuditStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(name),
	}, nil
}

// Record persists one construction failure for a given model hash. err
// must carry a [pdagerr.Error]; a plain error is recorded with an empty
// Code.
func (s *AuditStore) Record(ctx context.Context, modelHash string, buildErr error) error {
	rec := Record{
		ModelHash: modelHash,
		Code:      string(pdagerr.GetCode(buildErr)),
		Message:   pdagerr.UserMessage(buildErr),
		Timestamp: time.Now(),
	}
	if cause := errorCause(buildErr); cause != "" {
		rec.Cause = cause
	}
	_, err := s.collection.InsertOne(ctx, rec)
	return err
}

func errorCause(err error) string {
	var perr *pdagerr.Error
	if e, ok := err.(*pdagerr.Error); ok {
		perr = e
	}
	if perr == nil || perr.Cause == nil {
		return ""
	}
	return perr.Cause.Error()
}

// RecentFailures returns the most recently recorded failures for a given
// model hash, newest first, up to limit records.
func (s *AuditStore) RecentFailures(ctx context.Context, modelHash string, limit int64) ([]Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(limit)
	cur, err := s.collection.Find(ctx, bson.D{{Key: "model_hash", Value: modelHash}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Close disconnects from MongoDB.
func (s *AuditStore) Close(ctx context.Context) error { return s.client.Disconnect(ctx) }
